package qrgenerator

import (
	qr "github.com/skip2/go-qrcode"

	"github.com/Xausdorf/khqr-offline/internal/domain/qrcode"
)

const DefaultScale = 10

// Generator renders text as a PNG where every module is scale x scale pixels.
type Generator struct {
	scale int
}

func NewGenerator(scale int) *Generator {
	if scale <= 0 {
		scale = DefaultScale
	}
	return &Generator{scale: scale}
}

func (g *Generator) Render(text string) ([]byte, error) {
	if text == "" {
		return nil, qrcode.ErrEmptyContent
	}
	code, err := qr.New(text, qr.Medium)
	if err != nil {
		return nil, err
	}
	// A negative size makes go-qrcode scale per module instead of fitting a
	// fixed width, so module edges stay on whole pixels.
	return code.PNG(-g.scale)
}
