package qrcode

import "errors"

var ErrEmptyContent = errors.New("qr content is empty")

// Renderer turns payload text into a PNG image.
type Renderer interface {
	Render(text string) ([]byte, error)
}
