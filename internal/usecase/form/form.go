package form

//go:generate mockgen -destination=mocks/builder.go -package=mocks github.com/Xausdorf/khqr-offline/internal/domain/khqr Builder
//go:generate mockgen -destination=mocks/renderer.go -package=mocks github.com/Xausdorf/khqr-offline/internal/domain/qrcode Renderer
//go:generate mockgen -destination=mocks/store.go -package=mocks github.com/Xausdorf/khqr-offline/internal/domain/repository SettingsStore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Xausdorf/khqr-offline/internal/domain/khqr"
	"github.com/Xausdorf/khqr-offline/internal/domain/qrcode"
	"github.com/Xausdorf/khqr-offline/internal/domain/repository"
	"github.com/Xausdorf/khqr-offline/internal/infrastructure/metrics"
)

const (
	PayloadKey = "last_khqr_payload"

	MsgInvalidAmount = "Invalid amount. Please enter amount > 0"
	msgErrorPrefix   = "Error generating KHQR: "
	msgUnknownError  = "Unknown error"
)

var ErrNothingToSave = errors.New("no payload to save")

type State string

const (
	StateIdle  State = "idle"
	StateError State = "error"
	StateReady State = "ready"
)

// Settings are the values that do not come from the user.
type Settings struct {
	AccountID         string
	AcquiringBank     string
	MerchantCity      string
	ExpirationMinutes int

	DefaultStoreName   string
	DefaultAccountInfo string
}

type Snapshot struct {
	State              State
	StoreName          string
	AccountInformation string
	AmountText         string
	Currency           khqr.Currency
	Payload            string
	PayloadMD5         string
	Image              []byte
	ErrorMessage       string
	GenerationID       uuid.UUID
}

// Input carries optional field updates. Nil fields keep their value.
type Input struct {
	StoreName          *string
	AccountInformation *string
	Amount             *string
	Currency           *khqr.Currency
}

type Option func(*Controller)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

func WithMetrics(r *metrics.Recorder) Option {
	return func(c *Controller) { c.metrics = r }
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// Controller owns the form inputs and the derived payload, image and error.
// Every event runs under one mutex, so at most one generation is in flight.
type Controller struct {
	builder  khqr.Builder
	renderer qrcode.Renderer
	store    repository.SettingsStore
	settings Settings
	logger   *zap.Logger
	metrics  *metrics.Recorder
	now      func() time.Time

	mu           sync.Mutex
	storeName    string
	accountInfo  string
	amountText   string
	currency     khqr.Currency
	payload      string
	payloadMD5   string
	image        []byte
	errMsg       string
	generationID uuid.UUID
}

func NewController(
	builder khqr.Builder,
	renderer qrcode.Renderer,
	store repository.SettingsStore,
	settings Settings,
	opts ...Option,
) *Controller {
	c := &Controller{
		builder:     builder,
		renderer:    renderer,
		store:       store,
		settings:    settings,
		logger:      zap.NewNop(),
		now:         time.Now,
		storeName:   settings.DefaultStoreName,
		accountInfo: settings.DefaultAccountInfo,
		currency:    khqr.CurrencyUSD,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) SetMerchant(storeName, accountInformation string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.storeName = storeName
	c.accountInfo = accountInformation
}

func (c *Controller) SetAmount(text string, currency khqr.Currency) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.amountText = text
	if currency == "" {
		currency = khqr.CurrencyUSD
	}
	c.currency = currency
}

// Update applies in and returns the resulting snapshot.
func (c *Controller) Update(in Input) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apply(in)
	return c.snapshot()
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Generate validates the amount, asks the builder for a payload and renders it.
// The outcome is reported through the returned snapshot.
func (c *Controller) Generate() Snapshot {
	return c.GenerateWith(Input{})
}

// GenerateWith applies in and generates from the result without releasing
// the lock in between.
func (c *Controller) GenerateWith(in Input) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.apply(in)
	return c.generate()
}

func (c *Controller) generate() Snapshot {
	c.errMsg = ""
	id := uuid.New()
	logger := c.logger.With(zap.String("generation_id", id.String()))

	amount, err := ParseAmount(c.amountText)
	if err != nil {
		logger.Info("amount rejected", zap.String("amount", c.amountText))
		c.fail(MsgInvalidAmount)
		c.metrics.Generation(metrics.ResultInvalidAmount)
		return c.snapshot()
	}

	info, err := c.builder.NewIndividualInfo(khqr.IndividualFields{
		AccountID:          c.settings.AccountID,
		MerchantName:       c.storeName,
		AccountInformation: c.accountInfo,
		AcquiringBank:      c.settings.AcquiringBank,
		MerchantCity:       c.settings.MerchantCity,
		Currency:           c.currency,
		Amount:             amount,
	})
	if err != nil || info == nil {
		msg := msgUnknownError
		if err != nil {
			msg = err.Error()
		}
		logger.Warn("individual info rejected", zap.String("reason", msg))
		c.fail(msgErrorPrefix + msg)
		c.metrics.Generation(metrics.ResultBuilderRejected)
		return c.snapshot()
	}
	info.ExpirationTimestamp = khqr.ExpirationMillis(c.now(), c.settings.ExpirationMinutes)

	resp := c.builder.GenerateIndividual(info)
	if !resp.OK() {
		msg := resp.Status.Message
		if msg == "" {
			msg = msgUnknownError
		}
		logger.Warn("payload generation failed",
			zap.Int("status_code", resp.Status.Code),
			zap.String("message", msg),
		)
		c.fail(msgErrorPrefix + msg)
		c.metrics.Generation(metrics.ResultBuilderRejected)
		return c.snapshot()
	}

	c.payload = resp.Data.QR
	c.payloadMD5 = resp.Data.MD5
	if c.payloadMD5 == "" {
		c.payloadMD5 = khqr.PayloadMD5(c.payload)
	}
	c.generationID = id
	c.image = c.render(logger, c.payload)
	if c.image == nil {
		c.metrics.Generation(metrics.ResultRenderFailed)
	} else {
		c.metrics.Generation(metrics.ResultReady)
	}

	logger.Info("payload generated",
		zap.String("currency", string(c.currency)),
		zap.String("amount", amount.String()),
		zap.Int64("expires_at", info.ExpirationTimestamp),
		zap.String("md5", c.payloadMD5),
	)
	return c.snapshot()
}

// Save writes the current payload under PayloadKey. It does not change state.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.payload == "" {
		return ErrNothingToSave
	}
	if err := c.store.Set(ctx, PayloadKey, c.payload); err != nil {
		c.logger.Error("save payload failed", zap.Error(err))
		c.metrics.Save(metrics.ResultError)
		return fmt.Errorf("save payload: %w", err)
	}

	c.metrics.Save(metrics.ResultOK)
	c.logger.Info("saved KHQR payload locally", zap.String("md5", c.payloadMD5))
	return nil
}

// Restore loads the last saved payload and renders it without calling the
// builder. A missing, empty or unreadable value leaves the form untouched.
func (c *Controller) Restore(ctx context.Context) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	saved, err := c.store.Get(ctx, PayloadKey)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.metrics.Restore(metrics.ResultEmpty)
		return c.snapshot()
	case err != nil:
		c.logger.Warn("restore payload failed", zap.Error(err))
		c.metrics.Restore(metrics.ResultError)
		return c.snapshot()
	case saved == "":
		c.metrics.Restore(metrics.ResultEmpty)
		return c.snapshot()
	}

	c.errMsg = ""
	c.payload = saved
	c.payloadMD5 = khqr.PayloadMD5(saved)
	c.generationID = uuid.Nil
	c.image = c.render(c.logger, saved)
	c.metrics.Restore(metrics.ResultOK)
	c.logger.Info("restored KHQR payload", zap.String("md5", c.payloadMD5))
	return c.snapshot()
}

func (c *Controller) apply(in Input) {
	if in.StoreName != nil {
		c.storeName = *in.StoreName
	}
	if in.AccountInformation != nil {
		c.accountInfo = *in.AccountInformation
	}
	if in.Amount != nil {
		c.amountText = *in.Amount
	}
	if in.Currency != nil {
		c.currency = *in.Currency
		if c.currency == "" {
			c.currency = khqr.CurrencyUSD
		}
	}
}

func (c *Controller) render(logger *zap.Logger, text string) []byte {
	img, err := c.renderer.Render(text)
	if err != nil {
		logger.Warn("render qr failed", zap.Error(err))
		return nil
	}
	return img
}

func (c *Controller) fail(msg string) {
	c.errMsg = msg
	c.payload = ""
	c.payloadMD5 = ""
	c.image = nil
	c.generationID = uuid.Nil
}

func (c *Controller) state() State {
	switch {
	case c.errMsg != "":
		return StateError
	case c.payload != "":
		return StateReady
	default:
		return StateIdle
	}
}

func (c *Controller) snapshot() Snapshot {
	return Snapshot{
		State:              c.state(),
		StoreName:          c.storeName,
		AccountInformation: c.accountInfo,
		AmountText:         c.amountText,
		Currency:           c.currency,
		Payload:            c.payload,
		PayloadMD5:         c.payloadMD5,
		Image:              c.image,
		ErrorMessage:       c.errMsg,
		GenerationID:       c.generationID,
	}
}
