package khqrsdk

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sigurn/crc16"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xausdorf/khqr-offline/internal/domain/khqr"
)

var fixedNow = time.Date(2025, 12, 25, 8, 0, 0, 0, time.UTC)

func newTestBuilder() *Builder {
	return NewBuilder(WithClock(func() time.Time { return fixedNow }))
}

func validFields() khqr.IndividualFields {
	return khqr.IndividualFields{
		AccountID:          "khqr@ababank",
		MerchantName:       "Coffee Shop",
		AccountInformation: "85512233455",
		AcquiringBank:      "ABA Bank",
		Currency:           khqr.CurrencyUSD,
		Amount:             decimal.RequireFromString("1.50"),
	}
}

func TestCRCTable_CheckValue(t *testing.T) {
	assert.Equal(t, uint16(0x29B1), crc16.Checksum([]byte("123456789"), crcTable))
}

func TestBuilder_NewIndividualInfo(t *testing.T) {
	b := newTestBuilder()

	info, err := b.NewIndividualInfo(validFields())
	require.NoError(t, err)
	assert.Equal(t, defaultMerchantCity, info.MerchantCity)
	assert.Zero(t, info.ExpirationTimestamp)

	tests := []struct {
		name   string
		mutate func(*khqr.IndividualFields)
	}{
		{"empty account id", func(f *khqr.IndividualFields) { f.AccountID = " " }},
		{"empty merchant name", func(f *khqr.IndividualFields) { f.MerchantName = "" }},
		{"unknown currency", func(f *khqr.IndividualFields) { f.Currency = "EUR" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validFields()
			tt.mutate(&fields)

			info, err := b.NewIndividualInfo(fields)
			require.ErrorIs(t, err, khqr.ErrInvalidIndividualInfo)
			assert.Nil(t, info)
		})
	}
}

func TestBuilder_GenerateIndividual_Dynamic(t *testing.T) {
	b := newTestBuilder()
	info, err := b.NewIndividualInfo(validFields())
	require.NoError(t, err)
	info.ExpirationTimestamp = khqr.ExpirationMillis(fixedNow, 10)

	resp := b.GenerateIndividual(info)

	require.True(t, resp.OK(), resp.Status.Message)
	qr := resp.Data.QR
	assert.True(t, strings.HasPrefix(qr, "000201010212"))
	assert.Contains(t, qr, "29430012khqr@ababank0111855122334550208ABA Bank")
	assert.Contains(t, qr, "52045999")
	assert.Contains(t, qr, "5303840")
	assert.Contains(t, qr, "54031.5")
	assert.Contains(t, qr, "5802KH")
	assert.Contains(t, qr, "5911Coffee Shop")
	assert.Contains(t, qr, "6010Phnom Penh")
	assert.Contains(t, qr, "9934"+"0013"+"1766649600000"+"0113"+"1766650200000")

	body, trailer := qr[:len(qr)-4], qr[len(qr)-4:]
	require.True(t, strings.HasSuffix(body, "6304"))
	assert.Equal(t, withCRC(body[:len(body)-4]), qr)
	assert.Equal(t, strings.ToUpper(trailer), trailer)

	sum := md5.Sum([]byte(qr))
	assert.Equal(t, hex.EncodeToString(sum[:]), resp.Data.MD5)
}

func TestBuilder_GenerateIndividual_StaticWithoutAmount(t *testing.T) {
	b := newTestBuilder()
	fields := validFields()
	fields.Amount = decimal.Zero
	info, err := b.NewIndividualInfo(fields)
	require.NoError(t, err)

	resp := b.GenerateIndividual(info)

	require.True(t, resp.OK())
	assert.True(t, strings.HasPrefix(resp.Data.QR, "000201010211"))
	assert.NotContains(t, resp.Data.QR, "5403")
}

func TestBuilder_GenerateIndividual_StatusErrors(t *testing.T) {
	b := newTestBuilder()
	validExpiry := khqr.ExpirationMillis(fixedNow, 10)

	tests := []struct {
		name   string
		mutate func(*khqr.IndividualInfo)
		code   int
	}{
		{"account id without domain", func(i *khqr.IndividualInfo) { i.AccountID = "khqr" }, CodeInvalidAccountID},
		{"merchant name too long", func(i *khqr.IndividualInfo) { i.MerchantName = strings.Repeat("a", 26) }, CodeInvalidMerchantName},
		{"account info too long", func(i *khqr.IndividualInfo) { i.AccountInformation = strings.Repeat("1", 33) }, CodeInvalidAccountInformation},
		{"bank too long", func(i *khqr.IndividualInfo) { i.AcquiringBank = strings.Repeat("b", 33) }, CodeInvalidAcquiringBank},
		{"city too long", func(i *khqr.IndividualInfo) { i.MerchantCity = strings.Repeat("c", 16) }, CodeInvalidMerchantCity},
		{"negative amount", func(i *khqr.IndividualInfo) { i.Amount = decimal.NewFromInt(-5) }, CodeInvalidAmount},
		{"usd with three decimals", func(i *khqr.IndividualInfo) { i.Amount = decimal.RequireFromString("1.005") }, CodeInvalidAmount},
		{"khr with fraction", func(i *khqr.IndividualInfo) {
			i.Currency = khqr.CurrencyKHR
			i.Amount = decimal.RequireFromString("100.5")
		}, CodeInvalidAmount},
		{"amount too long", func(i *khqr.IndividualInfo) { i.Amount = decimal.RequireFromString("12345678901234") }, CodeInvalidAmount},
		{"huge exponent", func(i *khqr.IndividualInfo) { i.Amount = decimal.RequireFromString("1e100000000") }, CodeInvalidAmount},
		{"tiny exponent", func(i *khqr.IndividualInfo) { i.Amount = decimal.RequireFromString("1e-100000000") }, CodeInvalidAmount},
		{"account template over 99", func(i *khqr.IndividualInfo) {
			i.AccountID = strings.Repeat("a", 20) + "@" + strings.Repeat("b", 10)
			i.AcquiringBank = strings.Repeat("c", 32)
			i.AccountInformation = strings.Repeat("1", 32)
		}, CodeInvalidAccountInformation},
		{"missing expiration", func(i *khqr.IndividualInfo) { i.ExpirationTimestamp = 0 }, CodeExpirationRequired},
		{"expired", func(i *khqr.IndividualInfo) { i.ExpirationTimestamp = fixedNow.UnixMilli() - 1 }, CodeExpirationInPast},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := b.NewIndividualInfo(validFields())
			require.NoError(t, err)
			info.ExpirationTimestamp = validExpiry
			tt.mutate(info)

			resp := b.GenerateIndividual(info)

			assert.False(t, resp.OK())
			assert.Equal(t, tt.code, resp.Status.Code)
			assert.NotEmpty(t, resp.Status.Message)
			assert.Nil(t, resp.Data)
		})
	}
}

func TestBuilder_GenerateIndividual_AccountTemplateAtLimit(t *testing.T) {
	b := newTestBuilder()
	fields := validFields()
	fields.AccountID = strings.Repeat("a", 20) + "@" + strings.Repeat("b", 10)
	fields.AcquiringBank = strings.Repeat("c", 32)
	fields.AccountInformation = strings.Repeat("1", 24)
	info, err := b.NewIndividualInfo(fields)
	require.NoError(t, err)
	info.ExpirationTimestamp = khqr.ExpirationMillis(fixedNow, 10)

	resp := b.GenerateIndividual(info)

	require.True(t, resp.OK(), resp.Status.Message)
	assert.True(t, strings.HasPrefix(resp.Data.QR, "0002010102122999"))
}
