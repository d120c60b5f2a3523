package khqrsdk

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Xausdorf/khqr-offline/internal/domain/khqr"
)

const (
	payloadFormatIndicator = "01"
	staticInitiation       = "11"
	dynamicInitiation      = "12"
	merchantCategoryCode   = "5999"
	countryCode            = "KH"
	defaultMerchantCity    = "Phnom Penh"

	maxAccountIDLength    = 32
	maxMerchantNameLength = 25
	maxAccountInfoLength  = 32
	maxBankLength         = 32
	maxCityLength         = 15
	maxAmountLength       = khqr.MaxAmountLength
	maxTemplateLength     = 99
)

// Status codes returned in khqr.Response.Status.Code.
const (
	CodeInvalidAccountID = iota + 1
	CodeInvalidMerchantName
	CodeInvalidAccountInformation
	CodeInvalidAcquiringBank
	CodeInvalidMerchantCity
	CodeInvalidAmount
	CodeExpirationRequired
	CodeExpirationInPast
)

var messages = map[int]string{
	CodeInvalidAccountID:          "Bakong account ID is invalid",
	CodeInvalidMerchantName:       "Merchant name length is invalid",
	CodeInvalidAccountInformation: "Account information length is invalid",
	CodeInvalidAcquiringBank:      "Acquiring bank length is invalid",
	CodeInvalidMerchantCity:       "Merchant city length is invalid",
	CodeInvalidAmount:             "Amount is invalid",
	CodeExpirationRequired:        "Expiration timestamp is required for dynamic KHQR",
	CodeExpirationInPast:          "Expiration timestamp is in the past",
}

// Builder produces Bakong individual payloads locally.
type Builder struct {
	now func() time.Time
}

type Option func(*Builder)

func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) NewIndividualInfo(fields khqr.IndividualFields) (*khqr.IndividualInfo, error) {
	if strings.TrimSpace(fields.AccountID) == "" {
		return nil, fmt.Errorf("%w: account ID is required", khqr.ErrInvalidIndividualInfo)
	}
	if strings.TrimSpace(fields.MerchantName) == "" {
		return nil, fmt.Errorf("%w: merchant name is required", khqr.ErrInvalidIndividualInfo)
	}
	if !fields.Currency.Valid() {
		return nil, fmt.Errorf("%w: unsupported currency %q", khqr.ErrInvalidIndividualInfo, fields.Currency)
	}
	if fields.MerchantCity == "" {
		fields.MerchantCity = defaultMerchantCity
	}
	return &khqr.IndividualInfo{IndividualFields: fields}, nil
}

func (b *Builder) GenerateIndividual(info *khqr.IndividualInfo) khqr.Response {
	if info == nil {
		return failure(CodeInvalidAccountID)
	}
	if code := b.validate(info); code != khqr.StatusSuccess {
		return failure(code)
	}

	dynamic := info.Amount.IsPositive()
	initiation := staticInitiation
	if dynamic {
		initiation = dynamicInitiation
	}

	var w tlvWriter
	w.field(tagPayloadFormat, payloadFormatIndicator)
	w.field(tagPointOfInitiation, initiation)
	w.template(tagIndividualAccount, func(sub *tlvWriter) {
		sub.field(subAccountID, info.AccountID)
		sub.field(subAccountInformation, info.AccountInformation)
		sub.field(subAcquiringBank, info.AcquiringBank)
	})
	w.field(tagMerchantCategory, merchantCategoryCode)
	w.field(tagCurrency, info.Currency.NumericCode())
	if dynamic {
		w.field(tagAmount, info.Amount.String())
	}
	w.field(tagCountryCode, countryCode)
	w.field(tagMerchantName, info.MerchantName)
	w.field(tagMerchantCity, info.MerchantCity)
	w.template(tagTimestamp, func(sub *tlvWriter) {
		sub.field(subCreationTimestamp, strconv.FormatInt(b.now().UnixMilli(), 10))
		if dynamic {
			sub.field(subExpirationTimestamp, strconv.FormatInt(info.ExpirationTimestamp, 10))
		}
	})

	qr := withCRC(w.String())

	return khqr.Response{
		Status: khqr.Status{Code: khqr.StatusSuccess},
		Data:   &khqr.Data{QR: qr, MD5: khqr.PayloadMD5(qr)},
	}
}

func (b *Builder) validate(info *khqr.IndividualInfo) int {
	switch {
	case !strings.Contains(info.AccountID, "@") || tooLong(info.AccountID, maxAccountIDLength):
		return CodeInvalidAccountID
	case tooLong(info.MerchantName, maxMerchantNameLength):
		return CodeInvalidMerchantName
	case tooLong(info.AccountInformation, maxAccountInfoLength):
		return CodeInvalidAccountInformation
	case tooLong(info.AcquiringBank, maxBankLength):
		return CodeInvalidAcquiringBank
	case tooLong(info.MerchantCity, maxCityLength):
		return CodeInvalidMerchantCity
	case accountTemplateLength(info) > maxTemplateLength:
		return CodeInvalidAccountInformation
	case info.Amount.IsNegative() || !khqr.AmountInRange(info.Amount):
		return CodeInvalidAmount
	case len(info.Amount.String()) > maxAmountLength:
		return CodeInvalidAmount
	case !info.Amount.Equal(info.Amount.Round(info.Currency.Places())):
		return CodeInvalidAmount
	}

	if info.Amount.IsPositive() {
		if info.ExpirationTimestamp == 0 {
			return CodeExpirationRequired
		}
		if info.ExpirationTimestamp <= b.now().UnixMilli() {
			return CodeExpirationInPast
		}
	}
	return khqr.StatusSuccess
}

// accountTemplateLength is the encoded length of tag 29, which has only two
// digits for its own length.
func accountTemplateLength(info *khqr.IndividualInfo) int {
	n := 0
	for _, v := range []string{info.AccountID, info.AccountInformation, info.AcquiringBank} {
		if v != "" {
			n += 4 + utf8.RuneCountInString(v)
		}
	}
	return n
}

func tooLong(s string, limit int) bool {
	return utf8.RuneCountInString(s) > limit
}

func failure(code int) khqr.Response {
	return khqr.Response{Status: khqr.Status{Code: code, Message: messages[code]}}
}
