package khqr

import (
	"crypto/md5"
	"encoding/hex"
	"errors"

	"github.com/shopspring/decimal"
)

const StatusSuccess = 0

var ErrInvalidIndividualInfo = errors.New("invalid individual info")

type IndividualFields struct {
	AccountID          string
	MerchantName       string
	AccountInformation string
	AcquiringBank      string
	MerchantCity       string
	Currency           Currency
	Amount             decimal.Decimal
}

// IndividualInfo is the request for one individual payload. It only exists for
// the duration of a single GenerateIndividual call.
type IndividualInfo struct {
	IndividualFields

	ExpirationTimestamp int64
}

type Status struct {
	Code    int
	Message string
}

type Data struct {
	QR  string
	MD5 string
}

type Response struct {
	Status Status
	Data   *Data
}

func (r Response) OK() bool {
	return r.Status.Code == StatusSuccess && r.Data != nil && r.Data.QR != ""
}

type Builder interface {
	NewIndividualInfo(fields IndividualFields) (*IndividualInfo, error)
	GenerateIndividual(info *IndividualInfo) Response
}

// PayloadMD5 is the hex MD5 the Bakong SDK reports next to each payload.
func PayloadMD5(qr string) string {
	sum := md5.Sum([]byte(qr))
	return hex.EncodeToString(sum[:])
}
