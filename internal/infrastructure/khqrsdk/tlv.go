package khqrsdk

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sigurn/crc16"
)

const (
	tagPayloadFormat     = "00"
	tagPointOfInitiation = "01"
	tagIndividualAccount = "29"
	tagMerchantCategory  = "52"
	tagCurrency          = "53"
	tagAmount            = "54"
	tagCountryCode       = "58"
	tagMerchantName      = "59"
	tagMerchantCity      = "60"
	tagCRC               = "63"
	tagTimestamp         = "99"

	subAccountID          = "00"
	subAccountInformation = "01"
	subAcquiringBank      = "02"

	subCreationTimestamp   = "00"
	subExpirationTimestamp = "01"
)

var crcTable = crc16.MakeTable(crc16.CRC16_CCITT_FALSE)

type tlvWriter struct {
	sb strings.Builder
}

// field appends tag, two digit length and value. Empty values are skipped.
func (w *tlvWriter) field(tag, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(&w.sb, "%s%02d%s", tag, utf8.RuneCountInString(value), value)
}

func (w *tlvWriter) template(tag string, build func(sub *tlvWriter)) {
	var sub tlvWriter
	build(&sub)
	w.field(tag, sub.String())
}

func (w *tlvWriter) String() string {
	return w.sb.String()
}

// withCRC closes the payload with tag 63. The checksum covers the tag and
// length of the CRC field itself.
func withCRC(payload string) string {
	payload += tagCRC + "04"
	sum := crc16.Checksum([]byte(payload), crcTable)
	return payload + fmt.Sprintf("%04X", sum)
}
