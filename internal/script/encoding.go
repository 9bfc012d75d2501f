package script

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DetectCharset returns the lower-cased charset name of data
func DetectCharset(data []byte) string {
	if utf8.Valid(data) {
		return "utf-8"
	}
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return ""
	}
	return strings.ToLower(result.Charset)
}

// ToUTF8 converts script bytes to UTF-8. Anything that is neither UTF-8
// nor UTF-16 is read as EUC-KR (CP949), the legacy Korean encoding.
func ToUTF8(data []byte) ([]byte, error) {
	if utf8.Valid(data) {
		return bytes.TrimPrefix(data, utf8BOM), nil
	}

	var enc encoding.Encoding
	switch charset := DetectCharset(data); {
	case strings.HasPrefix(charset, "utf-16le"):
		enc = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case strings.HasPrefix(charset, "utf-16be"):
		enc = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	default:
		enc = korean.EUCKR
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, err
	}
	return bytes.TrimPrefix(out, utf8BOM), nil
}
