package textio

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decoder attempts a full decode of data, reporting false when data is not
// valid in its encoding.
type Decoder struct {
	Name   string
	Decode func(data []byte) (string, bool)
}

// Decoders is the ordered fallback ladder tried by DecodeLines.
var Decoders = []Decoder{
	{Name: "utf-8", Decode: decodeUTF8},
	{Name: "utf-8-bom", Decode: decodeUTF8BOM},
	{Name: "gbk", Decode: roundTrip(simplifiedchinese.GBK)},
	{Name: "gb18030", Decode: roundTrip(simplifiedchinese.GB18030)},
	{Name: "latin-1", Decode: roundTrip(charmap.ISO8859_1)},
}

// ReadLines reads path from fs and returns its lines, decoded with the first
// encoding in Decoders that accepts the whole file.
func ReadLines(fs afero.Fs, path string) ([]string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return DecodeLines(data), nil
}

// DecodeLines decodes data and splits it into lines without terminators.
// It never fails: when no decoder accepts data, invalid UTF-8 bytes are dropped.
func DecodeLines(data []byte) []string {
	text, _ := Decode(data)
	return splitLines(text)
}

// Decode returns the decoded text and the name of the decoder that produced it.
func Decode(data []byte) (string, string) {
	for _, d := range Decoders {
		if text, ok := d.Decode(data); ok {
			return text, d.Name
		}
	}
	return strings.ToValidUTF8(string(data), ""), "utf-8-lossy"
}

func decodeUTF8(data []byte) (string, bool) {
	if bytes.HasPrefix(data, utf8BOM) || !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

func decodeUTF8BOM(data []byte) (string, bool) {
	if !bytes.HasPrefix(data, utf8BOM) {
		return "", false
	}
	rest := data[len(utf8BOM):]
	if !utf8.Valid(rest) {
		return "", false
	}
	return string(rest), true
}

// roundTrip accepts a decode only when re-encoding reproduces the input;
// x/text decoders substitute U+FFFD for invalid sequences instead of failing.
func roundTrip(enc encoding.Encoding) func([]byte) (string, bool) {
	return func(data []byte) (string, bool) {
		decoded, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", false
		}
		encoded, err := enc.NewEncoder().Bytes(decoded)
		if err != nil || !bytes.Equal(encoded, data) {
			return "", false
		}
		return string(decoded), true
	}
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
