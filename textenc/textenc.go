// Package textenc guesses the character encoding of project files and
// decodes them to UTF-8. UTAU projects are usually Shift_JIS.
package textenc

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode/utf32"
)

const (
	UTF8     = "UTF-8"
	ShiftJIS = "Shift_JIS"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// chardet names that htmlindex does not know.
var aliases = map[string]string{
	"gb-18030": "gb18030",
}

var utf32s = map[string]encoding.Encoding{
	"utf-32be": utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM),
	"utf-32le": utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM),
}

// Japanese charsets chardet can report, in the order they are preferred.
var japaneseCharsets = []string{ShiftJIS, "EUC-JP", "ISO-2022-JP"}

// decodesCleanly reports whether raw decodes under name without any
// replacement characters.
func decodesCleanly(raw []byte, name string) bool {
	enc, err := lookup(name)
	if err != nil {
		return false
	}
	out, err := enc.NewDecoder().Bytes(raw)
	return err == nil && !bytes.ContainsRune(out, utf8.RuneError)
}

// Detect returns a best guess at the encoding name of raw. Short Japanese
// text often scores best as a Latin charset, so any Japanese candidate, and
// then Shift_JIS itself, is tried before the top guess.
func Detect(raw []byte) (string, error) {
	if bytes.HasPrefix(raw, bom) || utf8.Valid(raw) {
		return UTF8, nil
	}
	results, err := chardet.NewTextDetector().DetectAll(raw)
	if err != nil {
		return "", errors.Wrap(err, "could not detect encoding")
	}
	for _, want := range japaneseCharsets {
		for _, r := range results {
			if strings.EqualFold(r.Charset, want) && decodesCleanly(raw, want) {
				return want, nil
			}
		}
	}
	if decodesCleanly(raw, ShiftJIS) {
		return ShiftJIS, nil
	}
	if len(results) == 0 {
		return "", errors.New("could not detect encoding")
	}
	return results[0].Charset, nil
}

func lookup(name string) (encoding.Encoding, error) {
	key := strings.ToLower(name)
	if enc, ok := utf32s[key]; ok {
		return enc, nil
	}
	if alias, ok := aliases[key]; ok {
		name = alias
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, errors.Wrapf(err, "unsupported encoding %q", name)
	}
	return enc, nil
}

// Decode converts raw from the named encoding to a UTF-8 string.
func Decode(raw []byte, name string) (string, error) {
	if strings.EqualFold(name, UTF8) {
		return string(bytes.TrimPrefix(raw, bom)), nil
	}
	enc, err := lookup(name)
	if err != nil {
		return "", err
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", errors.Wrapf(err, "could not decode %s", name)
	}
	return string(out), nil
}
