package ppd

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// decode returns PPD content as UTF-8. Files that are not valid UTF-8 are
// decoded with the 8-bit charset their *LanguageEncoding declares,
// ISOLatin1 being the PPD default.
func decode(data []byte) string {
	data = trimBOM(data)
	if utf8.Valid(data) {
		return string(data)
	}

	out, err := languageEncoding(data).NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "�")
	}
	return string(out)
}

func languageEncoding(data []byte) encoding.Encoding {
	const key = "*LanguageEncoding:"
	idx := bytes.Index(data, []byte(key))
	if idx < 0 {
		return charmap.ISO8859_1
	}
	rest := data[idx+len(key):]
	if nl := bytes.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	switch string(bytes.TrimSpace(rest)) {
	case "WindowsANSI":
		return charmap.Windows1252
	case "MacStandard":
		return charmap.Macintosh
	default:
		return charmap.ISO8859_1
	}
}
