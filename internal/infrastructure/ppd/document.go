// Package ppd reads PostScript Printer Description files.
//
// A PPD is tokenised in a single pass into entries of the form
//
//	*Key[ Option[/Translation]]: value
//
// and typed accessors are layered on top. Accessors never fail: a missing or
// malformed entry yields the documented default, so a partially broken PPD
// degrades to sane values instead of blocking printing.
package ppd

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
)

// maxLineSize bounds a single PPD line; embedded PostScript can be long
const maxLineSize = 1 << 20

// Entry is one main keyword line of a PPD file
type Entry struct {
	// Key is the main keyword without the leading '*'
	Key string
	// Option is the option keyword, empty for unqualified entries
	Option string
	// Translation is the human-readable text after '/', if any
	Translation string
	// Value has surrounding whitespace and quotes removed
	Value string
	// Line is the 1-based line number the entry starts on
	Line int
}

// Document is a parsed PPD file
type Document struct {
	entries []Entry
}

// Parse tokenises PPD content. data may be UTF-8 or one of the 8-bit
// encodings named by *LanguageEncoding.
func Parse(data []byte) *Document {
	text := decode(data)

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	doc := &Document{}
	var (
		pending   *Entry
		continued strings.Builder
		lineNo    int
	)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		if pending != nil {
			if idx := strings.IndexByte(line, '"'); idx >= 0 {
				continued.WriteString(line[:idx])
				pending.Value = continued.String()
				doc.entries = append(doc.entries, *pending)
				pending = nil
				continued.Reset()
			} else {
				continued.WriteString(line)
				continued.WriteByte('\n')
			}
			continue
		}

		entry, open, ok := parseLine(line)
		if !ok {
			continue
		}
		entry.Line = lineNo
		if open {
			pending = &entry
			continued.WriteString(entry.Value)
			continued.WriteByte('\n')
			continue
		}
		doc.entries = append(doc.entries, entry)
	}

	// unterminated quoted value at EOF
	if pending != nil {
		pending.Value = strings.TrimRight(continued.String(), "\n")
		doc.entries = append(doc.entries, *pending)
	}

	return doc
}

// parseLine splits one main keyword line. open is true when the value is a
// quoted string that continues on following lines.
func parseLine(line string) (entry Entry, open bool, ok bool) {
	if !strings.HasPrefix(line, "*") || strings.HasPrefix(line, "*%") {
		return Entry{}, false, false
	}
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return Entry{}, false, false
	}

	head := strings.TrimSpace(line[1:colon])
	key, rest := head, ""
	if sep := strings.IndexAny(head, " \t"); sep >= 0 {
		key, rest = head[:sep], head[sep+1:]
	}
	if key == "" {
		return Entry{}, false, false
	}
	option, translation, _ := strings.Cut(strings.TrimSpace(rest), "/")

	entry = Entry{
		Key:         key,
		Option:      strings.TrimSpace(option),
		Translation: strings.TrimSpace(translation),
	}

	value := strings.TrimSpace(line[colon+1:])
	if strings.HasPrefix(value, `"`) {
		inner := value[1:]
		end := strings.IndexByte(inner, '"')
		if end < 0 {
			entry.Value = inner
			return entry, true, true
		}
		entry.Value = inner[:end]
		return entry, false, true
	}

	entry.Value = value
	return entry, false, true
}

// Value returns the first unqualified entry for key
func (d *Document) Value(key string) (string, bool) {
	for _, e := range d.entries {
		if e.Key == key && e.Option == "" {
			return e.Value, true
		}
	}
	return "", false
}

// ValueOr returns the first non-empty unqualified value for key, or def
func (d *Document) ValueOr(key, def string) string {
	if v, ok := d.Value(key); ok && v != "" {
		return v
	}
	return def
}

// Qualified returns all option-qualified entries for key in file order
func (d *Document) Qualified(key string) []Entry {
	var out []Entry
	for _, e := range d.entries {
		if e.Key == key && e.Option != "" {
			out = append(out, e)
		}
	}
	return out
}

// parseNumbers parses exactly n whitespace-separated numbers
func parseNumbers(value string, n int) ([]float64, bool) {
	fields := strings.Fields(value)
	if len(fields) != n {
		return nil, false
	}
	nums := make([]float64, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false
		}
		nums[i] = v
	}
	return nums, true
}

// utf8BOM is stripped before tokenising
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func trimBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}
