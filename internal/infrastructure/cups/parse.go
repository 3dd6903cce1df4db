package cups

import (
	"regexp"
	"strings"

	"github.com/openclaw/cupsprint/internal/domain/printing"
)

const (
	defaultDestinationPrefix = "system default destination:"
	printerLinePrefix        = "printer "
	currentValueMarker       = "*"
)

var jobIDPattern = regexp.MustCompile(`request id is (\S+)`)

// ParseDefaultDestination extracts the default printer from lpstat -d output.
// The second return value is false when no default is configured.
func ParseDefaultDestination(output string) (string, bool) {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if rest, ok := strings.CutPrefix(line, defaultDestinationPrefix); ok {
			name := strings.TrimSpace(rest)
			return name, name != ""
		}
	}
	return "", false
}

// ParsePrinterList extracts printer records from lpstat -p output.
// defaultName marks the matching record as the default; it may be empty.
func ParsePrinterList(output, defaultName string) []printing.Printer {
	var printers []printing.Printer
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if !strings.HasPrefix(line, printerLinePrefix) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		name := fields[1]
		printers = append(printers, printing.Printer{
			Name:      name,
			Status:    parseStatus(line),
			Enabled:   strings.Contains(line, "enabled"),
			IsDefault: defaultName != "" && name == defaultName,
		})
	}
	return printers
}

func parseStatus(line string) printing.PrinterStatus {
	switch {
	case strings.Contains(line, "idle"):
		return printing.PrinterStatusIdle
	case strings.Contains(line, "printing"):
		return printing.PrinterStatusBusy
	default:
		return printing.PrinterStatusUnknown
	}
}

// ParseJobID extracts the job identifier from lp output
func ParseJobID(output string) (string, bool) {
	m := jobIDPattern.FindStringSubmatch(output)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ParseOptions extracts option records from lpoptions -l output. Lines have
// the form "Key/Label: v1 *v2 v3"; the starred token is the current value.
func ParseOptions(output string) []printing.PrinterOption {
	var options []printing.PrinterOption
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if !strings.Contains(line, "/") || !strings.Contains(line, ":") {
			continue
		}

		keyLabel, valuesStr, _ := strings.Cut(line, ":")
		key, label, _ := strings.Cut(keyLabel, "/")

		opt := printing.PrinterOption{
			Key:    strings.TrimSpace(key),
			Label:  strings.TrimSpace(label),
			Values: []string{},
		}
		for _, v := range strings.Fields(valuesStr) {
			if current, ok := strings.CutPrefix(v, currentValueMarker); ok {
				opt.Current = current
				v = current
			}
			opt.Values = append(opt.Values, v)
		}
		options = append(options, opt)
	}
	return options
}

// BuildSubmitArgs returns the lp argument vector for printing file on printer
// with the given media and duplex mode
func BuildSubmitArgs(printer, file, media string, duplex printing.DuplexMode) []string {
	args := []string{
		"-d", printer,
		file,
		"-o", "media=" + media,
		"-o", "fit-to-page",
	}
	if duplex.IsSet() {
		args = append(args, "-o", "sides="+duplex.Sides())
	}
	return args
}
