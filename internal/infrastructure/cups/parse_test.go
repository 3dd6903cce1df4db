package cups

import (
	"testing"

	"github.com/openclaw/cupsprint/internal/domain/printing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lpstatOutput = `printer HP_LaserJet is idle.  enabled since Mon 01 Jan 2024 10:00:00 AM
printer Canon_MF is now printing Canon_MF-42.  enabled since Mon 01 Jan 2024 10:05:00 AM
printer Old_Dot disabled since Tue 02 Jan 2024 09:00:00 AM -
	reason unknown
system default destination: HP_LaserJet
`

func TestParseDefaultDestination(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected string
		ok       bool
	}{
		{"present", "system default destination: Office_Laser\n", "Office_Laser", true},
		{"crlf", "system default destination: Office\r\n", "Office", true},
		{"among printers", lpstatOutput, "HP_LaserJet", true},
		{"none", "no system default destination\n", "", false},
		{"empty name", "system default destination:   \n", "", false},
		{"empty output", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ok := ParseDefaultDestination(tt.output)
			assert.Equal(t, tt.expected, name)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestParsePrinterList(t *testing.T) {
	printers := ParsePrinterList(lpstatOutput, "HP_LaserJet")
	require.Len(t, printers, 3)

	assert.Equal(t, printing.Printer{
		Name: "HP_LaserJet", Status: printing.PrinterStatusIdle, Enabled: true, IsDefault: true,
	}, printers[0])
	assert.Equal(t, printing.Printer{
		Name: "Canon_MF", Status: printing.PrinterStatusBusy, Enabled: true,
	}, printers[1])
	assert.Equal(t, printing.Printer{
		Name: "Old_Dot", Status: printing.PrinterStatusUnknown, Enabled: false,
	}, printers[2])
}

func TestParsePrinterList_NoDefault(t *testing.T) {
	printers := ParsePrinterList(lpstatOutput, "")
	for _, p := range printers {
		assert.False(t, p.IsDefault, p.Name)
	}

	assert.Empty(t, ParsePrinterList("lpstat: No destinations added.\n", ""))
}

func TestParseJobID(t *testing.T) {
	id, ok := ParseJobID("request id is HP_LaserJet-123 (1 file(s))\n")
	require.True(t, ok)
	assert.Equal(t, "HP_LaserJet-123", id)

	_, ok = ParseJobID("queued\n")
	assert.False(t, ok)
}

func TestParseOptions(t *testing.T) {
	output := `PageSize/Media Size: Letter *A4 Legal
Duplex/2-Sided Printing: *None DuplexNoTumble DuplexTumble
ColorModel/Color Mode: Gray RGB
Resolution/Resolution: *600dpi
this line has no separators
`
	options := ParseOptions(output)
	require.Len(t, options, 4)

	assert.Equal(t, printing.PrinterOption{
		Key: "PageSize", Label: "Media Size", Current: "A4",
		Values: []string{"Letter", "A4", "Legal"},
	}, options[0])
	assert.Equal(t, "None", options[1].Current)
	assert.Equal(t, []string{"None", "DuplexNoTumble", "DuplexTumble"}, options[1].Values)

	assert.Equal(t, "ColorModel", options[2].Key)
	assert.Empty(t, options[2].Current, "no starred token means no current value")
	assert.Equal(t, []string{"Gray", "RGB"}, options[2].Values)

	assert.Equal(t, []string{"600dpi"}, options[3].Values)
}

func TestBuildSubmitArgs(t *testing.T) {
	tests := []struct {
		name     string
		duplex   printing.DuplexMode
		expected []string
	}{
		{
			name:     "simplex",
			duplex:   printing.DuplexNone,
			expected: []string{"-d", "Office", "/tmp/a.pdf", "-o", "media=A4", "-o", "fit-to-page"},
		},
		{
			name:   "long edge",
			duplex: printing.DuplexNoTumble,
			expected: []string{"-d", "Office", "/tmp/a.pdf", "-o", "media=A4", "-o", "fit-to-page",
				"-o", "sides=two-sided-long-edge"},
		},
		{
			name:   "short edge",
			duplex: printing.DuplexTumble,
			expected: []string{"-d", "Office", "/tmp/a.pdf", "-o", "media=A4", "-o", "fit-to-page",
				"-o", "sides=two-sided-short-edge"},
		},
		{
			name:   "vendor keyword passes through",
			duplex: printing.DuplexMode("Booklet"),
			expected: []string{"-d", "Office", "/tmp/a.pdf", "-o", "media=A4", "-o", "fit-to-page",
				"-o", "sides=Booklet"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildSubmitArgs("Office", "/tmp/a.pdf", "A4", tt.duplex))
		})
	}
}
