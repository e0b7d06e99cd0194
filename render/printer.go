package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/signalsfoundry/sscweb/model"
)

const (
	// RawTimeLayout renders the instant as the service transmits it.
	RawTimeLayout = "2006-01-02T15:04:05.000Z"
	// CalendarLayout is the human-readable rendering printed after it.
	CalendarLayout = "Mon Jan 02 15:04:05 MST 2006"
	// DayOfYearLayout is used for spreadsheet exports.
	DayOfYearLayout = "2006/002 15:04:05"

	// NoDataLine is the only line printed for an empty result.
	NoDataLine = "No satellite data"

	valueFormat = "  %10.2f"
)

// Printer writes results as aligned text. The first write error is kept and
// returned by every later call.
type Printer struct {
	w   io.Writer
	err error
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// DataResult prints every satellite in r, or NoDataLine when r carries none.
func (p *Printer) DataResult(r *model.DataResult) error {
	if r == nil || len(r.Data) == 0 {
		p.printf("%s\n", NoDataLine)
		return p.err
	}
	p.printf("data.length = %d\n", len(r.Data))
	p.printf("Satellite Data:\n")
	for _, sd := range r.Data {
		p.SatelliteData(sd)
	}
	return p.err
}

// SatelliteData prints the satellite id followed by one line per time index.
func (p *Printer) SatelliteData(sd model.SatelliteData) error {
	p.printf("  %s\n", sd.ID)
	for _, row := range Rows(sd) {
		p.Row(row)
	}
	return p.err
}

// Row prints one time index: timestamps, present coordinate values, then
// each trace label with its present values.
func (p *Printer) Row(row Row) error {
	p.printf("  %s, %s", row.Time.Format(RawTimeLayout), row.Time.Format(CalendarLayout))
	for _, c := range row.Coordinates {
		p.values(c.Values())
	}
	for _, tr := range row.Traces {
		p.printf("  %s", tr.Label())
		p.values(tr.Values())
	}
	p.printf("\n")
	return p.err
}

func (p *Printer) values(vals []Value) {
	for _, v := range vals {
		if v.OK {
			p.printf(valueFormat, v.V)
		}
	}
}

// FileResult prints the status envelope and artefact URLs of a KML reply.
func (p *Printer) FileResult(r *model.FileResult) error {
	if r == nil {
		p.printf("Status: <nil>\n")
		return p.err
	}
	p.Status(r.Result)
	p.printf("URLs: %s\n", list(r.URLs))
	return p.err
}

// Status prints the code, subcode and texts of a result envelope.
func (p *Printer) Status(r model.Result) error {
	p.printf("Status: %s\n", r.StatusCode)
	p.printf("Subcode: %s\n", r.StatusSubCode)
	p.printf("Texts: %s\n", list(r.StatusText))
	return p.err
}

// CatalogSummary prints catalogue counts.
func (p *Printer) CatalogSummary(total, active, inactive int) error {
	p.printf("Total satellites: %d\n", total)
	p.printf("Active  : %d\n", active)
	p.printf("Inactive: %d\n", inactive)
	return p.err
}

func list(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}

// DataResult writes r to w using a new Printer.
func DataResult(w io.Writer, r *model.DataResult) error {
	return NewPrinter(w).DataResult(r)
}

// FileResult writes r to w using a new Printer.
func FileResult(w io.Writer, r *model.FileResult) error {
	return NewPrinter(w).FileResult(r)
}

// String renders r to a string.
func String(r *model.DataResult) string {
	var buf bytes.Buffer
	_ = DataResult(&buf, r)
	return buf.String()
}
