package printer

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/heapkit/arena"
)

// ErrArenaNotCreated is returned when asked to dump an arena that does not
// exist yet. The dump still reports the condition.
var ErrArenaNotCreated = errors.New("printer: arena was not created")

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs the block table in human-readable text.
	FormatText Format = "text"

	// FormatJSON outputs one JSON document per dump.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// ShowSummary appends block counts and byte totals after the table.
	// Default: false
	ShowSummary bool

	// Language selects digit grouping for summary numbers.
	// Default: language.English
	Language language.Tag
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:      FormatText,
		ShowSummary: false,
		Language:    language.English,
	}
}

// Printer renders arena dumps.
type Printer struct {
	opts   Options
	writer io.Writer
	num    *message.Printer
}

// New creates a new Printer writing to w.
//
// Example:
//
//	p := printer.New(os.Stdout, printer.DefaultOptions())
//	p.Print("after alloc", al.Arena())
func New(w io.Writer, opts Options) *Printer {
	return &Printer{
		opts:   opts,
		writer: w,
		num:    message.NewPrinter(opts.Language),
	}
}

// Print dumps every block of a from first to last under the heading msg. A nil
// arena prints "Arena was not created" and returns ErrArenaNotCreated.
func (p *Printer) Print(msg string, a *arena.Arena) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printJSON(msg, a)
	default:
		return p.printText(msg, a)
	}
}

// rows snapshots the chain in address order.
func rows(a *arena.Arena) []blockRow {
	var out []blockRow
	it := a.Blocks()
	for b, ok := it.Next(); ok; b, ok = it.Next() {
		out = append(out, blockRow{
			Offset:   b.Offset(),
			SizeCurr: b.SizeCurr(),
			SizePrev: b.SizePrev(),
			Busy:     b.Busy(),
			First:    b.First(),
			Last:     b.Last(),
		})
	}
	return out
}

type blockRow struct {
	Offset   int  `json:"offset"`
	SizeCurr int  `json:"size_curr"`
	SizePrev int  `json:"size_prev"`
	Busy     bool `json:"busy"`
	First    bool `json:"first"`
	Last     bool `json:"last"`
}

func (r blockRow) flags() string {
	s := "free"
	if r.Busy {
		s = "busy"
	}
	if r.First {
		s += " first"
	}
	if r.Last {
		s += " last"
	}
	return s
}

func (p *Printer) writef(format string, args ...any) error {
	_, err := fmt.Fprintf(p.writer, format, args...)
	return err
}
