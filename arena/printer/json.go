package printer

import (
	"encoding/json"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/arena/verify"
)

// jsonDump is one dump in JSON format.
type jsonDump struct {
	Message string       `json:"message"`
	Created bool         `json:"created"`
	Size    int          `json:"size,omitempty"`
	Blocks  []blockRow   `json:"blocks,omitempty"`
	Summary *jsonSummary `json:"summary,omitempty"`
}

type jsonSummary struct {
	Blocks        int     `json:"blocks"`
	Busy          int     `json:"busy"`
	Free          int     `json:"free"`
	BusyBytes     int     `json:"busy_bytes"`
	FreeBytes     int     `json:"free_bytes"`
	HeaderBytes   int     `json:"header_bytes"`
	LargestFree   int     `json:"largest_free"`
	Fragmentation float64 `json:"fragmentation"`
}

func (p *Printer) printJSON(msg string, a *arena.Arena) error {
	dump := jsonDump{Message: msg}
	if a != nil {
		dump.Created = true
		dump.Size = a.Size()
		dump.Blocks = rows(a)
		if p.opts.ShowSummary {
			s := verify.Summarize(a)
			dump.Summary = &jsonSummary{
				Blocks:        s.Blocks,
				Busy:          s.Busy,
				Free:          s.Free,
				BusyBytes:     s.BusyBytes,
				FreeBytes:     s.FreeBytes,
				HeaderBytes:   s.HeaderBytes,
				LargestFree:   s.LargestFree,
				Fragmentation: s.Fragmentation(),
			}
		}
	}

	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return err
	}
	if err := p.writef("%s\n", data); err != nil {
		return err
	}
	if a == nil {
		return ErrArenaNotCreated
	}
	return nil
}
