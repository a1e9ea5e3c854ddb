package csvio

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/stitchbook-dev/stitchbook/internal/types"
)

// ExportHeader is the fixed column order of an export.
var ExportHeader = []string{"Code", "Name", "Hex", "Owned"}

// BoolFormat is how the owned flag is rendered in the Owned column.
type BoolFormat struct {
	True  string
	False string
}

// DefaultBoolFormat matches the 0/1 storage representation.
var DefaultBoolFormat = BoolFormat{True: "1", False: "0"}

func (f BoolFormat) format(v bool) string {
	if v {
		return f.True
	}
	return f.False
}

type Exporter struct {
	Owned BoolFormat
}

func NewExporter(owned BoolFormat) *Exporter {
	return &Exporter{Owned: owned}
}

// Write renders the header and one row per thread, in the order given.
func (e *Exporter) Write(w io.Writer, threads []types.Thread) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ExportHeader); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}

	for _, t := range threads {
		record := []string{t.Code, t.Name, t.Hex, e.Owned.format(t.Owned)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write thread %d: %w", t.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
