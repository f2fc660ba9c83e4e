// Package report writes board snapshots to disk for later inspection:
// the full snapshot as JSON and the chart series as CSV.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/contactkeval/option-greeks/internal/board"
)

// WriteJSON writes the full snapshot to board.json in outdir.
func WriteJSON(snap *board.Snapshot, outdir string) error {
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "board.json"), b, 0644)
}

// WriteCSV writes every chart series to series.csv in outdir, one row per
// (metric, spot, value) sample.
func WriteCSV(series []board.Series, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, "series.csv"))
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{"metric", "spot", "value"}); err != nil {
		return err
	}
	for _, s := range series {
		for _, pt := range s.Points {
			row := []string{s.Name, fmt.Sprintf("%g", pt.Spot), fmt.Sprintf("%.6f", pt.Value)}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}
