package report_test

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactkeval/option-greeks/internal/board"
	"github.com/contactkeval/option-greeks/internal/pricing"
	"github.com/contactkeval/option-greeks/internal/report"
)

func buildSnapshot(t *testing.T) *board.Snapshot {
	t.Helper()
	snap, err := board.Build(board.Inputs{
		Rate:   0.03,
		Spot:   30,
		Strike: 50,
		Days:   250,
		Vol:    0.30,
		Type:   pricing.Call,
	})
	require.NoError(t, err)
	return snap
}

func TestWriteJSON(t *testing.T) {
	snap := buildSnapshot(t)
	dir := t.TempDir()

	require.NoError(t, report.WriteJSON(snap, dir))

	b, err := os.ReadFile(filepath.Join(dir, "board.json"))
	require.NoError(t, err)

	var got board.Snapshot
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, snap.Inputs, got.Inputs)
	assert.Len(t, got.Metrics, len(snap.Metrics))
	assert.Len(t, got.Series, len(snap.Series))
}

func TestWriteCSV(t *testing.T) {
	snap := buildSnapshot(t)
	dir := t.TempDir()

	require.NoError(t, report.WriteCSV(snap.Series, dir))

	f, err := os.Open(filepath.Join(dir, "series.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"metric", "spot", "value"}, rows[0])
	wantRows := 1
	for _, s := range snap.Series {
		wantRows += len(s.Points)
	}
	assert.Len(t, rows, wantRows)
	// rows are grouped by series, in board order
	assert.Equal(t, "price", rows[1][0])
	assert.Equal(t, "1", rows[1][1])
}
