package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/faraday/internal/model"
)

func samplePoints(n int) []model.HistoryPoint {
	points := make([]model.HistoryPoint, n)
	for i := range points {
		points[i] = model.HistoryPoint{
			Time:     float64(i) * 0.5,
			Current:  1.23456,
			FluxRate: 0.5,
			Distance: 12.345,
		}
	}
	return points
}

func TestWriteCSVRowCount(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, samplePoints(7)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse csv: %v", err)
	}
	if len(rows) != 8 {
		t.Fatalf("expected 8 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != "Time (s),Current (A),Flux Rate (Wb/s),Distance (cm)" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if got := strings.Join(rows[2], ","); got != "0.50,1.235,0.500,12.35" && got != "0.50,1.235,0.500,12.34" {
		t.Fatalf("unexpected row: %s", got)
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("expected ErrEmptyHistory, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestExportFileWritesNamedFile(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)
	path, err := ExportFile(dir, samplePoints(3), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "faraday-data-20240309-140506.csv" {
		t.Fatalf("unexpected file name %s", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 4 {
		t.Fatalf("expected 4 lines, got %d", lines)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the export in dir, got %d entries", len(entries))
	}
}

func TestExportFileEmptyProducesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	if _, err := ExportFile(dir, nil, time.Now()); !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("expected ErrEmptyHistory, got %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("expected no export dir, got %v", err)
	}
}
