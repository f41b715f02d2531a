// Package export writes the history log as CSV.
package export

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/verte-zerg/faraday/internal/model"
)

// ErrEmptyHistory is returned when there is nothing to export.
var ErrEmptyHistory = errors.New("history is empty")

// Header is the CSV header row.
var Header = []string{"Time (s)", "Current (A)", "Flux Rate (Wb/s)", "Distance (cm)"}

// FilePrefix starts every exported file name.
const FilePrefix = "faraday-data-"

// WriteCSV writes a header row and one row per point.
func WriteCSV(w io.Writer, points []model.HistoryPoint) error {
	if len(points) == 0 {
		return ErrEmptyHistory
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, p := range points {
		row := []string{
			strconv.FormatFloat(p.Time, 'f', 2, 64),
			strconv.FormatFloat(p.Current, 'f', 3, 64),
			strconv.FormatFloat(p.FluxRate, 'f', 3, 64),
			strconv.FormatFloat(p.Distance, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// FileName returns the export file name for a timestamp.
func FileName(now time.Time) string {
	return FilePrefix + now.Format("20060102-150405") + ".csv"
}

// ExportFile writes points to a new file in dir and returns its path.
// With no points nothing is written and ErrEmptyHistory is returned.
func ExportFile(dir string, points []model.HistoryPoint, now time.Time) (string, error) {
	if len(points) == 0 {
		return "", ErrEmptyHistory
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}
	path := filepath.Join(dir, FileName(now))
	tmpFile, err := os.CreateTemp(dir, "faraday-export-*.csv")
	if err != nil {
		return "", fmt.Errorf("failed to create temp export: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if err := WriteCSV(writer, points); err != nil {
		return "", err
	}
	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush export: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close export: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}
