package persistence

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

// ExportSamplesCSV writes a run's time series as CSV, header included.
func (db *DB) ExportSamplesCSV(runID string, w io.Writer) error {
	samples, err := db.Samples(runID)
	if err != nil {
		return fmt.Errorf("load samples for %s: %w", runID, err)
	}
	if err := gocsv.Marshal(&samples, w); err != nil {
		return fmt.Errorf("marshal samples: %w", err)
	}
	return nil
}

// ExportSamplesFile writes a run's time series to a CSV file.
func (db *DB) ExportSamplesFile(runID, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := db.ExportSamplesCSV(runID, f); err != nil {
		return err
	}
	return f.Close()
}
