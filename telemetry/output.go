package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/akorn123w/FishingInTheVoid/config"
	"github.com/gocarina/gocsv"
)

// PurchaseRecord is one purchases.csv row.
type PurchaseRecord struct {
	Session    string  `csv:"session"`
	ElapsedSec float64 `csv:"elapsed"`
	ItemID     string  `csv:"item"`
	Kind       string  `csv:"kind"`
	Level      int     `csv:"level"`
	Rarity     string  `csv:"rarity"`
	Cost       int64   `csv:"cost"`
	Balance    int64   `csv:"balance"` // After the purchase
	Yield      int64   `csv:"yield"`   // After the purchase
}

// csvFile is an append-only CSV file that writes its header once.
type csvFile struct {
	f             *os.File
	headerWritten bool
}

func (c *csvFile) write(records any) error {
	if !c.headerWritten {
		if err := gocsv.Marshal(records, c.f); err != nil {
			return err
		}
		c.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, c.f)
}

// OutputManager handles session output: CSV logs, bookmark snapshots and
// the records file. A nil manager discards everything.
type OutputManager struct {
	dir       string
	telemetry csvFile
	perf      csvFile
	bookmarks csvFile
	purchases csvFile
}

// NewOutputManager creates the output directory and its CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	files := []struct {
		name string
		dst  *csvFile
	}{
		{"telemetry.csv", &om.telemetry},
		{"perf.csv", &om.perf},
		{"bookmarks.csv", &om.bookmarks},
		{"purchases.csv", &om.purchases},
	}
	for _, out := range files {
		f, err := os.Create(filepath.Join(dir, out.name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", out.name, err)
		}
		out.dst.f = f
	}
	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends a window stats row to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := om.telemetry.write([]WindowStats{stats}); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WritePerf appends a performance row to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd float64) error {
	if om == nil {
		return nil
	}
	if err := om.perf.write([]PerfStatsCSV{stats.ToCSV(windowEnd)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteBookmark appends a bookmark row to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	if err := om.bookmarks.write([]Bookmark{b}); err != nil {
		return fmt.Errorf("writing bookmark: %w", err)
	}
	return nil
}

// WritePurchase appends a row to purchases.csv.
func (om *OutputManager) WritePurchase(rec PurchaseRecord) error {
	if om == nil {
		return nil
	}
	if err := om.purchases.write([]PurchaseRecord{rec}); err != nil {
		return fmt.Errorf("writing purchase: %w", err)
	}
	return nil
}

// WriteSnapshot dumps state to snapshots/ tagged with bm.
func (om *OutputManager) WriteSnapshot(bm Bookmark, state any) error {
	if om == nil {
		return nil
	}
	snap, err := NewSnapshot(&bm, state)
	if err != nil {
		return err
	}
	_, err = SaveSnapshot(snap, filepath.Join(om.dir, "snapshots"))
	return err
}

// WriteRecords saves the session records as records.json.
func (om *OutputManager) WriteRecords(r *Records) error {
	if om == nil || r == nil {
		return nil
	}
	data, err := r.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshaling records: %w", err)
	}
	if err := os.WriteFile(filepath.Join(om.dir, "records.json"), data, 0644); err != nil {
		return fmt.Errorf("writing records.json: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, c := range []*csvFile{&om.telemetry, &om.perf, &om.bookmarks, &om.purchases} {
		if c.f == nil {
			continue
		}
		if err := c.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		c.f = nil
	}
	return firstErr
}
