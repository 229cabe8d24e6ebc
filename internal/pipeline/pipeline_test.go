package pipeline

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shubham/mftcat/internal/config"
	"github.com/shubham/mftcat/internal/ntfs"
)

func writeSyntheticMFT(t *testing.T, records ...[]byte) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "mft.img")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create synthetic MFT: %v", err)
	}
	defer f.Close()

	for _, r := range records {
		if _, err := f.Write(r); err != nil {
			t.Fatalf("failed writing record: %v", err)
		}
	}
	return path
}

func rootRecord() []byte {
	raw := make([]byte, ntfs.RecordSize)
	binary.LittleEndian.PutUint32(raw[0:], ntfs.MagicGood)
	binary.LittleEndian.PutUint16(raw[34:], 56)
	binary.LittleEndian.PutUint16(raw[36:], ntfs.FlagInUse|ntfs.FlagDirectory)
	binary.LittleEndian.PutUint32(raw[56:], catalog5RootNumber)
	binary.LittleEndian.PutUint32(raw[60:], ntfs.AttrEndMarker)
	return raw
}

const catalog5RootNumber = 5

func zeroRecord() []byte {
	return make([]byte, ntfs.RecordSize)
}

func TestRunProducesCSVAndCountsRecords(t *testing.T) {
	path := writeSyntheticMFT(t, rootRecord(), zeroRecord())

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "out.csv")

	cfg := config.New(path, config.WithCSVOutput(csvPath), config.WithWorkers(2))
	stats, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.RecordsDecoded != 2 {
		t.Fatalf("RecordsDecoded = %d, want 2", stats.RecordsDecoded)
	}

	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("failed to read csv output: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 { // header + 2 records
		t.Fatalf("expected 3 lines (header + 2 rows), got %d", len(lines))
	}
}

func TestRunDiscardsShortTrailingChunk(t *testing.T) {
	path := writeSyntheticMFT(t, rootRecord())
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatalf("failed to append: %v", err)
	}
	f.Write(make([]byte, 100))
	f.Close()

	cfg := config.New(path)
	stats, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.RecordsDecoded != 1 {
		t.Fatalf("RecordsDecoded = %d, want 1 (short tail discarded)", stats.RecordsDecoded)
	}
}

func TestRunCancellation(t *testing.T) {
	path := writeSyntheticMFT(t, rootRecord(), rootRecord(), rootRecord())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.New(path)
	stats, err := Run(ctx, cfg)
	if err != nil {
		t.Fatalf("Run returned error on cancellation, want nil: %v", err)
	}
	if !stats.Cancelled {
		t.Fatalf("expected Cancelled == true")
	}
}
