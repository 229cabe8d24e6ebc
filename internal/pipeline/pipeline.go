// Package pipeline drives the end-to-end run: stream the $MFT image in
// fixed-size chunks, decode records across a worker pool, insert into the
// catalog, resolve paths once ingestion is complete, then emit each
// enabled output format in ascending record-number order.
package pipeline

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/shubham/mftcat/internal/catalog"
	"github.com/shubham/mftcat/internal/config"
	"github.com/shubham/mftcat/internal/disk"
	"github.com/shubham/mftcat/internal/ntfs"
	"github.com/shubham/mftcat/internal/report"
)

// Stats summarizes one completed (or cancelled) run.
type Stats struct {
	RecordsDecoded int
	BadRecords     int
	CorruptRecords int
	Cancelled      bool
}

// Run executes the full pipeline described in the package doc.
func Run(ctx context.Context, cfg *config.Config) (Stats, error) {
	var stats Stats

	r, err := disk.Open(cfg.InputPath)
	if err != nil {
		return stats, fmt.Errorf("input unavailable: %w", err)
	}
	defer r.Close()

	cat := catalog.New()
	if err := ingest(ctx, r, cfg, cat, &stats); err != nil {
		if err == context.Canceled {
			stats.Cancelled = true
			return stats, nil
		}
		return stats, err
	}

	cat.ResolveAllPaths()

	writers, err := openWriters(cfg)
	if err != nil {
		return stats, fmt.Errorf("output unavailable: %w", err)
	}
	defer writers.Close()

	if err := emit(ctx, cat, cfg, writers); err != nil {
		if err == context.Canceled {
			stats.Cancelled = true
			return stats, nil
		}
		return stats, err
	}

	return stats, nil
}

// ingest reads cfg.InputPath in RecordSize chunks and fans decoding out
// across cfg.Workers goroutines; catalog insertion is serialized by the
// Catalog's own mutex, so workers never coordinate directly. Records are
// mutually independent until insertion, so the decode stage is the only
// part of the run that parallelizes.
func ingest(ctx context.Context, r *disk.Reader, cfg *config.Config, cat *catalog.Catalog, stats *Stats) error {
	chunks := make(chan []byte, cfg.Workers*2)

	var wg sync.WaitGroup
	wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go func() {
			defer wg.Done()
			for buf := range chunks {
				cat.Insert(ntfs.DecodeRecord(buf))
			}
		}()
	}

	readErr := readLoop(ctx, r, chunks, cfg, stats)
	close(chunks)
	wg.Wait()

	return readErr
}

func readLoop(ctx context.Context, r *disk.Reader, chunks chan<- []byte, cfg *config.Config, stats *Stats) error {
	br := bufio.NewReaderSize(r, 1<<20)
	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		buf := make([]byte, ntfs.RecordSize)
		n, err := io.ReadFull(br, buf)
		if n == ntfs.RecordSize {
			chunks <- buf
			stats.RecordsDecoded++
			if cfg.Progress != nil {
				cfg.Progress(stats.RecordsDecoded)
			}
			continue
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			// A short final chunk is discarded: real MFTs are always a
			// multiple of 1024 bytes.
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
	}
}

type writers struct {
	csvFile      *os.File
	csvW         *csv.Writer
	bodyfileFile *os.File
	bodyfileW    *bufio.Writer
	jsonFile     *os.File
	jsonW        *bufio.Writer
	l2tFile      *os.File
	l2tW         *bufio.Writer
}

func openWriters(cfg *config.Config) (*writers, error) {
	w := &writers{}

	open := func(path string) (*os.File, error) {
		if path == "" {
			return nil, nil
		}
		return os.Create(path)
	}

	var err error
	if w.csvFile, err = open(cfg.CSVOutput); err != nil {
		return nil, err
	}
	if w.csvFile != nil {
		w.csvW = csv.NewWriter(w.csvFile)
		if err := w.csvW.Write(report.CSVHeader(cfg.ComputeHashes)); err != nil {
			return nil, err
		}
	}

	if w.bodyfileFile, err = open(cfg.BodyfileOutput); err != nil {
		return nil, err
	}
	if w.bodyfileFile != nil {
		w.bodyfileW = bufio.NewWriter(w.bodyfileFile)
	}

	if w.jsonFile, err = open(cfg.JSONOutput); err != nil {
		return nil, err
	}
	if w.jsonFile != nil {
		w.jsonW = bufio.NewWriter(w.jsonFile)
	}

	if w.l2tFile, err = open(cfg.L2TOutput); err != nil {
		return nil, err
	}
	if w.l2tFile != nil {
		w.l2tW = bufio.NewWriter(w.l2tFile)
		if err := writeL2THeader(w.l2tW); err != nil {
			return nil, err
		}
	}

	return w, nil
}

func writeL2THeader(w io.Writer) error {
	_, err := fmt.Fprintln(w, strings.Join(report.L2THeader, "|"))
	return err
}

func (w *writers) Close() {
	if w.csvW != nil {
		w.csvW.Flush()
	}
	if w.bodyfileW != nil {
		w.bodyfileW.Flush()
	}
	if w.jsonW != nil {
		w.jsonW.Flush()
	}
	if w.l2tW != nil {
		w.l2tW.Flush()
	}
	for _, f := range []*os.File{w.csvFile, w.bodyfileFile, w.jsonFile, w.l2tFile} {
		if f != nil {
			f.Close()
		}
	}
}

func emit(ctx context.Context, cat *catalog.Catalog, cfg *config.Config, w *writers) error {
	for _, r := range cat.Records() {
		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		if w.csvW != nil {
			if err := w.csvW.Write(report.CSVRow(r, cfg.ComputeHashes)); err != nil {
				return err
			}
		}
		if w.bodyfileW != nil {
			if _, err := fmt.Fprintln(w.bodyfileW, report.BodyfileRow(r, cfg.BodyfileFullPath, cfg.BodyfileStdInfo)); err != nil {
				return err
			}
		}
		if w.jsonW != nil {
			line, err := json.Marshal(report.ToJSONRow(r, cfg.ComputeHashes))
			if err != nil {
				return err
			}
			if _, err := w.jsonW.Write(append(line, '\n')); err != nil {
				return err
			}
		}
		if w.l2tW != nil {
			for _, row := range report.L2TRows(r) {
				if _, err := fmt.Fprintln(w.l2tW, row); err != nil {
					return err
				}
			}
		}
	}
	if w.csvW != nil {
		w.csvW.Flush()
		if err := w.csvW.Error(); err != nil {
			return err
		}
	}
	return nil
}
