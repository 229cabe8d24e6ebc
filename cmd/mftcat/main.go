// Command mftcat parses a raw NTFS $MFT image and emits analyst-friendly
// reports: CSV, Sleuth Kit bodyfile, log2timeline CSV, and JSON lines.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"

	"github.com/shubham/mftcat/internal/diag"
	"github.com/shubham/mftcat/internal/ntfscat"
)

var version = "dev"

func main() {
	var (
		inputPath      = flag.String("input", "", "Path to the raw $MFT file (required)")
		csvOutput      = flag.String("csv", "", "Path for the CSV analyst report")
		bodyfileOutput = flag.String("bodyfile", "", "Path for the Sleuth Kit bodyfile")
		jsonOutput     = flag.String("json", "", "Path for JSON lines output")
		l2tOutput      = flag.String("l2t", "", "Path for log2timeline CSV output")
		bodyfileFull   = flag.Bool("bodyfile-full-path", false, "Bodyfile: use the resolved full path instead of the short name")
		bodyfileStd    = flag.Bool("bodyfile-std-info", false, "Bodyfile: use STANDARD_INFORMATION timestamps instead of FILE_NAME")
		computeHashes  = flag.Bool("compute-hashes", false, "Include MD5/SHA-256/SHA-512/CRC-32 of each raw record")
		workers        = flag.Int("workers", 4, "Decode-stage worker pool size")
		debug          = flag.Bool("debug", false, "Verbose diagnostics")
		selfUpdate     = flag.Bool("self-update", false, "Update mftcat to the latest release")
		showVersion    = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	if *selfUpdate {
		if err := runSelfUpdate(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "self-update failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *inputPath == "" {
		fmt.Println("Usage: mftcat -input <$MFT path> [-csv out.csv] [-bodyfile out.body] [-json out.jsonl] [-l2t out.l2t.csv]")
		fmt.Println("\nExample:")
		fmt.Println("  mftcat -input \\$MFT -csv report.csv -compute-hashes")
		os.Exit(1)
	}

	logger := diag.NewLogger(os.Stderr, *debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := ntfscat.Run(ctx, *inputPath,
		ntfscat.WithCSVOutput(*csvOutput),
		ntfscat.WithBodyfileOutput(*bodyfileOutput),
		ntfscat.WithJSONOutput(*jsonOutput),
		ntfscat.WithL2TOutput(*l2tOutput),
		ntfscat.WithBodyfileFullPath(*bodyfileFull),
		ntfscat.WithBodyfileStdInfo(*bodyfileStd),
		ntfscat.WithComputeHashes(*computeHashes),
		ntfscat.WithWorkers(*workers),
		ntfscat.WithDebug(*debug),
		ntfscat.WithLogger(logger),
		ntfscat.WithProgress(func(n int) {
			if n%100000 == 0 {
				logger.Info("decoding", "records", n)
			}
		}),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mftcat: %v\n", err)
		os.Exit(1)
	}

	if stats.Cancelled {
		fmt.Fprintf(os.Stderr, "cancelled after %d records\n", stats.RecordsDecoded)
		return
	}
	fmt.Printf("Decoded %d records.\n", stats.RecordsDecoded)
}

func runSelfUpdate(ctx context.Context) error {
	if version == "" || version == "dev" {
		return errors.New("self-update is only available in release builds")
	}
	if _, err := semver.ParseTolerant(version); err != nil {
		return fmt.Errorf("could not parse version: %w", err)
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug("shubham/mftcat"))
	if err != nil {
		return fmt.Errorf("error occurred while detecting latest version: %w", err)
	}
	if !found {
		return fmt.Errorf("latest release could not be found")
	}
	if latest.LessOrEqual(version) {
		fmt.Printf("Current binary is the latest version: %s\n", version)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("error occurred while updating binary: %w", err)
	}

	fmt.Printf("Successfully updated to version: %s\n", latest.Version())
	return nil
}
