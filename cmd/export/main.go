// Command export renders a saved resume snapshot into a PDF from the
// command line:
//
//	export -snapshot resume.json -out my-resume
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"placify-resume/internal/adapter/storage"
	"placify-resume/internal/config"
	"placify-resume/internal/usecase"
	infra "placify-resume/pkg/infrastructure"
	"placify-resume/pkg/logging"
)

func main() {
	logging.Setup()

	snapshotPath := flag.String("snapshot", "resume.json", "path to the resume snapshot file")
	outName := flag.String("out", "resume", "output file name (without .pdf)")
	flag.Parse()

	cfg := config.Load()

	store := storage.NewFileStore(*snapshotPath)
	builder := usecase.NewBuilder(store)

	if v := builder.Validation(); !v.Valid {
		fmt.Fprintln(os.Stderr, "resume is incomplete:")
		for field, msg := range v.Errors {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
		}
		os.Exit(1)
	}

	exporter := usecase.NewExporter(infra.NewChromedpCapturer(cfg.CaptureWidth))
	res, err := exporter.Export(context.Background(), builder, *outName)
	if err != nil {
		slog.Error("export failed", "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(res.FileName, res.PDF, 0o644); err != nil {
		slog.Error("unable to write PDF", "error", err)
		os.Exit(1)
	}
	slog.Info("wrote PDF", "file", res.FileName, "bytes", len(res.PDF))
}
