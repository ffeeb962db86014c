package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/beleglab/bonscan"
	"github.com/beleglab/bonscan/export"
	"github.com/beleglab/bonscan/format"
	"github.com/beleglab/bonscan/internal/config"
	"github.com/beleglab/bonscan/model"
	"github.com/beleglab/bonscan/ocr"
	"github.com/beleglab/bonscan/render"
	"github.com/beleglab/bonscan/storage"
	"github.com/beleglab/bonscan/token"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "scan":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		path := fs.String("path", "", "image file, token JSON file, or directory")
		recursive := fs.Bool("recursive", false, "descend into subdirectories")
		minConf := fs.Float64("min-conf", cfg.MinConfidence, "drop tokens below this confidence")
		out := fs.String("out", cfg.OutputDir, "output directory")
		lang := fs.String("lang", cfg.Language, "tesseract language")
		noDebug := fs.Bool("no-debug-image", !cfg.DebugImage, "skip the annotated overlay image")
		store := fs.Bool("store", cfg.StoreResults, "save results to the database")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*path) == "" {
			must(fmt.Errorf("--path is required"))
		}

		targets, err := collectTargets(*path, *recursive)
		must(err)
		if len(targets) == 0 {
			must(fmt.Errorf("no scannable files under %s", *path))
		}

		var db *storage.DB
		if *store {
			db, err = storage.Open(cfg.DBPath)
			must(err)
			defer db.Close()
		}

		engine := ocr.NewTesseract()
		engine.SetLanguage(*lang)
		defer engine.Close()

		scanner := bonscan.New(
			bonscan.WithMinConfidence(*minConf),
			bonscan.WithRowOverlap(cfg.RowOverlap),
		)

		scanned := 0
		for _, target := range targets {
			if err := scanOne(scanner, engine, db, target, *out, !*noDebug); err != nil {
				slog.Error("scan failed", "path", target, "error", err)
				continue
			}
			scanned++
		}
		fmt.Printf("scan done files=%d ok=%d\n", len(targets), scanned)
	case "runs:list":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 20, "max runs to show, 0 for all")
		_ = fs.Parse(os.Args[2:])

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		runs, err := db.ListRuns(*limit)
		must(err)
		for _, run := range runs {
			fmt.Printf("%d\t%s\t%s\ttokens=%d items=%d\n",
				run.ID, run.ScannedAt, run.Source, run.TokenCount, run.ItemCount)
		}
		fmt.Printf("%d runs\n", len(runs))
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		runID := fs.Int64("run", 0, "run id")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if *runID == 0 || strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--run and --out are required"))
		}

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		run, err := db.GetRun(*runID)
		must(err)
		items, err := db.ItemsForRun(*runID)
		must(err)
		must(export.RunToXLSX(run, items, *out))
		fmt.Printf("exported %d items to %s\n", len(items), *out)
	default:
		usage()
		os.Exit(1)
	}
}

// scanOne processes a single image or token JSON file: it extracts items,
// writes the per-file JSON record, optionally renders the annotated overlay
// and persists the run.
func scanOne(scanner *bonscan.Scanner, engine *ocr.Tesseract, db *storage.DB, path, outDir string, debugImage bool) error {
	kind := format.Detect(path)
	if kind == format.Unknown {
		// Unrecognized extension: fall back to magic bytes.
		if head, err := os.ReadFile(path); err == nil {
			kind = format.DetectFromMagic(head)
		}
	}

	var tokens []model.Token
	switch {
	case kind == format.TokenJSON:
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		tokens, err = token.DecodeResults(data)
		if err != nil {
			return err
		}
	case kind.IsImage():
		var err error
		tokens, err = engine.Recognize(context.Background(), path)
		if err != nil {
			return fmt.Errorf("recognize %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported file type: %s", path)
	}

	result := scanner.ScanTokens(path, tokens)

	slog.Info("scanned", "path", path, "tokens", result.Meta.TokenCount, "items", result.ItemCount)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	record, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	recordPath := filepath.Join(outDir, stem+"_items.json")
	if err := os.WriteFile(recordPath, record, 0o644); err != nil {
		return err
	}

	if debugImage && kind.IsImage() {
		// Draw the post-filter, post-dedupe tokens the pipeline saw.
		overlayPath := filepath.Join(outDir, stem+"_result.jpg")
		if err := render.Save(path, scanner.NormalizeTokens(tokens), result.Items, overlayPath); err != nil {
			slog.Warn("overlay render failed", "path", path, "error", err)
		}
	}

	if db != nil {
		runID, err := db.SaveRun(result)
		if err != nil {
			return err
		}
		slog.Info("stored", "path", path, "runId", runID)
	}

	return nil
}

// collectTargets resolves a path argument into a sorted list of scannable
// files. A file argument is returned as-is; a directory is walked for
// images and token JSON files.
func collectTargets(path string, recursive bool) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var targets []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != path && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		kind := format.Detect(p)
		if kind.IsImage() || kind == format.TokenJSON {
			targets = append(targets, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(targets)
	return targets, nil
}

func usage() {
	fmt.Println("usage: bonscan <command>")
	fmt.Println("commands:")
	fmt.Println("  scan --path=./receipts [--recursive] [--min-conf=0.5] [--out=./output] [--lang=deu] [--no-debug-image] [--store]")
	fmt.Println("  runs:list [--limit=20]")
	fmt.Println("  export:xlsx --run=1 --out=./output/run_1.xlsx")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
