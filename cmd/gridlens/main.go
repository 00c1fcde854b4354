package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gridlens/internal/ai"
	"gridlens/internal/catalog"
	"gridlens/internal/config"
	"gridlens/internal/export"
	"gridlens/internal/model"
	"gridlens/internal/source"
	"gridlens/internal/ui"
	"gridlens/internal/util/logx"
	"gridlens/internal/version"
)

func main() {
	logx.SetLevelFromEnv()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	if cfg.ShowVersion {
		fmt.Println("gridlens", version.String())
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cat, src, columns, err := setup(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if cfg.ExportFormat != "" {
		if err := headlessExport(ctx, cfg, src, columns); err != nil {
			fmt.Fprintln(os.Stderr, "export error:", err)
			os.Exit(1)
		}
		return
	}

	logx.Infof("starting gridlens %s: %s", version.String(), cfg.String())
	if err := ui.Run(ctx, cfg, cat, src, columns); err != nil {
		logx.Errorf("gridlens exited with error: %v", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func setup(ctx context.Context, cfg *config.Config) (*catalog.Catalog, source.Source, []model.Column, error) {
	var cat *catalog.Catalog
	var err error
	if cfg.CatalogPath != "" {
		cat, err = catalog.Load(cfg.CatalogPath)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	switch {
	case cfg.BaseURL != "":
		if cat == nil {
			return nil, nil, nil, fmt.Errorf("a catalog (-catalog) is required with -url")
		}
		return cat, source.NewREST(cfg.BaseURL), cat.Columns, nil

	case cfg.Demo:
		if cat == nil {
			cat = catalog.Demo()
		}
		return cat, source.Demo(500), cat.Columns, nil

	default:
		var catCols []model.Column
		if cat != nil {
			catCols = cat.Columns
		} else {
			cat = catalog.Default(filepath.Base(cfg.DataPath))
		}
		local, err := source.OpenFile(ctx, cfg.DataPath, catCols, cfg.Follow)
		if err != nil {
			return nil, nil, nil, err
		}
		columns := local.Columns()
		if catCols == nil {
			columns = refineColumns(ctx, cfg, local, columns)
		}
		return cat, local, columns, nil
	}
}

// refineColumns optionally asks OpenAI for labels/kinds when the dataset
// came without a catalog. Heuristic columns stand when offline or on any
// error.
func refineColumns(ctx context.Context, cfg *config.Config, local *source.Local, cols []model.Column) []model.Column {
	if cfg.Offline || cfg.OpenAIKey() == "" {
		return cols
	}
	sample, err := local.Fetch(ctx, source.Query{Page: 1, PageSize: 20})
	if err != nil {
		return cols
	}
	cli := ai.NewOpenAIClient(cfg.OpenAIKey(), cfg.OpenAIBase, cfg.OpenAIModel,
		time.Duration(cfg.OpenAITimeoutSec)*time.Second)
	refined, err := cli.SuggestColumns(ctx, cols, sample.Rows)
	if err != nil {
		logx.Warnf("column refinement skipped: %v", err)
		return cols
	}
	logx.Infof("columns refined via OpenAI")
	return refined
}

func headlessExport(ctx context.Context, cfg *config.Config, src source.Source, columns []model.Column) error {
	rows, err := src.All(ctx, source.Query{})
	if err != nil {
		return err
	}
	switch cfg.ExportFormat {
	case "csv":
		return export.ToCSV(cfg.ExportOut, columns, rows)
	case "json":
		return export.ToNDJSON(cfg.ExportOut, rows)
	}
	return fmt.Errorf("unknown export format %q", cfg.ExportFormat)
}
