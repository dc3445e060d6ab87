package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/jtlavin/portalinmo/config"
	"github.com/jtlavin/portalinmo/models"
	"github.com/jtlavin/portalinmo/scraper"
	"github.com/jtlavin/portalinmo/storage"
)

func main() {
	comuna := flag.String("comuna", "", "comuna to scrape, e.g. \"Las Condes\"")
	propertyType := flag.String("type", models.PropertyTypeApartment, "property type: departamento or casa")
	pages := flag.Int("pages", 3, "maximum result pages per comuna")
	headless := flag.Bool("headless", true, "run the browser headless")
	outDir := flag.String("out", "", "output directory (default from config)")
	batchFile := flag.String("batch", "", "YAML batch file listing comunas to scrape")
	useDB := flag.Bool("db", false, "also persist results to Postgres")
	flag.Parse()

	// ── 1. Load configuration ───────────────────────────────────────
	_ = godotenv.Load()
	cfg := config.Load()
	cfg.Browser.Headless = *headless
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if *useDB {
		cfg.DB.Enabled = true
	}

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)

	// ── 3. Resolve the work list ────────────────────────────────────
	runs, err := buildRuns(*comuna, *propertyType, *pages, *batchFile)
	if err != nil {
		slog.Error("invalid arguments", "error", err)
		os.Exit(2)
	}

	// ── 4. Initialise scraper (launches browser) ────────────────────
	sc, err := scraper.New(cfg.Browser, cfg.Scrape)
	if err != nil {
		slog.Error("failed to initialise scraper", "error", err)
		os.Exit(1)
	}
	defer sc.Close()

	// ── 5. Optional Postgres sink ───────────────────────────────────
	var store *storage.PostgresStore
	if cfg.DB.Enabled {
		store, err = storage.NewPostgresStore(cfg.DB)
		if err != nil {
			slog.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	// ── 6. Scrape each comuna, stopping cleanly on SIGINT ───────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exitCode := 0
	for _, req := range runs {
		if ctx.Err() != nil {
			slog.Warn("interrupted; skipping remaining comunas")
			break
		}
		if err := runComuna(ctx, sc, store, cfg, req); err != nil {
			slog.Error("comuna run failed", "comuna", req.Comuna, "error", err)
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

// buildRuns expands the flags into one request per comuna. A batch file
// overrides the single-comuna flags.
func buildRuns(comuna, propertyType string, pages int, batchFile string) ([]*models.ScrapeRequest, error) {
	if batchFile != "" {
		batch, err := config.LoadBatch(batchFile)
		if err != nil {
			return nil, err
		}
		if batch.PropertyType != "" {
			propertyType = batch.PropertyType
		}
		if batch.MaxPages > 0 {
			pages = batch.MaxPages
		}
		runs := make([]*models.ScrapeRequest, 0, len(batch.Comunas))
		for _, c := range batch.Comunas {
			runs = append(runs, &models.ScrapeRequest{
				Comuna:       c,
				PropertyType: propertyType,
				MaxPages:     pages,
			})
		}
		return runs, nil
	}

	req := &models.ScrapeRequest{
		Comuna:       comuna,
		PropertyType: propertyType,
		MaxPages:     pages,
	}
	req.Defaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return []*models.ScrapeRequest{req}, nil
}

// runComuna scrapes one comuna and writes every configured sink. A
// partial result still gets persisted; losing three scraped pages to a
// failure on the fourth would waste real browser time.
func runComuna(ctx context.Context, sc *scraper.Scraper, store *storage.PostgresStore, cfg *config.Config, req *models.ScrapeRequest) error {
	result, err := sc.Scrape(ctx, req)
	if err != nil {
		return err
	}

	dir := filepath.Join(cfg.Output.Dir, scraper.NormalizeComuna(req.Comuna))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	csvPath := filepath.Join(dir, cfg.Output.CSVFile)
	if err := storage.NewCSVWriter(csvPath).WriteProperties(result.Properties); err != nil {
		return err
	}
	urlsPath := filepath.Join(dir, cfg.Output.URLsFile)
	if err := storage.WriteURLList(urlsPath, result.URLs()); err != nil {
		return err
	}

	if store != nil {
		saved, err := store.SaveRun(ctx, req.Comuna, req.PropertyType, result.Properties)
		if err != nil {
			return err
		}
		slog.Info("saved run to postgres", "comuna", req.Comuna, "rows", saved)
	}

	slog.Info("comuna run complete",
		"comuna", req.Comuna,
		"properties", len(result.Properties),
		"pages", result.PagesProcessed,
		"termination", result.TerminationReason,
		"csv", csvPath)
	return nil
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
