package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mario-agban/CarpeMed/internal"
	"github.com/mario-agban/CarpeMed/internal/cleaner"
	"github.com/mario-agban/CarpeMed/internal/config"
	"github.com/mario-agban/CarpeMed/internal/export"
	"github.com/mario-agban/CarpeMed/internal/geocode"
	"github.com/mario-agban/CarpeMed/internal/registry"
	"github.com/mario-agban/CarpeMed/internal/scrape"
	"github.com/mario-agban/CarpeMed/internal/storage"
	"github.com/mario-agban/CarpeMed/internal/translate"
)

func main() {
	cfg, err := config.Load()
	must(err)
	setupLogging(cfg.LogLevel)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	ctx := context.Background()
	cmd := os.Args[1]
	switch cmd {
	case "scrape":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		country := fs.String("country", "", "country code (dr|mx|cr)")
		source := fs.String("source", "", "single source short name")
		force := fs.Bool("force", false, "re-harvest sources already scraped today")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*country) == "" && strings.TrimSpace(*source) == "" {
			must(fmt.Errorf("--country or --source is required"))
		}
		total, err := runScrape(ctx, cfg, db, *country, *source, *force)
		must(err)
		fmt.Printf("scrape done records=%d\n", total)
	case "clean":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		country := fs.String("country", "", "country code (dr|mx|cr)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*country) == "" {
			must(fmt.Errorf("--country is required"))
		}
		result, count, err := runClean(cfg, db, *country)
		must(err)
		fmt.Printf("clean done country=%s records=%d export=%s\n", *country, count, result.JSONPath)
	case "locations:aggregate":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		metadata := fs.String("metadata", "", "curated location metadata file")
		out := fs.String("out", cfg.LocationRegistryPath, "output registry csv")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*metadata) == "" {
			must(fmt.Errorf("--metadata is required"))
		}
		count, err := runAggregate(ctx, cfg, *metadata, *out)
		must(err)
		fmt.Printf("locations aggregated count=%d out=%s\n", count, *out)
	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		country := fs.String("country", "", "country code (dr|mx|cr)")
		force := fs.Bool("force", false, "re-harvest sources already scraped today")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*country) == "" {
			must(fmt.Errorf("--country is required"))
		}
		total, err := runScrape(ctx, cfg, db, *country, "", *force)
		must(err)
		result, count, err := runClean(cfg, db, *country)
		must(err)
		fmt.Printf("run done country=%s scraped=%d cleaned=%d export=%s\n", *country, total, count, result.JSONPath)
	default:
		usage()
		os.Exit(1)
	}
}

func runScrape(ctx context.Context, cfg config.Config, db *storage.DB, country, shortName string, force bool) (int, error) {
	sources, err := scrape.LoadSources(cfg.SourcesPath, country)
	if err != nil {
		return 0, err
	}
	if shortName != "" {
		filtered := sources[:0]
		for _, src := range sources {
			if src.ShortName == shortName {
				filtered = append(filtered, src)
			}
		}
		sources = filtered
	}
	if len(sources) == 0 {
		return 0, fmt.Errorf("no sources matched country=%q source=%q", country, shortName)
	}

	var translator *translate.Translator
	total := 0
	for _, src := range sources {
		if !force {
			done, err := db.HarvestedOn(src.Country, src.ShortName, time.Now())
			if err != nil {
				return total, err
			}
			if done {
				slog.Info("source already harvested today, skipping",
					"source", src.ShortName, "country", src.Country)
				continue
			}
		}

		scraper, err := scrape.NewScraper(cfg, src)
		if err != nil {
			return total, err
		}
		records, err := scraper.Scrape(ctx)
		if err != nil {
			// One broken site must not sink the other sources.
			slog.Warn("source scrape failed", "source", src.ShortName, "err", err)
			continue
		}

		if src.Language != "" && src.Language != "en" {
			if translator == nil {
				translator, err = translate.New(ctx, cfg)
				if err != nil {
					return total, err
				}
			}
			records, err = translator.TranslateRecords(ctx, src.ShortName, records)
			if err != nil {
				return total, err
			}
		}

		path, err := scrape.SaveRaw(cfg.DataDir, src.Country, src.ShortName, records)
		if err != nil {
			return total, err
		}
		if err := db.RecordScrape(src.Country, src.ShortName, path, len(records)); err != nil {
			return total, err
		}
		fmt.Printf("scraped %s records=%d raw=%s\n", src.ShortName, len(records), path)
		total += len(records)
	}
	return total, nil
}

func runClean(cfg config.Config, db *storage.DB, country string) (export.Result, int, error) {
	schema, err := config.LoadSchema(cfg.SchemaPath)
	if err != nil {
		return export.Result{}, 0, err
	}
	aliases, err := cleaner.LoadAliasTable(cfg.ProviderAliasPath)
	if err != nil {
		return export.Result{}, 0, err
	}
	ids, err := registry.OpenIdentityRegistry(cfg.IdentityRegistryPath)
	if err != nil {
		return export.Result{}, 0, err
	}
	locs, err := registry.LoadLocationRegistry(cfg.LocationRegistryPath)
	if err != nil {
		return export.Result{}, 0, err
	}

	raws, err := scrape.CombineRaw(cfg.DataDir, country)
	if err != nil {
		return export.Result{}, 0, err
	}

	c := cleaner.New(schema, aliases, ids, locs)
	records, dropped := c.Clean(country, raws)

	rows := cleaner.Reindex(records, schema.DoctorFields)
	result, err := export.Save(cfg.ExportDir, country+"_clean", schema.DoctorFields, rows)
	if err != nil {
		return export.Result{}, 0, err
	}

	// A silent field-list change would make datasets across runs
	// incomparable; surface it.
	fieldList := strings.Join(schema.DoctorFields, ",")
	if prev, err := db.GetMetadata("schema_fields"); err == nil && prev != nil && *prev != fieldList {
		slog.Warn("canonical field list changed since last run", "previous", *prev, "current", fieldList)
	}
	if err := db.SetMetadata("schema_fields", fieldList); err != nil {
		return export.Result{}, 0, err
	}

	// New identities persist only after a successful export.
	if err := ids.Flush(); err != nil {
		return export.Result{}, 0, err
	}
	if err := db.RecordRun(country, len(records), dropped, result.JSONPath); err != nil {
		return export.Result{}, 0, err
	}
	return result, len(records), nil
}

func runAggregate(ctx context.Context, cfg config.Config, metadataPath, outPath string) (int, error) {
	schema, err := config.LoadSchema(cfg.SchemaPath)
	if err != nil {
		return 0, err
	}
	meta, err := geocode.LoadMetadata(metadataPath)
	if err != nil {
		return 0, err
	}
	ids, err := registry.OpenIdentityRegistry(cfg.IdentityRegistryPath)
	if err != nil {
		return 0, err
	}
	client, err := geocode.NewClient(cfg, schema)
	if err != nil {
		return 0, err
	}

	entries, err := client.Aggregate(ctx, meta, ids)
	if err != nil {
		return 0, err
	}

	locations := make([]internal.Location, 0, len(entries))
	for _, entry := range entries {
		locations = append(locations, entry.Location)
	}
	if err := registry.SaveLocationsCSV(outPath, locations); err != nil {
		return 0, err
	}
	if err := ids.Flush(); err != nil {
		return 0, err
	}
	return len(entries), nil
}

func setupLogging(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}

func usage() {
	fmt.Println("usage: carpemed <command>")
	fmt.Println("commands:")
	fmt.Println("  scrape --country=dr|mx|cr [--source=<short_name>] [--force]")
	fmt.Println("  clean --country=dr|mx|cr")
	fmt.Println("  locations:aggregate --metadata=resources/locations.yaml [--out=resources/locations.csv]")
	fmt.Println("  run --country=dr|mx|cr [--force]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
