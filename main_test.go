package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"playstore-analytics/config"
	"playstore-analytics/services"
	"playstore-analytics/storage"
	"playstore-analytics/utils"
)

func TestPipelineEndToEnd(t *testing.T) {
	logger := utils.NopLogger()
	cfg := &config.Config{CatalogSource: config.SourceCSV, CatalogPath: filepath.Join("testdata", "googleplaystore.csv")}

	raw, err := loadCatalog(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("loadCatalog error: %v", err)
	}
	if len(raw) != 13 {
		t.Fatalf("raw rows: got %d, want 13", len(raw))
	}

	result := services.NewCleaner(logger).Clean(raw)
	// Two Coloring book rows collapse to one, the frame row is missing
	// cells and the counter row has unparseable reviews.
	if len(result.Apps) != 10 {
		t.Fatalf("clean apps: got %d, want 10", len(result.Apps))
	}
	if len(result.Rejected) != 1 || result.Rejected[0].App != "Broken Counter" {
		t.Errorf("rejected: got %v", result.Rejected)
	}

	q := services.NewQueryService(logger)
	game, ok := q.MostExpensiveGame(result.Apps)
	if !ok || game.App != "I am Rich Premium" {
		t.Errorf("most expensive game: got %+v", game)
	}
	teen, ok := q.TopTeenGame(result.Apps)
	if !ok || teen.App != "Garena Free Fire" {
		t.Errorf("top teen game: got %+v", teen)
	}
	free, ok := q.TopFreeGame(result.Apps)
	if !ok || free.App != "Subway Surfers" {
		t.Errorf("top free game: got %+v", free)
	}
	if _, ok := q.MostPopularFinance(result.Apps); ok {
		t.Errorf("finance query should be empty for this catalog")
	}

	est, ok := q.LifestyleTransfer(result.Apps)
	if !ok || est.App.App != "Tinder" {
		t.Fatalf("lifestyle transfer: got %+v", est)
	}
	want := float64(100000000) * 68 * 1024 * 1024 / (1 << 40)
	if est.TiB != want {
		t.Errorf("TiB: got %f, want %f", est.TiB, want)
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	cfg := &config.Config{CatalogSource: config.SourceCSV, CatalogPath: filepath.Join(t.TempDir(), "none.csv")}
	_, err := loadCatalog(context.Background(), cfg, utils.NopLogger())
	var ioErr *storage.IOError
	if !errors.As(err, &ioErr) {
		t.Errorf("expected *storage.IOError, got %T (%v)", err, err)
	}
}

func TestLoadCatalogUnknownSource(t *testing.T) {
	cfg := &config.Config{CatalogSource: "s3"}
	if _, err := loadCatalog(context.Background(), cfg, utils.NopLogger()); err == nil {
		t.Error("expected an error for an unknown source")
	}
}
