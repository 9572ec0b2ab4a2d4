package main

import (
	"os"

	"github.com/rotisserie/eris"

	"github.com/offerstack/compare-cli/internal/catalog"
	"github.com/offerstack/compare-cli/internal/compare"
	"github.com/offerstack/compare-cli/internal/match"
	"github.com/offerstack/compare-cli/internal/model"
	"github.com/offerstack/compare-cli/internal/store"
)

// loadCatalogFiles reads the configured catalog path, which may be a
// single file or a directory of per-category files.
func loadCatalogFiles(path string) ([]*catalog.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, eris.Wrapf(err, "stat catalog path %s", path)
	}
	if info.IsDir() {
		return catalog.LoadDir(path)
	}
	f, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}
	return []*catalog.File{f}, nil
}

// pickFile selects the catalog file for a command that operates on one
// category. An empty category is allowed only when a single file loaded.
func pickFile(files []*catalog.File, category string) (*catalog.File, error) {
	if category == "" {
		if len(files) == 1 {
			return files[0], nil
		}
		return nil, eris.Errorf("catalog has %d categories, pass --category", len(files))
	}
	for _, f := range files {
		if f.Category == model.Category(category) {
			return f, nil
		}
	}
	return nil, eris.Errorf("no catalog for category %q", category)
}

// serviceOptions merges app config with catalog-level display overrides.
func serviceOptions(file *catalog.File) compare.Options {
	opts := compare.Options{
		Section:   model.DisplaySection(cfg.Catalog.Section),
		CardLimit: cfg.Catalog.CardLimit,
		Matcher: match.Config{
			ClusterThreshold: cfg.Match.ClusterThreshold,
			MembershipCap:    cfg.Match.MembershipCap,
		},
	}
	if file.Display.Section != "" {
		opts.Section = file.Display.Section
	}
	if file.Display.CardLimit > 0 {
		opts.CardLimit = file.Display.CardLimit
	}
	return opts
}

// openStore opens the configured run-history store.
func openStore() (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite", "":
		s, err := store.NewSQLite(cfg.Store.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
