package catalog

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/offerstack/compare-cli/internal/model"
)

// DisplayConfig is the catalog-level display preference for summary cards.
type DisplayConfig struct {
	Section   model.DisplaySection `yaml:"section,omitempty"`
	CardLimit int                  `yaml:"card_limit,omitempty"`
}

// Override is a manual editor's-choice record. When Active, it wins over
// any catalog product marked selected.
type Override struct {
	Active bool           `yaml:"active"`
	Entry  model.RawEntry `yaml:"entry"`
}

// File is one parsed catalog configuration file.
type File struct {
	Category      model.Category   `yaml:"category"`
	Display       DisplayConfig    `yaml:"display,omitempty"`
	EditorsChoice *Override        `yaml:"editors_choice,omitempty"`
	Products      []model.RawEntry `yaml:"products"`
}

// Validate checks the structural invariants a file must satisfy before
// canonicalization. Per-entry problems are left to the canonicalizer,
// which skips item-wise.
func (f *File) Validate() error {
	if !f.Category.Valid() {
		return eris.Errorf("catalog: unknown category %q", f.Category)
	}
	if f.Display.Section != "" && !f.Display.Section.Valid() {
		return eris.Errorf("catalog: unknown display section %q", f.Display.Section)
	}
	if f.Display.CardLimit < 0 {
		return eris.Errorf("catalog: negative card limit %d", f.Display.CardLimit)
	}
	seen := make(map[string]struct{}, len(f.Products))
	for _, p := range f.Products {
		if p.ID == "" {
			continue
		}
		if p.ID == model.EditorsChoiceID {
			return eris.Errorf("catalog: product id %q is reserved", p.ID)
		}
		if _, dup := seen[p.ID]; dup {
			return eris.Errorf("catalog: duplicate product id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

// Load reads and validates a single catalog file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read %s", path)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrapf(err, "catalog: parse %s", path)
	}
	if err := f.Validate(); err != nil {
		return nil, eris.Wrapf(err, "catalog: validate %s", path)
	}

	zap.L().Debug("catalog: loaded file",
		zap.String("path", path),
		zap.String("category", string(f.Category)),
		zap.Int("products", len(f.Products)),
	)
	return &f, nil
}

// LoadDir loads every .yaml/.yml catalog file in dir concurrently and
// returns the files sorted by category. Loading is caller-side work; the
// comparison core itself stays synchronous.
func LoadDir(dir string) ([]*File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read dir %s", dir)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, eris.Errorf("catalog: no catalog files in %s", dir)
	}

	var (
		mu    sync.Mutex
		files []*File
	)
	g := new(errgroup.Group)
	g.SetLimit(4)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			f, err := Load(path)
			if err != nil {
				return err
			}
			mu.Lock()
			files = append(files, f)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Category < files[j].Category
	})
	return files, nil
}
