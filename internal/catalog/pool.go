package catalog

import (
	"go.uber.org/zap"

	"github.com/offerstack/compare-cli/internal/model"
)

// Pool is the canonical record set for one catalog category. It is
// rebuilt whenever the source configuration changes and is immutable once
// built; comparisons operate on the pool they were handed.
type Pool struct {
	category model.Category
	records  []model.ProductRecord
	byID     map[string]model.ProductRecord
}

// Category returns the pool's catalog category.
func (p *Pool) Category() model.Category { return p.category }

// Len returns the number of records, the editor's-choice entry included.
func (p *Pool) Len() int { return len(p.records) }

// Records returns the records in catalog order, editor's choice last.
func (p *Pool) Records() []model.ProductRecord {
	out := make([]model.ProductRecord, len(p.records))
	copy(out, p.records)
	return out
}

// Get looks up a record by id.
func (p *Pool) Get(id string) (model.ProductRecord, bool) {
	rec, ok := p.byID[id]
	return rec, ok
}

// Resolve maps ids to records, preserving order. Unknown ids are returned
// separately so callers can report them.
func (p *Pool) Resolve(ids []string) ([]model.ProductRecord, []string) {
	records := make([]model.ProductRecord, 0, len(ids))
	var missing []string
	for _, id := range ids {
		if rec, ok := p.byID[id]; ok {
			records = append(records, rec)
		} else {
			missing = append(missing, id)
		}
	}
	return records, missing
}

// EditorsChoice returns the editor's-choice entry if the pool has one.
func (p *Pool) EditorsChoice() (model.ProductRecord, bool) {
	rec, ok := p.byID[model.EditorsChoiceID]
	return rec, ok
}

// BuildPool canonicalizes a catalog file into a record pool. Entries that
// fail canonicalization are skipped with a warning; partial pools are
// preferable to none. The editor's-choice entry is resolved last: an
// active override wins, otherwise the first catalog product marked
// selected; if neither resolves the entry is omitted entirely.
func (c *Canonicalizer) BuildPool(file *File) *Pool {
	pool := &Pool{
		category: file.Category,
		byID:     make(map[string]model.ProductRecord, len(file.Products)+1),
	}

	for i, entry := range file.Products {
		if entry.Category == "" {
			entry.Category = file.Category
		}
		rec, err := c.Canonicalize(entry)
		if err != nil {
			zap.L().Warn("catalog: skipping entry",
				zap.Int("index", i),
				zap.Error(err),
			)
			continue
		}
		if _, dup := pool.byID[rec.ID]; dup {
			zap.L().Warn("catalog: duplicate product id, keeping first",
				zap.String("id", rec.ID),
			)
			continue
		}
		if rec.Rank.Position == 0 {
			rec.Rank.Position = len(pool.records) + 1
		}
		pool.records = append(pool.records, rec)
		pool.byID[rec.ID] = rec
	}

	if choice, ok := c.editorsChoice(file); ok {
		pool.records = append(pool.records, choice)
		pool.byID[choice.ID] = choice
	}

	return pool
}

// editorsChoice resolves the single editor's-choice entry for a catalog.
func (c *Canonicalizer) editorsChoice(file *File) (model.ProductRecord, bool) {
	var source *model.RawEntry
	if file.EditorsChoice != nil && file.EditorsChoice.Active {
		entry := file.EditorsChoice.Entry
		source = &entry
	} else {
		for i := range file.Products {
			if file.Products[i].Selected {
				source = &file.Products[i]
				break
			}
		}
	}
	if source == nil {
		return model.ProductRecord{}, false
	}

	entry := *source
	if entry.Category == "" {
		entry.Category = file.Category
	}
	rec, err := c.Canonicalize(entry)
	if err != nil {
		zap.L().Warn("catalog: editor's choice failed to canonicalize, omitting",
			zap.Error(err),
		)
		return model.ProductRecord{}, false
	}

	rec.ID = model.EditorsChoiceID
	rec.Name = rec.Name + " (" + model.EditorsChoiceLabel + ")"
	rec.Rank = model.Rank{EditorsChoice: true}
	return rec, true
}
