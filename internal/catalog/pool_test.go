package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offerstack/compare-cli/internal/model"
)

func physicalEntry(id, name string) model.RawEntry {
	return model.RawEntry{
		ID: id, Name: name, Category: model.CategoryPhysical,
		Rating:   4.0,
		Physical: &model.PhysicalOffer{Price: "$100"},
	}
}

func TestBuildPool(t *testing.T) {
	file := &File{
		Category: model.CategoryPhysical,
		Products: []model.RawEntry{
			physicalEntry("p1", "Alpha"),
			physicalEntry("p2", "Beta"),
		},
	}

	pool := NewCanonicalizer().BuildPool(file)
	assert.Equal(t, model.CategoryPhysical, pool.Category())
	assert.Equal(t, 2, pool.Len())

	rec, ok := pool.Get("p2")
	require.True(t, ok)
	assert.Equal(t, "Beta", rec.Name)
	assert.Equal(t, 2, rec.Rank.Position)

	_, ok = pool.EditorsChoice()
	assert.False(t, ok)
}

func TestBuildPoolInheritsFileCategory(t *testing.T) {
	file := &File{
		Category: model.CategoryStreaming,
		Products: []model.RawEntry{
			{ID: "v1", Name: "Stream", Streaming: &model.StreamingOffer{MonthlyPrice: "$9.99"}},
		},
	}

	pool := NewCanonicalizer().BuildPool(file)
	rec, ok := pool.Get("v1")
	require.True(t, ok)
	assert.Equal(t, model.CategoryStreaming, rec.Category)
	assert.Equal(t, map[string]string{model.OfferMonthlyPrice: "$9.99"}, rec.Offer)
}

func TestBuildPoolSkipsBadEntriesAndDuplicates(t *testing.T) {
	file := &File{
		Category: model.CategoryPhysical,
		Products: []model.RawEntry{
			physicalEntry("p1", "Alpha"),
			{ID: "", Name: "Nameless"},
			physicalEntry("p1", "Alpha Again"),
			physicalEntry("p2", "Beta"),
		},
	}

	pool := NewCanonicalizer().BuildPool(file)
	assert.Equal(t, 2, pool.Len())

	rec, ok := pool.Get("p1")
	require.True(t, ok)
	assert.Equal(t, "Alpha", rec.Name)
}

func TestBuildPoolEditorsChoiceFromSelected(t *testing.T) {
	second := physicalEntry("p2", "Beta")
	second.Selected = true

	file := &File{
		Category: model.CategoryPhysical,
		Products: []model.RawEntry{physicalEntry("p1", "Alpha"), second},
	}

	pool := NewCanonicalizer().BuildPool(file)
	assert.Equal(t, 3, pool.Len())

	choice, ok := pool.EditorsChoice()
	require.True(t, ok)
	assert.Equal(t, model.EditorsChoiceID, choice.ID)
	assert.Equal(t, "Beta (Editor's Choice)", choice.Name)
	assert.True(t, choice.Rank.EditorsChoice)
	assert.Equal(t, 0, choice.Rank.Position)

	// The source product keeps its own pool entry.
	rec, ok := pool.Get("p2")
	require.True(t, ok)
	assert.Equal(t, "Beta", rec.Name)
}

func TestBuildPoolEditorsChoiceOverrideWins(t *testing.T) {
	selected := physicalEntry("p1", "Alpha")
	selected.Selected = true

	file := &File{
		Category: model.CategoryPhysical,
		Products: []model.RawEntry{selected},
		EditorsChoice: &Override{
			Active: true,
			Entry:  physicalEntry("special", "Handpicked"),
		},
	}

	pool := NewCanonicalizer().BuildPool(file)
	choice, ok := pool.EditorsChoice()
	require.True(t, ok)
	assert.Equal(t, "Handpicked (Editor's Choice)", choice.Name)
}

func TestBuildPoolInactiveOverrideIgnored(t *testing.T) {
	file := &File{
		Category: model.CategoryPhysical,
		Products: []model.RawEntry{physicalEntry("p1", "Alpha")},
		EditorsChoice: &Override{
			Active: false,
			Entry:  physicalEntry("special", "Handpicked"),
		},
	}

	pool := NewCanonicalizer().BuildPool(file)
	_, ok := pool.EditorsChoice()
	assert.False(t, ok)
	assert.Equal(t, 1, pool.Len())
}

func TestPoolResolve(t *testing.T) {
	file := &File{
		Category: model.CategoryPhysical,
		Products: []model.RawEntry{
			physicalEntry("p1", "Alpha"),
			physicalEntry("p2", "Beta"),
		},
	}
	pool := NewCanonicalizer().BuildPool(file)

	records, missing := pool.Resolve([]string{"p2", "p1", "ghost"})
	require.Len(t, records, 2)
	assert.Equal(t, "Beta", records[0].Name)
	assert.Equal(t, "Alpha", records[1].Name)
	assert.Equal(t, []string{"ghost"}, missing)
}

func TestPoolRecordsIsACopy(t *testing.T) {
	file := &File{
		Category: model.CategoryPhysical,
		Products: []model.RawEntry{physicalEntry("p1", "Alpha")},
	}
	pool := NewCanonicalizer().BuildPool(file)

	records := pool.Records()
	records[0].Name = "Mutated"

	rec, _ := pool.Get("p1")
	assert.Equal(t, "Alpha", rec.Name)
}
