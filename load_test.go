package astrocat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/astrocat"
	"github.com/hupe1980/astrocat/record"
	"github.com/hupe1980/astrocat/usercat"
)

func TestLoadCategories(t *testing.T) {
	tests := []struct {
		name  string
		rec   record.Hash
		ok    bool
		names []string
	}{
		{name: "single", rec: record.Hash{"Category": "Binary Stars"}, ok: true, names: []string{"Binary Stars"}},
		{name: "list", rec: record.Hash{"Category": []any{"A", "B"}}, ok: true, names: []string{"A", "B"}},
		{name: "string list", rec: record.Hash{"Category": []string{"A"}}, ok: true, names: []string{"A"}},
		{name: "empty name", rec: record.Hash{"Category": ""}, ok: false},
		{name: "missing", rec: record.Hash{"Name": "Sirius"}, ok: false},
		{name: "number", rec: record.Hash{"Category": 3}, ok: false},
		{name: "partial", rec: record.Hash{"Category": []any{"A", 3, "", "B"}}, ok: false, names: []string{"A", "B"}},
		{name: "empty list", rec: record.Hash{"Category": []any{}}, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cats := usercat.New()
			reg := newRegistry(t, astrocat.WithCategories(cats))
			o := reg.NewObject(nil)

			assert.Equal(t, tt.ok, o.LoadCategories(tt.rec, astrocat.DispositionAdd, "stars"))
			for _, n := range tt.names {
				assert.True(t, o.InCategoryByName(n), n)
				c, _ := cats.Get(n)
				assert.Equal(t, "stars", c.Description())
			}
			assert.Len(t, o.Categories(), len(tt.names))
		})
	}
}

func TestLoadCategoriesDisposition(t *testing.T) {
	cats := usercat.New()
	reg := newRegistry(t, astrocat.WithCategories(cats))
	o := reg.NewObject(nil)

	require.True(t, o.LoadCategories(record.Hash{"Category": "A"}, astrocat.DispositionAdd, ""))
	require.True(t, o.LoadCategories(record.Hash{"Category": "B"}, astrocat.DispositionModify, ""))
	assert.True(t, o.InCategoryByName("A"))
	assert.True(t, o.InCategoryByName("B"))

	require.True(t, o.LoadCategories(record.Hash{"Category": []any{"C"}}, astrocat.DispositionReplace, ""))
	assert.False(t, o.InCategoryByName("A"))
	assert.False(t, o.InCategoryByName("B"))
	assert.True(t, o.InCategoryByName("C"))

	a, _ := cats.Get("A")
	assert.Zero(t, a.Len())
}

func TestParseDisposition(t *testing.T) {
	for in, want := range map[string]astrocat.Disposition{
		"":        astrocat.DispositionAdd,
		"Add":     astrocat.DispositionAdd,
		"modify":  astrocat.DispositionModify,
		"REPLACE": astrocat.DispositionReplace,
	} {
		got, err := astrocat.ParseDisposition(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := astrocat.ParseDisposition("merge")
	require.Error(t, err)

	assert.Equal(t, "Replace", astrocat.DispositionReplace.String())
	assert.Equal(t, "Disposition(9)", astrocat.Disposition(9).String())
}
