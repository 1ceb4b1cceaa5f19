package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/aplab/internal/catalog"
	"github.com/vk/aplab/internal/locator"
	"github.com/vk/aplab/internal/page"
)

func newDefault(t *testing.T) *Registry {
	t.Helper()
	cat, err := catalog.Default(context.Background())
	require.NoError(t, err)
	return New(cat)
}

func noop(*page.Context) error { return nil }

func TestTopics_DeclarationOrder(t *testing.T) {
	r := newDefault(t)

	got, err := r.Topics("1. Python Basics")
	require.NoError(t, err)

	want := []string{"1.1 Variables", "1.2 Data Types", "1.3 Operations"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("topics mismatch (-want +got):\n%s", diff)
	}
}

func TestCategories_StableAcrossCalls(t *testing.T) {
	r := newDefault(t)

	first := r.Categories()
	require.NotEmpty(t, first)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, r.Categories())
	}
	assert.Equal(t, "0. Programming Fundamentals", first[0])

	first[0] = "mutated"
	assert.NotEqual(t, "mutated", r.Categories()[0], "callers must not alias internal state")
}

func TestLocator_EveryEntryResolves(t *testing.T) {
	r := newDefault(t)

	for _, category := range r.Categories() {
		topics, err := r.Topics(category)
		require.NoError(t, err)
		for _, topic := range topics {
			loc, err := r.Locator(category, topic)
			require.NoError(t, err, "%s / %s", category, topic)
			assert.False(t, loc.IsZero())
		}
	}
	assert.Len(t, r.Entries(), 10)
}

func TestTopics_UnknownCategory(t *testing.T) {
	r := newDefault(t)

	_, err := r.Topics("9. Nonexistent")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownCategory))
	assert.Contains(t, err.Error(), "9. Nonexistent")

	var uce *UnknownCategoryError
	require.ErrorAs(t, err, &uce)
	assert.Equal(t, "9. Nonexistent", uce.Category)
}

func TestLocator_UnknownTopic(t *testing.T) {
	r := newDefault(t)

	_, err := r.Locator("1. Python Basics", "2.1 Conditionals")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownTopic)
	assert.NotErrorIs(t, err, ErrUnknownCategory)

	_, err = r.Locator("9. Nonexistent", "x")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestSuggestions(t *testing.T) {
	r := newDefault(t)

	_, err := r.Topics("1. Pyton Basics")
	var uce *UnknownCategoryError
	require.ErrorAs(t, err, &uce)
	assert.Equal(t, "1. Python Basics", uce.Suggestion)
	assert.Contains(t, err.Error(), `did you mean "1. Python Basics"?`)

	_, err = r.Locator("1. Python Basics", "1.1 Variabels")
	var ute *UnknownTopicError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, "1.1 Variables", ute.Suggestion)

	_, err = r.Topics("completely different")
	require.ErrorAs(t, err, &uce)
	assert.Empty(t, uce.Suggestion)
}

func TestRegisterPage_PanicsOnDuplicate(t *testing.T) {
	r := newDefault(t)
	loc := locator.MustParse("aplab.topics.t01_basics.t01_variables")

	r.RegisterPageFunc(loc, noop)
	assert.Panics(t, func() { r.RegisterPageFunc(loc, noop) })
	assert.Panics(t, func() { r.RegisterPage(locator.Locator{}, page.Func(noop)) })

	p, ok := r.Page(loc)
	require.True(t, ok)
	assert.NotNil(t, p)
}

func TestValidate(t *testing.T) {
	r := newDefault(t)
	for _, e := range r.Entries() {
		r.RegisterPageFunc(e.Locator, noop)
	}
	require.NoError(t, r.Validate(context.Background()))

	r2 := newDefault(t)
	entries := r2.Entries()
	for _, e := range entries[1:] {
		r2.RegisterPageFunc(e.Locator, noop)
	}
	r2.RegisterPageFunc(locator.MustParse("aplab.topics.orphan"), noop)

	err := r2.Validate(context.Background())
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{entries[0].Locator.String()}, verr.Missing)
	assert.Equal(t, []string{"aplab.topics.orphan"}, verr.Orphans)
	assert.Contains(t, err.Error(), "registry validation failed")
}

type fakeModule struct{ loc locator.Locator }

func (m fakeModule) Register(r *Registry) { r.RegisterPageFunc(m.loc, noop) }

func TestLoad_RegistersModules(t *testing.T) {
	loc := locator.MustParse("aplab.topics.t01_basics.t01_variables")
	r, err := Load(context.Background(), fakeModule{loc: loc})
	require.NoError(t, err)

	_, ok := r.Page(loc)
	assert.True(t, ok)
	assert.Equal(t, []string{loc.String()}, r.Pages())
}

func TestDisplayName(t *testing.T) {
	r := newDefault(t)

	assert.Equal(t, "1.1 Переменные", r.DisplayName("1. Python Basics", "1.1 Variables", "ru"))
	assert.Equal(t, "1.1 Variables", r.DisplayName("1. Python Basics", "1.1 Variables", "en"))
	assert.Equal(t, "1. Python Basics", r.DisplayName("1. Python Basics", "", "en"))
	assert.Equal(t, "x", r.DisplayName("9. Nonexistent", "x", "ru"))
}

func TestDefault(t *testing.T) {
	r := newDefault(t)
	d := r.Default()
	assert.Equal(t, "0. Programming Fundamentals", d.Category)
	assert.Equal(t, "0.1 Programming Basics", d.Topic)
}
