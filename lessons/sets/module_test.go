package sets

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/aplab/internal/testutil"
)

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, unique(splitItems("a, b, a, , c, b")))
}

func TestCompute(t *testing.T) {
	got := compute([]string{"py", "go", "rs"}, []string{"go", "kt"})
	want := algebra{
		Union:        []string{"py", "go", "rs", "kt"},
		Intersection: []string{"go"},
		Difference:   []string{"py", "rs"},
		Symmetric:    []string{"py", "rs", "kt"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("compute() mismatch (-want +got):\n%s", diff)
	}
}

func TestDrawsCoverEverySticker(t *testing.T) {
	seen := map[int]bool{}
	for _, d := range draws {
		seen[d] = true
	}
	assert.Len(t, seen, len(stickers))
}

func TestShow_OpeningPacksGrowsTheCollection(t *testing.T) {
	first := testutil.RenderFunc(t, Show, testutil.Pass{})
	require.NoError(t, first.Err)
	open := testutil.KeyFor(t, first.Surface, "🎁 Open a pack")

	for range 3 {
		res := testutil.RenderFunc(t, Show, testutil.Pass{Clicked: open, Session: first.Session})
		require.NoError(t, res.Err)
	}
	owned, err := first.Session.Strings(collectionSlot, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{stickers[3], stickers[0]}, owned, "the third pack repeats a sticker")

	packs, err := first.Session.Int("sticker_packs", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, packs)
}
