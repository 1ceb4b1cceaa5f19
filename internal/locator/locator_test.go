// internal/locator/locator_test.go
package locator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocator_RoundTrip(t *testing.T) {
	ids := []string{
		"a.b.c",
		"aplab.topics.t00_fundamentals.t01_programming_basics",
		"aplab_py.topics.t01_basics.t03_operations",
	}

	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			loc, err := Parse(id)
			require.NoError(t, err)
			assert.Equal(t, id, loc.String())

			again, err := Parse(loc.String())
			require.NoError(t, err)
			assert.True(t, loc.Equal(again))
		})
	}
}

func TestLocator_Equal(t *testing.T) {
	a := MustParse("a.b")
	assert.True(t, a.Equal(MustParse("a.b")))
	assert.False(t, a.Equal(MustParse("a.c")))
	assert.False(t, a.Equal(MustParse("a.b.c")))
	assert.False(t, a.Equal(Locator{}))
	assert.True(t, Locator{}.Equal(Locator{}))
}

func TestLocator_Leaf(t *testing.T) {
	assert.Equal(t, "t01_variables", MustParse("aplab.topics.t01_basics.t01_variables").Leaf())
	assert.Equal(t, "", Locator{}.Leaf())
	assert.Equal(t, "", Locator{}.String())
}

func TestLocator_Text(t *testing.T) {
	var loc Locator
	require.NoError(t, loc.UnmarshalText([]byte("x.y")))
	out, err := loc.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "x.y", string(out))

	assert.Error(t, loc.UnmarshalText([]byte("x..y")))
}

func TestLocator_SegmentsIsCopy(t *testing.T) {
	loc := MustParse("a.b")
	segs := loc.Segments()
	segs[0] = "z"
	assert.Equal(t, "a.b", loc.String())
}
