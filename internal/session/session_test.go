package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestInt_LazyDefault(t *testing.T) {
	s := New("a")

	v, err := s.Int("counter", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.True(t, s.Has("counter"), "first read must initialise the slot")

	require.NoError(t, s.SetInt("counter", 8))
	v, err = s.Int("counter", 7)
	require.NoError(t, err)
	assert.Equal(t, 8, v, "default must not override a stored value")
}

func TestLoad_DefaultIsCopied(t *testing.T) {
	s := New("a")
	def := map[string]string{"Ada": "1"}

	got, err := s.StringMap("book", def)
	require.NoError(t, err)
	got["Grace"] = "2"

	assert.Equal(t, map[string]string{"Ada": "1"}, def)
	stored, err := s.StringMap("book", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Ada": "1"}, stored)
}

func TestLoad_Struct(t *testing.T) {
	type stats struct {
		Hits   int `cty:"hits"`
		Misses int `cty:"misses"`
	}
	s := New("a")

	v, err := Load(s, "stats", stats{})
	require.NoError(t, err)
	v.Hits++
	require.NoError(t, Store(s, "stats", v))

	v, err = Load(s, "stats", stats{})
	require.NoError(t, err)
	assert.Equal(t, stats{Hits: 1}, v)
}

func TestTypedAccessors_RoundTrip(t *testing.T) {
	s := New("a")

	require.NoError(t, s.SetString("name", "Alice"))
	require.NoError(t, s.SetBool("done", true))
	require.NoError(t, s.SetFloat("ratio", 0.25))
	require.NoError(t, s.SetStrings("history", []string{"a", "b"}))
	require.NoError(t, s.SetStringMap("vars", map[string]string{"x": "1"}))
	require.NoError(t, s.SetFloatMap("scores", map[string]float64{"q1": 1}))

	name, err := s.String("name", "")
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)

	done, err := s.Bool("done", false)
	require.NoError(t, err)
	assert.True(t, done)

	ratio, err := s.Float("ratio", 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, ratio, 1e-9)

	history, err := s.Strings("history", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, history)

	vars, err := s.StringMap("vars", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"x": "1"}, vars)

	scores, err := s.FloatMap("scores", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"q1": 1}, scores)

	assert.Equal(t, []string{"done", "history", "name", "ratio", "scores", "vars"}, s.Keys())
}

func TestStrings_NilDefaultIsEmpty(t *testing.T) {
	s := New("a")

	v, err := s.Strings("history", nil)
	require.NoError(t, err)
	assert.NotNil(t, v)
	assert.Empty(t, v)

	raw, ok := s.Value("history")
	require.True(t, ok)
	assert.True(t, raw.Type().Equals(cty.List(cty.String)))
}

func TestTypeMismatch(t *testing.T) {
	testCases := []struct {
		name string
		read func(s *Session) error
	}{
		{
			name: "int read as string",
			read: func(s *Session) error { _, err := s.String("slot", ""); return err },
		},
		{
			name: "int read as bool",
			read: func(s *Session) error { _, err := s.Bool("slot", false); return err },
		},
		{
			name: "int read as list",
			read: func(s *Session) error { _, err := s.Strings("slot", nil); return err },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := New("a")
			require.NoError(t, s.SetInt("slot", 3))

			err := tc.read(s)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTypeMismatch))

			var mismatch *TypeMismatchError
			require.ErrorAs(t, err, &mismatch)
			assert.Equal(t, "slot", mismatch.Slot)
			assert.True(t, mismatch.Got.Equals(cty.Number))

			v, err := s.Int("slot", 0)
			require.NoError(t, err)
			assert.Equal(t, 3, v, "a failed read must leave the slot untouched")
		})
	}
}

func TestFractionalNumberReadAsInt(t *testing.T) {
	s := New("a")
	require.NoError(t, s.SetFloat("slot", 2.5))

	_, err := s.Int("slot", 0)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestSetFloat_RejectsNaN(t *testing.T) {
	s := New("a")
	var zero float64
	assert.Error(t, s.SetFloat("slot", zero/zero))
	assert.False(t, s.Has("slot"))
}

func TestDelete_ReinitialisesOnNextRead(t *testing.T) {
	s := New("a")
	require.NoError(t, s.SetInt("counter", 5))
	s.Delete("counter")

	v, err := s.Int("counter", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestSetValue_RejectsNull(t *testing.T) {
	s := New("a")
	assert.Error(t, s.SetValue("x", cty.NullVal(cty.String)))
	assert.NoError(t, s.SetValue("x", cty.StringVal("ok")))
}

func TestExclusive_PropagatesError(t *testing.T) {
	s := New("a")
	boom := errors.New("boom")
	assert.ErrorIs(t, s.Exclusive(func() error { return boom }), boom)
}
