package functions

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/aplab/internal/testutil"
	"github.com/vk/aplab/internal/ui"
)

func TestSignature(t *testing.T) {
	args, err := signature("add", " a, b ,, c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, args)

	_, err = signature("2add", "a")
	assert.ErrorContains(t, err, "function name")

	_, err = signature("add", "a, a")
	assert.ErrorContains(t, err, "duplicate argument")

	_, err = signature("add", "a-b")
	assert.ErrorContains(t, err, "parameter name")
}

func TestResult(t *testing.T) {
	assert.Equal(t, "None", result("sum", nil))
	assert.Equal(t, "5", result("sum", []float64{2, 3}))
	assert.Equal(t, "6", result("product", []float64{2, 3}))
	assert.Equal(t, "3.5", result("largest", []float64{2, 3.5}))
}

func TestArea(t *testing.T) {
	assert.Equal(t, 12.0, area("rectangle", 3, 4))
	assert.Equal(t, 6.0, area("triangle", 3, 4))
	assert.InDelta(t, math.Pi*4, area("circle", 2, 0), 1e-9)
	assert.Zero(t, area("hexagon", 1, 1))
}

func TestFactorialTrace(t *testing.T) {
	calls, v := factorialTrace(4)
	assert.Equal(t, 24, v)
	assert.Equal(t, []string{
		"factorial(4) = 4 * factorial(3)",
		"factorial(3) = 3 * factorial(2)",
		"factorial(2) = 2 * factorial(1)",
		"factorial(1) = 1",
	}, calls)
}

func TestShow_InvalidFunctionName(t *testing.T) {
	res := testutil.RenderFunc(t, Show, testutil.Pass{Form: url.Values{"function_name": {"2bad"}}})
	require.NoError(t, res.Err)
	testutil.AssertBanner(t, res.Surface, ui.LevelError, "SyntaxError")
}

func TestShow_CallCounter(t *testing.T) {
	first := testutil.RenderFunc(t, Show, testutil.Pass{})
	require.NoError(t, first.Err)
	call := testutil.KeyFor(t, first.Surface, "Call say_hello()")
	reset := testutil.KeyFor(t, first.Surface, "Reset calls")

	for range 2 {
		res := testutil.RenderFunc(t, Show, testutil.Pass{Clicked: call, Session: first.Session})
		require.NoError(t, res.Err)
	}
	calls, err := first.Session.Int("function_calls", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	res := testutil.RenderFunc(t, Show, testutil.Pass{Clicked: reset, Session: first.Session})
	require.NoError(t, res.Err)
	calls, err = first.Session.Int("function_calls", 0)
	require.NoError(t, err)
	assert.Zero(t, calls)
}
