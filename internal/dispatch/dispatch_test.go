package dispatch

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/aplab/internal/catalog"
	"github.com/vk/aplab/internal/ctxlog"
	"github.com/vk/aplab/internal/i18n"
	"github.com/vk/aplab/internal/locator"
	"github.com/vk/aplab/internal/metrics"
	"github.com/vk/aplab/internal/page"
	"github.com/vk/aplab/internal/registry"
	"github.com/vk/aplab/internal/session"
	"github.com/vk/aplab/internal/ui"
)

const variablesLocator = "aplab.topics.t01_basics.t01_variables"

var variables = Selection{Category: "1. Python Basics", Topic: "1.1 Variables"}

func setup(t *testing.T, pages map[string]page.Func) (*Dispatcher, *metrics.Metrics) {
	t.Helper()
	cat, err := catalog.Default(context.Background())
	require.NoError(t, err)
	reg := registry.New(cat)
	for loc, fn := range pages {
		reg.RegisterPage(locator.MustParse(loc), fn)
	}
	m := metrics.New(prometheus.NewRegistry())
	return New(reg, WithMetrics(m)), m
}

func translator(t *testing.T, locale string) *i18n.Translator {
	t.Helper()
	b, err := i18n.Load(i18n.DefaultLocale)
	require.NoError(t, err)
	return b.Translator(locale)
}

func TestRender_Success(t *testing.T) {
	d, m := setup(t, map[string]page.Func{
		variablesLocator: func(pc *page.Context) error {
			pc.Title("Variables")
			name := pc.TextInput("Name", "Alice")
			pc.Markdownf("Hello, %s", name)
			return nil
		},
	})

	out := d.Render(context.Background(), variables, ui.Inputs{}, session.New("s"), "en")

	require.True(t, out.OK(), "unexpected error: %v", out.Err)
	assert.Equal(t, variablesLocator, out.Locator.String())
	assert.Equal(t, 3, out.Surface.Len())
	assert.Empty(t, out.Message(translator(t, "en")))

	html, err := out.HTML(translator(t, "en"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "Hello, Alice")
	assert.NotContains(t, string(html), "aplab-error-panel")

	assert.Equal(t, 1.0, testutil.ToFloat64(counter(m, variablesLocator, metrics.OutcomeOK)))
}

func TestRender_UnknownCategory(t *testing.T) {
	d, _ := setup(t, nil)

	out := d.Render(context.Background(), Selection{Category: "9. Nonexistent", Topic: "x"}, ui.Inputs{}, nil, "en")

	require.False(t, out.OK())
	assert.ErrorIs(t, out.Err, registry.ErrUnknownCategory)
	assert.True(t, out.Locator.IsZero())
	assert.Contains(t, out.Message(translator(t, "en")), "9. Nonexistent")

	html, err := out.HTML(translator(t, "en"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "aplab-error-panel")
	assert.Contains(t, string(html), "9. Nonexistent")
}

func TestRender_UnknownTopic(t *testing.T) {
	d, _ := setup(t, nil)

	out := d.Render(context.Background(), Selection{Category: "1. Python Basics", Topic: "2.1 Conditionals"}, ui.Inputs{}, nil, "en")

	assert.ErrorIs(t, out.Err, registry.ErrUnknownTopic)
	assert.Contains(t, out.Message(translator(t, "en")), "2.1 Conditionals")
}

func TestRender_MissingPage(t *testing.T) {
	d, m := setup(t, nil)

	out := d.Render(context.Background(), variables, ui.Inputs{}, nil, "ru")

	var hle *HandlerLoadError
	require.ErrorAs(t, out.Err, &hle)
	assert.Equal(t, variablesLocator, hle.Locator.String())

	msg := out.Message(translator(t, "ru"))
	assert.Contains(t, msg, "Ошибка загрузки темы")
	assert.Contains(t, msg, variablesLocator)
	assert.Equal(t, 1.0, testutil.ToFloat64(counter(m, variablesLocator, metrics.OutcomeLoadError)))
}

func TestRender_PageError(t *testing.T) {
	boom := errors.New("boom")
	d, _ := setup(t, map[string]page.Func{
		variablesLocator: func(pc *page.Context) error {
			pc.Title("Before the failure")
			return boom
		},
	})

	out := d.Render(context.Background(), variables, ui.Inputs{}, nil, "en")

	var rte *HandlerRuntimeError
	require.ErrorAs(t, out.Err, &rte)
	assert.ErrorIs(t, out.Err, boom)
	assert.Nil(t, rte.Panic)
	assert.Contains(t, out.Message(translator(t, "en")), variablesLocator)

	html, err := out.HTML(translator(t, "en"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "Before the failure", "partial output is kept")
	assert.Contains(t, string(html), "aplab-error-panel")
}

func TestRender_PagePanic(t *testing.T) {
	var logs bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&logs, nil)))

	d, m := setup(t, map[string]page.Func{
		variablesLocator: func(pc *page.Context) error {
			var nums []int
			_ = nums[3]
			return nil
		},
	})

	var out Outcome
	require.NotPanics(t, func() {
		out = d.Render(ctx, variables, ui.Inputs{}, session.New("s"), "en")
	})

	var rte *HandlerRuntimeError
	require.ErrorAs(t, out.Err, &rte)
	assert.NotNil(t, rte.Panic)
	assert.NotEmpty(t, rte.Stack)
	assert.Contains(t, out.Message(translator(t, "en")), variablesLocator)
	assert.Contains(t, logs.String(), "Page panicked.")
	assert.Equal(t, 1.0, testutil.ToFloat64(counter(m, variablesLocator, metrics.OutcomeRuntimeError)))
}

func TestRender_SessionStateCarriesAcrossPasses(t *testing.T) {
	d, _ := setup(t, map[string]page.Func{
		variablesLocator: func(pc *page.Context) error {
			n, err := pc.Session().Int("counter", 0)
			if err != nil {
				return err
			}
			if pc.Button("Increment") {
				n++
				if err := pc.Session().SetInt("counter", n); err != nil {
					return err
				}
			}
			pc.Metric("Counter", "", "")
			return nil
		},
	})

	sess := session.New("s")
	click := ui.Inputs{Clicked: "increment"}
	for i := 0; i < 3; i++ {
		require.True(t, d.Render(context.Background(), variables, click, sess, "en").OK())
	}
	require.True(t, d.Render(context.Background(), variables, ui.Inputs{}, sess, "en").OK())

	n, err := sess.Int("counter", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRender_SessionTypeMismatchIsRuntimeError(t *testing.T) {
	d, _ := setup(t, map[string]page.Func{
		variablesLocator: func(pc *page.Context) error {
			_, err := pc.Session().String("counter", "")
			return err
		},
	})
	sess := session.New("s")
	require.NoError(t, sess.SetInt("counter", 1))

	out := d.Render(context.Background(), variables, ui.Inputs{}, sess, "en")
	assert.ErrorIs(t, out.Err, session.ErrTypeMismatch)
}

func counter(m *metrics.Metrics, topic, outcome string) prometheus.Collector {
	return m.RenderCounter(topic, outcome)
}

func TestSelect_Defaults(t *testing.T) {
	d, _ := setup(t, nil)

	assert.Equal(t, Selection{Category: "0. Programming Fundamentals", Topic: "0.1 Programming Basics"}, d.Select("", ""))
	assert.Equal(t, Selection{Category: "2. Control Flow", Topic: "2.1 Conditionals"}, d.Select("2. Control Flow", ""))
	assert.Equal(t, Selection{Category: "2. Control Flow", Topic: "2.2 Loops"}, d.Select("2. Control Flow", "2.2 Loops"))
	assert.Equal(t, Selection{Category: "9. Nonexistent", Topic: ""}, d.Select("9. Nonexistent", ""))
}
