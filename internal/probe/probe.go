// Package probe exercises a running server over its live channel: it
// connects, requests one render and reports what came back.
package probe

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/vk/aplab/internal/ctxlog"
	"github.com/vk/aplab/internal/live"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultPath is where the server mounts the live channel.
const DefaultPath = "/socket.io/"

var ErrTimeout = errors.New("probe timed out")

// Options configure a probe run.
type Options struct {
	URL                string
	Category           string
	Topic              string
	Lang               string
	Values             map[string][]string
	Clicked            string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// Result is what the server answered.
type Result struct {
	Response live.Response
	Elapsed  time.Duration
}

type opResult struct {
	value *Result
	err   error
}

// Run connects to the server, emits one render request and waits for the
// answer.
func Run(ctx context.Context, o Options) (*Result, error) {
	logger := ctxlog.FromContext(ctx).With("url", o.URL, "category", o.Category, "topic", o.Topic)
	logger.Debug("Probe started.")
	defer logger.Debug("Probe finished.")

	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	parsed, err := url.Parse(o.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("URL %q must include scheme and host", o.URL)
	}
	path := parsed.Path
	if path == "" || path == "/" {
		path = DefaultPath
	}

	opts := socket.DefaultOptions()
	opts.SetPath(path)
	if o.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification.")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host), opts)
	io := manager.Socket("/", opts)
	defer io.Disconnect()

	var connected atomic.Bool
	done := make(chan opResult, 1)
	start := time.Now()

	req := live.Request{
		Category: o.Category,
		Topic:    o.Topic,
		Lang:     o.Lang,
		Values:   o.Values,
		Clicked:  o.Clicked,
	}

	io.On(types.EventName("connect"), func(...any) {
		connected.Store(true)
		logger.Debug("Connected.", "sid", io.Id())
		io.Emit(live.EventRender, req)
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("connection failed")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = fmt.Errorf("connection failed: %w", e)
			}
		}
		select {
		case done <- opResult{err: err}:
		default:
		}
	})
	io.On(types.EventName(live.EventRendered), func(data ...any) {
		resp, err := decodeResponse(data)
		res := opResult{err: err}
		if err == nil {
			res.value = &Result{Response: resp, Elapsed: time.Since(start)}
		}
		select {
		case done <- res:
		default:
		}
	})

	io.Connect()

	select {
	case <-opCtx.Done():
		if connected.Load() {
			return nil, fmt.Errorf("%w after connecting while waiting for %q", ErrTimeout, live.EventRendered)
		}
		return nil, fmt.Errorf("%w while waiting for initial connection", ErrTimeout)
	case res := <-done:
		return res.value, res.err
	}
}

func decodeResponse(data []any) (live.Response, error) {
	var resp live.Response
	if len(data) == 0 {
		return resp, errors.New("empty response")
	}
	raw, err := json.Marshal(data[0])
	if err != nil {
		return resp, fmt.Errorf("failed to encode response: %w", err)
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return resp, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp, nil
}
