// Package viewclient queries a running view server for component detail.
package viewclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/killweb/internal/ctxlog"
	"github.com/specialistvlad/killweb/internal/graph"
	"github.com/specialistvlad/killweb/internal/viewserver"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultTimeout bounds Inspect when ctx carries no deadline.
const DefaultTimeout = 10 * time.Second

// ErrInspect is returned when the server reports an inspection failure.
var ErrInspect = errors.New("inspect failed")

// opResult is a private struct to safely pass results through the done channel.
type opResult struct {
	node graph.NodeView
	err  error
}

// Inspect connects to the view server at rawURL, asks for the component
// name, and returns its detail.
func Inspect(ctx context.Context, rawURL, name string) (graph.NodeView, error) {
	logger := ctxlog.FromContext(ctx).With("url", rawURL, "component", name)
	logger.Debug("Inspect started")
	defer logger.Debug("Inspect finished")

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return graph.NodeView{}, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return graph.NodeView{}, fmt.Errorf("failed to parse URL: %q has no scheme or host", rawURL)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	if p := parsedURL.Path; p != "" && p != "/" {
		opts.SetPath(p)
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket("/", opts)
	defer func() {
		logger.Debug("Disconnecting socket client")
		io.Disconnect()
	}()

	var isConnected atomic.Bool
	done := make(chan opResult, 1)
	finish := func(r opResult) {
		select {
		case done <- r:
		default:
		}
	}

	io.On(types.EventName("connect"), func(...any) {
		isConnected.Store(true)
		logger.Debug("Connected", "sid", io.Id())
		io.Emit(viewserver.EventInspect, name)
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if err, ok := errs[0].(error); ok {
				finish(opResult{err: fmt.Errorf("socket.io connection failed: %w", err)})
				return
			}
		}
		finish(opResult{err: errors.New("socket.io connection failed")})
	})
	io.On(types.EventName(viewserver.EventComponent), func(data ...any) {
		var node graph.NodeView
		if len(data) == 0 {
			finish(opResult{err: errors.New("empty component reply")})
			return
		}
		if err := decode(data[0], &node); err != nil {
			finish(opResult{err: err})
			return
		}
		finish(opResult{node: node})
	})
	io.On(types.EventName(viewserver.EventInspectError), func(data ...any) {
		var ie viewserver.InspectError
		if len(data) > 0 {
			_ = decode(data[0], &ie)
		}
		finish(opResult{err: fmt.Errorf("%w: %s", ErrInspect, ie.Error)})
	})

	io.Connect()

	select {
	case <-ctx.Done():
		if isConnected.Load() {
			return graph.NodeView{}, fmt.Errorf("timed out after connecting while waiting for component %q", name)
		}
		return graph.NodeView{}, errors.New("timed out while waiting for initial connection")
	case res := <-done:
		return res.node, res.err
	}
}

func decode(payload any, into any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to read reply: %w", err)
	}
	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("failed to read reply: %w", err)
	}
	return nil
}
