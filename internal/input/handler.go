package input

import (
	"log/slog"
	"sync"
	"time"

	"github.com/dshills/evmatch/internal/input/event"
	"github.com/dshills/evmatch/internal/input/eventmap"
)

// Config configures the input handler.
type Config struct {
	// ActionBuffer is the capacity of the action channel (default: 100).
	ActionBuffer int

	// Logger receives unmatched-event and dropped-action reports.
	// Default: slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ActionBuffer: 100,
	}
}

// Resolver maps an event to a binding.
type Resolver interface {
	Resolve(ev event.Event) (eventmap.Resolution, bool)
}

// Hook allows interception of input handling.
type Hook interface {
	// PreEvent is called before an event is resolved.
	// Return true to consume the event (stop further processing).
	PreEvent(ev event.Event) bool

	// PreAction is called before dispatching an action.
	// Return true to consume the action.
	PreAction(action *Action) bool
}

// Handler resolves input events to actions and publishes them on a
// channel. Events that resolve to nothing are reported at debug level and
// otherwise ignored.
type Handler struct {
	mu sync.RWMutex

	resolver Resolver
	logger   *slog.Logger
	metrics  *Metrics

	// Action output channel
	actionChan chan Action

	hooks []Hook

	// Closed flag
	closed bool
}

// NewHandler creates a new input handler.
func NewHandler(resolver Resolver, config Config) *Handler {
	if config.ActionBuffer <= 0 {
		config.ActionBuffer = DefaultConfig().ActionBuffer
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		resolver:   resolver,
		logger:     logger,
		metrics:    NewMetrics(),
		actionChan: make(chan Action, config.ActionBuffer),
		hooks:      make([]Hook, 0),
	}
}

// HandleEvent resolves ev and dispatches the resulting action.
// It returns the action and whether one was produced.
func (h *Handler) HandleEvent(ev event.Event) (Action, bool) {
	start := time.Now()

	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed || ev == nil {
		return Action{}, false
	}
	h.metrics.RecordEvent(ev)

	for _, hook := range h.hooks {
		if hook.PreEvent(ev) {
			h.metrics.RecordHookConsumption()
			return Action{}, false
		}
	}

	res, ok := h.resolver.Resolve(ev)
	if !ok {
		h.metrics.RecordUnmatched()
		h.logger.Debug("unmatched event", "event", ev.String())
		return Action{}, false
	}

	action := buildAction(ev, res)
	if !h.dispatchAction(&action) {
		return Action{}, false
	}
	h.metrics.RecordAction(time.Since(start))
	return action, true
}

// buildAction creates an action from a resolution.
func buildAction(ev event.Event, res eventmap.Resolution) Action {
	return Action{
		Name:     res.Action(),
		Source:   SourceOf(ev),
		Event:    ev,
		Eventmap: res.Eventmap,
		Args: ActionArgs{
			Fixed: res.Binding.Args,
			Bound: res.Bindings,
		},
	}
}

// dispatchAction sends an action to the output channel.
// Caller must hold the read lock.
func (h *Handler) dispatchAction(action *Action) bool {
	for _, hook := range h.hooks {
		if hook.PreAction(action) {
			h.metrics.RecordHookConsumption()
			return false
		}
	}

	// Non-blocking send with overflow protection
	select {
	case h.actionChan <- *action:
		return true
	default:
	}

	// Channel full - drop oldest and try again
	select {
	case dropped := <-h.actionChan:
		h.metrics.RecordDroppedAction()
		h.logger.Warn("action channel full, dropped oldest action", "action", dropped.Name)
	default:
	}
	select {
	case h.actionChan <- *action:
		return true
	default:
		h.metrics.RecordDroppedAction()
		return false
	}
}

// Actions returns the channel for receiving dispatched actions.
func (h *Handler) Actions() <-chan Action {
	return h.actionChan
}

// Metrics returns the handler's metrics.
func (h *Handler) Metrics() *Metrics {
	return h.metrics
}

// AddHook adds an input hook.
func (h *Handler) AddHook(hook Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, hook)
}

// RemoveHook removes an input hook.
func (h *Handler) RemoveHook(hook Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, hk := range h.hooks {
		if hk == hook {
			h.hooks = append(h.hooks[:i], h.hooks[i+1:]...)
			return
		}
	}
}

// Close shuts down the handler and closes the action channel.
func (h *Handler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}

	h.closed = true
	close(h.actionChan)
}

// IsClosed returns true if the handler has been closed.
func (h *Handler) IsClosed() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.closed
}
