package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/wailsapp/wails/v2/pkg/runtime"
	"go.uber.org/zap"

	"github.com/chazu/vlisp/pkg/config"
	"github.com/chazu/vlisp/pkg/engine"
	"github.com/chazu/vlisp/pkg/geometry"
	"github.com/chazu/vlisp/pkg/graph"
	"github.com/chazu/vlisp/pkg/kind"
	"github.com/chazu/vlisp/pkg/layout"
	"github.com/chazu/vlisp/pkg/layout/frame"
	"github.com/chazu/vlisp/pkg/metrics"
	"github.com/chazu/vlisp/pkg/route"
	"github.com/chazu/vlisp/pkg/store"
)

// Host events exchanged with the frontend.
const (
	EventSaveGraph     = "saveGraph"
	EventLoadGraph     = "loadGraph"
	EventSendMainGraph = "sendMainGraph"
)

// bus is the host event channel. The Wails runtime implements it in the
// desktop build; tests substitute an in-memory bus.
type bus interface {
	On(name string, fn func(data ...interface{})) func()
	Emit(name string, data ...interface{})
}

type wailsBus struct {
	ctx context.Context
}

func (b wailsBus) On(name string, fn func(data ...interface{})) func() {
	return runtime.EventsOn(b.ctx, name, fn)
}

func (b wailsBus) Emit(name string, data ...interface{}) {
	runtime.EventsEmit(b.ctx, name, data...)
}

// App is the Wails backend. It owns one board and exposes it to the frontend
// via bindings. Bindings may be called from several goroutines, so every
// access to the board goes through mu.
type App struct {
	ctx    context.Context
	log    *zap.Logger
	cfg    *config.Config
	engine *engine.Engine
	store  *store.Store
	bus    bus
	off    []func()

	metricsSrv  *http.Server
	metricsAddr string

	mu     sync.Mutex
	graph  *graph.Graph
	layout *frame.Layout
}

// RouteData is the JSON-serializable geometry of one committed edge.
type RouteData struct {
	Edge  graph.EdgeID   `json:"edge"`
	Route geometry.Route `json:"route"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result returned to the frontend.
type EvalResult struct {
	Source    string                  `json:"source"`
	Variables []string                `json:"variables"`
	Values    map[string]engine.Value `json:"values"`
	Errors    []EvalErrorData         `json:"errors"`
}

// NewApp creates an App with an empty board.
func NewApp(cfg *config.Config, log *zap.Logger) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		log:    log,
		cfg:    cfg,
		engine: engine.NewEngine().WithTimeout(cfg.EvalTimeout),
		store:  store.New(cfg.SaveDirectory),
	}
	a.reset(graph.New())
	return a
}

// reset swaps in a new board. Callers hold mu, or own a not yet shared App.
func (a *App) reset(g *graph.Graph) {
	a.graph = g
	a.layout = frame.New(g)
	a.cfg.Apply(a.layout)
}

// startup is called by Wails on app startup. It keeps the context for the
// runtime, subscribes to the host persistence events and starts the metrics
// endpoint when one is configured.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	if a.bus == nil {
		a.bus = wailsBus{ctx: ctx}
	}
	a.listen()
	a.serveMetrics()
}

// shutdown is called by Wails when the window closes.
func (a *App) shutdown(ctx context.Context) {
	for _, off := range a.off {
		off()
	}
	a.off = nil

	if a.metricsSrv != nil {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		if err := a.metricsSrv.Shutdown(sctx); err != nil {
			a.log.Warn("metrics shutdown", zap.Error(err))
		}
		cancel()
		a.metricsSrv = nil
	}
	_ = a.log.Sync()
}

func (a *App) serveMetrics() {
	if a.cfg.MetricsAddr == "" {
		return
	}
	ln, err := net.Listen("tcp", a.cfg.MetricsAddr)
	if err != nil {
		a.log.Error("metrics listener", zap.String("addr", a.cfg.MetricsAddr), zap.Error(err))
		return
	}
	srv := metrics.NewServer()
	a.metricsSrv = srv
	a.metricsAddr = ln.Addr().String()
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("metrics server", zap.Error(err))
		}
	}()
	a.log.Info("serving metrics", zap.String("addr", a.metricsAddr))
}

func (a *App) listen() {
	a.off = append(a.off,
		a.bus.On(EventSaveGraph, func(...interface{}) {
			a.bus.Emit(EventSendMainGraph, a.Snapshot())
		}),
		a.bus.On(EventLoadGraph, func(data ...interface{}) {
			if len(data) == 0 {
				a.log.Warn("load event without payload")
				return
			}
			snap, err := decodeSnapshot(data[0])
			if err == nil {
				err = a.Restore(snap)
			}
			if err != nil {
				a.log.Error("load graph", zap.Error(err))
			}
		}),
	)
}

// decodeSnapshot converts an event payload into a snapshot. The runtime
// delivers JSON values as generic maps, so the payload is re-encoded and
// decoded into the typed form.
func decodeSnapshot(payload interface{}) (graph.Snapshot, error) {
	var snap graph.Snapshot
	data, err := json.Marshal(payload)
	if err != nil {
		return snap, fmt.Errorf("encode load payload: %w", err)
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("decode load payload: %w", err)
	}
	return snap, nil
}

// ---------------------------------------------------------------------------
// Board editing
// ---------------------------------------------------------------------------

// Palette returns the node kinds the editor can place.
func (a *App) Palette() []kind.Spec {
	return kind.Palette()
}

// PlaceNode drops a frame of the given kind at (top, left).
func (a *App) PlaceNode(top, left float64, k string) (graph.NodeFrame, error) {
	if _, err := kind.Lookup(graph.Kind(k)); err != nil {
		return graph.NodeFrame{}, err
	}
	a.mu.Lock()
	n := a.graph.PlaceNode(graph.Position{Top: top, Left: left}, graph.Kind(k))
	a.mu.Unlock()

	metrics.NodesPlaced.Inc()
	a.log.Debug("node placed", zap.Int("node", int(n.ID)), zap.String("kind", k))
	return n, nil
}

// MoveNode relocates a frame and returns the refreshed routes of the edges
// that went stale.
func (a *App) MoveNode(id int, top, left float64) ([]RouteData, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.graph.MoveNode(graph.NodeID(id), graph.Position{Top: top, Left: left}); err != nil {
		return nil, err
	}
	metrics.NodesMoved.Inc()
	a.log.Debug("node moved", zap.Int("node", id), zap.Int("stale", len(a.graph.Stale())))
	return a.refresh()
}

// SetNodeField stores a widget field value on a frame.
func (a *App) SetNodeField(id int, key, value string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.graph.SetField(graph.NodeID(id), key, value)
}

// Nodes returns every placed frame.
func (a *App) Nodes() []graph.NodeFrame {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.graph.Nodes()
}

// NodeAt returns the id of the frame under (left, top), or -1.
func (a *App) NodeAt(left, top float64) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if id, ok := a.layout.NodeAt(left, top); ok {
		return int(id)
	}
	return -1
}

// Bounds returns the rectangle covering every frame, for sizing the canvas.
// An empty board yields the zero rectangle.
func (a *App) Bounds() geometry.Rect {
	a.mu.Lock()
	defer a.mu.Unlock()
	b, _ := a.layout.Bounds()
	return b
}

// ---------------------------------------------------------------------------
// Connector pairing
// ---------------------------------------------------------------------------

// OutputClicked handles a click on an output connector.
func (a *App) OutputClicked(endpoint string) string {
	return a.click(graph.Output, endpoint)
}

// InputClicked handles a click on an input connector.
func (a *App) InputClicked(endpoint string) string {
	return a.click(graph.Input, endpoint)
}

func (a *App) click(d graph.Direction, endpoint string) string {
	a.mu.Lock()
	var outcome graph.ClickOutcome
	if d == graph.Output {
		outcome = a.graph.OutputClicked(endpoint)
	} else {
		outcome = a.graph.InputClicked(endpoint)
	}
	a.mu.Unlock()

	metrics.Clicks.WithLabelValues(d.String(), outcome.String()).Inc()
	a.log.Debug("connector clicked",
		zap.String("endpoint", endpoint),
		zap.Stringer("direction", d),
		zap.Stringer("outcome", outcome),
	)
	return outcome.String()
}

// Edges returns every edge in snapshot form, committed edges first and the
// pending edge, if any, last.
func (a *App) Edges() []graph.EdgeRecord {
	return a.Snapshot().Edges
}

// ---------------------------------------------------------------------------
// Routing
// ---------------------------------------------------------------------------

// Routes computes geometry for every committed edge without touching the
// update flags.
func (a *App) Routes() ([]RouteData, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	routes, err := route.All(a.graph, a.layout)
	return routeData(routes), err
}

// RefreshRoutes recomputes the stale edges and acknowledges each one.
func (a *App) RefreshRoutes() ([]RouteData, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.refresh()
}

// RefreshMeasured is RefreshRoutes for a frontend that measured its own
// connector and frame rectangles. Edges it did not report stay stale.
func (a *App) RefreshMeasured(m layout.Measured) ([]RouteData, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.refreshWith(m)
}

func (a *App) refresh() ([]RouteData, error) {
	return a.refreshWith(a.layout)
}

func (a *App) refreshWith(l layout.Layout) ([]RouteData, error) {
	routes, err := route.Refresh(a.graph, l)
	metrics.EdgesRerouted.Add(float64(len(routes)))
	if err != nil {
		a.log.Warn("refresh routes", zap.Error(err))
	}
	return routeData(routes), err
}

// Acknowledge clears the update flag of one committed edge after the
// frontend recomputed it itself.
func (a *App) Acknowledge(edge int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.graph.Acknowledge(graph.EdgeID(edge))
}

func routeData(routes map[graph.EdgeID]geometry.Route) []RouteData {
	out := make([]RouteData, 0, len(routes))
	for id, r := range routes {
		out = append(out, RouteData{Edge: id, Route: r})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Edge < out[j].Edge })
	return out
}

// ---------------------------------------------------------------------------
// Evaluation
// ---------------------------------------------------------------------------

// Evaluate compiles the board and runs it, returning the value of every
// variable.
func (a *App) Evaluate() EvalResult {
	result := EvalResult{
		Variables: []string{},
		Values:    map[string]engine.Value{},
		Errors:    []EvalErrorData{},
	}

	start := time.Now()
	res, evalErrs, err := a.engine.Evaluate(a.Snapshot())
	metrics.EvalDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		a.log.Error("evaluate", zap.Error(err))
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	for _, e := range evalErrs {
		result.Errors = append(result.Errors, EvalErrorData{
			Line:    e.Line,
			Col:     e.Col,
			Message: e.Message,
		})
	}
	if res == nil {
		return result
	}

	result.Source = res.Source
	if res.Variables != nil {
		result.Variables = res.Variables
	}
	for name, v := range res.Values {
		result.Values[name] = v
	}
	return result
}

// ---------------------------------------------------------------------------
// Persistence
// ---------------------------------------------------------------------------

// Snapshot returns the board in its serializable form.
func (a *App) Snapshot() graph.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.graph.Snapshot()
}

// Restore replaces the board with the one described by snap. The current
// board is kept when snap does not validate.
func (a *App) Restore(snap graph.Snapshot) error {
	g, err := graph.FromSnapshot(snap)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.reset(g)
	a.mu.Unlock()

	a.log.Info("board restored",
		zap.Int("nodes", len(snap.Nodes)),
		zap.Int("edges", len(snap.Edges)),
	)
	return nil
}

// SaveBoard writes the board to the save directory under name.
func (a *App) SaveBoard(name string) error {
	if err := a.store.Save(name, a.Snapshot()); err != nil {
		a.log.Error("save board", zap.String("name", name), zap.Error(err))
		return err
	}
	a.log.Info("board saved", zap.String("name", name))
	return nil
}

// LoadBoard replaces the board with the one saved under name.
func (a *App) LoadBoard(name string) error {
	snap, err := a.store.Load(name)
	if err != nil {
		return err
	}
	if err := a.Restore(snap); err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	return nil
}

// Boards lists the names of saved boards.
func (a *App) Boards() ([]string, error) {
	return a.store.List()
}
