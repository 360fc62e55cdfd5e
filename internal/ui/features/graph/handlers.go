// Package graph serves the lineage dashboard's JSON and SSE endpoints:
// graph snapshots, layout passes, path traces, search highlight, and
// live update notifications.
package graph

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/backend"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/hierarchy"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/highlight"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/layout"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/store"
	"github.com/Joseph-k-iype/datavisual-graph-sub000/internal/ui/notifier"
)

const (
	sessionName        = "datavisual"
	sessionKeySchema   = "schemaID"
	sessionKeyStrategy = "strategy"
)

// Handlers provides HTTP handlers for the graph feature.
type Handlers struct {
	service      backend.Service
	store        store.Store
	engine       *layout.Engine
	sessionStore sessions.Store
	notify       *notifier.Notifier
	generation   *Generation
	logger       *slog.Logger
}

// NewHandlers creates a Handlers instance.
func NewHandlers(
	svc backend.Service,
	st store.Store,
	engine *layout.Engine,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	logger *slog.Logger,
) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		service:      svc,
		store:        st,
		engine:       engine,
		sessionStore: sessionStore,
		notify:       notify,
		generation:   &Generation{},
		logger:       logger,
	}
}

// ListSchemas returns the schema catalog.
func (h *Handlers) ListSchemas(w http.ResponseWriter, r *http.Request) {
	schemas, err := h.store.ListSchemas()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, SchemaListResponse{Schemas: schemas})
}

// GetGraph returns the schema's graph snapshot, decorated for rendering.
// Data instances appear only for the classes named in ?expanded=.
func (h *Handlers) GetGraph(w http.ResponseWriter, r *http.Request) {
	schemaID := chi.URLParam(r, "schemaID")

	lg, err := h.service.GetLineageGraph(r.Context(), schemaID, splitParam(r.URL.Query().Get("expanded")))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.rememberSession(w, r, sessionKeySchema, schemaID)

	forest := hierarchy.BuildForest(lg.Nodes, lg.Edges)
	nodes, edges := highlight.Clear(lg.Nodes, lg.Edges)
	h.writeJSON(w, http.StatusOK, GraphResponse{
		Nodes:     nodes,
		Edges:     edges,
		Hierarchy: forest.Roots,
		Metadata:  lg.Metadata,
	})
}

// ComputeLayout runs a layout pass over the schema's visible graph.
// Strategy and options come from the query string; unknown option values
// fail the request, out-of-range ones clamp. The response carries a
// generation token, and a pass that is already stale when it completes is
// answered 409 so the client never applies it.
func (h *Handlers) ComputeLayout(w http.ResponseWriter, r *http.Request) {
	schemaID := chi.URLParam(r, "schemaID")
	query := r.URL.Query()

	strategy, err := layout.ParseStrategy(query.Get("strategy"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	opts, err := layout.DecodeOptions(optionMap(query))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	token := h.generation.Next()

	lg, err := h.service.GetLineageGraph(r.Context(), schemaID, splitParam(query.Get("expanded")))
	if err != nil {
		h.writeError(w, err)
		return
	}

	// Only hierarchy roots are positioned as top-level entities;
	// descendants render inside their parent.
	rootNodes, rootEdges := hierarchy.RootGraph(lg.Nodes, lg.Edges)

	result, err := h.engine.Compute(r.Context(), rootNodes, rootEdges, strategy, opts)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if !h.generation.IsCurrent(token) {
		h.logger.Debug("discarding stale layout pass",
			"schema", schemaID, "generation", token, "current", h.generation.Current())
		h.writeJSON(w, http.StatusConflict, errorResponse{Error: "layout superseded by a newer request"})
		return
	}

	h.rememberSession(w, r, sessionKeyStrategy, string(strategy))

	resp := LayoutResponse{
		Strategy:   strategy,
		Generation: token,
		Result:     result,
	}
	if result.Diagnostics != nil {
		resp.ExcludedEdges = result.Diagnostics.DanglingEdges
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// FindPaths answers a trace query between the node ids in ?nodes=.
func (h *Handlers) FindPaths(w http.ResponseWriter, r *http.Request) {
	schemaID := chi.URLParam(r, "schemaID")
	query := r.URL.Query()

	nodeIDs := splitParam(query.Get("nodes"))
	if len(nodeIDs) < 2 {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "at least two node ids are required"})
		return
	}

	maxDepth := 0
	if raw := query.Get("maxDepth"); raw != "" {
		maxDepth, _ = strconv.Atoi(raw)
	}

	res, err := h.service.FindPaths(r.Context(), schemaID, nodeIDs, maxDepth)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

// GetStats returns schema statistics.
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetSchemaStats(r.Context(), chi.URLParam(r, "schemaID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

// Search highlights nodes matching ?q= and dims the rest. An empty query
// returns the graph at full opacity.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	schemaID := chi.URLParam(r, "schemaID")
	q := r.URL.Query().Get("q")

	lg, err := h.service.GetLineageGraph(r.Context(), schemaID, splitParam(r.URL.Query().Get("expanded")))
	if err != nil {
		h.writeError(w, err)
		return
	}

	overlay := highlight.MatchQuery(lg.Nodes, q)
	nodes, edges := highlight.Apply(lg.Nodes, lg.Edges, overlay)

	h.writeJSON(w, http.StatusOK, HighlightResponse{
		Query:   q,
		Matches: overlay.MatchedNodeIDs(),
		Nodes:   nodes,
		Edges:   edges,
	})
}

// Updates streams schema-change signals over SSE. The client re-fetches
// the graph whenever a signal for its selected schema arrives.
func (h *Handlers) Updates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	ch := h.notify.Subscribe()
	defer h.notify.Unsubscribe(ch)

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if err := sse.MarshalAndPatchSignals(UpdateSignal{
				SchemaID: ev.SchemaID,
				Name:     ev.Name,
			}); err != nil {
				_ = sse.ConsoleError(err)
				return
			}
		}
	}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, store.ErrSchemaNotFound) {
		status = http.StatusNotFound
	}
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// rememberSession persists a key in the cookie session. Session failures
// are logged, never fatal: the UI works without sticky state.
func (h *Handlers) rememberSession(w http.ResponseWriter, r *http.Request, key, value string) {
	session, err := h.sessionStore.Get(r, sessionName)
	if err != nil {
		h.logger.Debug("session read failed", "error", err)
		return
	}
	session.Values[key] = value
	if err := session.Save(r, w); err != nil {
		h.logger.Debug("session save failed", "error", err)
	}
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// optionMap lifts the query string into the loosely-typed map the layout
// option decoder expects. Routing keys are not options.
func optionMap(query map[string][]string) map[string]any {
	raw := make(map[string]any, len(query))
	for k, vs := range query {
		switch k {
		case "strategy", "expanded", "q", "nodes", "maxDepth":
			continue
		}
		if len(vs) > 0 {
			raw[k] = vs[0]
		}
	}
	return raw
}
