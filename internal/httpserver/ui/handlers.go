package ui

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"finitefield.org/catalog-viewer/internal/catalog"
	"finitefield.org/catalog-viewer/internal/catalog/display"
	"finitefield.org/catalog-viewer/internal/observability"
	catalogtpl "finitefield.org/catalog-viewer/internal/templates/catalog"
	"finitefield.org/catalog-viewer/internal/templates/helpers"
)

// CatalogReader exposes the loaded catalog.
type CatalogReader interface {
	Snapshot() catalog.Snapshot
}

// Dependencies collects what the UI handlers need.
type Dependencies struct {
	Catalog         CatalogReader
	BasePath        string
	DefaultPageSize int
	Display         display.Options
}

// Handlers exposes HTTP handlers for the catalog page and its fragments.
type Handlers struct {
	catalog CatalogReader
	links   helpers.Links
	display display.Options
}

// NewHandlers wires the UI handler set.
func NewHandlers(deps Dependencies) *Handlers {
	reader := deps.Catalog
	if reader == nil {
		reader = catalog.NewLoadedStore([]catalog.Product{})
	}
	opts := deps.Display
	if len(opts.PageSizes) == 0 {
		opts.PageSizes = catalog.DefaultPageSizes
	}
	return &Handlers{
		catalog: reader,
		links:   helpers.NewLinks(deps.BasePath, deps.DefaultPageSize),
		display: opts,
	}
}

// Links returns the URL builder used by the handlers.
func (h *Handlers) Links() helpers.Links {
	return h.links
}

// CatalogPage renders the catalog index page with SSR.
func (h *Handlers) CatalogPage(w http.ResponseWriter, r *http.Request) {
	req := h.buildRequest(r)
	table := catalogtpl.TablePayload(h.links, req.session, req.snapshot, h.display)
	page := catalogtpl.BuildPageData(h.links, req.session, req.snapshot, table)

	templ.Handler(catalogtpl.Index(page)).ServeHTTP(w, r)
}

// CatalogTable renders the product table fragment for htmx requests.
func (h *Handlers) CatalogTable(w http.ResponseWriter, r *http.Request) {
	req := h.buildRequest(r)
	table := catalogtpl.TablePayload(h.links, req.session, req.snapshot, h.display)

	if !req.snapshot.Loading {
		w.Header().Set("HX-Push-Url", h.links.Page(req.session.View().State))
	}

	templ.Handler(catalogtpl.Table(table)).ServeHTTP(w, r)
}

// Healthz reports liveness and whether the catalog has been loaded.
func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	snapshot := h.catalog.Snapshot()
	payload := struct {
		Status   string `json:"status"`
		Loaded   bool   `json:"loaded"`
		Products int    `json:"products"`
		Error    string `json:"error,omitempty"`
	}{
		Status:   "ok",
		Loaded:   snapshot.Loaded,
		Products: len(snapshot.Products),
		Error:    snapshot.ErrorMessage(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		observability.FromContext(r.Context()).Warn("healthz: encode failed", zap.Error(err))
	}
}

type catalogRequest struct {
	snapshot catalog.Snapshot
	session  *catalog.Session
}

func (h *Handlers) buildRequest(r *http.Request) catalogRequest {
	snapshot := h.catalog.Snapshot()
	state := h.links.ParseState(r.URL.Query())
	session := catalog.NewSession(snapshot.Products, state)

	view := session.View()
	observability.FromContext(r.Context()).Debug("catalog view",
		zap.String("query", state.Query),
		zap.Int("page", view.Page.Number),
		zap.Int("page_size", view.Page.Size),
		zap.String("sort", string(state.Sort.Column)),
		zap.String("dir", string(state.Sort.Direction)),
		zap.Int("matched", len(view.Matched)),
	)

	return catalogRequest{snapshot: snapshot, session: session}
}
