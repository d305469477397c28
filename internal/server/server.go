// Package server exposes asset renders over HTTP. Each request gets its own
// render context; only the registry is shared between requests.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	gocache "github.com/patrickmn/go-cache"

	"github.com/eventblocks/cli/internal/assets"
	"github.com/eventblocks/cli/internal/page"
)

// Cache headers set on /head responses.
const (
	HeaderCache    = "X-Evb-Cache"
	HeaderRenderID = "X-Evb-Render-Id"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HandlerConfig configures a Handler.
type HandlerConfig struct {
	Scheduler *assets.Scheduler
	Catalog   page.Catalog
	Head      page.HeadRenderer

	// Theme is used when a request names none.
	Theme string
	// Legacy forces legacy fallback for every request.
	Legacy bool

	// CacheTTL is how long rendered markup is cached per normalized query.
	// Zero disables the cache.
	CacheTTL time.Duration

	Logger *log.Logger
}

// Handler serves head markup and manifests.
type Handler struct {
	cfg   HandlerConfig
	cache *gocache.Cache
	log   *log.Logger
}

type cachedHead struct {
	renderID string
	etag     string
	body     string
}

// NewHandler creates a handler. A nil catalog uses page.DefaultCatalog.
func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.Catalog == nil {
		cfg.Catalog = page.DefaultCatalog()
	}
	h := &Handler{cfg: cfg, log: cfg.Logger}
	if h.log == nil {
		h.log = log.Default()
	}
	if cfg.CacheTTL > 0 {
		h.cache = gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return h
}

// Routes returns the HTTP routes.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /head", h.Head)
	mux.HandleFunc("GET /manifest", h.Manifest)
	mux.HandleFunc("GET /healthz", h.Health)
	return mux
}

// renderRequest is a parsed /head or /manifest query.
type renderRequest struct {
	page   assets.PageContext
	theme  string
	legacy bool
	blocks []string
	late   []string
}

// key is the normalized cache key. Block order matters for emission order,
// so it is kept; repeated and comma-separated forms normalize the same.
func (r renderRequest) key() string {
	return strings.Join([]string{
		r.page.Key(),
		r.theme,
		strconv.FormatBool(r.legacy),
		strings.Join(r.blocks, ","),
		strings.Join(r.late, ","),
	}, "|")
}

func (h *Handler) parse(r *http.Request) (renderRequest, error) {
	q := r.URL.Query()
	req := renderRequest{
		page:   assets.ParsePageContext(q.Get("page")),
		theme:  q.Get("theme"),
		legacy: h.cfg.Legacy,
		blocks: splitList(q["block"]),
		late:   splitList(q["late"]),
	}
	if req.theme == "" {
		req.theme = h.cfg.Theme
	}
	if v := q.Get("legacy"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return req, fmt.Errorf("legacy must be a boolean, got %q", v)
		}
		req.legacy = req.legacy || b
	}
	return req, nil
}

func (h *Handler) render(ctx context.Context, req renderRequest) *assets.Manifest {
	return h.cfg.Scheduler.Render(ctx,
		assets.PageInfo{Context: req.page, Theme: req.theme, Legacy: req.legacy},
		h.cfg.Catalog.Blocks(req.blocks),
		h.cfg.Catalog.Blocks(req.late),
	)
}

// Head renders the stylesheet links for a page.
func (h *Handler) Head(w http.ResponseWriter, r *http.Request) {
	req, err := h.parse(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}

	key := req.key()
	if h.cache != nil {
		if v, found := h.cache.Get(key); found {
			if c, ok := v.(cachedHead); ok {
				h.log.Debug("cache hit", "key", key)
				h.writeHead(w, r, c, "hit")
				return
			}
		}
	}

	m := h.render(r.Context(), req)
	body, err := h.cfg.Head.RenderString(m)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}

	c := cachedHead{renderID: m.RenderID, etag: m.ETag(), body: body}
	status := "miss"
	if h.cache == nil {
		status = "off"
	} else {
		h.cache.SetDefault(key, c)
	}
	h.writeHead(w, r, c, status)
}

func (h *Handler) writeHead(w http.ResponseWriter, r *http.Request, c cachedHead, cacheStatus string) {
	w.Header().Set(HeaderCache, cacheStatus)
	w.Header().Set(HeaderRenderID, c.renderID)
	w.Header().Set("ETag", c.etag)
	if etagMatches(r.Header.Values("If-None-Match"), c.etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(c.body))
}

// etagMatches applies the weak comparison If-None-Match calls for: any
// listed tag, or "*", matching etag with W/ prefixes ignored.
func etagMatches(headers []string, etag string) bool {
	want := strings.TrimPrefix(etag, "W/")
	for _, h := range headers {
		for _, tag := range strings.Split(h, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "*" || strings.TrimPrefix(tag, "W/") == want {
				return true
			}
		}
	}
	return false
}

// Manifest returns the render manifest as JSON. Manifests are never cached.
func (h *Handler) Manifest(w http.ResponseWriter, r *http.Request) {
	req, err := h.parse(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, h.render(r.Context(), req))
}

// Health reports liveness and the registry size.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	reg := h.cfg.Scheduler.Registry()
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"modules": len(reg.Names()),
		"themes":  reg.Themes(),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("failed to encode JSON response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string) {
	h.writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// splitList flattens repeated and comma-separated query values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Server wraps a Handler with an http.Server for lifecycle management.
type Server struct {
	server   *http.Server
	listener net.Listener
	log      *log.Logger
}

// NewServer binds addr. Port 0 picks a free port; see Addr.
func NewServer(addr string, h *Handler) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return &Server{
		listener: listener,
		log:      h.log,
		server: &http.Server{
			Handler:           h.Routes(),
			ReadTimeout:       10 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      10 * time.Second,
		},
	}, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("serving stylesheet heads", "addr", s.Addr())
		errCh <- s.server.Serve(s.listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}
