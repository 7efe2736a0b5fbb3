package web

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vbonduro/boxbox/internal/domain"
	"github.com/vbonduro/boxbox/internal/scoring"
	"github.com/vbonduro/boxbox/internal/service"
)

// Services are the application services the web layer drives.
type Services struct {
	Cars        *service.CarService
	Members     *service.MemberService
	Performance *service.PerformanceService
}

type Server struct {
	cars        *service.CarService
	members     *service.MemberService
	performance *service.PerformanceService
	templates   fs.FS
	router      chi.Router
	tmplFuncs   template.FuncMap
	metrics     *metrics
	logger      *slog.Logger
	httpServer  *http.Server
}

func NewServer(svcs Services, tmpl fs.FS, logger *slog.Logger) *Server {
	s := &Server{
		cars:        svcs.Cars,
		members:     svcs.Members,
		performance: svcs.Performance,
		templates:   tmpl,
		router:      chi.NewRouter(),
		metrics:     newMetrics(),
		logger:      logger,
		tmplFuncs: template.FuncMap{
			"rating":     scoring.Rating,
			"strengths":  scoring.Strengths,
			"profile":    profile,
			"attrValue":  attrValue,
			"hasAttr":    hasAttr,
			"isKeyAttr":  isKeyAttr,
			"barWidth":   barWidth,
			"date":       func(t time.Time) string { return t.Format("2 Jan 2006") },
			"join":       strings.Join,
			"list":       func(v ...any) []any { return v },
			"roles":      func() []domain.RoleProfile { return domain.Roles },
			"countries":  func() []string { return domain.Countries },
			"attributes": func() []domain.Attribute { return domain.AllAttributes },
		},
	}
	s.httpServer = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)

	r.Get("/", s.handleHome)

	r.Route("/cars", func(r chi.Router) {
		r.Get("/", s.handleListCars)
		r.Get("/new", s.handleNewCar)
		r.Post("/", s.handleCreateCar)
		r.Get("/{id}", s.handleGetCar)
		r.Get("/{id}/edit", s.handleEditCar)
		r.Post("/{id}", s.handleUpdateCar)
		r.Delete("/{id}", s.handleDeleteCar)
		r.Post("/{id}/delete", s.handleDeleteCar)
	})

	r.Route("/members", func(r chi.Router) {
		r.Get("/", s.handleListMembers)
		r.Get("/new", s.handleNewMember)
		r.Post("/", s.handleCreateMember)
		r.Get("/{id}", s.handleGetMember)
		r.Get("/{id}/edit", s.handleEditMember)
		r.Post("/{id}", s.handleUpdateMember)
		r.Delete("/{id}", s.handleDeleteMember)
		r.Post("/{id}/delete", s.handleDeleteMember)
		r.Post("/{id}/portrait", s.handleUploadPortrait)
		r.Get("/{id}/portrait", s.handleGetPortrait)
	})

	r.Get("/performance", s.handlePerformance)

	r.Route("/api/v1", s.registerAPIRoutes)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", s.metrics.handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.renderError(w, http.StatusNotFound, "Page not found", "/", "Back to the paddock")
	})
}

// securityHeaders sets the standard hardening headers on every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy",
			"default-src 'self'; "+
				"script-src 'self' 'unsafe-inline' https://unpkg.com; "+
				"style-src 'self' 'unsafe-inline' https://fonts.googleapis.com; "+
				"font-src https://fonts.gstatic.com; "+
				"img-src 'self' data:; "+
				"connect-src 'self'")
		next.ServeHTTP(w, r)
	})
}

// instrument logs every request and records it in the request metrics,
// labelled by the matched route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		s.metrics.observe(r.Method, route, status, elapsed)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration_ms", elapsed.Milliseconds(),
			"request_id", requestID(r),
		)
	})
}

func requestID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe blocks until the server stops. It returns
// http.ErrServerClosed after Shutdown, including a Shutdown that happened
// before it was called.
func (s *Server) ListenAndServe(addr string) error {
	const op = "web.Server.ListenAndServe"
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.logger.With(slog.String("op", op)).Info("starting server", "addr", ln.Addr().String())
	return s.httpServer.Serve(ln)
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	const op = "web.Server.Shutdown"
	s.logger.With(slog.String("op", op)).Info("stopping server")
	return s.httpServer.Shutdown(ctx)
}

// renderPage parses and executes a full-page template set with the given
// status. Output is buffered so a template failure still yields a clean 500.
func (s *Server) renderPage(w http.ResponseWriter, status int, data map[string]any, files ...string) {
	s.render(w, status, "base", data, append([]string{"base.html"}, files...))
}

// renderPartial executes the named fragment for HTMX swaps.
func (s *Server) renderPartial(w http.ResponseWriter, name string, data any, files ...string) {
	s.render(w, http.StatusOK, name, data, files)
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any, files []string) {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, files...)
	if err != nil {
		s.logger.Error("parse templates failed", "files", files, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("render template failed", "template", name, "files", files, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderError shows the error page with a single way out.
func (s *Server) renderError(w http.ResponseWriter, status int, message, backHref, backLabel string) {
	s.renderPage(w, status, map[string]any{
		"Title":     http.StatusText(status),
		"ActiveNav": "",
		"Status":    status,
		"Message":   message,
		"BackHref":  backHref,
		"BackLabel": backLabel,
	}, "pages/error.html")
}

func profile(role domain.Role) domain.RoleProfile {
	p, _ := domain.ProfileFor(role)
	return p
}

func attrValue(attrs domain.Attributes, attr domain.Attribute) int {
	v, _ := attrs.Get(attr)
	return v
}

func hasAttr(attrs domain.Attributes, attr domain.Attribute) bool {
	_, ok := attrs.Get(attr)
	return ok
}

func isKeyAttr(role domain.Role, attr domain.Attribute) bool {
	p, _ := domain.ProfileFor(role)
	for _, k := range p.KeyAttributes {
		if k == attr {
			return true
		}
	}
	return false
}

// barWidth turns a 0-10 score into a 0-100 percentage.
func barWidth(v any) int {
	var f float64
	switch n := v.(type) {
	case int:
		f = float64(n)
	case float64:
		f = n
	}
	w := int(f * 10)
	if w < 0 {
		return 0
	}
	if w > 100 {
		return 100
	}
	return w
}
