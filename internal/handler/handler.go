package handler

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/kitware/sensei-site/internal/export"
	"github.com/kitware/sensei-site/internal/metrics"
	"github.com/kitware/sensei-site/internal/preview"
	"github.com/kitware/sensei-site/site"
)

var errBadPath = errors.New("invalid document path")

// Source yields the current site record.
type Source interface {
	Current() site.Site
}

type SiteHandler struct {
	logger           *slog.Logger
	source           Source
	docsDir          string
	metricsCollector *metrics.Collector
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func NewSiteHandler(logger *slog.Logger, source Source, docsDir string, collector *metrics.Collector) *SiteHandler {
	return &SiteHandler{
		logger:           logger,
		source:           source,
		docsDir:          docsDir,
		metricsCollector: collector,
	}
}

// ServeConfig returns a handler exporting the current record in format.
func (h *SiteHandler) ServeConfig(format export.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := export.Write(&buf, h.source.Current(), format); err != nil {
			h.logger.Error("Failed to export site",
				slog.String("format", string(format)),
				slog.String("error", err.Error()))
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", format.ContentType())
		w.Write(buf.Bytes())
	}
}

// ServeDoc renders the markdown document named by the "path" wildcard.
func (h *SiteHandler) ServeDoc(w http.ResponseWriter, r *http.Request) {
	name, err := docPath(r.PathValue("path"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if filepath.Ext(name) != ".md" {
		http.NotFound(w, r)
		return
	}

	src, err := os.ReadFile(filepath.Join(h.docsDir, filepath.FromSlash(name)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("Failed to read document",
			slog.String("doc", name),
			slog.String("error", err.Error()))
		http.Error(w, "read failed", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := preview.New(h.source.Current()).Render(&buf, name, src); err != nil {
		h.logger.Error("Failed to render document",
			slog.String("doc", name),
			slog.String("error", err.Error()))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (h *SiteHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// Instrument logs each request under route and reports it to the metrics collector.
func (h *SiteHandler) Instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.logger.Debug("Received request",
			slog.String("from", extractClientIP(r)),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("route", route))

		h.emitEvent(metrics.MetricEvent{
			Type:      metrics.EventRequestReceived,
			Timestamp: time.Now(),
			Route:     route,
		})

		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		h.emitEvent(metrics.MetricEvent{
			Type:       metrics.EventResponseCompleted,
			Timestamp:  time.Now(),
			Route:      route,
			Duration:   time.Since(start),
			StatusCode: wrapped.statusCode,
		})
	})
}

// docPath cleans a request path and rejects anything escaping the docs root.
func docPath(raw string) (string, error) {
	if raw == "" || strings.Contains(raw, "\\") {
		return "", errBadPath
	}
	for _, seg := range strings.Split(raw, "/") {
		if seg == ".." {
			return "", errBadPath
		}
	}

	name := path.Clean(raw)
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", errBadPath
	}
	return name, nil
}

func extractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}

	host, _, _ := net.SplitHostPort(r.RemoteAddr)
	return host
}

func (h *SiteHandler) emitEvent(event metrics.MetricEvent) {
	if h.metricsCollector == nil {
		return
	}
	h.metricsCollector.Emit(event)
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}
