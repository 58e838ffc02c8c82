package main

import (
	"net/http"

	"github.com/kitware/sensei-site/internal/export"
	"github.com/kitware/sensei-site/internal/handler"
	"github.com/kitware/sensei-site/internal/metrics"
)

func setupRouter(siteHandler *handler.SiteHandler, metricsCollector *metrics.Collector) *http.ServeMux {
	mux := http.NewServeMux()

	for _, f := range export.Formats() {
		route := "/config." + string(f)
		mux.Handle("GET "+route, siteHandler.Instrument(route, siteHandler.ServeConfig(f)))
	}
	mux.Handle("GET /docs/{path...}", siteHandler.Instrument("/docs", http.HandlerFunc(siteHandler.ServeDoc)))
	mux.Handle("GET /healthz", siteHandler.Instrument("/healthz", http.HandlerFunc(siteHandler.Healthz)))
	mux.HandleFunc("GET /metrics", metricsCollector.Handler())

	return mux
}
