// Package handler implements the preview server's HTTP handlers: exported site
// configuration, rendered documentation pages and a liveness probe.
package handler
