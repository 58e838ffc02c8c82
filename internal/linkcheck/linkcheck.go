// Package linkcheck probes the absolute URLs a site record publishes (site,
// author and repository links) and reports which of them respond.
package linkcheck

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kitware/sensei-site/site"
)

// Link is a named URL taken from the site record.
type Link struct {
	Name string
	URL  string
}

// Result is the outcome of probing one link.
type Result struct {
	Link
	Status  int
	Healthy bool
	Err     error
}

// Links returns the absolute URLs published by s, skipping empty fields.
func Links(s site.Site) []Link {
	candidates := []Link{
		{Name: "url", URL: s.Config.SiteURL},
		{Name: "authorLink", URL: s.Config.AuthorLink},
		{Name: "github", URL: s.RepositoryURL()},
	}

	links := make([]Link, 0, len(candidates))
	for _, l := range candidates {
		if l.URL != "" {
			links = append(links, l)
		}
	}
	return links
}

// Checker probes links over HTTP.
type Checker struct {
	client *http.Client
	logger *slog.Logger
}

// New returns a checker whose individual probes time out after timeout.
func New(timeout time.Duration, logger *slog.Logger) *Checker {
	return &Checker{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Check probes every link concurrently and returns results in link order.
func (c *Checker) Check(ctx context.Context, links []Link) []Result {
	results := make([]Result, len(links))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, l := range links {
		g.Go(func() error {
			results[i] = c.probe(ctx, l)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (c *Checker) probe(ctx context.Context, l Link) Result {
	res := Result{Link: l}

	status, err := c.do(ctx, http.MethodHead, l.URL)
	if err == nil && status == http.StatusMethodNotAllowed {
		status, err = c.do(ctx, http.MethodGet, l.URL)
	}

	res.Status = status
	res.Err = err
	res.Healthy = err == nil && status >= 200 && status < 400

	if res.Healthy {
		c.logger.Info("Link is up",
			slog.String("link", l.Name),
			slog.String("url", l.URL),
			slog.Int("status", status))
	} else {
		attrs := []any{
			slog.String("link", l.Name),
			slog.String("url", l.URL),
			slog.Int("status", status),
		}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}
		c.logger.Warn("Link is down", attrs...)
	}

	return res
}

func (c *Checker) do(ctx context.Context, method, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}

// Healthy reports whether every result is healthy.
func Healthy(results []Result) bool {
	for _, r := range results {
		if !r.Healthy {
			return false
		}
	}
	return true
}
