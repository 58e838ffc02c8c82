// Package metrics collects request metrics for the preview server.
//
// A collector goroutine consumes events from a buffered channel and tracks:
//   - Request counts per route
//   - Response times with percentile calculations (P50, P95, P99)
//   - HTTP status code distribution
//   - Site record reloads
//
// Events are emitted without blocking the request path; when the buffer is full
// they are dropped. On shutdown the collector drains queued events.
//
// Example usage:
//
//	collector := metrics.NewCollector(1000, logger)
//	collector.Start(ctx)
//
//	collector.Emit(metrics.MetricEvent{
//		Type:       metrics.EventResponseCompleted,
//		Route:      "/config.js",
//		Duration:   2 * time.Millisecond,
//		StatusCode: 200,
//	})
//
//	snapshot := collector.Snapshot()
package metrics
