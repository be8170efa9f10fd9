// Package trace records what a lint run is doing: which configuration was
// loaded, how files were discovered, how long each template and each check
// took.
//
// # Usage
//
//	liquid-lint --trace=- --trace-level=detail app/views
//
// # Tracers
//
//   - Nop: zero overhead when disabled
//   - StreamTracer: immediate write (text or NDJSON) to a file or stderr
//   - RingTracer: last N events kept in memory, dumped on failure
//   - MultiTracer: fan-out
//
// # Levels and scopes
//
// LevelPhase emits driver and pass spans (config, discovery, lint), LevelDetail
// adds one span per template, LevelDebug adds per-check spans.
//
// The tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "discover", 0)
//	defer span.End("")
package trace
