// Package trace is the tracing subsystem of dalc.
//
// It records the driver run, each compilation unit and, at debug level, every
// function registration and call resolution, so slow or surprising checks can
// be inspected after the fact.
//
// # Usage
//
//	dalc check --trace=- --trace-level=detail units/
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Failures only
//   - LevelPhase: Driver boundaries
//   - LevelDetail: Per-unit spans
//   - LevelDebug: Every registration and resolution
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeUnit, "unit:orders", parentID)
//	defer span.End("")
package trace
