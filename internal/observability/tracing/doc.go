// Package tracing wires OpenTelemetry spans into the HTTP stack and the
// background jobs. Spans go to whatever TracerProvider is installed globally;
// without one they are no-ops.
package tracing
