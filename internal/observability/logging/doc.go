// Package logging builds the process-wide slog logger and attaches the
// request ID carried in a context to log records.
//
// LOG_LEVEL selects debug, info, warn or error; LOG_FORMAT=text switches the
// JSON handler to a text one for local runs.
package logging
