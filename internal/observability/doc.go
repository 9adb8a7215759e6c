// Package observability groups the logging, metrics and tracing packages
// shared by the API, the worker and cmsctl.
package observability
