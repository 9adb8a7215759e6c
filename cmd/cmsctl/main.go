// Command cmsctl runs maintenance tasks against the CMS database.
package main

import (
	"context"
	"os"

	"github.com/mcarbmont89/full-congreso-sub000/internal/config"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/respond"
	"github.com/mcarbmont89/full-congreso-sub000/internal/observability/logging"
)

func main() {
	logger := logging.NewTextLogger()
	if err := config.LoadDotEnv(); err != nil {
		logger.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	r := &Runner{Out: os.Stdout, Logger: logger}
	if err := newApp(r).Run(context.Background(), os.Args); err != nil {
		logger.Error("command failed", "error", respond.SanitizeError(err))
		os.Exit(1)
	}
}
