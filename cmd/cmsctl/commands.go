package main

import (
	"github.com/urfave/cli/v3"
)

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cmsctl",
		Usage: "Maintenance tasks for the Congreso CMS",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Postgres DSN",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
		},
		After: r.Close,
		Commands: []*cli.Command{
			migrateCommand(r),
			streamStatusCommand(r),
			importNewsCommand(r),
			homepageConfigCommand(r),
		},
	}
}

func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply schema migrations",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "down",
				Usage: "Drop every table instead (destructive)",
			},
		},
		Action: r.Migrate,
	}
}

func streamStatusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "stream-status",
		Usage: "Set the status of a live stream",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     "id",
				Usage:    "Live stream ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "status",
				Usage:    "live | scheduled | ended | cancelled",
				Required: true,
			},
		},
		Action: r.StreamStatus,
	}
}

func importNewsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "import-news",
		Usage: "Run one news feed import pass",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:  "feed-id",
				Usage: "Import only this feed, even when inactive",
			},
		},
		Action: r.ImportNews,
	}
}

func homepageConfigCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "homepage-config",
		Usage: "Homepage configuration",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the effective configuration as YAML",
				Action: r.HomepageConfigShow,
			},
		},
	}
}
