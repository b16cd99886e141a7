package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/securetransfer/cmd/app/commands"
	"github.com/allisson/securetransfer/internal/app"
	"github.com/allisson/securetransfer/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the node: HTTP API, metrics, session sweeper and trust clock",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Create the vault tables for the postgres and mysql vault drivers",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.VaultDriver, cfg.DBConnectionString)
			},
		},
	}
}
