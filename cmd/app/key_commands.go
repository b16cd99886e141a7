package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/securetransfer/cmd/app/commands"
	"github.com/allisson/securetransfer/internal/app"
	"github.com/allisson/securetransfer/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-key",
			Usage: "Create the payload encryption key in the configured vault if it does not exist",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				engine, err := container.CryptoEngine()
				if err != nil {
					return err
				}

				return commands.RunCreateKey(
					ctx,
					engine,
					container.Logger(),
					commands.DefaultIO().Writer,
					cfg.CryptoKeyName,
					cfg.VaultDriver,
				)
			},
		},
	}
}
