package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/securetransfer/cmd/app/commands"
	"github.com/allisson/securetransfer/internal/app"
	"github.com/allisson/securetransfer/internal/config"
)

func getTransferCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "send",
			Usage: "Encrypt a message and dispatch one part per channel",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "message",
					Aliases:  []string{"m"},
					Required: true,
					Usage:    "Message to send",
				},
				&cli.StringSliceFlag{
					Name:    "channel",
					Aliases: []string{"c"},
					Usage:   "Channel to dispatch a part over (local, cloud_relay, short_range_radio); repeatable",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				coordinator, err := container.Coordinator()
				if err != nil {
					return err
				}

				channels := cmd.StringSlice("channel")
				if len(channels) == 0 {
					channels = cfg.DefaultChannels
				}

				return commands.RunSend(
					ctx,
					coordinator,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("message"),
					channels,
					cmd.String("format"),
				)
			},
		},
	}
}
