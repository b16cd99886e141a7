package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/allisson/securetransfer/cmd/app/commands"
	redactionService "github.com/allisson/securetransfer/internal/redaction/service"
)

func getToolCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "redact",
			Usage: "Replace emails, phone numbers and capitalized names in text",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "text",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Text to redact",
				},
				&cli.StringFlag{
					Name:  "mode",
					Value: "all",
					Usage: "Redaction mode: 'all', 'emails' or 'phones'",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunRedact(
					redactionService.NewEngine(),
					commands.DefaultIO().Writer,
					cmd.String("text"),
					cmd.String("mode"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "trust",
			Usage: "Evaluate the trust policy for the given signals",
			Flags: []cli.Flag{
				&cli.Float64Flag{
					Name:  "battery",
					Value: -1,
					Usage: "Battery fraction in [0, 1]; negative means unknown",
				},
				&cli.StringFlag{
					Name:  "network",
					Value: "wifi",
					Usage: "Network class: 'wifi', 'cellular' or 'none'",
				},
				&cli.IntFlag{
					Name:  "hour",
					Value: -1,
					Usage: "Hour of day in [0, 23]; negative means the current hour",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				var battery *float64
				if level := cmd.Float64("battery"); level >= 0 {
					battery = &level
				}

				return commands.RunEvaluateTrust(
					commands.DefaultIO().Writer,
					battery,
					cmd.String("network"),
					int(cmd.Int("hour")),
					time.Now(),
					cmd.String("format"),
				)
			},
		},
		{
			Name:      "export",
			Usage:     "Encode text (or stdin) into the portable base64 format",
			ArgsUsage: "[text]",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunExportPortable(commands.DefaultIO(), cmd.Args().First())
			},
		},
		{
			Name:      "import",
			Usage:     "Decode portable base64 text (or stdin) back to the original bytes",
			ArgsUsage: "[portable]",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunImportPortable(commands.DefaultIO(), cmd.Args().First())
			},
		},
	}
}
