package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/utenadev/gca4g/cmd/app/commands"
	"github.com/utenadev/gca4g/internal/app"
	"github.com/utenadev/gca4g/internal/config"
)

func getProjectCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "set-project",
			Usage:     "Select the Apps Script project by script ID or editor URL",
			ArgsUsage: "<script-id-or-url>",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				projectUseCase, err := container.ProjectUseCase()
				if err != nil {
					return err
				}

				return commands.RunSetProject(
					ctx,
					projectUseCase,
					container.Logger(),
					cmd.Args().First(),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "authenticate",
			Usage: "Acquire and store an Apps Script access token",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				oauthUseCase, err := container.OAuthUseCase()
				if err != nil {
					return err
				}

				return commands.RunAuthenticate(ctx, oauthUseCase, container.Logger(), commands.DefaultIO())
			},
		},
		{
			Name:  "pull",
			Usage: "Fetch the files of the configured project",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				projectUseCase, err := container.ProjectUseCase()
				if err != nil {
					return err
				}

				return commands.RunPull(
					ctx,
					projectUseCase,
					container.Logger(),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "apply",
			Usage: "Merge generated updates into the configured project and push it",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "file",
					Aliases: []string{"i"},
					Value:   "-",
					Usage:   "Path to the updates JSON, or '-' for stdin",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				projectUseCase, err := container.ProjectUseCase()
				if err != nil {
					return err
				}

				return commands.RunApply(
					ctx,
					projectUseCase,
					container.Logger(),
					cmd.String("file"),
					commands.DefaultIO(),
				)
			},
		},
	}
}
