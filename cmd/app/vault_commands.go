package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/utenadev/gca4g/cmd/app/commands"
	"github.com/utenadev/gca4g/internal/app"
	"github.com/utenadev/gca4g/internal/config"
)

func getVaultCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "save-api-key",
			Usage: "Encrypt the Gemini API key under a master password and store it",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "api-key",
					Usage: "Gemini API key (omit to be prompted)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				vaultUseCase, err := container.VaultUseCase()
				if err != nil {
					return err
				}
				codeGenUseCase, err := container.CodeGenUseCase()
				if err != nil {
					return err
				}

				return commands.RunSaveAPIKey(
					ctx,
					vaultUseCase,
					codeGenUseCase,
					container.Logger(),
					cmd.String("api-key"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "generate",
			Usage: "Generate Apps Script updates for a prompt and print them as JSON",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "prompt",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "What the generated code should do",
				},
				&cli.BoolFlag{
					Name:  "with-project",
					Usage: "Send the configured project's files as context",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				vaultUseCase, err := container.VaultUseCase()
				if err != nil {
					return err
				}
				codeGenUseCase, err := container.CodeGenUseCase()
				if err != nil {
					return err
				}
				projectUseCase, err := container.ProjectUseCase()
				if err != nil {
					return err
				}

				return commands.RunGenerate(
					ctx,
					vaultUseCase,
					codeGenUseCase,
					projectUseCase,
					container.Logger(),
					cmd.String("prompt"),
					cmd.Bool("with-project"),
					commands.DefaultIO(),
				)
			},
		},
	}
}
