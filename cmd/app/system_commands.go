package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/utenadev/gca4g/cmd/app/commands"
	"github.com/utenadev/gca4g/internal/app"
	"github.com/utenadev/gca4g/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the message server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Create the key/value table for the postgres and mysql storage drivers",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				if cfg.StorageDriver == "blob" {
					return fmt.Errorf("storage driver %q needs no migrations", cfg.StorageDriver)
				}
				return commands.RunMigrations(container.Logger(), cfg.StorageDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "hash-token",
			Usage: "Generate a bearer token for the message server and print its hash",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunHashToken(container.TokenService(), cmd.String("format"), commands.DefaultIO())
			},
		},
	}
}
