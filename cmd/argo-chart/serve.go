package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rxtech-lab/argo-chart/internal/api"
	"github.com/rxtech-lab/argo-chart/internal/datasource"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve tooltip rendering and volume statistics over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "address",
				Aliases: []string{"a"},
				Usage:   "Listen address",
				Value:   ":8080",
			},
			&cli.StringFlag{
				Name:    "trades",
				Aliases: []string{"t"},
				Usage:   "Parquet or CSV trade file answering volume queries",
			},
		},
		Action: serveAction,
	}
}

// serveAction runs the API until the context is cancelled or the process is
// interrupted.
func serveAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	var opts []api.Option

	if path := cmd.String("trades"); path != "" {
		ds, err := datasource.NewDataSource(":memory:", log)
		if err != nil {
			return err
		}
		defer ds.Close()

		if err := ds.LoadTrades(path); err != nil {
			return err
		}

		count, err := ds.CountTrades()
		if err != nil {
			return err
		}

		log.Info("Loaded trades", zap.String("path", path), zap.Int("count", count))

		opts = append(opts, api.WithTradeSource(ds))
	}

	server := api.NewServer(log, opts...)
	if err := server.Start(cmd.String("address")); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info("Shutting down API server")

	return server.Stop()
}
