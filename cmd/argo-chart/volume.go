package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-chart/internal/datasource"
	"github.com/rxtech-lab/argo-chart/internal/logger"
	"github.com/rxtech-lab/argo-chart/internal/stats"
	"github.com/rxtech-lab/argo-chart/internal/types"
	"github.com/rxtech-lab/argo-chart/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func volumeCommand() *cli.Command {
	return &cli.Command{
		Name:  "volume",
		Usage: "Sum the trailing volume of an asset",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "trades",
				Aliases: []string{"t"},
				Usage:   "Parquet or CSV trade file",
			},
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Volume request file (JSON or YAML) with inline trades",
			},
			&cli.StringFlag{
				Name:    "symbol",
				Aliases: []string{"s"},
				Usage:   "Asset symbol",
				Value:   stats.EthSymbol,
			},
			&cli.StringFlag{
				Name:    "window",
				Aliases: []string{"w"},
				Usage:   "Trailing window as a Go duration",
				Value:   stats.TrailingWindow.String(),
			},
			&cli.TimestampFlag{
				Name:  "now",
				Usage: "End of the window in RFC3339. Defaults to the current time.",
				Config: cli.TimestampConfig{
					Layouts: []string{time.RFC3339, "2006-01-02"},
				},
			},
		},
		Action: volumeAction,
	}
}

func volumeAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	var req stats.VolumeRequest

	switch {
	case cmd.String("input") != "":
		if err := readInput(cmd.String("input"), &req); err != nil {
			return err
		}
	case cmd.String("trades") != "":
		trades, err := loadTrades(log, cmd.String("trades"))
		if err != nil {
			return err
		}

		req.Trades = trades
	default:
		return errors.New(errors.ErrCodeMissingParameter, "either --trades or --input is required")
	}

	if cmd.IsSet("symbol") || req.Symbol == "" {
		req.Symbol = cmd.String("symbol")
	}

	if cmd.IsSet("window") || req.Window == "" {
		req.Window = cmd.String("window")
	}

	if cmd.IsSet("now") {
		req.Now = cmd.Timestamp("now").Unix()
	}

	resp, err := req.Evaluate(time.Now)
	if err != nil {
		return err
	}

	log.Debug("Computed volume", zap.String("symbol", resp.Symbol), zap.Float64("volume", resp.Volume))

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnknown, "failed to encode volume", err)
	}

	return writeOutput(cmd.Root().Writer, "", append(out, '\n'))
}

// loadTrades reads every trade of a parquet or CSV file.
func loadTrades(log *logger.Logger, path string) ([]types.Trade, error) {
	ds, err := datasource.NewDataSource(":memory:", log)
	if err != nil {
		return nil, err
	}
	defer ds.Close()

	if err := ds.LoadTrades(path); err != nil {
		return nil, err
	}

	return ds.Trades(datasource.TradeQuery{
		Symbol: optional.None[string](),
		Since:  optional.None[time.Time](),
	})
}
