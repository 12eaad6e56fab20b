package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-chart/internal/datasource"
	"github.com/rxtech-lab/argo-chart/internal/logger"
	"github.com/rxtech-lab/argo-chart/internal/tooltip"
	"github.com/rxtech-lab/argo-chart/internal/types"
	"github.com/rxtech-lab/argo-chart/mocks"
	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "argo-chart-preview",
		Usage: "Move the hover tooltip over candles in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "candles",
				Usage: "Candle file (parquet or csv). Generated candles are shown when empty",
			},
			&cli.StringFlag{
				Name:  "symbol",
				Usage: "Only show candles of this symbol",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Tooltip theme (yaml)",
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "Seed for generated candles",
				Value: 42,
			},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg := tooltip.DefaultConfig()

	if path := cmd.String("config"); path != "" {
		loaded, err := tooltip.LoadConfig(path)
		if err != nil {
			return err
		}

		cfg = loaded
	}

	candles, err := loadCandles(cmd.String("candles"), cmd.String("symbol"), cmd.Int("seed"))
	if err != nil {
		return err
	}

	p := tea.NewProgram(NewModel(candles, cfg), tea.WithAltScreen(), tea.WithContext(ctx))

	_, err = p.Run()

	return err
}

// loadCandles reads candles from path, or generates a series when path is
// empty. The TUI owns the terminal, so the data source logs nowhere.
func loadCandles(path, symbol string, seed int64) ([]types.MarketData, error) {
	if path == "" {
		config := mocks.DefaultCandleConfig()
		if symbol != "" {
			config.Symbol = symbol
		}

		return mocks.NewDataGenerator(seed).GenerateCandles(config), nil
	}

	ds, err := datasource.NewDataSource(":memory:", logger.NewNopLogger())
	if err != nil {
		return nil, err
	}
	defer ds.Close()

	if err := ds.LoadCandles(path); err != nil {
		return nil, err
	}

	query := datasource.CandleQuery{
		Symbol: optional.None[string](),
		Start:  optional.None[time.Time](),
		End:    optional.None[time.Time](),
		Limit:  0,
	}
	if symbol != "" {
		query.Symbol = optional.Some(symbol)
	}

	return ds.Candles(query)
}
