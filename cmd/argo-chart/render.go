package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-chart/internal/datasource"
	"github.com/rxtech-lab/argo-chart/internal/render"
	"github.com/rxtech-lab/argo-chart/internal/tooltip"
	"github.com/rxtech-lab/argo-chart/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "Render the tooltip of a hover request",
		ArgsUsage: "<request.json|request.yaml|->",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: svg, png or canvas",
				Value:   string(render.FormatSVG),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file. Defaults to stdout.",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Tooltip theme YAML, overriding the request theme",
			},
			&cli.StringFlag{
				Name:  "candles",
				Usage: "Parquet or CSV candle file replacing the request candles",
			},
			&cli.StringFlag{
				Name:  "symbol",
				Usage: "Only load candles of this symbol from --candles",
			},
			&cli.IntFlag{
				Name:    "index",
				Aliases: []string{"i"},
				Usage:   "Hovered candle index, overriding the request",
			},
		},
		Action: renderAction,
	}
}

func renderAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "render expects exactly one request file")
	}

	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	format, err := render.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	var req tooltip.HoverRequest
	if err := readInput(cmd.Args().First(), &req); err != nil {
		return err
	}

	if path := cmd.String("config"); path != "" {
		cfg, err := tooltip.LoadConfig(path)
		if err != nil {
			return err
		}

		req.Config = &cfg
	}

	if path := cmd.String("candles"); path != "" {
		ds, err := datasource.NewDataSource(":memory:", log)
		if err != nil {
			return err
		}
		defer ds.Close()

		if err := ds.LoadCandles(path); err != nil {
			return err
		}

		query := datasource.CandleQuery{
			Symbol: optional.None[string](),
			Start:  optional.None[time.Time](),
			End:    optional.None[time.Time](),
			Limit:  0,
		}
		if symbol := cmd.String("symbol"); symbol != "" {
			query.Symbol = optional.Some(symbol)
		}

		req.Candles, err = ds.Candles(query)
		if err != nil {
			return err
		}
	}

	if cmd.IsSet("index") {
		index := int(cmd.Int("index"))
		req.Index = &index
	}

	log.Debug("Rendering tooltip",
		zap.String("format", string(format)),
		zap.Int("candles", len(req.Candles)))

	var out []byte

	switch format {
	case render.FormatCanvas:
		commands, err := render.Canvas(&req)
		if err != nil {
			return err
		}

		out, err = json.MarshalIndent(commands, "", "  ")
		if err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, "failed to encode canvas commands", err)
		}
	default:
		var image render.Image
		if format == render.FormatSVG {
			image, err = render.SVG(&req)
		} else {
			image, err = render.PNG(&req)
		}

		if err != nil {
			return err
		}

		if !image.Drawn {
			log.Info("Nothing is hovered, no tooltip rendered")

			return nil
		}

		out = image.Body
	}

	if err := writeOutput(cmd.Root().Writer, cmd.String("output"), out); err != nil {
		return err
	}

	if path := cmd.String("output"); path != "" {
		fmt.Fprintf(cmd.Root().ErrWriter, "Tooltip written to %s\n", path)
	}

	return nil
}
