package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rxtech-lab/argo-chart/internal/tooltip"
	"github.com/rxtech-lab/argo-chart/pkg/errors"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const (
	schemaName       = "tooltip-config.json"
	sampleConfigName = "tooltip-config.yaml"
)

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Write the tooltip theme JSON schema and a sample theme",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Output directory",
				Value:   "config",
			},
		},
		Action: schemaAction,
	}
}

// schemaAction writes the schema and, when missing, a sample theme pointing
// at it.
func schemaAction(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.String("dir")
	config := tooltip.DefaultConfig()

	schemaJSON, err := config.GenerateSchemaJSON()
	if err != nil {
		return err
	}

	schemaPath := filepath.Join(dir, schemaName)
	if err := writeOutput(nil, schemaPath, []byte(schemaJSON)); err != nil {
		return err
	}

	samplePath := filepath.Join(dir, sampleConfigName)
	if _, err := os.Stat(samplePath); os.IsNotExist(err) {
		yamlBytes, err := yaml.Marshal(config)
		if err != nil {
			return errors.Wrap(errors.ErrCodeUnknown, "failed to marshal sample config", err)
		}

		yamlBytes = append([]byte("# yaml-language-server: $schema="+schemaName+"\n"), yamlBytes...)
		if err := writeOutput(nil, samplePath, yamlBytes); err != nil {
			return err
		}

		fmt.Fprintf(cmd.Root().Writer, "Sample config generated at %s\n", samplePath)
	}

	fmt.Fprintf(cmd.Root().Writer, "Schema generated at %s\n", schemaPath)

	return nil
}
