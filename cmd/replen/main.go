// cmd/replen/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/repleniq/backend-go/internal/config"
	"github.com/repleniq/backend-go/internal/domain"
	"github.com/repleniq/backend-go/internal/ingest"
	"github.com/repleniq/backend-go/internal/pipeline/replen"
	"github.com/repleniq/backend-go/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "replen",
		Usage: "Run the replenishment pipeline over spreadsheet exports",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "log level (debug, info, warn, error)",
			},
		},
		Before: func(c *cli.Context) error {
			logger.SetLevel(c.String("log-level"))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "process",
				Usage:     "Normalize, bundle and classify one or more export files",
				ArgsUsage: "FILE [FILE...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "write the full result JSON to a file instead of stdout",
					},
					&cli.BoolFlag{
						Name:  "suggestions-only",
						Usage: "emit only the ranked order suggestions",
					},
				},
				Action: runProcess,
			},
			{
				Name:      "forecast",
				Usage:     "Project aggregate sellable inventory over a horizon",
				ArgsUsage: "FILE [FILE...]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "days",
						Value: replen.DefaultHorizonDays,
						Usage: "forecast horizon in days",
					},
				},
				Action: runForecast,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("command failed")
	}
}

func loadRows(ctx context.Context, paths []string) ([]domain.RawRow, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("at least one input file is required")
	}

	parsed := make([][]domain.RawRow, len(paths))
	g, _ := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			rows, err := ingest.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			parsed[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var rows []domain.RawRow
	for _, part := range parsed {
		rows = append(rows, part...)
	}
	return rows, nil
}

func runProcess(c *cli.Context) error {
	rows, err := loadRows(c.Context, c.Args().Slice())
	if err != nil {
		return err
	}

	cfg := config.Load()
	result, err := replen.New(cfg.App.RiskVendorMarker).Run(rows)
	if err != nil {
		return err
	}

	var payload any = result
	if c.Bool("suggestions-only") {
		payload = result.Suggestions
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}

	if path := c.String("output"); path != "" {
		return os.WriteFile(path, append(out, '\n'), 0o644)
	}

	fmt.Println(string(out))
	return nil
}

func runForecast(c *cli.Context) error {
	rows, err := loadRows(c.Context, c.Args().Slice())
	if err != nil {
		return err
	}

	cfg := config.Load()
	result, err := replen.New(cfg.App.RiskVendorMarker).Run(rows)
	if err != nil {
		return err
	}

	points := replen.Project(result.Products, c.Int("days")).Points()

	out, err := json.MarshalIndent(points, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))
	return nil
}
