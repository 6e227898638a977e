package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/amankharwar575/kodJobs/internal/aggregator"
	"github.com/amankharwar575/kodJobs/internal/config"
	"github.com/amankharwar575/kodJobs/internal/server"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "aggregate",
		Usage: "fetch jobs from TimesJobs and Jooble and replace the stored job collection",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env",
				Usage: "path to the env file",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:  "search",
				Usage: "keywords sent to Jooble, defaults to AGGREGATE_SEARCH",
			},
			&cli.StringFlag{
				Name:  "location",
				Usage: "location sent to Jooble, defaults to AGGREGATE_LOCATION",
			},
		},
		Action: aggregateAction,
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func aggregateAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadConfig(cmd.String("env"))
	if err != nil {
		return fmt.Errorf("unable to load config: %w", err)
	}
	if s := cmd.String("search"); s != "" {
		cfg.AggregateSearch = s
	}
	if l := cmd.String("location"); l != "" {
		cfg.AggregateLocation = l
	}
	logger := server.NewLogger(cfg.Env)

	st, err := aggregator.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	agg, _ := aggregator.FromConfig(cfg, st, nil, logger)
	jobs, err := agg.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info().Int("jobs", len(jobs)).Str("dir", cfg.DataDir).Msg("aggregation complete")
	return nil
}
