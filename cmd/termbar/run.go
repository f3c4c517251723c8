package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/konveyor/termbar/progress"
	"github.com/konveyor/termbar/progress/reporter"
	"github.com/konveyor/termbar/tracing"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
)

func runCmd(g *globalFlags) *cobra.Command {
	cfg := &cmdConfig{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a synthetic workload behind a progress bar",
		Long: `Run processes --items work items and draws a progress bar on standard
output while doing so. Without --workers the items are processed inline and
the bar is updated for every item, which exercises the throttled path. With
--workers N the items are shared by N goroutines.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			log := g.logger(c.ErrOrStderr())
			if err := cfg.validate(); err != nil {
				log.Error(err, "failed to validate flags")
				return err
			}
			progressCfg, err := cfg.progressConfig(c.Flags())
			if err != nil {
				log.Error(err, "failed to load progress configuration")
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWorkload(ctx, log, g, cfg, progressCfg, c.OutOrStdout())
		},
	}
	cfg.AddFlags(cmd.Flags())
	return cmd
}

func runWorkload(ctx context.Context, log logr.Logger, g *globalFlags, cfg *cmdConfig, progressCfg progress.Config, out io.Writer) error {
	var reporters []progress.Reporter

	if cfg.eventsFile != "" {
		f, err := os.Create(cfg.eventsFile)
		if err != nil {
			return fmt.Errorf("failed to create events file %s: %w", cfg.eventsFile, err)
		}
		defer f.Close()
		r := eventsReporter(cfg.eventsFormat, f)
		if cfg.eventsInterval > 0 {
			r = reporter.NewThrottledReporter(r, cfg.eventsInterval)
		}
		reporters = append(reporters, r)
	}

	if g.enableJaeger {
		tp, err := tracing.InitTracerProvider(log, tracing.Options{
			EnableJaeger:   true,
			JaegerEndpoint: g.jaegerEndpoint,
		})
		if err != nil {
			return err
		}
		defer tracing.Shutdown(context.Background(), log, tp)

		spanCtx, span := tracing.StartNewSpan(ctx, "run",
			attribute.Int64("items", cfg.items),
			attribute.Int("workers", cfg.workers),
		)
		defer span.End()

		chCtx, cancel := context.WithCancel(spanCtx)
		ch := reporter.NewChannelReporter(chCtx, reporter.WithLogger(log))
		reporters = append(reporters, ch)
		recorded := make(chan struct{})
		go func() {
			tracing.RecordSnapshots(span, ch.Snapshots())
			close(recorded)
		}()
		defer func() {
			cancel()
			<-recorded
		}()
	}

	bar := progress.New(cfg.start, cfg.start+cfg.items, progressCfg,
		progress.WithWriter(out),
		progress.WithLogger(log),
		progress.WithReporters(reporters...),
	)

	w := workload{
		start:   cfg.start,
		items:   cfg.items,
		workers: cfg.workers,
		delay:   cfg.workDelay,
		poll:    cfg.pollInterval,
		log:     log,
	}
	if err := w.run(ctx, bar); err != nil {
		return fmt.Errorf("workload failed: %w", err)
	}

	if cfg.summary != "" {
		text, err := renderSummary(cfg.summary, cfg.items, cfg.workers, bar.Snapshot())
		if err != nil {
			return err
		}
		fmt.Fprintln(out, text)
	}
	return nil
}

func eventsReporter(format string, w io.Writer) progress.Reporter {
	switch format {
	case eventsFormatText:
		return reporter.NewTextReporter(w)
	default:
		return reporter.NewJSONReporter(w)
	}
}
