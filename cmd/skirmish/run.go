package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/skirmish/audio"
	"github.com/lixenwraith/skirmish/core"
	"github.com/lixenwraith/skirmish/metrics/prom"
)

// RunOptions holds flags for the headless run command
type RunOptions struct {
	*RootOptions
	Ticks       uint64
	MetricsAddr string
	Autopilot   bool
	AutoRestart bool
	Realtime    bool
}

// NewRunCommand creates the run command
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the arena headless",
		Long: `Run the arena without a terminal view.

The autopilot clicks the nearest monster whenever the hero stands idle, so a
run plays itself. Ticks advance as fast as possible unless --realtime is set.

Example:
  skirmish run --ticks 12000 --auto-restart
  skirmish run --ticks 0 --realtime --metrics-addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeadless(cmd, opts)
		},
	}

	cmd.Flags().Uint64Var(&opts.Ticks, "ticks", 6000, "ticks to simulate (0 runs until interrupted)")
	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	cmd.Flags().BoolVar(&opts.Autopilot, "autopilot", true, "let the hero play itself")
	cmd.Flags().BoolVar(&opts.AutoRestart, "auto-restart", false, "restart after game over")
	cmd.Flags().BoolVar(&opts.Realtime, "realtime", false, "tick at the configured interval")

	return cmd
}

func runHeadless(cmd *cobra.Command, opts *RunOptions) error {
	s, err := opts.settings()
	if err != nil {
		return err
	}
	log, closer, err := setupLogging(s.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closer.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	sink := audio.NewLogSink(log)
	sess, err := newSession(s, sessionOptions{
		log:         log,
		metrics:     prom.NewMetricSet(reg),
		effects:     sink,
		autopilot:   opts.Autopilot,
		autoRestart: opts.AutoRestart,
	})
	if err != nil {
		return err
	}

	if opts.MetricsAddr != "" {
		srv := serveMetrics(opts.MetricsAddr, reg, log)
		defer srv.Shutdown(context.Background())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess.world.Start()
	if opts.Realtime {
		err = sess.loop.RunRealtime(ctx, s.Tick.Interval)
	} else {
		err = sess.loop.Run(ctx, opts.Ticks)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	w := sess.world
	fmt.Fprintf(cmd.OutOrStdout(), "session %s: ticks %d, kills %d, spawned %d, game over %v\n",
		sess.ctx.Session, sess.loop.Ticks(), w.Kills(), w.Spawned(), w.GameOver())
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry, log *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux}
	core.Go(func() {
		log.Info("metrics server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server error", "error", err)
		}
	})
	return srv
}
