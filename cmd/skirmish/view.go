package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/skirmish/audio"
	"github.com/lixenwraith/skirmish/core"
	"github.com/lixenwraith/skirmish/engine"
	"github.com/lixenwraith/skirmish/game"
	"github.com/lixenwraith/skirmish/render"
)

// ViewOptions holds flags for the terminal view command
type ViewOptions struct {
	*RootOptions
	Sound     bool
	Autopilot bool
}

// NewViewCommand creates the view command
func NewViewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ViewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Play the arena in the terminal",
		Long: `Play the arena in the terminal at real-time speed.

Click the ground to run there, click a monster to attack it until it dies.
p pauses, r restarts, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Sound, "sound", false, "play effects through the speaker")
	cmd.Flags().BoolVar(&opts.Autopilot, "autopilot", false, "let the hero play itself")

	return cmd
}

func runView(cmd *cobra.Command, opts *ViewOptions) error {
	s, err := opts.settings()
	if err != nil {
		return err
	}
	// The screen owns stdout; logs only go to the configured file
	log, closer, err := setupLogging(s.Log, io.Discard)
	if err != nil {
		return err
	}
	defer closer.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	core.OnCrash(screen.Fini)
	defer screen.Fini()

	var effects game.Effects = audio.NewLogSink(log)
	if opts.Sound || s.Audio.Enabled {
		if sink, err := audio.NewSpeakerSink(s.Audio, log); err == nil {
			defer sink.Close()
			effects = sink
		} else {
			log.Warn("audio unavailable, continuing without sound", "error", err)
		}
	}

	var view *render.ArenaView
	sess, err := newSession(s, sessionOptions{
		log:       log,
		clock:     engine.NewPausableClock(engine.NewTimeProvider(), s.Tick.MaxDelta),
		effects:   effects,
		autopilot: opts.Autopilot,
		afterTick: func(tick uint64) { view.Frame(tick) },
	})
	if err != nil {
		return err
	}
	view = render.NewArenaView(screen, sess.world)
	view.Listen()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess.world.Start()
	if err := sess.loop.RunRealtime(ctx, s.Tick.Interval); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("view closed", "kills", sess.world.Kills(), "ticks", sess.loop.Ticks())
	return nil
}
