// Command pacedrill drives drill practice sessions from the terminal: it
// plays the session-controller role around the pace scheduler, with a
// durable per-profile store and a self-graded answer loop.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/keydrill/pace"
	"github.com/keydrill/pace/badgerstore"
	"github.com/keydrill/pace/profile"
)

type app struct {
	profilePath string
	profileName string
	dataDir     string
	inMemory    bool
	debug       bool

	log        zerolog.Logger
	prof       profile.Profile
	selector   *pace.Selector
	closeStore func() error
}

func main() {
	a := &app{}

	root := &cobra.Command{
		Use:           "pacedrill",
		Short:         "Adaptive drill practice from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.profilePath, "profile", "pacedrill.yaml", "path to the profile file")
	pf.StringVar(&a.profileName, "name", "default", "profile name when the file does not exist yet")
	pf.StringVar(&a.dataDir, "data", ".pacedrill", "directory for the practice database")
	pf.BoolVar(&a.inMemory, "ephemeral", false, "keep all practice data in memory")
	pf.BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(a.drillCmd(), a.statsCmd(), a.calibrateCmd())

	if err := root.Execute(); err != nil {
		a.log.Error().Err(err).Msg("pacedrill failed")
		os.Exit(1)
	}
}

func (a *app) setup() error {
	level := zerolog.InfoLevel
	if a.debug {
		level = zerolog.DebugLevel
	}
	a.log = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.DateTime,
	}).Level(level).With().Timestamp().Logger()

	prof, err := profile.LoadOrDefault(a.profilePath, a.profileName)
	if err != nil {
		return err
	}
	if err := prof.ApplyEnv(); err != nil {
		return err
	}
	a.prof = prof

	var store pace.Storage
	if a.inMemory {
		store = pace.NewMemoryStore()
		a.closeStore = func() error { return nil }
	} else {
		bs, err := badgerstore.Open(badgerstore.Options{
			Dir:     a.dataDir,
			Profile: prof.Name,
			Logger:  &a.log,
		})
		if err != nil {
			return err
		}
		store = bs
		a.closeStore = bs.Close
	}

	sel, err := pace.NewSelector(pace.SelectorConfig{
		Storage: store,
		Config:  prof.SchedulerConfig(),
		Logger:  &a.log,
	})
	if err != nil {
		_ = a.closeStore()
		return err
	}
	a.selector = sel

	a.log.Debug().
		Str("profile", prof.Name).
		Float64("motor_baseline_ms", prof.MotorBaselineMs).
		Msg("session ready")
	return nil
}

func (a *app) teardown() error {
	if a.closeStore == nil {
		return nil
	}
	return a.closeStore()
}
