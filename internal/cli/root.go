// Package cli wires configuration, logging, decks and telemetry into the
// ssbprep command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ssbprep/internal/config"
	"ssbprep/internal/deck"
	"ssbprep/internal/logging"
	"ssbprep/internal/prompt"
	"ssbprep/internal/session"
	"ssbprep/internal/trace"
	"ssbprep/internal/ui"
)

var version = "dev"

// flags holds command-line overrides for config values.
type flags struct {
	configPath   string
	wordsFile    string
	situations   string
	timePerWord  int
	totalMinutes int
	noFullscreen bool
	copy         bool
}

// App is the command tree plus the seams tests replace.
type App struct {
	// Copier backs "prompt --copy" and the in-app copy keys.
	Copier prompt.Copier
	// RunProgram runs the TUI; tests stub it out.
	RunProgram func(m tea.Model) error

	flags flags
}

// New returns an App using the system clipboard and a real terminal program.
func New() *App {
	return &App{
		Copier: prompt.SystemClipboard{},
		RunProgram: func(m tea.Model) error {
			_, err := tea.NewProgram(m).Run()
			return err
		},
	}
}

// Execute runs the command tree with os.Args and exits non-zero on failure.
func Execute(v string) {
	version = v
	if err := New().Command().Execute(); err != nil {
		os.Exit(1)
	}
}

// Command builds the root command.
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:   "ssbprep",
		Short: "Timed SSB psychology test practice in the terminal",
		Long: `ssbprep runs the Word Association Test (WAT) and the Situation
Reaction Test (SRT) of the Services Selection Board interview with
real time limits.

Without a subcommand the home screen opens.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd, ui.ModeHome)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.flags.configPath, "config", "c", "", "config file (default: ./config/config.yaml or ~/.ssbprep/config.yaml)")
	pf.StringVar(&a.flags.wordsFile, "words", "", "word deck replacing the built-in WAT words (.txt, .json, .yaml)")
	pf.StringVar(&a.flags.situations, "situations", "", "situation deck preloaded into the SRT (.txt, .json, .yaml)")
	pf.IntVar(&a.flags.timePerWord, "time-per-word", session.DefaultTimePerWord, "default seconds per WAT word")
	pf.IntVar(&a.flags.totalMinutes, "total-minutes", session.DefaultTotalMinutes, "default SRT length in minutes")
	pf.BoolVar(&a.flags.noFullscreen, "no-fullscreen", false, "stay on the main screen while a test runs")

	root.AddCommand(
		&cobra.Command{
			Use:   "wat",
			Short: "Open the Word Association Test",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.runTUI(cmd, ui.ModeWordTest)
			},
		},
		&cobra.Command{
			Use:   "srt",
			Short: "Open the Situation Reaction Test",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.runTUI(cmd, ui.ModeSituationTest)
			},
		},
		a.promptCommand(),
	)
	return root
}

// loadConfig reads the config file and applies flags the user set explicitly.
func (a *App) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return nil, err
	}
	f := cmd.Flags()
	if f.Changed("words") {
		cfg.WAT.WordsFile = a.flags.wordsFile
	}
	if f.Changed("situations") {
		cfg.SRT.SituationsFile = a.flags.situations
	}
	if f.Changed("time-per-word") {
		cfg.WAT.TimePerWord = a.flags.timePerWord
	}
	if f.Changed("total-minutes") {
		cfg.SRT.TotalMinutes = a.flags.totalMinutes
	}
	if f.Changed("no-fullscreen") {
		cfg.UI.Fullscreen = !a.flags.noFullscreen
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// sessionOptions turns config and decks into runner options.
func sessionOptions(cfg *config.Config) (wat, srt []session.Option, err error) {
	wat = []session.Option{
		session.WithTimePerWord(cfg.WAT.TimePerWord),
		session.WithSampleSize(cfg.WAT.SampleSize),
	}
	if cfg.WAT.WordsFile != "" {
		d, err := deck.Load(cfg.WAT.WordsFile, session.KindWAT)
		if err != nil {
			return nil, nil, err
		}
		wat = append(wat, session.WithWords(d.Items))
	}

	srt = []session.Option{session.WithTotalMinutes(cfg.SRT.TotalMinutes)}
	if cfg.SRT.SituationsFile != "" {
		d, err := deck.Load(cfg.SRT.SituationsFile, session.KindSRT)
		if err != nil {
			return nil, nil, err
		}
		srt = append(srt, session.WithSituations(d.Items))
	}
	return wat, srt, nil
}

func (a *App) runTUI(cmd *cobra.Command, start ui.AppMode) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	wat, srt, err := sessionOptions(cfg)
	if err != nil {
		log.Error("load deck", zap.Error(err))
		return err
	}

	exporter, err := trace.NewOTLPExporter(cmd.Context())
	if err != nil {
		log.Warn("otlp exporter disabled", zap.Error(err))
		exporter = nil
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := exporter.Shutdown(shutdownCtx); err != nil {
			log.Warn("otlp shutdown", zap.Error(err))
		}
	}()

	deps := ui.Deps{
		WordOptions:      wat,
		SituationOptions: srt,
		Copier:           a.Copier,
		Logger:           log,
		Fullscreen:       cfg.UI.Fullscreen,
	}
	if exporter != nil {
		deps.Recorder = exporter
	}

	log.Info("starting",
		zap.String("version", version),
		zap.Stringer("screen", start),
		zap.String("env", cfg.Env),
		zap.Bool("otlp", exporter != nil),
	)
	if err := a.RunProgram(ui.NewAppModel(deps, start).AsTeaModel()); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
