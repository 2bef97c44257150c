package main

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/tickface/internal/app"
	"github.com/hammamikhairi/tickface/internal/clock"
	"github.com/hammamikhairi/tickface/internal/config"
	"github.com/hammamikhairi/tickface/internal/connectivity"
	"github.com/hammamikhairi/tickface/internal/display"
	"github.com/hammamikhairi/tickface/internal/domain"
	"github.com/hammamikhairi/tickface/internal/events"
	"github.com/hammamikhairi/tickface/internal/feedback"
	"github.com/hammamikhairi/tickface/internal/layout"
	"github.com/hammamikhairi/tickface/internal/logger"
	"github.com/hammamikhairi/tickface/internal/settings"
)

var version = "dev"

type flags struct {
	configPath string
	logFile    string
	verbose    bool
	quiet      bool
	demo       bool
	mono       bool
	strict     bool
	noAudio    bool
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:          "tickface",
		Short:        "tickface shows the time the way a watch face would.",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", config.DefaultPath, "path to the TOML config file")
	fl.StringVar(&f.logFile, "log-file", "", "file to write logs to (use \"stderr\" to log to console)")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "enable verbose/debug logging")
	fl.BoolVarP(&f.quiet, "quiet", "q", false, "disable all logging")
	fl.BoolVar(&f.demo, "demo", false, "show the configured demo text instead of the time")
	fl.BoolVar(&f.mono, "mono", false, "pretend the display is monochrome")
	fl.BoolVar(&f.strict, "strict", false, "panic on handle and load/unload contract violations")
	fl.BoolVar(&f.noAudio, "no-audio", false, "do not buzz through the audio device")
	return cmd
}

func run(f flags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	if f.logFile != "" {
		cfg.Log.File = f.logFile
	}
	cfg.Face.Demo = cfg.Face.Demo || f.demo
	cfg.Platform.Strict = cfg.Platform.Strict || f.strict
	if f.mono {
		cfg.Platform.Color = false
	}
	if f.noAudio {
		cfg.Feedback.Audio = false
	}

	logLevel, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	if f.verbose {
		logLevel = logger.LevelVerbose
	}
	if f.quiet {
		logLevel = logger.LevelOff
	}

	// Logs go to a file by default so the face stays clean.
	var logOut io.Writer = os.Stderr
	if cfg.Log.File != "" && cfg.Log.File != "stderr" {
		dir := filepath.Dir(cfg.Log.File)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		lf, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", cfg.Log.File, err)
		} else {
			logOut = lf
			defer lf.Close()
		}
	}
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)
	strict := cfg.Platform.Strict

	caps := domain.Capabilities{
		Color:    cfg.Platform.Color,
		Health:   cfg.Platform.Health,
		Clock24h: cfg.Platform.Clock24h,
	}
	defaults := domain.DefaultSettings()
	tf, ok := domain.TimeFormatFromString(cfg.Settings.TimeFormat)
	if !ok {
		return fmt.Errorf("config: unknown time format %q", cfg.Settings.TimeFormat)
	}
	defaults.TimeFormat = tf

	quiet, err := feedback.ParseQuietHours(cfg.Feedback.QuietStart, cfg.Feedback.QuietEnd)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The app is published after every dispatch; it exists before the
	// loop runs anything.
	var face *app.App
	loop := events.NewLoop(log.Named("loop"), events.WithAfterDispatch(func() {
		if face != nil {
			face.Publish()
		}
	}))

	ticks := events.NewTickService(loop, log.Named("ticks"), events.WithStrictHandles(strict))
	monitor := connectivity.NewMonitor(loop,
		connectivity.InterfaceProbe{Name: cfg.Connectivity.Interface},
		log.Named("connectivity"),
		connectivity.WithInterval(cfg.Connectivity.PollInterval.Duration),
		connectivity.WithStrictHandles(strict),
	)

	settingsOpts := []settings.Option{
		settings.WithDefaults(defaults),
		settings.WithStrictHandles(strict),
	}
	if cfg.Settings.MessagePipe != "" {
		// O_RDWR keeps opening a FIFO from blocking until a writer appears.
		pipe, err := os.OpenFile(cfg.Settings.MessagePipe, os.O_RDWR, 0)
		if err != nil {
			return fmt.Errorf("message pipe: %w", err)
		}
		defer pipe.Close()
		settingsOpts = append(settingsOpts, settings.WithMessages(pipe))
		log.Info("reading settings messages from %s", cfg.Settings.MessagePipe)
	}
	store := settings.NewFileStore(cfg.Settings.File, log.Named("settings"))
	svc := settings.NewService(store, loop, log.Named("settings"), settingsOpts...)

	ui := display.NewUI(display.Actions{
		ToggleFormat: func() {
			next := domain.TimeFormat12h
			if domain.EffectiveMode(svc.TimeFormat(), caps) == domain.H12 {
				next = domain.TimeFormat24h
			}
			svc.Inject([]byte(fmt.Sprintf(`{%q: %q}`, settings.KeyTimeFormat, next.String())))
		},
		ToggleInvert: func() {
			svc.Inject([]byte(fmt.Sprintf(`{%q: %t}`, settings.KeyInvert, !svc.Invert())))
		},
	})

	services := []app.Service{ticks, monitor}
	actuator := feedback.Multi{feedback.NewPrintActuator(ui.Printf)}
	if cfg.Feedback.Audio {
		buzzer, err := feedback.NewBuzzer(log.Named("buzzer"), feedback.WithFrequency(cfg.Feedback.Frequency))
		if err != nil {
			log.Error("audio init failed, buzzing disabled: %v", err)
			actuator = append(actuator, feedback.NewNoOp(log.Named("buzzer")))
		} else {
			actuator = append(actuator, buzzer)
			services = append(services, buzzer)
		}
	}

	hourly := feedback.NewHourlyChime(ticks, actuator, quiet, log.Named("hourly"))
	connection := feedback.NewConnectionAlert(monitor, actuator, quiet, log.Named("connection"))

	bundle, err := layout.DefaultBundle()
	if err != nil {
		return fmt.Errorf("layout bundle: %w", err)
	}

	face = app.New(app.Options{
		Loop:       loop,
		Settings:   svc,
		Connection: connection,
		Hourly:     hourly,
		Layout:     layout.NewEngine(bundle, log.Named("layout")),
		Ticks:      ticks,
		Formatter:  clock.New(cfg.Face.Demo, cfg.Face.DemoText),
		Stack:      display.NewStack(log.Named("display")),
		Caps:       caps,
		Strict:     strict,
		Services:   services,
		OnFrame:    ui.ShowFrame,
		Log:        log,
	})

	log.Info("tickface %s starting (color=%v, health=%v, demo=%v)", version, caps.Color, caps.Health, cfg.Face.Demo)

	runErr := make(chan error, 1)
	go func() {
		ui.WaitReady()
		runErr <- face.Run(ctx)
		ui.Quit()
	}()

	if err := ui.Run(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	cancel()
	return <-runErr
}
