package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/mutker/vitalstats/internal/archive"
	"codeberg.org/mutker/vitalstats/internal/binding"
	"codeberg.org/mutker/vitalstats/internal/config"
	"codeberg.org/mutker/vitalstats/internal/engine"
	"codeberg.org/mutker/vitalstats/internal/errors"
	"codeberg.org/mutker/vitalstats/internal/evaluator"
	"codeberg.org/mutker/vitalstats/internal/logger"
	"codeberg.org/mutker/vitalstats/internal/pid"
	"codeberg.org/mutker/vitalstats/internal/service"
	"codeberg.org/mutker/vitalstats/internal/telemetry"
	"codeberg.org/mutker/vitalstats/internal/units"
	"codeberg.org/mutker/vitalstats/internal/vitals"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
)

// app holds the parts shared by the daemon and one-shot queries.
type app struct {
	bus          *engine.Bus
	dispatcher   *evaluator.Dispatcher
	svc          *service.Service
	promRegistry *prometheus.Registry
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	initLogger(cfg)
	logger.Debug().Str("file", cfg.File).Msg("Config loaded")

	if cfg.Query != "" {
		if err := runQuery(cfg, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg); err != nil {
		var appErr errors.Error
		if errors.As(err, &appErr) {
			logger.FatalWithCode(appErr).Msg("vitalstatsd failed")
		}
		logger.Fatal().Err(err).Msg("vitalstatsd failed")
	}
}

func initLogger(cfg *config.Config) {
	logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
	if cfg.Debug || cfg.Verbose {
		return
	}

	// Validated by config.Load.
	level, _ := logger.ParseLevel(cfg.LogLevel)
	logger.SetLogLevel(level)
}

// build wires the registry, evaluator and service and starts the service.
// A bad [vitalstats] section disables vital statistics, not the caller.
func build(cfg *config.Config) (*app, error) {
	registry, err := vitals.NewStandardRegistry(vitals.NewSystemSource(), vitals.Options{
		Variant:   cfg.Algorithm,
		SensorKey: cfg.Sensor,
		DiskPath:  cfg.DiskPath,
	})
	if err != nil {
		return nil, errors.New().Wrap(errors.ErrInitApp, err)
	}

	a := &app{
		bus:          engine.NewBus(),
		dispatcher:   evaluator.NewDispatcher(),
		promRegistry: prometheus.NewRegistry(),
	}
	a.promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := telemetry.New(a.promRegistry)

	ev := evaluator.New(registry, units.StandardTable(), logger.Get().With("evaluator"),
		evaluator.WithObserver(collector))

	a.svc = service.New(service.Config{
		Bindings:   cfg.Bindings,
		UnitSystem: cfg.UnitSystem,
	}, ev, a.dispatcher, units.NewObsGroups(), logger.Get().With("service"))

	if err := a.svc.Start(a.bus); err != nil {
		logger.Warn().Str("state", a.svc.State().String()).Msg("Running without vital statistics")
	}

	return a, nil
}

func runQuery(cfg *config.Config, out io.Writer) error {
	a, err := build(cfg)
	if err != nil {
		return err
	}
	defer a.svc.Stop()

	return query(out, a.dispatcher, cfg.Query, cfg.UnitSystem, time.Now())
}

// query prints one value the way a LOOP packet taken at now would carry it.
func query(out io.Writer, d *evaluator.Dispatcher, name string, sys units.System, now time.Time) error {
	rec := engine.NewRecord(binding.Loop, sys, now)

	vt, err := d.Get(name, rec)
	if err != nil {
		return err
	}
	if !vt.Valid {
		_, err = fmt.Fprintf(out, "%s: no value\n", name)
		return err
	}

	_, err = fmt.Fprintf(out, "%s %g %s\n", name, vt.Value, vt.Unit)
	return err
}

func run(cfg *config.Config) error {
	errFactory := errors.New()

	pidFile := pid.New("", pid.DefaultName)
	if err := pidFile.Write(); err != nil {
		return err
	}
	defer func() {
		if err := pidFile.Remove(); err != nil {
			logger.Warn().Err(err).Msg("Failed to remove PID file")
		}
	}()

	a, err := build(cfg)
	if err != nil {
		return err
	}
	defer a.svc.Stop()

	eng, err := engine.New(a.bus, engine.Config{
		LoopInterval:    cfg.LoopInterval(),
		ArchiveInterval: cfg.ArchivePeriod(),
		UnitSystem:      cfg.UnitSystem,
	}, logger.Get().With("engine"))
	if err != nil {
		return errFactory.Wrap(errors.ErrInitApp, err)
	}

	store, err := archive.New(archive.Config{
		DBPath:  cfg.Database.Path,
		Enabled: cfg.Database.Enabled,
	}, logger.Get().With("archive"))
	if err != nil {
		return errFactory.Wrap(errors.ErrInitApp, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close archive")
		}
	}()
	eng.AddSink(store)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	telemetryCfg := telemetry.DefaultConfig()
	telemetryCfg.Addr = cfg.MetricsAddr
	if err := telemetryCfg.Validate(); err != nil {
		return errFactory.Wrap(errors.ErrInitApp, err)
	}
	if telemetryCfg.Enabled() {
		go func() {
			if err := telemetry.Serve(ctx, telemetryCfg, a.promRegistry); err != nil {
				logger.Error().Err(err).Msg("Telemetry endpoint stopped")
			}
		}()
	}

	logger.Info().
		Str("unit_system", cfg.UnitSystem.String()).
		Str("algorithm", string(cfg.Algorithm)).
		Int("interval", cfg.Interval).
		Int("archive_interval", cfg.ArchiveInterval).
		Str("state", a.svc.State().String()).
		Msg("vitalstatsd started")

	if err := eng.Run(ctx); err != nil {
		return errFactory.Wrap(errors.ErrMainLoop, err)
	}

	logger.Info().Msg("Exiting...")
	return nil
}
