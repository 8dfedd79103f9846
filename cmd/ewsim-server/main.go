package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/signalsfoundry/ewsim/core"
	"github.com/signalsfoundry/ewsim/internal/dashboard"
	"github.com/signalsfoundry/ewsim/internal/logging"
	"github.com/signalsfoundry/ewsim/internal/observability"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP address the dashboard API listens on")
	metricsAddr := flag.String("metrics-addr", ":9090", "HTTP address for Prometheus /metrics")
	scenarioPath := flag.String("scenario", "", "path to a YAML scenario file (optional)")
	pushInterval := flag.Duration("push-interval", dashboard.DefaultPushInterval, "websocket push cadence; 0 disables pushes")
	seed := flag.Uint64("seed", 0, "random seed; 0 means non-deterministic")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	collector, err := observability.NewSimCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}

	scenario := loadScenario(log, *scenarioPath)

	engineOpts := []core.Option{
		core.WithDefenseNodes(scenario.Nodes),
		core.WithMeasurementError(scenario.MeasurementError),
	}
	if *seed != 0 {
		engineOpts = append(engineOpts, core.WithSeed(*seed))
	}
	engine := core.NewEngine(engineOpts...)

	server := dashboard.NewServer(engine,
		dashboard.WithLogger(log),
		dashboard.WithMetrics(collector),
		dashboard.WithDefaults(scenario.Defaults),
		dashboard.WithPushInterval(*pushInterval),
	)

	metricsSrv := serveMetrics(*metricsAddr, collector, log)

	apiSrv := &http.Server{
		Addr:    *addr,
		Handler: server.Handler(),
	}
	log.Info(ctx, "starting dashboard server",
		logging.String("addr", *addr),
		logging.String("scenario", scenario.Name),
	)
	go func() {
		if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "dashboard server exited", logging.String("error", err.Error()))
		}
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	<-stopCtx.Done()

	log.Info(ctx, "shutting down dashboard server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = apiSrv.Shutdown(shutdownCtx)
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)
}

func serveMetrics(addr string, collector *observability.SimCollector, log logging.Logger) *http.Server {
	if collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}

func loadScenario(log logging.Logger, path string) *core.Scenario {
	if path == "" {
		return core.DefaultScenario()
	}
	f, err := os.Open(path)
	if err != nil {
		log.Error(context.Background(), "failed to open scenario", logging.String("path", path), logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer f.Close()

	scenario, err := core.LoadScenario(f)
	if err != nil {
		log.Error(context.Background(), "failed to load scenario", logging.String("path", path), logging.String("error", err.Error()))
		os.Exit(1)
	}
	return scenario
}
