package main

import (
	"context"
	"flag"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/lodestoneworks/gameserver/gametime"
	"github.com/lodestoneworks/gameserver/internal/logging"
	"github.com/lodestoneworks/gameserver/internal/observability"
	"github.com/lodestoneworks/gameserver/player"
	"github.com/lodestoneworks/gameserver/schedule"
	"github.com/lodestoneworks/gameserver/server"
	"github.com/lodestoneworks/gameserver/world"
)

func main() {
	metricsAddr := flag.String("metrics-addr", ":9090", "HTTP address for Prometheus /metrics")
	scenarioPath := flag.String("scenario", "configs/scenario.json", "Path to a JSON file describing the initial world")
	botInterval := flag.Duration("bot-interval", 750*time.Millisecond, "How often the demo bot reconsiders its movement; 0 disables the bot")
	statusEvery := flag.Int64("status-every", 5, "In-game seconds between world status log lines")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	tracingShutdown, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(ctx, tracingShutdown, log)

	collector, err := observability.NewRuntimeCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}
	metricsSrv := serveMetrics(*metricsAddr, collector, log)

	scenario := loadScenario(log, *scenarioPath)

	tracer := otel.Tracer("gameserver")
	bootCtx, span := tracer.Start(ctx, "bootstrap")

	sender, clock, ids, err := server.StartServer(
		func(sp *world.Space, q *schedule.Queue, matter *world.Heap) []world.EntityID {
			ids := scenario.Populate(sp, matter, q.Now())
			scheduleStatus(q, matter, log, gametime.Seconds(*statusEvery))
			return ids
		},
		server.WithLogger(log),
		server.WithMetricsRecorder(collector),
	)
	span.End()
	if err != nil {
		log.Error(bootCtx, "failed to start server", logging.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info(ctx, "simulation started",
		logging.Int("entities", len(ids)),
		logging.Int64("in_game_subunits", int64(clock.InGame(time.Now()))),
	)

	botCtx, stopBot := context.WithCancel(ctx)
	if *botInterval > 0 && len(ids) > 0 {
		go runBot(botCtx, sender.Clone(), ids[0], *botInterval)
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	<-sigCtx.Done()

	log.Info(ctx, "interrupt received; shutting down")
	stopBot()
	if err := sender.Post(server.Shutdown{}); err != nil {
		log.Warn(ctx, "shutdown post failed", logging.String("error", err.Error()))
	}
	sender.Close()

	select {
	case <-sender.Done():
	case <-time.After(5 * time.Second):
		log.Warn(ctx, "runtime did not stop within the shutdown window")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	log.Info(ctx, "final in-game time",
		logging.Int64("in_game_subunits", int64(clock.InGame(time.Now()))),
	)
}

func serveMetrics(addr string, collector *observability.RuntimeCollector, log logging.Logger) *http.Server {
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

// loadScenario reads the initial world description, falling back to an
// empty scenario so the server still comes up without a config file.
func loadScenario(log logging.Logger, path string) *world.Scenario {
	f, err := os.Open(path)
	if err != nil {
		log.Warn(context.Background(), "skipping scenario load", logging.String("path", path), logging.String("error", err.Error()))
		return &world.Scenario{}
	}
	defer f.Close()

	sc, err := world.LoadScenario(f)
	if err != nil {
		log.Warn(context.Background(), "failed to parse scenario", logging.String("path", path), logging.String("error", err.Error()))
		return &world.Scenario{}
	}

	log.Info(context.Background(), "loaded scenario",
		logging.String("path", path),
		logging.Int("entities", len(sc.Entities)),
	)
	return sc
}

// scheduleStatus installs a self-rescheduling event that logs a world
// summary every `every` of in-game time. The callback runs on the runtime
// goroutine, so touching the heap is safe.
func scheduleStatus(q *schedule.Queue, matter *world.Heap, log logging.Logger, every gametime.Duration) {
	if every <= 0 {
		return
	}
	var status func()
	status = func() {
		now := q.Now()
		matter.ForEach(func(e *world.Entity) {
			pos := e.PositionAt(now)
			log.Debug(context.Background(), "entity status",
				logging.String("name", e.Name),
				logging.Int64("id", int64(e.ID)),
				logging.Any("x", pos.X),
				logging.Any("y", pos.Y),
			)
		})
		log.Info(context.Background(), "world status",
			logging.String("in_game", now.String()),
			logging.Int("entities", matter.Len()),
		)
		q.Schedule(now.Add(every), status)
	}
	q.Schedule(q.Now().Add(every), status)
}

// runBot drives one entity with random direction changes, exercising the
// producer path the way a network input handler would. Updates that do not
// change the pad state are suppressed at the producer, matching what a real
// input source should do with key repeat.
func runBot(ctx context.Context, sender *server.Sender, id world.EntityID, interval time.Duration) {
	defer sender.Close()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last player.Control
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			next := player.Control{
				Up:    rand.Intn(2) == 0,
				Down:  rand.Intn(2) == 0,
				Left:  rand.Intn(2) == 0,
				Right: rand.Intn(2) == 0,
			}
			if next == last {
				continue
			}
			last = next
			if err := sender.Post(server.PlayerUpdate{ID: id, Control: next}); err != nil {
				return
			}
		}
	}
}
