package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const namespace = "pollywog"

// Recorder holds the game's Prometheus collectors. A nil *Recorder is valid
// and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	ticks       prometheus.Counter
	coins       prometheus.Counter
	damage      prometheus.Counter
	outcomes    *prometheus.CounterVec
	transitions *prometheus.CounterVec
	gameState   *prometheus.GaugeVec
	levelLoads  *prometheus.CounterVec
	loadSeconds prometheus.Histogram
	entities    prometheus.Gauge
}

// New registers the collectors on a private registry labelled with the
// session id.
func New(session string) *Recorder {
	reg := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"session": session}

	r := &Recorder{
		registry: reg,
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "ticks_total",
			Help:        "Fixed simulation steps taken.",
			ConstLabels: constLabels,
		}),
		coins: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "coins_collected_total",
			Help:        "Coins picked up by the player.",
			ConstLabels: constLabels,
		}),
		damage: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "damage_events_total",
			Help:        "Enemy contacts that damaged the player.",
			ConstLabels: constLabels,
		}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "outcomes_total",
			Help:        "Finished runs by outcome.",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "state_transitions_total",
			Help:        "Game state transitions.",
			ConstLabels: constLabels,
		}, []string{"from", "to"}),
		gameState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "game_state",
			Help:        "1 for the active game state, 0 otherwise.",
			ConstLabels: constLabels,
		}, []string{"state"}),
		levelLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "level_loads_total",
			Help:        "Level loads by result.",
			ConstLabels: constLabels,
		}, []string{"result"}),
		loadSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "level_load_seconds",
			Help:        "Time to read a level descriptor and decode its textures.",
			ConstLabels: constLabels,
			Buckets:     prometheus.ExponentialBuckets(0.005, 2, 10),
		}),
		entities: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "entities",
			Help:        "Live entities in the world.",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(r.ticks, r.coins, r.damage, r.outcomes, r.transitions,
		r.gameState, r.levelLoads, r.loadSeconds, r.entities)
	return r
}

// Registry exposes the private registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) Ticks(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.ticks.Add(float64(n))
}

func (r *Recorder) CoinCollected() {
	if r == nil {
		return
	}
	r.coins.Inc()
}

func (r *Recorder) Damaged() {
	if r == nil {
		return
	}
	r.damage.Inc()
}

func (r *Recorder) Outcome(outcome string) {
	if r == nil {
		return
	}
	r.outcomes.WithLabelValues(outcome).Inc()
}

// Transition records a game state change and flips the state gauge.
func (r *Recorder) Transition(from, to string) {
	if r == nil {
		return
	}
	r.transitions.WithLabelValues(from, to).Inc()
	r.gameState.WithLabelValues(from).Set(0)
	r.gameState.WithLabelValues(to).Set(1)
}

func (r *Recorder) LevelLoaded(took time.Duration, err error) {
	if r == nil {
		return
	}
	if err != nil {
		r.levelLoads.WithLabelValues("error").Inc()
		return
	}
	r.levelLoads.WithLabelValues("ok").Inc()
	r.loadSeconds.Observe(took.Seconds())
}

func (r *Recorder) Entities(n int) {
	if r == nil {
		return
	}
	r.entities.Set(float64(n))
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (r *Recorder) Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	if r == nil {
		return errors.New("metrics: recorder is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics endpoint listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
