// Package metrics exposes dialog stack activity as prometheus collectors.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/andareed/siftly-gallery/dialogstore"
	"github.com/andareed/siftly-gallery/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sfgallery"

// Recorder implements dialogstore.Observer and dialogstore.StackObserver.
type Recorder struct {
	registry *prometheus.Registry

	opened   *prometheus.CounterVec
	closed   *prometheus.CounterVec
	open     prometheus.Gauge
	stacking prometheus.Gauge
}

// NewRecorder creates the collectors and registers them on a private registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		opened: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "dialogs",
				Name:      "opened_total",
				Help:      "Dialogs opened, by render kind.",
			},
			[]string{"kind"},
		),
		closed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "dialogs",
				Name:      "closed_total",
				Help:      "Dialogs closed, by the operation that removed them.",
			},
			[]string{"reason"},
		),
		open: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dialogs",
			Name:      "open",
			Help:      "Dialogs currently open.",
		}),
		stacking: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stacking_depth",
			Help:      "Current length of the modal stacking context.",
		}),
	}
	r.registry.MustRegister(r.opened, r.closed, r.open, r.stacking)
	return r
}

func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

func (r *Recorder) DialogOpened(d dialogstore.Descriptor) {
	kind := string(d.Kind)
	if kind == "" {
		kind = "unknown"
	}
	r.opened.WithLabelValues(kind).Inc()
	r.open.Inc()
}

func (r *Recorder) DialogClosed(_ dialogstore.Descriptor, reason dialogstore.CloseReason) {
	r.closed.WithLabelValues(string(reason)).Inc()
	r.open.Dec()
}

func (r *Recorder) StackChanged(depth int) {
	r.stacking.Set(float64(depth))
}

// Serve exposes the registry on addr until ctx is cancelled. ready, when not nil,
// receives the bound address once the listener is up.
func (r *Recorder) Serve(ctx context.Context, addr string, ready chan<- string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen metrics: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	if ready != nil {
		ready <- ln.Addr().String()
	}
	logging.Infof("metrics: serving on %s", ln.Addr())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown metrics: %w", err)
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
