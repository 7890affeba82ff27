package service

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Badsnus/qr-styler/pkg/logger/types"
	qr "github.com/Badsnus/qr-styler/pkg/qrcode"
	"github.com/Badsnus/qr-styler/pkg/qrstyle"
)

type qrRenderer interface {
	Render(ctx context.Context, state qrstyle.FormState) (*qr.Result, error)
}

type QrService struct {
	renderer qrRenderer
	metrics  *Metrics
	logger   *types.Logger
}

func NewQrService(renderer qrRenderer, metrics *Metrics, logger *types.Logger) *QrService {
	return &QrService{
		renderer: renderer,
		metrics:  metrics,
		logger:   logger,
	}
}

// Render validates and draws state, recording the outcome.
func (s *QrService) Render(ctx context.Context, state qrstyle.FormState) (*qr.Result, error) {
	start := time.Now()
	res, err := s.renderer.Render(ctx, state)
	elapsed := time.Since(start)

	result := renderResult(err)
	if s.metrics != nil {
		s.metrics.Renders.WithLabelValues(string(state.Type), result).Inc()
		s.metrics.RenderDuration.WithLabelValues(string(state.Type)).Observe(elapsed.Seconds())
	}

	if err != nil {
		if result == "error" {
			s.logger.Errorf("render failed (type: %s, size: %dx%d): %v", state.Type, state.Width, state.Height, err)
		}
		return nil, err
	}
	s.logger.Debugf("rendered version %d %s in %s", res.Version, res.Extension, elapsed)
	return res, nil
}

// renderResult classifies a render error as a user mistake or a failure
func renderResult(err error) string {
	var fieldErr *qrstyle.FieldError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &fieldErr), errors.Is(err, qr.ErrCapacity), errors.Is(err, qr.ErrImage):
		return "invalid"
	default:
		return "error"
	}
}

// Metrics holds the collectors of the service
type Metrics struct {
	Renders        *prometheus.CounterVec
	RenderDuration *prometheus.HistogramVec
	LogEntries     *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qrstyler_renders_total",
				Help: "Total number of rendered QR codes",
			},
			[]string{"type", "result"},
		),
		RenderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "qrstyler_render_duration_seconds",
				Help:    "Duration of QR code rendering",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"type"},
		),
		LogEntries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qrstyler_log_entries_total",
				Help: "Total number of log entries by level",
			},
			[]string{"level"},
		),
	}
	for _, c := range []prometheus.Collector{m.Renders, m.RenderDuration, m.LogEntries} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// LogHook counts log entries by level
func (m *Metrics) LogHook() types.LogHook {
	return func(log types.Log) {
		m.LogEntries.WithLabelValues(log.Level.String()).Inc()
	}
}
