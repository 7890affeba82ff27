package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Badsnus/qr-styler/internal/domain/common/errorz"
	"github.com/Badsnus/qr-styler/pkg/logger/types"
	qr "github.com/Badsnus/qr-styler/pkg/qrcode"
	"github.com/Badsnus/qr-styler/pkg/qrstyle"
)

const maxBodyBytes = 1 << 20

type presetService interface {
	List(ctx context.Context, ownerID int64) ([]qrstyle.Preset, error)
	Get(ctx context.Context, ownerID int64, name string) (qrstyle.Preset, error)
	Save(ctx context.Context, ownerID int64, name, description string, state qrstyle.FormState) (qrstyle.Preset, error)
	Overwrite(ctx context.Context, ownerID int64, name, description string, state qrstyle.FormState) (qrstyle.Preset, error)
	Delete(ctx context.Context, ownerID int64, name string) error
}

type qrService interface {
	Render(ctx context.Context, state qrstyle.FormState) (*qr.Result, error)
}

// Options configures the API handler
type Options struct {
	Presets  presetService
	Qr       qrService
	Defaults qrstyle.FormState
	Gatherer prometheus.Gatherer
	Logger   *types.Logger
	// APIKeys maps bearer keys to preset owners. Requests without a key
	// act as owner 0 and only see the built-in presets.
	APIKeys map[string]int64
}

type Server struct {
	presets  presetService
	qr       qrService
	defaults qrstyle.FormState
	logger   *types.Logger
	apiKeys  map[string]int64
}

// NewHandler creates the HTTP API for presets, validation and rendering.
func NewHandler(opts Options) http.Handler {
	s := &Server{
		presets:  opts.Presets,
		qr:       opts.Qr,
		defaults: opts.Defaults.Clone(),
		logger:   opts.Logger,
		apiKeys:  opts.APIKeys,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/defaults", s.getDefaults)
	r.Get("/fields", s.getFields)
	r.Post("/validate", s.validate)
	r.Patch("/form", s.patchForm)
	r.Post("/render", s.render)

	r.Route("/presets", func(r chi.Router) {
		r.Get("/", s.listPresets)
		r.Post("/", s.savePreset)
		r.Get("/{name}", s.getPreset)
		r.Put("/{name}", s.putPreset)
		r.Delete("/{name}", s.deletePreset)
	})

	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// NewServer wraps the handler with the configured timeouts
func NewServer(addr string, handler http.Handler, readTimeout, writeTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debugw("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// ownerID resolves the caller from its API key, 0 means anonymous. An
// explicit ?owner must match the key's owner.
func (s *Server) ownerID(r *http.Request) (int64, error) {
	var owner int64
	key := r.Header.Get("X-Api-Key")
	if bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		key = bearer
	}
	if key != "" {
		var ok bool
		if owner, ok = s.apiKeys[key]; !ok {
			return 0, errorz.ErrUnauthorized
		}
	}

	if raw := r.URL.Query().Get("owner"); raw != "" {
		requested, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || requested != owner {
			return 0, errorz.ErrForbidden
		}
	}
	return owner, nil
}
