package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/matzehuels/barchart/pkg/cache"
	"github.com/matzehuels/barchart/pkg/chart"
	"github.com/matzehuels/barchart/pkg/dataset"
	"github.com/matzehuels/barchart/pkg/errors"
	"github.com/matzehuels/barchart/pkg/pipeline"
)

// MaxBodySize caps uploaded dataset bodies.
const MaxBodySize = 10 << 20

// cacheTTL bounds cached chart bodies. Revisions change on every update.
const cacheTTL = cache.TTLChart

// Server holds the dataset store and one live chart per dataset.
type Server struct {
	store  dataset.Store
	cache  cache.Cache
	keyer  cache.Keyer
	cfg    chart.Config
	logger *log.Logger

	mu   sync.Mutex
	live map[string]*liveChart
}

type liveChart struct {
	chart    *chart.Chart
	revision string
	time     bool
}

// Option configures a Server.
type Option func(*Server)

// WithConfig sets the chart configuration used for every live chart.
func WithConfig(cfg chart.Config) Option { return func(s *Server) { s.cfg = cfg } }

// WithLogger sets the server logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithCache caches rendered chart bodies by dataset revision.
func WithCache(c cache.Cache, keyer cache.Keyer) Option {
	return func(s *Server) {
		s.cache = c
		if keyer != nil {
			s.keyer = keyer
		}
	}
}

// New creates a server over store.
func New(store dataset.Store, opts ...Option) (*Server, error) {
	s := &Server{
		store:  store,
		cache:  cache.NewNullCache(),
		keyer:  cache.NewDefaultKeyer(),
		logger: log.Default(),
		live:   make(map[string]*liveChart),
	}
	for _, opt := range opts {
		opt(s)
	}
	// Surface config errors at startup rather than on first request.
	if err := s.cfg.WithDefaults().Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(instrument)

	r.Get("/healthz", s.handleHealth)
	r.Route("/datasets", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handlePut)
			r.Delete("/", s.handleDelete)
			r.Get("/chart.{format}", s.handleChart)
			r.Get("/nearest", s.handleNearest)
		})
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = render.Render(w, r, ErrFrom(errors.New(errors.ErrCodeNotFound, "no route for %s", r.URL.Path)))
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// liveFor returns the live chart for ds, creating and rendering it if
// needed. Callers hold s.mu.
func (s *Server) liveFor(ctx context.Context, name string) (*liveChart, error) {
	if lc, ok := s.live[name]; ok {
		return lc, nil
	}
	ds, err := s.store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	lc, err := s.newLive(ds)
	if err != nil {
		return nil, err
	}
	s.live[name] = lc
	return lc, nil
}

func (s *Server) newLive(ds *dataset.Dataset) (*liveChart, error) {
	cfg := pipeline.ChartConfig(ds, pipeline.Options{Config: s.cfg})
	c, err := chart.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := c.Render(ds.Points); err != nil {
		return nil, err
	}
	return &liveChart{chart: c, revision: uuid.NewString(), time: ds.Time}, nil
}

// replace stores ds and moves its live chart to the new points. A chart
// too small for the new points fails before anything is stored.
func (s *Server) replace(ctx context.Context, ds *dataset.Dataset) (*liveChart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lc, ok := s.live[ds.Name]
	if ok && lc.time != ds.Time {
		ok = false
	}
	if ok {
		if _, err := lc.chart.BarWidth(len(ds.Points)); err != nil {
			return nil, err
		}
	} else {
		var err error
		if lc, err = s.newLive(ds); err != nil {
			return nil, err
		}
	}

	if err := s.store.Put(ctx, ds); err != nil {
		return nil, err
	}

	if ok {
		if err := lc.chart.Update(ds.Points); err != nil {
			return nil, err
		}
		lc.revision = uuid.NewString()
	}
	s.live[ds.Name] = lc
	return lc, nil
}

func (s *Server) drop(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(ctx, name); err != nil {
		return err
	}
	delete(s.live, name)
	return nil
}
