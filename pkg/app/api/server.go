// Package api implements app.Runner for the reconciliation server process.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apphttp "github.com/chainsafe/audit-register-recon/pkg/app/http"
	auditservice "github.com/chainsafe/audit-register-recon/pkg/audit/service"
	"github.com/chainsafe/audit-register-recon/pkg/auditstore"
	"github.com/chainsafe/audit-register-recon/pkg/config"
	"github.com/chainsafe/audit-register-recon/pkg/pgutil"
	reconcilerpkg "github.com/chainsafe/audit-register-recon/pkg/reconciler"
	"github.com/chainsafe/audit-register-recon/pkg/settlement"
	settlementservice "github.com/chainsafe/audit-register-recon/pkg/settlement/service"
	"github.com/chainsafe/audit-register-recon/pkg/settlementstore"
	"github.com/chainsafe/audit-register-recon/pkg/sweep"
)

// Server holds cfg to init the reconciliation server.
type Server struct {
	cfg *config.Config
}

// NewServer initializes new reconciliation server.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("server config is nil")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting audit register reconciliation server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
	)

	db, err := pgutil.ConnectDB(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	logger.Info("Connected to database",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Database),
	)

	locker, closeLocker, err := s.openLocker(ctx, logger)
	if err != nil {
		return err
	}
	defer closeLocker()

	loc := cfg.Sweep.TimeLocation()
	sweeper := sweep.New(locker, logger)
	jobs := settlementservice.NewJobs(settlementstore.NewStore(db))

	auditService := auditservice.NewService(auditstore.NewStore(db), logger, auditservice.WithLocation(loc))
	settlementService := settlementservice.NewService(sweeper, jobs, cfg.Sweep.WindowDays)

	router := s.setupRouter(
		auditservice.NewLog(auditService, logger),
		settlementservice.NewLog(settlementService, logger),
		loc,
		logger,
	)

	srv, err := apphttp.NewServer(router, &cfg.Server, logger)
	if err != nil {
		return err
	}
	// Bind before starting background work so a taken port fails without sweeping.
	if _, err := srv.Listen(); err != nil {
		return err
	}

	// Hooks run before the deferred DB and redis closes.
	if stopSweep := s.startPeriodicSweep(sweeper, jobs, loc, logger); stopSweep != nil {
		srv.OnShutdown("periodic sweep", func(context.Context) error {
			stopSweep()
			return nil
		})
	}

	return srv.Run(ctx)
}

func (s *Server) openLocker(ctx context.Context, logger *zap.Logger) (sweep.Locker, func(), error) {
	if !s.cfg.Lock.Enabled {
		return sweep.NoopLocker{}, func() {}, nil
	}

	rdb, err := sweep.NewRedisClient(ctx, &s.cfg.Lock)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Sweep lock enabled",
		zap.String("redis_addr", s.cfg.Lock.RedisAddr),
		zap.Duration("ttl", s.cfg.Lock.TTL),
	)
	return sweep.NewRedisLocker(rdb, s.cfg.Lock.TTL), func() { _ = rdb.Close() }, nil
}

// startPeriodicSweep returns the stop func of the background sweep, or nil when it is disabled
func (s *Server) startPeriodicSweep(
	sweeper *sweep.Sweeper,
	jobs []settlement.Job,
	loc *time.Location,
	logger *zap.Logger,
) func() {
	if s.cfg.Sweep.Interval <= 0 {
		return nil
	}

	rec := reconcilerpkg.New(sweeper, jobs, reconcilerpkg.Config{
		WindowDays:   s.cfg.Sweep.WindowDays,
		Interval:     s.cfg.Sweep.Interval,
		RunTimeout:   s.cfg.Sweep.RunTimeout,
		RunOnStartup: s.cfg.Sweep.RunOnStartup,
		Location:     loc,
	}, logger)
	rec.StartPeriodicSweep()
	return rec.Stop
}

func (s *Server) setupRouter(
	auditService auditservice.Service,
	settlementService settlementservice.Service,
	loc *time.Location,
	logger *zap.Logger,
) chi.Router {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if s.cfg.Monitoring.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	auditservice.RegisterRoutes(r, auditService, logger)
	settlementservice.RegisterRoutes(r, settlementService, loc, logger)

	return r
}
