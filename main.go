package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gorilla/mux"

	auth "Impeller/internal/auth"
	batch "Impeller/internal/calc/premium/batch"
	importer "Impeller/internal/calc/premium/importer"
	pump "Impeller/internal/calc/pump"
	report "Impeller/internal/calc/report"
	config "Impeller/internal/config"
	health "Impeller/internal/health"
	"Impeller/internal/httpjson"
	logger "Impeller/internal/logger"
	"Impeller/internal/metrics"
	"Impeller/internal/middleware"
	repo "Impeller/internal/repo"
	"Impeller/internal/version"
)

var wg sync.WaitGroup

func usersDisabled(w http.ResponseWriter, r *http.Request) {
	httpjson.Error(w, http.StatusServiceUnavailable, "User storage is not configured")
}

// HandleList registers every route. users may be nil, in which case
// register and login answer 503; db may be nil for /healthz.
func HandleList(r *mux.Router, cfg *config.Config, users repo.Repository, db health.Pinger) {
	r.Use(middleware.LogRequest, middleware.Recover)

	r.Handle("/healthz", &health.Handler{DB: db}).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	authEnv := &auth.Authenv{
		JWTkey:       cfg.TokenKey,
		Repo:         users,
		TTL:          cfg.TokenTTL,
		SecureCookie: cfg.TLSEnabled(),
	}
	limiter := auth.NewIPRateLimiter(cfg.RateLimit, cfg.RateBurst)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	if users != nil {
		api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
		api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")
	} else {
		api.HandleFunc("/login", usersDisabled).Methods("POST")
		api.HandleFunc("/register", usersDisabled).Methods("POST")
	}

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	pumpH := &pump.Handler{}
	batchH := &batch.Handler{}
	importH := &importer.Handler{}
	reportH := &report.Handler{}

	secureApi.HandleFunc("/tools/pump/calc", pumpH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/pump/batch", batchH.Pump).Methods("POST")
	secureApi.HandleFunc("/tools/pump/import", importH.Pump).Methods("POST")
	secureApi.HandleFunc("/tools/pump/report", reportH.Generate).Methods("POST")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpjson.Error(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpjson.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
}

func openUsers(ctx context.Context, cfg *config.Config) (*sql.DB, repo.Repository, error) {
	if !cfg.UsersEnabled() {
		slog.Warn("DATABASE_URL not set; register and login are disabled")
		return nil, nil, nil
	}
	db, err := repo.InitDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	users := repo.NewPostgresUserDB(db)
	if err := users.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, users, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, users, err := openUsers(ctx, cfg)
	if err != nil {
		slog.Error("database", "error", err)
		os.Exit(1)
	}
	var pinger health.Pinger
	if db != nil {
		defer db.Close()
		pinger = db
	}

	router := mux.NewRouter()
	HandleList(router, cfg, users, pinger)

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: middleware.CORS(cfg.CORSOrigin)(router),
	}

	slog.Info("starting server", "addr", server.Addr, "tls", cfg.TLSEnabled(), "version", version.Version)
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLSEnabled() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown signal received, closing active connections")

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer stop()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown", "error", err)
	}
	wg.Wait()
	slog.Info("server stopped")
}
