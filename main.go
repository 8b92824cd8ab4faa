package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"Pavement/internal/auth"
	"Pavement/internal/calc/axles"
	"Pavement/internal/calc/batch"
	"Pavement/internal/calc/damage"
	"Pavement/internal/calc/design"
	"Pavement/internal/calc/growth"
	"Pavement/internal/calc/importer"
	"Pavement/internal/calc/layers"
	"Pavement/internal/calc/reliability"
	"Pavement/internal/calc/report"
	"Pavement/internal/calc/stress"
	"Pavement/internal/config"
	"Pavement/internal/logging"
	"Pavement/internal/metrics"
	"Pavement/internal/profile"
	"Pavement/internal/repo"
)

var wg sync.WaitGroup

func CORS(router *mux.Router) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Report-Folio"},
		AllowCredentials: false,
	}).Handler(router)
}

func HandleList(router *mux.Router, cfg config.Config, userRepo repo.Repository, m *metrics.Metrics) {
	authEnv := &auth.Authenv{JWTkey: []byte(cfg.TokenKey), Repo: userRepo, Secure: cfg.TLS()}
	profileH := &profile.ProfileHandler{Repo: userRepo}

	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	router.Handle("/metrics", m.Handler()).Methods("GET")
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")
	api.HandleFunc("/logout", authEnv.LogoutHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/profile", profileH.GetProfile).Methods("GET")
	secureApi.HandleFunc("/profile", profileH.UpdateProfile).Methods("PATCH", "PUT")
	secureApi.HandleFunc("/profile/{id:[0-9]+}", profileH.GetProfile).Methods("GET")

	axlesH := &axles.Handler{}
	stressH := &stress.Handler{}
	damageH := &damage.Handler{}
	growthH := &growth.Handler{}
	reliabilityH := &reliability.Handler{}
	layersH := &layers.Handler{}
	designH := &design.Handler{Observe: m.ObserveDesign}
	batchH := &batch.Handler{Observe: m.ObserveDesign}
	importH := &importer.Handler{}
	reportH := &report.Handler{Repo: userRepo}

	secureApi.HandleFunc("/tools/axles/calc", m.Wrap("axles", axlesH.Calc)).Methods("POST")
	secureApi.HandleFunc("/tools/stress/calc", m.Wrap("stress", stressH.Calc)).Methods("POST")
	secureApi.HandleFunc("/tools/damage/calc", m.Wrap("damage", damageH.Calc)).Methods("POST")
	secureApi.HandleFunc("/tools/growth/calc", m.Wrap("growth", growthH.Calc)).Methods("POST")
	secureApi.HandleFunc("/tools/reliability/calc", m.Wrap("reliability", reliabilityH.Calc)).Methods("POST")
	secureApi.HandleFunc("/tools/layers/calc", m.Wrap("layers", layersH.Calc)).Methods("POST")
	secureApi.HandleFunc("/tools/design/calc", m.Wrap("design", designH.Calc)).Methods("POST")
	secureApi.HandleFunc("/tools/batch/design", m.Wrap("batch", batchH.Design)).Methods("POST")
	secureApi.HandleFunc("/tools/import/composition", m.Wrap("import", importH.Composition)).Methods("POST")
	secureApi.HandleFunc("/tools/report/pdf", m.Wrap("report", reportH.Generate)).Methods("POST")
}

func openRepo(ctx context.Context, cfg config.Config) (repo.Repository, func(), error) {
	if cfg.DatabaseURL == "" {
		slog.Warn("DATABASE_URL not set; accounts are kept in memory")
		return repo.NewMemoryRepository(), func() {}, nil
	}
	db, err := auth.InitDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	pg := repo.NewPostgresUserDB(db)
	if err := pg.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return pg, func() { db.Close() }, nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logging.Setup(os.Stderr, "info")
		slog.Error("configuration", "err", err)
		os.Exit(1)
	}
	logging.Setup(os.Stderr, cfg.LogLevel)

	userRepo, closeRepo, err := openRepo(ctx, cfg)
	if err != nil {
		slog.Error("database", "err", err)
		os.Exit(1)
	}
	defer closeRepo()

	router := mux.NewRouter()
	HandleList(router, cfg, userRepo, metrics.New())

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           CORS(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		slog.Info("starting server", "addr", cfg.Addr, "tls", cfg.TLS())
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTTL)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "err", err)
	}
	wg.Wait()
	slog.Info("server stopped")
}
