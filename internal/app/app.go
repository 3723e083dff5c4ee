// This package is used to initialize the harness. It has dependencies on most
// other packages. Other packages can depend on it as a quick way to get access
// to all the dependencies.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/petuhovskiy/wrand/internal/bgjobs"
	"github.com/petuhovskiy/wrand/internal/conf"
	"github.com/petuhovskiy/wrand/internal/log"
	"github.com/petuhovskiy/wrand/internal/models"
	"github.com/petuhovskiy/wrand/internal/repos"
)

type App struct {
	Config   *conf.Sim
	Register *bgjobs.Register

	// DB and Runs are nil when POSTGRES_DSN is not configured.
	DB   *gorm.DB
	Runs *repos.RunRepo
}

func NewAppFromEnv() (*App, error) {
	cfg, err := conf.ParseEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to parse config from env: %w", err)
	}

	a := &App{
		Config:   cfg,
		Register: bgjobs.NewRegister(),
	}

	if cfg.PostgresDSN == "" {
		log.Info(context.Background(), "no postgres dsn, run recording is disabled")
		return a, nil
	}

	db, err := connectDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	err = db.AutoMigrate(
		&models.Run{},
		&models.Outcome{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	if cfg.DebugDB {
		db = db.Debug()
	}

	a.DB = db
	a.Runs = repos.NewRunRepo(db)
	return a, nil
}

var (
	Rounds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "randsim_rounds_total",
		Help: "Number of finished trial rounds",
	})
	RoundDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "randsim_round_seconds",
		Help: "Time spent on each round of trials",
	})
	Outcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "randsim_outcomes_total",
		Help: "Selection outcomes by value",
	}, []string{"value"})
)

func (a *App) StartPrometheus() {
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		err := http.ListenAndServe(a.Config.PrometheusBind, mux)
		if err != nil && err != http.ErrServerClosed {
			log.Fatal(context.TODO(), "prometheus server error", zap.Error(err))
		}
	}()
}

func connectDB(cfg *conf.Sim) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}
