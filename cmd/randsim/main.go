package main

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/petuhovskiy/wrand/internal/app"
	zlog "github.com/petuhovskiy/wrand/internal/log"
	"github.com/petuhovskiy/wrand/internal/sim"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetReportCaller(true)
	log.SetLevel(log.DebugLevel)

	defer zlog.DefaultGlobals()()

	base, err := app.NewAppFromEnv()
	if err != nil {
		log.WithError(err).Fatal("failed to init app")
	}

	base.StartPrometheus()

	round, err := sim.NewRound(base)
	if err != nil {
		log.WithError(err).Fatal("failed to init round")
	}

	ctx := context.Background()
	for {
		err := round.Execute(ctx)
		if err != nil {
			log.WithError(err).Error("round execution error")
		}

		period := round.Period()
		if period == nil {
			break
		}
		period.Sleep(ctx)
	}

	base.Register.WaitAll(ctx)
}
