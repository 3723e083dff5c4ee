package sim

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/petuhovskiy/wrand"
	"github.com/petuhovskiy/wrand/internal/app"
	"github.com/petuhovskiy/wrand/internal/bgjobs"
	"github.com/petuhovskiy/wrand/internal/conf"
	"github.com/petuhovskiy/wrand/internal/log"
	"github.com/petuhovskiy/wrand/internal/models"
	"github.com/petuhovskiy/wrand/internal/repos"
)

// Round exercises a selector built from config and records the results.
// The selector is built once and reused for every execution.
type Round struct {
	cfg    *conf.Sim
	items  []wrand.Item[string]
	sel    *wrand.Selector[string]
	reg    *bgjobs.Register
	runs   *repos.RunRepo
	period *Period
}

func NewRound(base *app.App) (*Round, error) {
	cfg := base.Config

	var items []wrand.Item[string]
	err := json.Unmarshal([]byte(cfg.Distribution), &items)
	if err != nil {
		return nil, fmt.Errorf("failed to parse distribution: %w", err)
	}

	sel := wrand.FromItems(items...)
	if cfg.NoneWeight > 0 {
		sel.WithNone(cfg.NoneWeight)
	}
	if cfg.NoneUpTo > 0 {
		sel.WithNoneUpTo(cfg.NoneUpTo)
	}

	period, err := ParsePeriod(cfg.Period)
	if err != nil {
		return nil, err
	}

	return &Round{
		cfg:    cfg,
		items:  items,
		sel:    sel,
		reg:    base.Register,
		runs:   base.Runs,
		period: period,
	}, nil
}

// Period between executions. Nil means a single round.
func (r *Round) Period() *Period {
	return r.period
}

// Execute runs one round of trials, exports metrics and saves the run.
func (r *Round) Execute(ctx context.Context) error {
	ctx = log.Into(ctx, "round")

	seed := r.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	start := time.Now()
	hist := RunTrials(r.reg, r.sel, r.cfg.Trials, r.cfg.Workers, seed)
	elapsed := time.Since(start)

	chi := ChiSquare(hist, r.items, r.sel.TotalWeight())

	app.Rounds.Inc()
	app.RoundDuration.Observe(elapsed.Seconds())
	for v, cnt := range hist.Values {
		app.Outcomes.WithLabelValues(v).Add(float64(cnt))
	}
	if hist.None > 0 {
		app.Outcomes.WithLabelValues("none").Add(float64(hist.None))
	}

	log.Info(ctx, "round finished",
		zap.Int64("seed", seed),
		zap.Int("trials", r.cfg.Trials),
		zap.Float64("chiSquare", chi),
		zap.Duration("elapsed", elapsed),
		zap.Any("observed", hist.Values),
		zap.Int64("none", hist.None),
	)

	if r.runs == nil {
		return nil
	}

	run := r.buildRun(seed, hist, chi)
	err := r.runs.Save(run)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	log.Debug(ctx, "run saved", zap.Uint("runID", run.ID))
	return nil
}

func (r *Round) buildRun(seed int64, hist *Histogram, chi float64) *models.Run {
	exp, noneExp := Expected(r.items, r.sel.TotalWeight(), int(hist.Total()))

	var outcomes []models.Outcome
	for v, e := range exp {
		outcomes = append(outcomes, models.Outcome{
			Value:    v,
			Count:    hist.Values[v],
			Expected: e,
		})
	}
	if hist.None > 0 || noneExp > 0 {
		outcomes = append(outcomes, models.Outcome{
			None:     true,
			Count:    hist.None,
			Expected: noneExp,
		})
	}

	return &models.Run{
		Node:        r.cfg.Node,
		Seed:        seed,
		Trials:      r.cfg.Trials,
		Workers:     r.cfg.Workers,
		TotalWeight: r.sel.TotalWeight(),
		ChiSquare:   chi,
		Outcomes:    outcomes,
	}
}
