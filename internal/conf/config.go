package conf

import (
	"github.com/caarlos0/env/v6"
)

// Sim is the configuration of the randsim harness.
type Sim struct {
	PrometheusBind string `env:"PROMETHEUS_BIND" envDefault:":2112"`

	// PostgresDSN enables run recording when set.
	PostgresDSN string `env:"POSTGRES_DSN"`

	// Node is a name of the current node, stored with every recorded run.
	Node string `env:"NODE" envDefault:"local-laptop"`

	// Distribution is a JSON array of weighted items, e.g.
	// [{"Weight":1,"Value":"a"},{"Weight":3,"Value":"b"}].
	Distribution string `env:"DISTRIBUTION" envDefault:"[{\"Weight\":1,\"Value\":\"a\"},{\"Weight\":3,\"Value\":\"b\"}]"`

	// NoneWeight is extra probability mass for the "no selection" outcome.
	NoneWeight float64 `env:"NONE_WEIGHT" envDefault:"0"`

	// NoneUpTo tops the "no selection" mass up so the selector's total
	// weight reaches this value. 0 disables the top-up.
	NoneUpTo float64 `env:"NONE_UP_TO" envDefault:"0"`

	// Trials per round, split across workers.
	Trials  int `env:"TRIALS" envDefault:"100000"`
	Workers int `env:"WORKERS" envDefault:"4"`

	// Seed for the round's generators. 0 means a fresh seed every round.
	Seed int64 `env:"SEED" envDefault:"0"`

	// Period between rounds, e.g. "random(5,10)" seconds.
	// Empty runs a single round and exits.
	Period string `env:"PERIOD" envDefault:"random(5,10)"`

	DebugDB bool `env:"DEBUG_DB" envDefault:"false"`
}

func ParseEnv() (*Sim, error) {
	cfg := Sim{}
	err := env.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
