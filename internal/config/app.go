package config

import "time"

type App struct {
	// RunInLoop keeps the process alive and re-runs the monitoring cycle
	// every Interval. When false a single cycle is run and the process exits.
	RunInLoop     bool          `env:"RUN_IN_LOOP" envDefault:"true"`
	Interval      time.Duration `env:"INTERVAL" envDefault:"1h" validate:"gt=0"`
	ProbeAddress  string        `env:"PROBE_ADDRESS" envDefault:":8081"`
	MetricAddress string        `env:"METRIC_ADDRESS" envDefault:":9102"`
}
