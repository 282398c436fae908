package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagScenario = flag.String("scenario", "", "Scenario file to run")
	flagGraph    = flag.String("graph", "", "Animation graph file")
	flagTickRate = flag.Int("tick-rate", 0, "Simulation ticks per second")
	flagWatch    = flag.Bool("watch", false, "Rerun when the config or scenario changes")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// ApplyFlags applies CLI flag overrides to the config.
func ApplyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagScenario != "" {
		cfg.Sim.Scenario = *flagScenario
	}
	if *flagGraph != "" {
		cfg.Sim.GraphPath = *flagGraph
	}
	if *flagTickRate > 0 {
		cfg.Sim.TickRate = *flagTickRate
	}
	if *flagWatch {
		cfg.Sim.Watch = true
	}
}
