// Package config handles motion-simulator configuration loading and
// management.
package config

import (
	"github.com/Faultbox/midgard-motion/internal/game/behavior"
)

// Config holds all simulator settings.
type Config struct {
	Motion  MotionConfig  `yaml:"motion"`
	Sim     SimConfig     `yaml:"sim"`
	Logging LoggingConfig `yaml:"logging"`
}

// MotionConfig holds the tuning of every motion behavior.
type MotionConfig struct {
	Idle      behavior.IdleConfig       `yaml:"idle"`
	Pivot     behavior.LocomotionConfig `yaml:"pivot"`
	Strafe    behavior.LocomotionConfig `yaml:"strafe"`
	SpellCast behavior.SpellCastConfig  `yaml:"spell_cast"`
}

// SimConfig holds headless simulation settings.
type SimConfig struct {
	TickRate    int     `yaml:"tick_rate"`    // ticks per second
	Scenario    string  `yaml:"scenario"`     // scenario file to run
	GraphPath   string  `yaml:"graph"`        // animation graph, empty for the built-in one
	Watch       bool    `yaml:"watch"`        // rerun when the config or scenario changes
	CameraSpeed float32 `yaml:"camera_speed"` // camera follow rate in degrees per second, 0 snaps
}

// DT returns the tick duration in seconds.
func (s SimConfig) DT() float32 {
	if s.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1 / float32(s.TickRate)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	Format  string `yaml:"format"` // console or json
	// Sampling throttles identical entries per second; 0 logs everything.
	SampleFirst      int `yaml:"sample_first"`
	SampleThereafter int `yaml:"sample_thereafter"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Motion: MotionConfig{
			Idle:      behavior.DefaultIdleConfig(),
			Pivot:     behavior.DefaultPivotConfig(),
			Strafe:    behavior.DefaultStrafeConfig(),
			SpellCast: behavior.DefaultSpellCastConfig(),
		},
		Sim: SimConfig{
			TickRate:    60,
			CameraSpeed: 360,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
			Format:  "console",
		},
	}
}
