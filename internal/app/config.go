package app

import (
	"errors"
	"fmt"
)

// DefaultSaveName is the killweb name written when none is given.
const DefaultSaveName = "killweb"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string // killweb file (.json, .yaml, .yml or .hcl)
	TasksPath  string // directory of task manifests

	Iterations        int
	TopN              int
	SelectedComponent string
	ReportPath        string // chain to report on, e.g. "Radar, Missile"
	Seed              uint64 // zero picks a random seed

	SavePath string
	SaveName string

	ServeAddr        string
	InspectURL       string
	InspectComponent string

	Silent    bool
	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InspectURL != "" {
		if cfg.InspectComponent == "" {
			return nil, errors.New("InspectComponent is required when InspectURL is set")
		}
		return &cfg, nil
	}
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	if cfg.Iterations < 0 {
		return nil, fmt.Errorf("Iterations must not be negative, got %d", cfg.Iterations)
	}
	if cfg.TopN < 0 {
		return nil, fmt.Errorf("TopN must not be negative, got %d", cfg.TopN)
	}
	if cfg.SaveName == "" {
		cfg.SaveName = DefaultSaveName
	}
	return &cfg, nil
}
