package main

import "github.com/spf13/viper"

// Config is the stampd service configuration.
type Config struct {
	Server    Server    `yaml:"server"`
	Generator Generator `yaml:"generator"`
	Limits    Limits    `yaml:"limits"`
}

type Server struct {
	Port string `yaml:"port"`
}

type Generator struct {
	Model    string `yaml:"model"`
	Parallel int    `yaml:"parallel"`
}

type Limits struct {
	MinCount int `yaml:"min_count" mapstructure:"min_count"`
	MaxCount int `yaml:"max_count" mapstructure:"max_count"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Server:    Server{Port: "8080"},
		Generator: Generator{Parallel: 1},
		Limits:    Limits{MinCount: 1, MaxCount: 40},
	}
}

// InitConfig loads a YAML configuration file.
func InitConfig(filename string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
