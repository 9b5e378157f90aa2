package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           int    `envconfig:"PORT" default:"8080"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"localhost:5173,localhost:3000"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`

	Canvas Canvas `envconfig:"CANVAS"`
}

// Canvas holds the engine tunables shared by every session.
type Canvas struct {
	MinScale         float64 `envconfig:"MIN_SCALE" default:"0.01"`
	MaxScale         float64 `envconfig:"MAX_SCALE" default:"5.0"`
	StrokeWeight     float64 `envconfig:"STROKE_WEIGHT" default:"10"`
	StrokeColor      string  `envconfig:"STROKE_COLOR" default:"#FF0000"`
	EraserRadius     float64 `envconfig:"ERASER_RADIUS" default:"8"`
	MinPointDistance float64 `envconfig:"MIN_POINT_DISTANCE" default:"0"`
	ShapeTolerance   float64 `envconfig:"SHAPE_TOLERANCE" default:"0.08"`
	StylusOnly       bool    `envconfig:"STYLUS_ONLY" default:"true"`
	Strict           bool    `envconfig:"STRICT" default:"false"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
