// Package config loads engine settings from an optional YAML file and
// GLOBETRIP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/viper"
)

// tracer writes to trace with key 'globetrip.config'
func tracer() tracing.Trace {
	return tracing.Select("globetrip.config")
}

// ErrInvalidSetting is returned for settings the engine cannot run with.
var ErrInvalidSetting = errors.New("invalid setting")

// EnvPrefix prefixes environment variables overriding settings, e.g.
// GLOBETRIP_JOURNEY_SPEED=fast.
const EnvPrefix = "GLOBETRIP"

// Settings holds all engine settings.
type Settings struct {
	Itinerary string        `mapstructure:"itinerary"` // itinerary file, empty for the built-in tour
	Globe     GlobeConfig   `mapstructure:"globe"`
	Journey   JourneyConfig `mapstructure:"journey"`
	Trail     TrailConfig   `mapstructure:"trail"`
	Camera    CameraConfig  `mapstructure:"camera"`
	Chat      ChatConfig    `mapstructure:"chat"`
}

// GlobeConfig holds globe and marker geometry.
type GlobeConfig struct {
	Radius       float64 `mapstructure:"radius"`
	MarkerHeight float64 `mapstructure:"markerHeight"`
	HitRadius    float64 `mapstructure:"hitRadius"`
}

// JourneyConfig holds journey timing.
type JourneyConfig struct {
	Speed string        `mapstructure:"speed"` // slow, normal or fast
	Dwell time.Duration `mapstructure:"dwell"`
	Tick  time.Duration `mapstructure:"tick"` // frame duration
}

// TrailConfig holds trail particle settings.
type TrailConfig struct {
	Capacity int     `mapstructure:"capacity"`
	Decay    float64 `mapstructure:"decay"`
	Chance   float64 `mapstructure:"chance"`
}

// CameraConfig holds camera settings.
type CameraConfig struct {
	Height      float64       `mapstructure:"height"` // above the surface when framing a waypoint
	FlyDuration time.Duration `mapstructure:"flyDuration"`
	AutoRotate  bool          `mapstructure:"autoRotate"`
}

// ChatConfig holds chat service settings.
type ChatConfig struct {
	Endpoint    string        `mapstructure:"endpoint"`
	Model       string        `mapstructure:"model"`
	History     int           `mapstructure:"history"`
	MaxTokens   int           `mapstructure:"maxTokens"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("itinerary", "")

	v.SetDefault("globe.radius", 0.5)
	v.SetDefault("globe.markerHeight", 0.01)
	v.SetDefault("globe.hitRadius", 0.03)

	v.SetDefault("journey.speed", "normal")
	v.SetDefault("journey.dwell", "5s")
	v.SetDefault("journey.tick", "16ms")

	v.SetDefault("trail.capacity", 20)
	v.SetDefault("trail.decay", 0.05)
	v.SetDefault("trail.chance", 0.5)

	v.SetDefault("camera.height", 1.3)
	v.SetDefault("camera.flyDuration", "1.5s")
	v.SetDefault("camera.autoRotate", true)

	v.SetDefault("chat.endpoint", "/api/chat")
	v.SetDefault("chat.model", "gpt-4")
	v.SetDefault("chat.history", 20)
	v.SetDefault("chat.maxTokens", 500)
	v.SetDefault("chat.temperature", 0.7)
	v.SetDefault("chat.timeout", "30s")
}

// Default returns the built-in settings, with environment overrides applied.
func Default() (Settings, error) {
	return Load("")
}

// Load reads settings from a YAML file at path, on top of the defaults.
// With an empty path, only defaults and environment variables are used.
func Load(path string) (Settings, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("error reading config file: %w", err)
		}
		tracer().Infof("settings read from %s", v.ConfigFileUsed())
	}
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("error decoding settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks settings for values the engine cannot run with.
func (s Settings) Validate() error {
	switch {
	case !(s.Globe.Radius > 0):
		return fmt.Errorf("%w: globe radius %g", ErrInvalidSetting, s.Globe.Radius)
	case s.Journey.Tick <= 0:
		return fmt.Errorf("%w: journey tick %v", ErrInvalidSetting, s.Journey.Tick)
	case s.Journey.Dwell < 0:
		return fmt.Errorf("%w: journey dwell %v", ErrInvalidSetting, s.Journey.Dwell)
	case s.Trail.Capacity < 1:
		return fmt.Errorf("%w: trail capacity %d", ErrInvalidSetting, s.Trail.Capacity)
	case s.Chat.History < 1:
		return fmt.Errorf("%w: chat history %d", ErrInvalidSetting, s.Chat.History)
	}
	return nil
}
