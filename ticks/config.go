package ticks

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the YAML representation of tick generator settings:
//
//	epoch: 2024-01-01T00:00:00Z
//	timezone: Europe/Vienna
//	pixels_between_ticks: 80
//	year_order_factor: 6
//	formats:
//	  hour_minute: "%H:%m"
//	grid:
//	  tick_spacing: 100
//	  minor_tick_count: 4
//	  label: Depth
//	  units: m
//	  abbreviated: true
//
// Omitted keys keep their defaults.
type Config struct {
	Epoch              time.Time    `yaml:"epoch"`
	TimeZone           string       `yaml:"timezone"`
	PixelsBetweenTicks float64      `yaml:"pixels_between_ticks"`
	YearOrderFactor    float64      `yaml:"year_order_factor"`
	Formats            LabelFormats `yaml:"formats"`
	Grid               GridConfig   `yaml:"grid"`
}

// GridConfig holds the settings of a Grid generator.
type GridConfig struct {
	TickSpacing    int    `yaml:"tick_spacing"`
	MinorTickCount int    `yaml:"minor_tick_count"`
	Label          string `yaml:"label"`
	Units          string `yaml:"units"`
	Abbreviated    bool   `yaml:"abbreviated"`
}

// DefaultConfig returns the settings of freshly created generators.
func DefaultConfig() *Config {
	return &Config{
		Epoch:              PosixEpoch.Time(),
		TimeZone:           "UTC",
		PixelsBetweenTicks: DefaultPixelsBetweenTicks,
		YearOrderFactor:    DefaultYearOrderFactor,
		Formats:            DefaultLabelFormats(),
		Grid: GridConfig{
			TickSpacing:    DefaultTickSpacing,
			MinorTickCount: DefaultMinorTickCount,
		},
	}
}

// LoadConfig reads a YAML configuration on top of the defaults and
// validates it. An empty document yields the defaults.
func LoadConfig(r io.Reader) (*Config, error) {
	conf := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(conf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Validate checks the configuration for unusable values.
func (conf *Config) Validate() error {
	if conf.PixelsBetweenTicks <= 0 {
		return fmt.Errorf("%w: pixels_between_ticks must be positive, is %g",
			ErrInvalidConfig, conf.PixelsBetweenTicks)
	}
	if conf.YearOrderFactor <= 0 {
		return fmt.Errorf("%w: year_order_factor must be positive, is %g",
			ErrInvalidConfig, conf.YearOrderFactor)
	}
	if conf.Grid.TickSpacing <= 0 || conf.Grid.MinorTickCount < 0 {
		return fmt.Errorf("%w: grid spacing %d / minor ticks %d",
			ErrInvalidConfig, conf.Grid.TickSpacing, conf.Grid.MinorTickCount)
	}
	if _, err := conf.Location(); err != nil {
		return err
	}
	if _, err := conf.Formats.compile(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Location resolves the display time zone.
func (conf *Config) Location() (*time.Location, error) {
	if conf.TimeZone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(conf.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownZone, conf.TimeZone)
	}
	return loc, nil
}

// Handler creates a time tick generator from the configuration.
func (conf *Config) Handler() (*AbsoluteTime, error) {
	loc, err := conf.Location()
	if err != nil {
		return nil, err
	}
	at := NewAbsoluteTime(NewEpoch(conf.Epoch), loc).
		SetPixelsBetweenTicks(conf.PixelsBetweenTicks).
		SetYearOrderFactor(conf.YearOrderFactor)
	if err := at.SetLabelFormats(conf.Formats); err != nil {
		tracer().Errorf("label formats: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return at, nil
}

// GridHandler creates a numeric tick generator from the configuration.
func (conf *Config) GridHandler() *Grid {
	g := NewGrid().
		SetTickSpacing(conf.Grid.TickSpacing).
		SetMinorTickCount(conf.Grid.MinorTickCount).
		SetAxisLabel(conf.Grid.Label)
	if conf.Grid.Units != "" {
		g.SetAxisUnits(conf.Grid.Units, conf.Grid.Abbreviated)
	}
	return g
}
