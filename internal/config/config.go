// Package config defines the data structures related to configuration and
// includes functions for loading and validating a mission file.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/iwvelando/artillery-calculator/pkg/constants"
	"github.com/iwvelando/artillery-calculator/pkg/geometry"
	"github.com/iwvelando/artillery-calculator/pkg/group"
	"github.com/iwvelando/artillery-calculator/pkg/validation"
	"github.com/iwvelando/artillery-calculator/pkg/wind"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding mission keys,
// e.g. ARTY_MISSION_MODE.
const EnvPrefix = "ARTY"

var (
	// ErrMissingObservation is returned when a mode lacks a required input.
	ErrMissingObservation = errors.New("missing observation")

	// ErrNegativeDistance is returned for an observation behind the spotter.
	ErrNegativeDistance = errors.New("negative distance")
)

// Configuration holds all configuration for artillery-calculator.
type Configuration struct {
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Mission Mission       `yaml:"mission"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// Mission holds the observations for one calculation. Which observations are
// required depends on the mode.
type Mission struct {
	Mode           string               `yaml:"mode"`
	ArtilleryClass string               `yaml:"artilleryClass,omitempty" mapstructure:"artilleryClass"`
	Wind           wind.Observation     `yaml:"wind,omitempty"`
	Artillery      *geometry.PolarPoint `yaml:"artillery,omitempty"`
	Target         *geometry.PolarPoint `yaml:"target,omitempty"`
	Impact         *geometry.PolarPoint `yaml:"impact,omitempty"`
	Group          *GroupConfig         `yaml:"group,omitempty"`
}

// GroupConfig holds the central firing data and the grid positions of a
// battery.
type GroupConfig struct {
	Central *group.CentralSolution `yaml:"central"`
	Units   []group.Unit           `yaml:"units"`
}

// LoadOption adjusts how a configuration is loaded.
type LoadOption func(*loadOptions)

type loadOptions struct {
	ignoreEnv bool
}

// WithoutEnv disables the ARTY_* environment overrides, so only the supplied
// document is decoded. Request bodies are loaded this way.
func WithoutEnv() LoadOption {
	return func(o *loadOptions) {
		o.ignoreEnv = true
	}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string, opts ...LoadOption) (*Configuration, error) {
	v := newViper(opts)
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader, opts ...LoadOption) (*Configuration, error) {
	v := newViper(opts)
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func newViper(opts []LoadOption) *viper.Viper {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	v := viper.New()
	v.SetConfigType("yml")
	if !o.ignoreEnv {
		v.SetEnvPrefix(EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}

	v.SetDefault("mission.mode", constants.ModeDirect)
	v.SetDefault("mission.wind.level", constants.MinWindLevel)
	v.SetDefault("mission.wind.direction", 0)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	if err := checkWholeWindLevel(v.Get("mission.wind.level")); err != nil {
		return nil, err
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	configuration.Mission.Mode = strings.ToLower(strings.TrimSpace(configuration.Mission.Mode))
	return &configuration, nil
}

// checkWholeWindLevel rejects a fractional wind level, which decoding into an
// int would otherwise truncate.
func checkWholeWindLevel(raw interface{}) error {
	level, err := cast.ToFloat64E(raw)
	if err != nil {
		return nil
	}
	if level != math.Trunc(level) {
		return fmt.Errorf("%w: %v is not a whole level", wind.ErrInvalidWindLevel, raw)
	}
	return nil
}

// Class resolves the configured artillery class.
func (m Mission) Class() (wind.ArtilleryClass, error) {
	return wind.ParseArtilleryClass(m.ArtilleryClass)
}

// Validate checks that every input the mode needs is present and sane. All
// problems are reported together.
func (m Mission) Validate() error {
	if err := validation.ValidateMode(m.Mode); err != nil {
		return err
	}

	var errs []error
	requirePoint := func(name string, p *geometry.PolarPoint) {
		switch {
		case p == nil:
			errs = append(errs, fmt.Errorf("%w: %s is required in %s mode", ErrMissingObservation, name, m.Mode))
		case p.Distance < 0:
			errs = append(errs, fmt.Errorf("%w: %s distance %v", ErrNegativeDistance, name, p.Distance))
		}
	}

	switch m.Mode {
	case constants.ModeDirect:
		requirePoint("artillery", m.Artillery)
		requirePoint("target", m.Target)
	case constants.ModeTriangulation:
		requirePoint("target", m.Target)
		requirePoint("impact", m.Impact)
	case constants.ModeGroup:
		errs = append(errs, m.validateGroup()...)
	}

	if m.Mode != constants.ModeGroup {
		if _, err := m.Class(); err != nil {
			errs = append(errs, err)
		}
		if err := m.Wind.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (m Mission) validateGroup() []error {
	if m.Group == nil {
		return []error{fmt.Errorf("%w: group is required in %s mode", ErrMissingObservation, m.Mode)}
	}
	var errs []error
	if m.Group.Central == nil {
		errs = append(errs, fmt.Errorf("%w: group central firing data is required", ErrMissingObservation))
	} else if m.Group.Central.BaseDistance < 0 {
		errs = append(errs, fmt.Errorf("%w: central distance %v", ErrNegativeDistance, m.Group.Central.BaseDistance))
	}
	if len(m.Group.Units) > 0 {
		if _, err := group.FindCentral(m.Group.Units); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings about inputs outside the range where the approximations
// used by the calculators hold.
func (c *Configuration) ValidateConfiguration() []string {
	m := c.Mission
	var warnings []string

	switch m.Mode {
	case constants.ModeDirect:
		if m.Impact != nil {
			warnings = append(warnings, "impact observation is ignored in direct mode")
		}
	case constants.ModeTriangulation:
		if m.Target != nil && m.Impact != nil {
			if w := validation.ValidateBearingSpread(m.Target.Azimuth, m.Impact.Azimuth); w != "" {
				warnings = append(warnings, w)
			}
		}
		if m.Artillery != nil {
			warnings = append(warnings, "artillery observation is ignored in triangulation mode")
		}
	case constants.ModeGroup:
		if m.Group != nil && m.Group.Central != nil {
			central, err := group.FindCentral(m.Group.Units)
			if err == nil {
				for _, u := range m.Group.Units {
					if u.IsCentral {
						continue
					}
					if w := validation.ValidateGroupSpread(u.ID, m.Group.Central.BaseDistance,
						u.GridX-central.GridX, u.GridY-central.GridY); w != "" {
						warnings = append(warnings, w)
					}
				}
			}
		}
	}

	return warnings
}
