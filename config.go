package spacedit

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every Config validation error.
var ErrInvalidConfig = errors.New("spacedit: invalid config")

const defaultDecimalPrecision = 2

// DebugOptions controls diagnostic output. Nothing is written unless Enabled
// is set together with at least one category.
type DebugOptions struct {
	Enabled    bool `yaml:"enabled"`
	PointerLog bool `yaml:"pointer_log"`
	PickLog    bool `yaml:"pick_log"`
	DragLog    bool `yaml:"drag_log"`
	// Output defaults to os.Stderr.
	Output io.Writer `yaml:"-"`
}

// Config holds the engine's tunables. Zero fields are replaced by defaults
// when the engine is built, so a partially filled Config is valid.
type Config struct {
	// SnapUnit is the drag grid spacing in world units. Zero selects 12.
	SnapUnit float64 `yaml:"snap_unit"`
	// DisableSnap turns grid snapping off.
	DisableSnap bool `yaml:"disable_snap"`
	// SnapAxes restricts snapping. Zero selects the two axes spanning the
	// reference plane.
	SnapAxes Axis `yaml:"snap_axes"`
	// Precedence lists selectable surface names, highest priority first.
	// Empty selects ["shape", "backgroundMesh"].
	Precedence []string `yaml:"precedence"`
	// ReferencePlaneNormal and ReferencePlaneConstant define the drag and
	// anchor plane n·p + c = 0. A zero normal selects +Z.
	ReferencePlaneNormal   [3]float64 `yaml:"reference_plane_normal"`
	ReferencePlaneConstant float64    `yaml:"reference_plane_constant"`
	// DecimalPrecision is the number of decimals kept in published points.
	// Zero selects 2 unless the Config came from DefaultConfig or LoadConfig,
	// where zero rounds to whole units.
	DecimalPrecision int `yaml:"decimal_precision"`
	// DragDeadZone is the plane distance the pointer must travel before the
	// first move is applied. Zero applies every move.
	DragDeadZone float64 `yaml:"drag_dead_zone"`

	Debug DebugOptions `yaml:"debug"`

	// fromDefaults marks a Config that started as DefaultConfig, so its
	// zero DecimalPrecision is an explicit choice.
	fromDefaults bool
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		SnapUnit:             DefaultSnapUnit,
		Precedence:           []string{NameShape, NameBackground},
		ReferencePlaneNormal: [3]float64{0, 0, 1},
		DecimalPrecision:     defaultDecimalPrecision,
		fromDefaults:         true,
	}
}

// withDefaults returns c with zero fields replaced by defaults.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SnapUnit == 0 {
		c.SnapUnit = d.SnapUnit
	}
	if len(c.Precedence) == 0 {
		c.Precedence = d.Precedence
	}
	if c.ReferencePlaneNormal == ([3]float64{}) {
		c.ReferencePlaneNormal = d.ReferencePlaneNormal
	}
	if c.DecimalPrecision == 0 && !c.fromDefaults {
		c.DecimalPrecision = d.DecimalPrecision
	}
	if c.SnapAxes == AxisNone {
		c.SnapAxes = PlanarAxes(c.normal())
	}
	if c.Debug.Output == nil {
		c.Debug.Output = os.Stderr
	}
	return c
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.SnapUnit < 0 || math.IsNaN(c.SnapUnit) || math.IsInf(c.SnapUnit, 0):
		return fmt.Errorf("%w: snap unit %v must be positive", ErrInvalidConfig, c.SnapUnit)
	case c.DecimalPrecision < 0 || c.DecimalPrecision > 12:
		return fmt.Errorf("%w: decimal precision %d out of range [0, 12]", ErrInvalidConfig, c.DecimalPrecision)
	case c.DragDeadZone < 0:
		return fmt.Errorf("%w: drag dead zone %v must not be negative", ErrInvalidConfig, c.DragDeadZone)
	case c.SnapAxes&^AxisAll != 0:
		return fmt.Errorf("%w: snap axes %#x", ErrInvalidConfig, uint8(c.SnapAxes))
	}
	for i, tag := range c.Precedence {
		if tag == "" {
			return fmt.Errorf("%w: precedence entry %d is empty", ErrInvalidConfig, i)
		}
	}
	for _, v := range c.ReferencePlaneNormal {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: reference plane normal %v", ErrInvalidConfig, c.ReferencePlaneNormal)
		}
	}
	return nil
}

func (c Config) normal() mgl64.Vec3 {
	n := mgl64.Vec3(c.ReferencePlaneNormal)
	if n.Len() == 0 {
		return mgl64.Vec3{0, 0, 1}
	}
	return n
}

// Plane returns the reference plane.
func (c Config) Plane() Plane {
	n := c.normal()
	// Normalizing n rescales the constant too.
	return Plane{Normal: n.Normalize(), Constant: c.ReferencePlaneConstant / n.Len()}
}

// Snapper returns the grid snapper for drags.
func (c Config) Snapper() Snapper {
	if c.DisableSnap {
		return Snapper{}
	}
	axes := c.SnapAxes
	if axes == AxisNone {
		axes = PlanarAxes(c.normal())
	}
	unit := c.SnapUnit
	if unit == 0 {
		unit = DefaultSnapUnit
	}
	return Snapper{Unit: unit, Axes: axes}
}

// LoadConfig decodes a YAML document over DefaultConfig. Unknown keys are
// rejected and the result is validated.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads and decodes the YAML file at path.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

// UnmarshalYAML accepts an axis string such as "xy".
func (a *Axis) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseAxis(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalYAML writes the axis as a string.
func (a Axis) MarshalYAML() (any, error) {
	return a.String(), nil
}
