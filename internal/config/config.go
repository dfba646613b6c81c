// Package config loads and validates the effect configuration. A config file
// is optional; every field has a default, and a partial file overrides only
// what it names.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Vvkmnn/vvkmnn.github.io/internal/geom"
	"github.com/Vvkmnn/vvkmnn.github.io/internal/particles"
)

var (
	ErrWindowSize = errors.New("config: window size must be positive")
	ErrBadColor   = errors.New("config: unparseable color")
	ErrNoPalette  = errors.New("config: at least one color required")
)

// Window sizes the render surface. A non-positive size is fatal at startup;
// there is nothing sensible to draw on.
type Window struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Title     string `json:"title"`
	Resizable bool   `json:"resizable"`
}

// Ribbon configures the morphing ribbon animation. Durations are given in
// milliseconds; non-positive values complete the affected stage instantly.
type Ribbon struct {
	StrandCount    int        `json:"strandCount"`
	SampleCount    int        `json:"sampleCount"`
	ControlPoints  int        `json:"controlPoints"`
	Extent         [3]float64 `json:"extent"`
	CurveJitter    float64    `json:"curveJitter"`
	BaseOffset     float64    `json:"baseOffset"`
	OffsetJitter   float64    `json:"offsetJitter"`
	DrawMS         int        `json:"drawMs"`
	HoldMS         int        `json:"holdMs"`
	MorphMS        int        `json:"morphMs"`
	StaggerMS      int        `json:"staggerMs"`
	MorphStaggerMS int        `json:"morphStaggerMs"`
	RotationSpeed  float64    `json:"rotationSpeed"`
	StartIndex     int        `json:"startIndex"`
	Colors         []string   `json:"colors"`
	FillOpacity    float64    `json:"fillOpacity"`
	LineWidth      float64    `json:"lineWidth"`
}

func (r Ribbon) DrawDuration() time.Duration  { return ms(r.DrawMS) }
func (r Ribbon) HoldDuration() time.Duration  { return ms(r.HoldMS) }
func (r Ribbon) MorphDuration() time.Duration { return ms(r.MorphMS) }
func (r Ribbon) StaggerDelay() time.Duration  { return ms(r.StaggerMS) }
func (r Ribbon) MorphStagger() time.Duration  { return ms(r.MorphStaggerMS) }

// ExtentVec returns the curve extent as a vector.
func (r Ribbon) ExtentVec() geom.Vec3 {
	return geom.Vec3{X: r.Extent[0], Y: r.Extent[1], Z: r.Extent[2]}
}

// Gradient configures the animated two-color background.
type Gradient struct {
	Palette   [][2]string `json:"palette"`
	HoldMS    int         `json:"holdMs"`
	Frequency float64     `json:"frequency"`
	Damping   float64     `json:"damping"`
}

func (g Gradient) Hold() time.Duration { return ms(g.HoldMS) }

// Typing mirrors the option surface of the typewriter effect. The JSON keys
// keep the spelling of the original effect so existing configurations port
// over unchanged.
type Typing struct {
	Strings        []string `json:"strings"`
	TypeSpeedMS    int      `json:"typeSpeed"`
	StartDelayMS   int      `json:"startDelay"`
	BackSpeedMS    int      `json:"backSpeed"`
	BackDelayMS    int      `json:"backDelay"`
	Shuffle        bool     `json:"shuffle"`
	Loop           bool     `json:"loop"`
	LoopCount      int      `json:"loopCount"`
	ShowCursor     bool     `json:"showCursor"`
	CursorChar     string   `json:"cursorChar"`
	SmartBackspace bool     `json:"smartBackspace"`
}

func (t Typing) TypeSpeed() time.Duration  { return ms(t.TypeSpeedMS) }
func (t Typing) StartDelay() time.Duration { return ms(t.StartDelayMS) }
func (t Typing) BackSpeed() time.Duration  { return ms(t.BackSpeedMS) }
func (t Typing) BackDelay() time.Duration  { return ms(t.BackDelayMS) }

// Particles configures the background particle field.
type Particles struct {
	Count        int     `json:"count"`
	Shape        string  `json:"shape"`
	Size         float64 `json:"size"`
	SizeJitter   float64 `json:"sizeJitter"`
	Speed        float64 `json:"speed"`
	Direction    float64 `json:"direction"`
	RandomMotion bool    `json:"randomMotion"`
	OutMode      string  `json:"outMode"`
	LinkDistance float64 `json:"linkDistance"`
	LinkWidth    float64 `json:"linkWidth"`
	Opacity      float64 `json:"opacity"`
	HueSpeed     float64 `json:"hueSpeed"`
	OnHover      string  `json:"onHover"`
	OnClick      string  `json:"onClick"`
}

// Config is the root of the effect configuration.
type Config struct {
	Window    Window    `json:"window"`
	Ribbon    Ribbon    `json:"ribbon"`
	Gradient  Gradient  `json:"gradient"`
	Typing    Typing    `json:"typing"`
	Particles Particles `json:"particles"`
	Seed      int64     `json:"seed"`
	ShowHUD   bool      `json:"showHud"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Window: Window{Width: 1024, Height: 512, Title: "vvkmnn.github.io", Resizable: true},
		Ribbon: Ribbon{
			StrandCount:    5,
			SampleCount:    120,
			ControlPoints:  12,
			Extent:         [3]float64{1.6, 0.9, 0.6},
			CurveJitter:    0.15,
			BaseOffset:     0.035,
			DrawMS:         3200,
			HoldMS:         1800,
			MorphMS:        1600,
			StaggerMS:      140,
			MorphStaggerMS: 90,
			RotationSpeed:  0.12,
			Colors:         []string{"#80ffc8", "#64d7ff", "#b48cff", "#ff9ecd", "#ffd27d"},
			FillOpacity:    0.08,
			LineWidth:      1.6,
		},
		Gradient: Gradient{
			Palette: [][2]string{
				{"#0b1026", "#16324f"},
				{"#101b3a", "#27224f"},
				{"#0d2137", "#143c4b"},
			},
			HoldMS:    4000,
			Frequency: 1.8,
			Damping:   1.0,
		},
		Typing: Typing{
			Strings:        []string{"Engineer", "Developer", "Designer"},
			TypeSpeedMS:    55,
			StartDelayMS:   800,
			BackSpeedMS:    30,
			BackDelayMS:    1800,
			Loop:           true,
			ShowCursor:     true,
			CursorChar:     "|",
			SmartBackspace: true,
		},
		Particles: Particles{
			Count:        50,
			Shape:        "circle",
			Size:         2.2,
			SizeJitter:   0.6,
			Speed:        28,
			RandomMotion: true,
			OutMode:      "out",
			LinkDistance: 110,
			LinkWidth:    1,
			Opacity:      0.35,
			HueSpeed:     6,
		},
		Seed: 1,
	}
}

// Load reads the config at path, overlaid on Default. An empty path returns
// the validated defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate normalizes soft fields and rejects configurations the effects
// cannot start from. Negative durations pass through; the animators treat
// them as instant.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrWindowSize, c.Window.Width, c.Window.Height)
	}
	if c.Ribbon.StrandCount < 1 {
		c.Ribbon.StrandCount = 1
	}
	if c.Ribbon.SampleCount < 2 {
		c.Ribbon.SampleCount = 2
	}
	if c.Ribbon.ControlPoints < 4 {
		c.Ribbon.ControlPoints = 4
	}
	if len(c.Ribbon.Colors) == 0 {
		return fmt.Errorf("%w: ribbon strand colors", ErrNoPalette)
	}
	for _, hex := range c.Ribbon.Colors {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("%w: ribbon color %q", ErrBadColor, hex)
		}
	}
	if len(c.Gradient.Palette) == 0 {
		return fmt.Errorf("%w: gradient palette", ErrNoPalette)
	}
	for _, pair := range c.Gradient.Palette {
		for _, hex := range pair {
			if _, err := colorful.Hex(hex); err != nil {
				return fmt.Errorf("%w: gradient color %q", ErrBadColor, hex)
			}
		}
	}
	if _, err := particles.ParseOutMode(c.Particles.OutMode); err != nil {
		return err
	}
	if _, err := particles.ParseShape(c.Particles.Shape); err != nil {
		return err
	}
	iv := particles.Interactivity{OnHover: c.Particles.OnHover, OnClick: c.Particles.OnClick}
	if err := iv.Validate(); err != nil {
		return err
	}
	return nil
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }
