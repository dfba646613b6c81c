package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vvkmnn/vvkmnn.github.io/internal/particles"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 512, cfg.Window.Height)
}

func TestLoadEmptyPathIsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Window, cfg.Window)
	assert.Equal(t, Default().Ribbon.Colors, cfg.Ribbon.Colors)
}

func TestLoadOverlaysPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fx.json")
	data := `{
		"window": {"width": 640, "height": 360},
		"ribbon": {"strandCount": 3},
		"typing": {"typeSpeed": 80, "smartBackspace": true},
		"particles": {"count": 12, "shape": "triangle", "outMode": "bounce", "onHover": "grab"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 3, cfg.Ribbon.StrandCount)
	assert.Equal(t, 80*time.Millisecond, cfg.Typing.TypeSpeed())
	assert.True(t, cfg.Typing.SmartBackspace)
	assert.Equal(t, 12, cfg.Particles.Count)
	assert.Equal(t, "triangle", cfg.Particles.Shape)
	assert.Equal(t, "bounce", cfg.Particles.OutMode)
	assert.Equal(t, "grab", cfg.Particles.OnHover)

	// Untouched sections keep their defaults.
	assert.Equal(t, Default().Gradient.Palette, cfg.Gradient.Palette)
	assert.Equal(t, Default().Ribbon.SampleCount, cfg.Ribbon.SampleCount)
	assert.Equal(t, Default().Particles.Size, cfg.Particles.Size)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRejectsZeroWindow(t *testing.T) {
	cfg := Default()
	cfg.Window.Height = 0
	assert.ErrorIs(t, cfg.Validate(), ErrWindowSize)
}

func TestValidateRejectsBadColors(t *testing.T) {
	cfg := Default()
	cfg.Ribbon.Colors = []string{"#80ffc8", "chartreuse"}
	assert.ErrorIs(t, cfg.Validate(), ErrBadColor)

	cfg = Default()
	cfg.Gradient.Palette = [][2]string{{"#0b1026", "nope"}}
	assert.ErrorIs(t, cfg.Validate(), ErrBadColor)

	cfg = Default()
	cfg.Ribbon.Colors = nil
	assert.ErrorIs(t, cfg.Validate(), ErrNoPalette)

	cfg = Default()
	cfg.Gradient.Palette = nil
	assert.ErrorIs(t, cfg.Validate(), ErrNoPalette)
}

func TestValidateRejectsBadOutMode(t *testing.T) {
	cfg := Default()
	cfg.Particles.OutMode = "teleport"
	assert.ErrorIs(t, cfg.Validate(), particles.ErrBadOutMode)
}

func TestValidateRejectsBadShape(t *testing.T) {
	cfg := Default()
	cfg.Particles.Shape = "hexagon"
	assert.ErrorIs(t, cfg.Validate(), particles.ErrBadShape)
}

func TestValidateRejectsBadInteraction(t *testing.T) {
	cfg := Default()
	cfg.Particles.OnClick = "explode"
	assert.ErrorIs(t, cfg.Validate(), particles.ErrBadInteraction)
}

func TestValidateClampsCounts(t *testing.T) {
	cfg := Default()
	cfg.Ribbon.StrandCount = 0
	cfg.Ribbon.SampleCount = -3
	cfg.Ribbon.ControlPoints = 2
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1, cfg.Ribbon.StrandCount)
	assert.Equal(t, 2, cfg.Ribbon.SampleCount)
	assert.Equal(t, 4, cfg.Ribbon.ControlPoints)
}

func TestDurationAccessors(t *testing.T) {
	cfg := Default()
	cfg.Ribbon.DrawMS = 2000
	cfg.Gradient.HoldMS = 250
	cfg.Typing.BackDelayMS = -5
	assert.Equal(t, 2*time.Second, cfg.Ribbon.DrawDuration())
	assert.Equal(t, 250*time.Millisecond, cfg.Gradient.Hold())
	assert.Equal(t, -5*time.Millisecond, cfg.Typing.BackDelay())
}
