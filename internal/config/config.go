package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Config holds window, asset and interaction settings.
type Config struct {
	// Window
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
	VSync  *bool  `json:"vsync"`

	// Assets
	AssetDir       string `json:"asset_dir"`
	SurfaceMap     string `json:"surface_map"`
	BumpMap        string `json:"bump_map"`
	CloudMap       string `json:"cloud_map"`
	StarMap        string `json:"star_map"`
	MaxTextureSize int    `json:"max_texture_size"`
	Workers        int    `json:"workers"`
	ScreenshotDir  string `json:"screenshot_dir"`

	// Interaction
	DragFactor    float64 `json:"drag_factor"`
	SlowingFactor float64 `json:"slowing_factor"`
	IdleSpin      float64 `json:"idle_spin"`
	ZoomSpeed     float64 `json:"zoom_speed"`
	MinZoom       float64 `json:"min_zoom"`
	MaxZoom       float64 `json:"max_zoom"`
	ZoomSmoothing float64 `json:"zoom_smoothing"`
	ZoomEpsilon   float64 `json:"zoom_epsilon"`
	WheelStep     float64 `json:"wheel_step"`
	SettleDelayMS int     `json:"settle_delay_ms"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width         int
	Height        int
	AssetDir      string
	Workers       int
	NoVSync       bool
	ScreenshotDir string
}

// Resolve applies flags, then fills any empty field with its default.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.AssetDir != "" {
		c.AssetDir = flags.AssetDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.NoVSync {
		off := false
		c.VSync = &off
	}
	if flags.ScreenshotDir != "" {
		c.ScreenshotDir = flags.ScreenshotDir
	}

	if c.Width <= 0 {
		c.Width = 1280
	}
	if c.Height <= 0 {
		c.Height = 720
	}
	if c.Title == "" {
		c.Title = "Globe3D"
	}
	if c.VSync == nil {
		on := true
		c.VSync = &on
	}

	if c.AssetDir == "" {
		c.AssetDir = "assets"
	}
	c.SurfaceMap = c.assetPath(c.SurfaceMap, "earthmap.jpeg")
	c.BumpMap = c.assetPath(c.BumpMap, "earthbump.jpeg")
	c.CloudMap = c.assetPath(c.CloudMap, "earthCloud.png")
	c.StarMap = c.assetPath(c.StarMap, "galaxy.png")
	if c.MaxTextureSize <= 0 {
		c.MaxTextureSize = 4096
	}
	if c.Workers <= 0 {
		c.Workers = max(runtime.NumCPU()-1, 1)
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "screenshots"
	}

	defaultFloat(&c.DragFactor, 0.0002)
	defaultFloat(&c.SlowingFactor, 0.98)
	defaultFloat(&c.IdleSpin, 0.0005)
	defaultFloat(&c.ZoomSpeed, 0.001)
	defaultFloat(&c.MinZoom, 1.5)
	defaultFloat(&c.MaxZoom, 10)
	defaultFloat(&c.ZoomSmoothing, 0.1)
	defaultFloat(&c.ZoomEpsilon, 0.01)
	defaultFloat(&c.WheelStep, 100)
	if c.SettleDelayMS <= 0 {
		c.SettleDelayMS = 1000
	}

	if c.MinZoom > c.MaxZoom {
		c.MinZoom, c.MaxZoom = c.MaxZoom, c.MinZoom
	}
	if c.ZoomSmoothing > 1 {
		c.ZoomSmoothing = 0.1
	}
	if c.SlowingFactor >= 1 {
		c.SlowingFactor = 0.98
	}
}

// SettleDelay returns the overlay settle delay as a Duration.
func (c Config) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMS) * time.Millisecond
}

func (c Config) assetPath(p, fallback string) string {
	if p == "" {
		p = fallback
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.AssetDir, p)
}

func defaultFloat(v *float64, def float64) {
	if *v <= 0 {
		*v = def
	}
}
