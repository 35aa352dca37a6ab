package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})

	if cfg.Width != 1280 || cfg.Height != 720 {
		t.Errorf("unexpected window size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.VSync == nil || !*cfg.VSync {
		t.Error("vsync should default to on")
	}
	if cfg.SurfaceMap != filepath.Join("assets", "earthmap.jpeg") {
		t.Errorf("surface map %q", cfg.SurfaceMap)
	}
	if cfg.StarMap != filepath.Join("assets", "galaxy.png") {
		t.Errorf("star map %q", cfg.StarMap)
	}
	if cfg.DragFactor != 0.0002 || cfg.SlowingFactor != 0.98 || cfg.IdleSpin != 0.0005 {
		t.Errorf("rotation defaults: %v %v %v", cfg.DragFactor, cfg.SlowingFactor, cfg.IdleSpin)
	}
	if cfg.ZoomSpeed != 0.001 || cfg.MinZoom != 1.5 || cfg.MaxZoom != 10 {
		t.Errorf("zoom defaults: %v %v %v", cfg.ZoomSpeed, cfg.MinZoom, cfg.MaxZoom)
	}
	if cfg.SettleDelay() != time.Second {
		t.Errorf("settle delay %v", cfg.SettleDelay())
	}
	if cfg.Workers < 1 {
		t.Errorf("workers %d", cfg.Workers)
	}
}

func TestLoadAndFlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "globe.json")
	body := `{
		"width": 640,
		"height": 480,
		"asset_dir": "/srv/textures",
		"cloud_map": "clouds.webp",
		"star_map": "/abs/stars.tga",
		"drag_factor": 0.001,
		"min_zoom": 20,
		"max_zoom": 2,
		"vsync": false
	}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Resolve(Flags{Width: 1024, Workers: 3})

	if cfg.Width != 1024 || cfg.Height != 480 {
		t.Errorf("expected 1024x480, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Workers != 3 {
		t.Errorf("workers %d", cfg.Workers)
	}
	if cfg.CloudMap != filepath.Join("/srv/textures", "clouds.webp") {
		t.Errorf("cloud map %q", cfg.CloudMap)
	}
	if cfg.StarMap != "/abs/stars.tga" {
		t.Errorf("absolute star map rewritten to %q", cfg.StarMap)
	}
	if cfg.DragFactor != 0.001 {
		t.Errorf("drag factor %v", cfg.DragFactor)
	}
	if cfg.MinZoom != 2 || cfg.MaxZoom != 20 {
		t.Errorf("inverted zoom bounds not swapped: %v..%v", cfg.MinZoom, cfg.MaxZoom)
	}
	if *cfg.VSync {
		t.Error("vsync from file ignored")
	}
}

func TestNoVSyncFlag(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{NoVSync: true})
	if *cfg.VSync {
		t.Fatal("NoVSync flag ignored")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}
}

func TestZoomSmoothingAboveOneIsReset(t *testing.T) {
	cfg := Config{ZoomSmoothing: 2.5}
	cfg.Resolve(Flags{})
	if cfg.ZoomSmoothing != 0.1 {
		t.Fatalf("smoothing %v", cfg.ZoomSmoothing)
	}
}
