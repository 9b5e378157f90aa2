package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	c := cfg.Canvas
	if c.MinScale != 0.01 || c.MaxScale != 5.0 {
		t.Errorf("scale bounds = (%v, %v), want (0.01, 5)", c.MinScale, c.MaxScale)
	}
	if c.StrokeColor != "#FF0000" || c.StrokeWeight != 10 {
		t.Errorf("pen defaults = (%q, %v)", c.StrokeColor, c.StrokeWeight)
	}
	if !c.StylusOnly || c.Strict {
		t.Errorf("StylusOnly = %v, Strict = %v", c.StylusOnly, c.Strict)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CANVAS_MAX_SCALE", "8")
	t.Setenv("CANVAS_STRICT", "true")
	t.Setenv("CANVAS_ERASER_RADIUS", "12.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.Canvas.MaxScale != 8 {
		t.Errorf("MaxScale = %v, want 8", cfg.Canvas.MaxScale)
	}
	if !cfg.Canvas.Strict {
		t.Error("Strict = false, want true")
	}
	if cfg.Canvas.EraserRadius != 12.5 {
		t.Errorf("EraserRadius = %v, want 12.5", cfg.Canvas.EraserRadius)
	}
}

func TestLoadRejectsBadValue(t *testing.T) {
	t.Setenv("CANVAS_MIN_SCALE", "tiny")
	if _, err := Load(); err == nil {
		t.Error("Load() should fail on a non-numeric scale")
	}
}
