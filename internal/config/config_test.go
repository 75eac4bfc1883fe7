package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Units != "metric" {
		t.Errorf("expected metric units, got %q", cfg.Units)
	}
	if cfg.CacheTTL != 600*time.Second {
		t.Errorf("expected 600s cache TTL, got %v", cfg.CacheTTL)
	}
	if len(cfg.OverpassURLs) != 3 {
		t.Errorf("expected 3 default mirrors, got %d", len(cfg.OverpassURLs))
	}
	if !cfg.UseOneCall {
		t.Error("expected one call enabled by default")
	}
	if cfg.Country != "Vietnam" {
		t.Errorf("expected Vietnam country bias, got %q", cfg.Country)
	}
}

func TestLoad_RejectsInvalidUnits(t *testing.T) {
	t.Setenv("OPENWEATHER_UNITS", "kelvin")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid units")
	}
}

func TestLoad_RejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("CACHE_TTL", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero TTL")
	}
}

func TestLoad_ParsesMirrorList(t *testing.T) {
	t.Setenv("OVERPASS_URLS", " https://a.example/api , https://b.example/api ,")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.OverpassURLs) != 2 || cfg.OverpassURLs[0] != "https://a.example/api" {
		t.Fatalf("unexpected mirrors: %v", cfg.OverpassURLs)
	}
}
