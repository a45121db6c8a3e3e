package config

import (
	"os"
	"path/filepath"
	"testing"

	"aspect/internal/filter"
	"aspect/pkg/imgutil"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "aspect.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadAndFilter(t *testing.T) {
	p := writeConfig(t, `
resolution:
  rule: at-least
  size: 1920x1080
ratio:
  rule: crop
  value: "21:9"
jobs: 4
exclude: ["**/.thumbs/**"]
jpeg_quality: 90
`)
	s, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if s.Jobs != 4 || s.JPEGQuality != 90 || len(s.Exclude) != 1 {
		t.Fatalf("unexpected settings %#v", s)
	}

	cfg, err := s.Filter()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Resolution == nil || cfg.Resolution.Rule != filter.AtLeast || cfg.Resolution.Size != (imgutil.Resolution{Width: 1920, Height: 1080}) {
		t.Fatalf("unexpected resolution filter %#v", cfg.Resolution)
	}
	if cfg.Ratio == nil || cfg.Ratio.Rule != filter.Crop || cfg.Ratio.Ratio != (imgutil.Ratio{Width: 21, Height: 9}) || cfg.Ratio.SkipMismatch {
		t.Fatalf("unexpected ratio filter %#v", cfg.Ratio)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	p := writeConfig(t, "ratio:\n  rule: crop\n  valu: \"16:9\"\n")
	if _, err := Load(p); err == nil {
		t.Fatal("unknown key should fail")
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("ASPECT_TEST_RATIO", "4:3")
	p := writeConfig(t, "ratio:\n  rule: ${ASPECT_TEST_RULE:-filter}\n  value: \"${ASPECT_TEST_RATIO}\"\n  on_mismatch: skip\n")
	s, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := s.Filter()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Ratio == nil || cfg.Ratio.Rule != filter.FilterOnly || cfg.Ratio.Ratio != (imgutil.Ratio{Width: 4, Height: 3}) || !cfg.Ratio.SkipMismatch {
		t.Fatalf("unexpected ratio filter %#v", cfg.Ratio)
	}
}

func TestLoadUnsetEnv(t *testing.T) {
	p := writeConfig(t, "jobs: ${ASPECT_DEFINITELY_UNSET_VAR}\n")
	if _, err := Load(p); err == nil {
		t.Fatal("unset env reference should fail")
	}
}

func TestFilterOffAndErrors(t *testing.T) {
	cfg, err := Settings{Resolution: ResolutionSection{Rule: "off", Size: "garbage"}}.Filter()
	if err != nil {
		t.Fatalf("off rule should ignore size: %v", err)
	}
	if cfg.Resolution != nil || cfg.Ratio != nil {
		t.Fatalf("expected empty filter, got %#v", cfg)
	}

	bad := []Settings{
		{Resolution: ResolutionSection{Rule: "bigger", Size: "1x1"}},
		{Resolution: ResolutionSection{Rule: "exactly", Size: "1x"}},
		{Ratio: RatioSection{Rule: "crop", Value: "0:1"}},
		{Ratio: RatioSection{Rule: "crop", Value: "16:9", OnMismatch: "ignore"}},
		{Jobs: -1},
		{JPEGQuality: 101},
	}
	for _, s := range bad {
		if _, err := s.Filter(); err == nil {
			t.Fatalf("expected error for %#v", s)
		}
	}
}
