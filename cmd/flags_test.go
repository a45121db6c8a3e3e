package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"aspect/internal/filter"
)

func parseFilterFlags(t *testing.T, args ...string) (*filterFlags, *cobra.Command) {
	t.Helper()
	f := &filterFlags{}
	c := &cobra.Command{Use: "test"}
	f.register(c.Flags())
	if err := c.ParseFlags(args); err != nil {
		t.Fatal(err)
	}
	return f, c
}

func TestFlagsBuildCropFilter(t *testing.T) {
	f, c := parseFilterFlags(t, "--at-least", "1920x1080", "--ratio", "16:9", "--crop", "-j", "3")
	s, err := f.settings(c)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := s.Filter()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Resolution == nil || cfg.Resolution.Rule != filter.AtLeast {
		t.Fatalf("unexpected resolution filter %#v", cfg.Resolution)
	}
	if cfg.Ratio == nil || cfg.Ratio.Rule != filter.Crop {
		t.Fatalf("unexpected ratio filter %#v", cfg.Ratio)
	}
	if s.Jobs != 3 {
		t.Fatalf("jobs = %d, want 3", s.Jobs)
	}
}

func TestFlagsRatioDefaultsToFilterOnly(t *testing.T) {
	f, c := parseFilterFlags(t, "--ratio", "4:3", "--skip-mismatch")
	s, err := f.settings(c)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := s.Filter()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Ratio == nil || cfg.Ratio.Rule != filter.FilterOnly || !cfg.Ratio.SkipMismatch {
		t.Fatalf("unexpected ratio filter %#v", cfg.Ratio)
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	p := filepath.Join(t.TempDir(), "aspect.yaml")
	body := "ratio:\n  rule: crop\n  value: \"21:9\"\njobs: 8\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	f, c := parseFilterFlags(t, "--config", p, "--ratio", "16:9")
	s, err := f.settings(c)
	if err != nil {
		t.Fatal(err)
	}
	if s.Ratio.Rule != "crop" || s.Ratio.Value != "16:9" || s.Jobs != 8 {
		t.Fatalf("unexpected merged settings %#v", s)
	}
}

func TestFlagsConflicts(t *testing.T) {
	cases := [][]string{
		{"--at-least", "1x1", "--exactly", "1x1"},
		{"--crop"},
	}
	for _, args := range cases {
		f, c := parseFilterFlags(t, args...)
		if _, err := f.settings(c); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestRequireDir(t *testing.T) {
	dir := t.TempDir()
	if err := requireDir(dir); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := requireDir(file); err == nil {
		t.Fatal("file should not pass as a directory")
	}
	if err := requireDir(filepath.Join(dir, "missing")); err == nil {
		t.Fatal("missing path should fail")
	}
}
