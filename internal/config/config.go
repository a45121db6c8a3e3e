// Package config loads filter settings from YAML files and command-line
// values and turns them into a filter.Config.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"aspect/internal/filter"
	"aspect/pkg/imgutil"
)

type ResolutionSection struct {
	Rule string `yaml:"rule"`
	Size string `yaml:"size"`
}

type RatioSection struct {
	Rule       string `yaml:"rule"`
	Value      string `yaml:"value"`
	OnMismatch string `yaml:"on_mismatch"`
}

type Settings struct {
	Resolution  ResolutionSection `yaml:"resolution"`
	Ratio       RatioSection      `yaml:"ratio"`
	Jobs        int               `yaml:"jobs"`
	Exclude     []string          `yaml:"exclude"`
	JPEGQuality int               `yaml:"jpeg_quality"`
}

// Load reads a YAML settings file. ${VAR} and ${VAR:-default} references are
// expanded from the environment before parsing; unknown keys are rejected.
func Load(path string) (Settings, error) {
	var s Settings
	if strings.TrimSpace(path) == "" {
		return s, fmt.Errorf("config path is empty")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read config: %w", err)
	}
	expanded, err := expandEnv(string(b))
	if err != nil {
		return s, err
	}
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return s, fmt.Errorf("parse config %s: %w", path, err)
	}
	return s, nil
}

// Filter validates s and builds the filter it describes.
func (s Settings) Filter() (filter.Config, error) {
	var cfg filter.Config

	resRule, err := ParseResolutionRule(s.Resolution.Rule)
	if err != nil {
		return cfg, err
	}
	if resRule != 0 {
		size, err := imgutil.ParseResolution(s.Resolution.Size)
		if err != nil {
			return cfg, err
		}
		cfg.Resolution = &filter.ResolutionFilter{Rule: resRule, Size: size}
	}

	ratioRule, err := ParseRatioRule(s.Ratio.Rule)
	if err != nil {
		return cfg, err
	}
	if ratioRule != 0 {
		ratio, err := imgutil.ParseRatio(s.Ratio.Value)
		if err != nil {
			return cfg, err
		}
		skip, err := parseOnMismatch(s.Ratio.OnMismatch)
		if err != nil {
			return cfg, err
		}
		cfg.Ratio = &filter.RatioFilter{Rule: ratioRule, Ratio: ratio, SkipMismatch: skip}
	}

	if s.Jobs < 0 {
		return cfg, fmt.Errorf("jobs must not be negative, got %d", s.Jobs)
	}
	if s.JPEGQuality < 0 || s.JPEGQuality > 100 {
		return cfg, fmt.Errorf("jpeg_quality must be between 0 and 100, got %d", s.JPEGQuality)
	}
	return cfg, nil
}

// ParseResolutionRule maps a rule name to a ResolutionRule. Empty and "off"
// return zero.
func ParseResolutionRule(v string) (filter.ResolutionRule, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "off":
		return 0, nil
	case "at-least", "atleast", "min":
		return filter.AtLeast, nil
	case "exactly", "exact":
		return filter.Exactly, nil
	default:
		return 0, fmt.Errorf("unknown resolution rule %q (want at-least, exactly or off)", v)
	}
}

// ParseRatioRule maps a rule name to a RatioRule. Empty and "off" return zero.
func ParseRatioRule(v string) (filter.RatioRule, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "off":
		return 0, nil
	case "filter", "filter-only", "only":
		return filter.FilterOnly, nil
	case "crop":
		return filter.Crop, nil
	default:
		return 0, fmt.Errorf("unknown ratio rule %q (want filter, crop or off)", v)
	}
}

func parseOnMismatch(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "error", "fail":
		return false, nil
	case "skip":
		return true, nil
	default:
		return false, fmt.Errorf("unknown on_mismatch %q (want error or skip)", v)
	}
}

var envExpr = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

func expandEnv(src string) (string, error) {
	var out strings.Builder
	last := 0
	for _, idx := range envExpr.FindAllStringSubmatchIndex(src, -1) {
		out.WriteString(src[last:idx[0]])
		name := src[idx[2]:idx[3]]
		hasDefault := idx[4] >= 0
		if v, ok := os.LookupEnv(name); ok {
			out.WriteString(v)
		} else if hasDefault {
			out.WriteString(src[idx[6]:idx[7]])
		} else {
			return "", fmt.Errorf("config references unset environment variable %s", name)
		}
		last = idx[1]
	}
	out.WriteString(src[last:])
	return out.String(), nil
}
