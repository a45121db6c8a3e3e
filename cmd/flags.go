package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"aspect/internal/config"
	"aspect/internal/filter"
)

// filterFlags are shared by crop and scan.
type filterFlags struct {
	configPath   string
	atLeast      string
	exactly      string
	ratio        string
	crop         bool
	skipMismatch bool
	jobs         int
	exclude      []string
	quality      int
}

func (f *filterFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.configPath, "config", "c", "", "YAML settings file; flags override its values")
	fs.StringVar(&f.atLeast, "at-least", "", "keep images at least this large, e.g. 1920x1080")
	fs.StringVar(&f.exactly, "exactly", "", "keep images of exactly this size, e.g. 2560x1440")
	fs.StringVarP(&f.ratio, "ratio", "r", "", "required aspect ratio, e.g. 16:9")
	fs.BoolVar(&f.crop, "crop", false, "crop to --ratio instead of filtering by it")
	fs.BoolVar(&f.skipMismatch, "skip-mismatch", false, "silently skip images whose ratio does not match instead of failing them")
	fs.IntVarP(&f.jobs, "jobs", "j", 0, "maximum files processed at once (0 = no limit)")
	fs.StringSliceVar(&f.exclude, "exclude", nil, "glob of paths to ignore, relative to the input folder (repeatable)")
	fs.IntVarP(&f.quality, "quality", "q", 0, "JPEG output quality 1-100 (default 95)")
}

// settings merges the config file, if any, with flags the user set.
func (f *filterFlags) settings(cmd *cobra.Command) (config.Settings, error) {
	var s config.Settings
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return s, err
		}
		s = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("at-least") && flags.Changed("exactly") {
		return s, fmt.Errorf("--at-least cannot be used with --exactly")
	}
	if flags.Changed("at-least") {
		s.Resolution = config.ResolutionSection{Rule: filter.AtLeast.String(), Size: f.atLeast}
	}
	if flags.Changed("exactly") {
		s.Resolution = config.ResolutionSection{Rule: filter.Exactly.String(), Size: f.exactly}
	}

	if flags.Changed("ratio") {
		s.Ratio.Value = f.ratio
		if s.Ratio.Rule == "" || s.Ratio.Rule == "off" {
			s.Ratio.Rule = filter.FilterOnly.String()
		}
	}
	if flags.Changed("crop") {
		if f.crop {
			s.Ratio.Rule = filter.Crop.String()
		} else if s.Ratio.Value != "" {
			s.Ratio.Rule = filter.FilterOnly.String()
		}
	}
	if f.crop && s.Ratio.Value == "" {
		return s, fmt.Errorf("--crop needs a ratio")
	}
	if flags.Changed("skip-mismatch") {
		s.Ratio.OnMismatch = "error"
		if f.skipMismatch {
			s.Ratio.OnMismatch = "skip"
		}
	}

	if flags.Changed("jobs") {
		s.Jobs = f.jobs
	}
	if flags.Changed("exclude") {
		s.Exclude = f.exclude
	}
	if flags.Changed("quality") {
		s.JPEGQuality = f.quality
	}
	return s, nil
}
