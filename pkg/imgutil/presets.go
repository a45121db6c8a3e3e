package imgutil

// RatioPreset is a curated aspect ratio with a short description.
type RatioPreset struct {
	Ratio Ratio
	Hint  string
}

// ResolutionGroup is a named family of common display resolutions.
type ResolutionGroup struct {
	Name  string
	Sizes []Resolution
}

var RatioPresets = []RatioPreset{
	{Ratio{16, 9}, "wide"},
	{Ratio{16, 10}, "wide"},
	{Ratio{21, 9}, "ultra wide"},
	{Ratio{32, 9}, "ultra wide"},
	{Ratio{48, 9}, "ultra wide"},
	{Ratio{9, 16}, "portrait"},
	{Ratio{10, 16}, "portrait"},
	{Ratio{9, 18}, "portrait"},
	{Ratio{1, 1}, "square"},
	{Ratio{3, 2}, "classic"},
	{Ratio{4, 3}, "classic"},
	{Ratio{5, 4}, "classic"},
}

var ResolutionPresets = []ResolutionGroup{
	{"ultra-wide", []Resolution{{2560, 1080}, {3440, 1440}, {3840, 1600}}},
	{"16:9", []Resolution{{1280, 720}, {1600, 900}, {1920, 1080}, {2560, 1440}, {3840, 2160}}},
	{"16:10", []Resolution{{1280, 800}, {1600, 1000}, {1920, 1200}, {2560, 1600}, {3840, 2400}}},
	{"4:3", []Resolution{{1280, 960}, {1600, 1200}, {1920, 1440}, {2560, 1920}, {3840, 2880}}},
	{"5:4", []Resolution{{1280, 1024}, {1600, 1280}, {1920, 1536}, {2560, 2048}, {3840, 3072}}},
}
