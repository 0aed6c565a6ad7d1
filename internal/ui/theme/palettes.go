package theme

import "github.com/charmbracelet/lipgloss"

func c(dark, light string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: dark, Light: light}
}

// TokyoNight is the default palette.
var TokyoNight = Theme{
	Primary:             c("#82aaff", "#2e7de9"),
	Secondary:           c("#c099ff", "#9854f1"),
	Accent:              c("#ff966c", "#b15c00"),
	Error:               c("#ff757f", "#f52a65"),
	Warning:             c("#ffc777", "#8c6c3e"),
	Success:             c("#c3e88d", "#587539"),
	Text:                c("#c8d3f5", "#3760bf"),
	TextMuted:           c("#636da6", "#848cb5"),
	Background:          c("#222436", "#e1e2e7"),
	BackgroundSecondary: c("#2f334d", "#c8c9ce"),
	Border:              c("#3b4261", "#a8aecb"),
	BorderDim:           c("#292e42", "#c8c9ce"),
}

var Nord = Theme{
	Primary:             c("#88c0d0", "#5e81ac"),
	Secondary:           c("#81a1c1", "#81a1c1"),
	Accent:              c("#8fbcbb", "#8fbcbb"),
	Error:               c("#bf616a", "#bf616a"),
	Warning:             c("#d08770", "#d08770"),
	Success:             c("#a3be8c", "#a3be8c"),
	Text:                c("#eceff4", "#2e3440"),
	TextMuted:           c("#8b95a7", "#3b4252"),
	Background:          c("#2e3440", "#eceff4"),
	BackgroundSecondary: c("#3b4252", "#e5e9f0"),
	Border:              c("#434c5e", "#4c566a"),
	BorderDim:           c("#4c566a", "#434c5e"),
}

var Dracula = Theme{
	Primary:             c("#bd93f9", "#7e57c2"),
	Secondary:           c("#8be9fd", "#0097a7"),
	Accent:              c("#f1fa8c", "#f9a825"),
	Error:               c("#ff5555", "#d32f2f"),
	Warning:             c("#ffb86c", "#ef6c00"),
	Success:             c("#50fa7b", "#388e3c"),
	Text:                c("#f8f8f2", "#212121"),
	TextMuted:           c("#6272a4", "#757575"),
	Background:          c("#282a36", "#ffffff"),
	BackgroundSecondary: c("#44475a", "#e0e0e0"),
	Border:              c("#6272a4", "#bdbdbd"),
	BorderDim:           c("#44475a", "#e0e0e0"),
}

var Gruvbox = Theme{
	Primary:             c("#83a598", "#076678"),
	Secondary:           c("#d3869b", "#8f3f71"),
	Accent:              c("#fabd2f", "#b57614"),
	Error:               c("#fb4934", "#9d0006"),
	Warning:             c("#fe8019", "#af3a03"),
	Success:             c("#b8bb26", "#79740e"),
	Text:                c("#ebdbb2", "#3c3836"),
	TextMuted:           c("#a89984", "#7c6f64"),
	Background:          c("#282828", "#fbf1c7"),
	BackgroundSecondary: c("#504945", "#ebdbb2"),
	Border:              c("#504945", "#bdae93"),
	BorderDim:           c("#3c3836", "#d5c4a1"),
}

var Catppuccin = Theme{
	Primary:             c("#89b4fa", "#1e66f5"),
	Secondary:           c("#cba6f7", "#8839ef"),
	Accent:              c("#fab387", "#fe640b"),
	Error:               c("#f38ba8", "#d20f39"),
	Warning:             c("#f9e2af", "#df8e1d"),
	Success:             c("#a6e3a1", "#40a02b"),
	Text:                c("#cdd6f4", "#4c4f69"),
	TextMuted:           c("#6c7086", "#9ca0b0"),
	Background:          c("#1e1e2e", "#eff1f5"),
	BackgroundSecondary: c("#313244", "#e6e9ef"),
	Border:              c("#6c7086", "#9ca0b0"),
	BorderDim:           c("#45475a", "#ccd0da"),
}

func init() {
	// tokyonight first so it is current until configuration says otherwise.
	Register("tokyonight", TokyoNight)
	Register("catppuccin", Catppuccin)
	Register("dracula", Dracula)
	Register("gruvbox", Gruvbox)
	Register("nord", Nord)
}
