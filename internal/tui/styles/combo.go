package styles

import (
	"github.com/charmbracelet/x/exp/charmtone"
)

func NewComboTheme() *Theme {
	return &Theme{
		Name:   "combo",
		IsDark: true,

		Primary:   charmtone.Charple,
		Secondary: charmtone.Dolly,
		Tertiary:  charmtone.Bok,
		Accent:    charmtone.Zest,

		// Backgrounds
		BgBase:   charmtone.Pepper,
		BgSubtle: charmtone.Charcoal,

		// Foregrounds
		FgBase:      charmtone.Ash,
		FgMuted:     charmtone.Squid,
		FgHalfMuted: charmtone.Smoke,
		FgSubtle:    charmtone.Oyster,
		FgSelected:  charmtone.Salt,

		// Borders
		Border:      charmtone.Charcoal,
		BorderFocus: charmtone.Charple,

		// Status
		Error: charmtone.Sriracha,
		Info:  charmtone.Malibu,
	}
}
