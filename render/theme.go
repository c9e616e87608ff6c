package render

import "github.com/echoflaresat/lux/colors"

// Theme is the scene palette.
type Theme struct {
	Medium1       colors.Color4
	Medium2       colors.Color4
	Medium1Shade  Gradient
	Medium2Shade  Gradient
	Interface     colors.Color4
	Normal        colors.Color4
	Text          colors.Color4
	MediumLabel   colors.Color4
	Incident      colors.Color4
	IncidentGlow  colors.Color4
	Refracted     colors.Color4
	RefractedGlow colors.Color4
	Reflected     colors.Color4
	ReflectedGlow colors.Color4

	SourceHalo colors.Color4
	SourceBody Gradient
	SourceTip  colors.Color4
	SourceLens colors.Color4
}

// DefaultTheme is the dark palette of the simulator.
func DefaultTheme() Theme {
	return Theme{
		Medium1: colors.MustHex("#1a1a2e"),
		Medium2: colors.MustHex("#0f3460"),
		Medium1Shade: Gradient{
			{0, colors.White().WithAlpha(0.03)},
			{1, colors.Black().WithAlpha(0.05)},
		},
		Medium2Shade: Gradient{
			{0, colors.White().WithAlpha(0.02)},
			{1, colors.Black().WithAlpha(0.1)},
		},
		Interface:     colors.White().WithAlpha(0.2),
		Normal:        colors.MustHex("#a0aec0"),
		Text:          colors.MustHex("#e2e8f0"),
		MediumLabel:   colors.White().WithAlpha(0.7),
		Incident:      colors.MustHex("#ff4757"),
		IncidentGlow:  colors.New(1, 71.0/255, 87.0/255, 0.6),
		Refracted:     colors.MustHex("#2ed573"),
		RefractedGlow: colors.New(46.0/255, 213.0/255, 115.0/255, 0.6),
		Reflected:     colors.MustHex("#ffa502"),
		ReflectedGlow: colors.New(1, 165.0/255, 2.0/255, 0.5),

		SourceHalo: colors.New(1, 71.0/255, 87.0/255, 0.2),
		SourceBody: Gradient{
			{0, colors.MustHex("#ff6b7a")},
			{0.5, colors.MustHex("#ff4757")},
			{1, colors.MustHex("#c0392b")},
		},
		SourceTip:  colors.MustHex("#2d3436"),
		SourceLens: colors.White().WithAlpha(0.9),
	}
}
