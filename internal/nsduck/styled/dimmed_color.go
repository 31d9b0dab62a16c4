package styled

import "github.com/fatih/color"

// DimmedColor returns a dimmed *color.Color for secondary information such
// as timings and hints.
func DimmedColor() *color.Color {
	return color.RGB(128, 128, 128)
}

// ErrorColor returns the color used for failed statements.
func ErrorColor() *color.Color {
	return color.New(color.FgRed, color.Bold)
}
