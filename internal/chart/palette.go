package chart

// Shared colour palette used by lesson pages and chart helpers.
const (
	PrimaryBlue   = "#2196F3"
	PrimaryGreen  = "#4CAF50"
	PrimaryOrange = "#FF5722"

	TextDark  = "#000000"
	TextLight = "#FFFFFF"
	TextGrey  = "#666666"

	BackgroundLight = "#FFFFFF"
	BackgroundGrey  = "#F5F5F5"
	BackgroundDark  = "#1E1E1E"

	AccentSuccess = "#4CAF50"
	AccentWarning = "#FFC107"
	AccentError   = "#F44336"
)

// Series cycles through when a chart needs more than one colour.
var Series = []string{PrimaryBlue, PrimaryGreen, PrimaryOrange, AccentWarning, AccentError, TextGrey}

// SeriesColor returns the i-th series colour, wrapping around.
func SeriesColor(i int) string {
	if i < 0 {
		i = -i
	}
	return Series[i%len(Series)]
}
