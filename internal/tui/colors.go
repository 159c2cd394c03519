package tui

// Color constants for the focal TUI theme
const (
	// Base Colors
	ColorAppBackground  = ""        // Use terminal default background
	ColorCardBackground = "#0F1B17" // Dark green
	ColorBorder         = "#3A4F48" // Grey-green

	// Text Colors
	ColorPrimaryText   = "#E8F2EC" // Primary text (labels, titles, values)
	ColorSecondaryText = "#AFC4B9" // Secondary text - muted green-grey
	ColorDisabledText  = "#6D7E77" // Disabled/muted text
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Teal theme)
	ColorAccentMain   = "#14B8A6" // Accent elements, active borders
	ColorAccentBright = "#5EEAD4" // Highlights, the running clock

	// State Colors
	ColorError   = "#EF4444" // Errors, hard nudges
	ColorSuccess = "#22C55E" // Success, high focus scores
	ColorWarning = "#F59E0B" // Warnings, drift-active mode, soft nudges
)
