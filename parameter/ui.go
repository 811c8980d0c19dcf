package parameter

// Controls
const (
	// SpeedStep is the speed multiplier change per + or - key press
	SpeedStep = 0.25

	// SpeedDefault is the global speed multiplier at startup
	SpeedDefault = 1.0

	// PromptMaxLen bounds typed command input
	PromptMaxLen = 16
)

// HUD layout
const (
	// HUDRows is the number of terminal rows reserved below the scene
	HUDRows = 2

	// CellAspect is the height/width ratio of a terminal cell
	CellAspect = 2.0
)
