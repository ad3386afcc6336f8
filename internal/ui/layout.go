package ui

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which labels are shortened
	// and the groups pane gets a larger share.
	LayoutCompactWidth = 100
)
