package game

// DebugState holds debug overlay flags that persist across scenario changes
type DebugState struct {
	ShowGrid   bool // Show collision grid lines
	ShowShapes bool // Show collision shapes and entity ids
}

// Toggle cycles off -> shapes -> shapes and grid -> off
func (d *DebugState) Toggle() {
	switch {
	case !d.ShowShapes:
		d.ShowShapes = true
	case !d.ShowGrid:
		d.ShowGrid = true
	default:
		d.ShowShapes, d.ShowGrid = false, false
	}
}
