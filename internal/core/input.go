package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // W, K, Up arrow - move the cursor up
	ActionDown              // S, J, Down arrow - move the cursor down
	ActionLeft              // A, H, Left arrow - move the cursor left
	ActionRight             // D, L, Right arrow - move the cursor right
	ActionSelect            // Space, Enter - click the cell under the cursor
	ActionCancel            // Esc - drop the current selection
	ActionHammer            // 1 - hammer booster on the cursor cell
	ActionShuffle           // 2 - shuffle booster
	ActionExtraMoves        // 3 - extra moves booster
	ActionHint              // 4 - hint booster
	ActionPause             // P - pause/unpause game
	ActionRestart           // R - replay the level after it ended
	ActionNext              // N - continue to the next level
	ActionForfeit           // X - end the level now and bank the score
	ActionQuit              // Q, Ctrl+C - exit game/session
)

var actionNames = map[Action]string{
	ActionNone:       "None",
	ActionUp:         "Up",
	ActionDown:       "Down",
	ActionLeft:       "Left",
	ActionRight:      "Right",
	ActionSelect:     "Select",
	ActionCancel:     "Cancel",
	ActionHammer:     "Hammer",
	ActionShuffle:    "Shuffle",
	ActionExtraMoves: "ExtraMoves",
	ActionHint:       "Hint",
	ActionPause:      "Pause",
	ActionRestart:    "Restart",
	ActionNext:       "Next",
	ActionForfeit:    "Forfeit",
	ActionQuit:       "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// Point is a screen position in character cells.
type Point struct {
	X, Y int
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Click is the last mouse click this frame, in screen coordinates.
	Click *Point
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// SetClick records a mouse click at screen position (x, y).
func (f *InputFrame) SetClick(x, y int) {
	f.Click = &Point{X: x, Y: y}
}

// Empty reports whether nothing happened this frame.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && f.Click == nil
}

// Clear resets all input for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	f.Click = nil
}
