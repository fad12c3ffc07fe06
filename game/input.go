package game

// EventType identifies an input event
type EventType int

const (
	EventQuit EventType = iota
	EventKeyDown
	EventPointerDown
	EventPointerMove
)

// Key is a front-end independent key code
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeySpace
	KeyUp
	KeyDown
	KeyA
	KeyB
	KeyT
	KeyL
	KeyV
	KeyR
	KeyDebug
)

// Event is one discrete input, sampled once per frame before the update pass
type Event struct {
	Type EventType
	Key  Key
	Pos  Vector2
}

// Quit returns a quit event
func Quit() Event { return Event{Type: EventQuit} }

// KeyPress returns a key-down event
func KeyPress(k Key) Event { return Event{Type: EventKeyDown, Key: k} }

// PointerDown returns a pointer button event at pos
func PointerDown(pos Vector2) Event { return Event{Type: EventPointerDown, Pos: pos} }

// PointerMove returns a pointer motion event at pos
func PointerMove(pos Vector2) Event { return Event{Type: EventPointerMove, Pos: pos} }
