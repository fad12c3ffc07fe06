package termview

import (
	"github.com/gdamore/tcell/v2"

	"rocketsim/game"
)

var runeKeys = map[rune]game.Key{
	' ': game.KeySpace,
	'a': game.KeyA,
	'b': game.KeyB,
	't': game.KeyT,
	'l': game.KeyL,
	'v': game.KeyV,
	'r': game.KeyR,
	'd': game.KeyDebug,
	'k': game.KeyUp,
	'j': game.KeyDown,
}

// Translate converts a terminal event into simulation events. A mouse event
// can yield a move and a press, the press only when the button goes down; resize events only update the view.
func (v *View) Translate(ev tcell.Event, out []game.Event) []game.Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return append(out, game.Quit())
		case tcell.KeyEscape:
			return append(out, game.KeyPress(game.KeyEscape))
		case tcell.KeyEnter:
			return append(out, game.KeyPress(game.KeyEnter))
		case tcell.KeyUp:
			return append(out, game.KeyPress(game.KeyUp))
		case tcell.KeyDown:
			return append(out, game.KeyPress(game.KeyDown))
		case tcell.KeyF1:
			return append(out, game.KeyPress(game.KeyDebug))
		case tcell.KeyRune:
			if k, ok := runeKeys[ev.Rune()]; ok {
				return append(out, game.KeyPress(k))
			}
		}
	case *tcell.EventMouse:
		col, row := ev.Position()
		if !v.inside(col, row) {
			return out
		}
		pos := v.World(col, row)
		out = append(out, game.PointerMove(pos))
		pressed := ev.Buttons() & tcell.Button1
		if pressed != 0 && v.buttons&tcell.Button1 == 0 {
			out = append(out, game.PointerDown(pos))
		}
		v.buttons = ev.Buttons()
	case *tcell.EventResize:
		v.Resize()
		v.screen.Sync()
	}
	return out
}
