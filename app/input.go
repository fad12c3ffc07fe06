package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"rocketsim/game"
)

var keyMap = map[ebiten.Key]game.Key{
	ebiten.KeyEscape:      game.KeyEscape,
	ebiten.KeyEnter:       game.KeyEnter,
	ebiten.KeyNumpadEnter: game.KeyEnter,
	ebiten.KeySpace:       game.KeySpace,
	ebiten.KeyArrowUp:     game.KeyUp,
	ebiten.KeyArrowDown:   game.KeyDown,
	ebiten.KeyW:           game.KeyUp,
	ebiten.KeyS:           game.KeyDown,
	ebiten.KeyA:           game.KeyA,
	ebiten.KeyB:           game.KeyB,
	ebiten.KeyT:           game.KeyT,
	ebiten.KeyL:           game.KeyL,
	ebiten.KeyV:           game.KeyV,
	ebiten.KeyR:           game.KeyR,
	ebiten.KeyF1:          game.KeyDebug,
}

// translateKey maps an ebiten key to the simulation key set
func translateKey(k ebiten.Key) game.Key {
	if gk, ok := keyMap[k]; ok {
		return gk
	}
	return game.KeyUnknown
}

// input samples ebiten's input state once per frame into simulation events
type input struct {
	keys    []ebiten.Key
	lastX   int
	lastY   int
	started bool
}

// poll appends the events of the current frame to evs
func (in *input) poll(evs []game.Event) []game.Event {
	if ebiten.IsWindowBeingClosed() {
		evs = append(evs, game.Quit())
	}

	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	for _, k := range in.keys {
		if gk := translateKey(k); gk != game.KeyUnknown {
			evs = append(evs, game.KeyPress(gk))
		}
	}

	x, y := ebiten.CursorPosition()
	pos := game.Vec(float64(x), float64(y))
	if !in.started || x != in.lastX || y != in.lastY {
		evs = append(evs, game.PointerMove(pos))
		in.lastX, in.lastY, in.started = x, y, true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		evs = append(evs, game.PointerDown(pos))
	}
	return evs
}
