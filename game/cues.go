package game

//go:generate go tool mockgen -destination=./mocks/cue_sink_mock.go -package=mocks . CueSink

// Cue is a short sound effect request
type Cue int

const (
	CueLaunch Cue = iota
	CueExplosion
	CueHit
	CueMenu
)

func (c Cue) String() string {
	switch c {
	case CueLaunch:
		return "launch"
	case CueExplosion:
		return "explosion"
	case CueHit:
		return "hit"
	case CueMenu:
		return "menu"
	default:
		return "unknown"
	}
}

// CueSink plays sound cues. Play must not block the frame.
type CueSink interface {
	Play(c Cue)
}
