package game

import (
	"math"
)

// Mode is the active scenario
type Mode int

const (
	ModeMenu Mode = iota
	ModeStatic
	ModeMoving
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "Menu"
	case ModeStatic:
		return "Static-Target"
	case ModeMoving:
		return "Moving-Target"
	default:
		return "Unknown"
	}
}

// MenuItems are the entries of the start menu
var MenuItems = []string{"Static-Target Rockets", "Moving-Target Rockets", "Quit"}

// Stats counts outcomes since the scenario started
type Stats struct {
	Launched  int
	Hits      int
	Misses    int
	Discarded int
	Recorded  int
}

// Simulation drives one scene through the menu and the two scenarios.
// It is stepped by a front-end: HandleEvent for each sampled event, then Step, then Draw.
type Simulation struct {
	ctx   *Context
	cfg   Config
	scene *Scene

	classifier Predictor
	aim        Predictor

	mode    Mode
	cursor  int
	quit    bool
	elapsed float64
	stats   Stats
	debug   DebugState

	// moving-target scenario
	target    Handle
	crosshair Handle
	predicted Handle
	pointer   Vector2
}

// NewSimulation creates a simulation in menu mode. classifier judges guided
// rockets (1 = predicted hit); aim predicts where the moving target will be.
// Either may be nil.
func NewSimulation(ctx *Context, classifier, aim Predictor) *Simulation {
	return &Simulation{
		ctx:        ctx,
		cfg:        ctx.Config,
		scene:      NewScene(ctx, ctx.Config.Bounds()),
		classifier: classifier,
		aim:        aim,
		mode:       ModeMenu,
	}
}

func (s *Simulation) Scene() *Scene        { return s.scene }
func (s *Simulation) Context() *Context    { return s.ctx }
func (s *Simulation) Mode() Mode           { return s.mode }
func (s *Simulation) Cursor() int          { return s.cursor }
func (s *Simulation) Done() bool           { return s.quit }
func (s *Simulation) Stats() Stats         { return s.stats }
func (s *Simulation) Elapsed() float64     { return s.elapsed }
func (s *Simulation) Debug() *DebugState   { return &s.debug }
func (s *Simulation) Band() TargetBand     { return s.cfg.Scenario.Band() }
func (s *Simulation) LaunchPoint() Vector2 { return s.cfg.Scenario.Launch() }

// HandleEvent applies one input event
func (s *Simulation) HandleEvent(ev Event) {
	if ev.Type == EventQuit {
		s.quit = true
		return
	}
	if ev.Type == EventKeyDown {
		switch ev.Key {
		case KeyDebug:
			s.debug.Toggle()
			return
		case KeyR:
			if s.mode != ModeMenu {
				s.ctx.SetRecording(!s.ctx.recording)
				s.ctx.Logger.Info("dataset recording toggled", "on", s.ctx.recording)
				return
			}
		}
	}

	switch s.mode {
	case ModeMenu:
		s.handleMenu(ev)
	case ModeStatic:
		s.handleStatic(ev)
	case ModeMoving:
		s.handleMoving(ev)
	}
}

func (s *Simulation) handleMenu(ev Event) {
	if ev.Type != EventKeyDown {
		return
	}
	switch ev.Key {
	case KeyEscape:
		s.quit = true
	case KeyUp:
		if s.cursor > 0 {
			s.cursor--
			s.ctx.cue(CueMenu)
		}
	case KeyDown:
		if s.cursor < len(MenuItems)-1 {
			s.cursor++
			s.ctx.cue(CueMenu)
		}
	case KeyEnter, KeySpace:
		switch s.cursor {
		case 0:
			s.enter(ModeStatic)
		case 1:
			s.enter(ModeMoving)
		default:
			s.quit = true
		}
	}
}

func (s *Simulation) handleStatic(ev Event) {
	if ev.Type != EventKeyDown {
		return
	}
	switch ev.Key {
	case KeyEscape:
		s.enter(ModeMenu)
	case KeySpace:
		s.FireSalvo()
	case KeyA:
		s.FireUntil(1)
	case KeyB:
		s.FireUntil(0)
	case KeyT:
		sc := s.cfg.Scenario
		LaunchTumbling(s.scene, sc.Launch(), Vec(sc.TumbleSpeed, 0))
		s.stats.Launched++
	case KeyL:
		sc := s.cfg.Scenario
		LaunchBeam(s.scene, sc.Launch(), Vec(sc.BeamSpeed, 0))
		s.stats.Launched++
	}
}

func (s *Simulation) handleMoving(ev Event) {
	switch ev.Type {
	case EventKeyDown:
		switch ev.Key {
		case KeyEscape:
			s.enter(ModeMenu)
		case KeyV:
			if p, ok := s.scene.Resolve(s.predicted); ok {
				s.FireAt(p.Pos)
			}
		}
	case EventPointerMove:
		s.pointer = ev.Pos
		if c, ok := s.scene.Resolve(s.crosshair); ok {
			c.Behavior.(*Pointer).At = ev.Pos
		}
	case EventPointerDown:
		s.pointer = ev.Pos
		s.FireAt(ev.Pos)
	}
}

// enter switches scenario; the scene is cleared on every transition
func (s *Simulation) enter(m Mode) {
	s.scene.Clear()
	s.mode = m
	s.stats = Stats{}
	s.target, s.crosshair, s.predicted = Handle{}, Handle{}, Handle{}
	s.ctx.Logger.Info("scenario entered", "mode", m.String())

	if m != ModeMoving {
		return
	}
	sc := s.cfg.Scenario
	target := s.scene.Add(
		NewTarget(s.ctx, Vec(sc.ThresholdX, sc.TargetY), Vec(0, sc.TargetSpeed), sc.TargetSize),
		LayerTarget, GroupTargets,
	)
	s.target = target.Handle()
	s.crosshair = s.scene.Add(NewCrosshair(s.ctx, s.pointer), LayerCrosshair).Handle()
	if s.aim != nil {
		// added after the target so it reads the target's position of the same frame
		pc := NewPredictedCrosshair(s.ctx, s.aim, target, sc.ThresholdX, sc.InterceptVel, sc.TargetSpeed)
		s.predicted = s.scene.Add(pc, LayerCrosshair).Handle()
	}
}

// Enter switches to mode m directly, as selecting it from the menu would
func (s *Simulation) Enter(m Mode) { s.enter(m) }

// classify asks the classifier about a guided rocket; -1 without a classifier
func (s *Simulation) classify(e *Entity) int {
	if s.classifier == nil {
		return -1
	}
	g := e.Behavior.(*Guidance)
	return int(math.Round(s.classifier.Predict(g.Features())))
}

func (s *Simulation) newGuided() *Entity {
	sc := s.cfg.Scenario
	return NewGuidedRocket(s.ctx, sc.Launch(), Vec(sc.GuidedSpeed, 0), sc.Band(),
		sc.RangeFactor*float64(s.cfg.ScreenWidth))
}

// FireSalvo launches SalvoSize guided rockets, green when the classifier
// predicts a hit and red otherwise
func (s *Simulation) FireSalvo() {
	for i := 0; i < s.cfg.Scenario.SalvoSize; i++ {
		e := s.newGuided()
		switch s.classify(e) {
		case 1:
			e.Color = predictedColor
		case -1:
		default:
			e.Color = missColor
		}
		s.scene.Add(e, LayerProjectile, GroupBeams)
		s.stats.Launched++
	}
	s.ctx.cue(CueLaunch)
}

// FireUntil keeps drawing guided rockets until SalvoSize of them are predicted
// to have the wanted label. The others are never launched.
// It gives up after SalvoLimit attempts.
func (s *Simulation) FireUntil(want int) {
	sc := s.cfg.Scenario
	kept := 0
	for attempt := 0; kept < sc.SalvoSize; attempt++ {
		if attempt >= sc.SalvoLimit {
			s.ctx.Logger.Warn("salvo gave up", "want", want, "kept", kept, "attempts", attempt)
			break
		}
		e := s.newGuided()
		if s.classify(e) != want {
			s.stats.Discarded++
			continue
		}
		if want == 1 {
			e.Color = predictedColor
		} else {
			e.Color = missColor
		}
		s.scene.Add(e, LayerProjectile, GroupBeams)
		s.stats.Launched++
		kept++
	}
	s.ctx.cue(CueLaunch)
}

// FireAt launches an intercept shot from the launch point towards aim
func (s *Simulation) FireAt(aim Vector2) *Entity {
	target, _ := s.scene.Resolve(s.target)
	e := LaunchIntercept(s.scene, s.cfg.Scenario.Launch(), aim, s.cfg.Scenario.InterceptVel, target)
	s.stats.Launched++
	return e
}

// Step advances the simulation by dt seconds: wind, entity updates, then collisions
func (s *Simulation) Step(dt float64) {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	s.elapsed += dt
	if s.mode != ModeMenu {
		s.ctx.ChangeWind()
	}

	before := s.countOutcomes()
	s.scene.Update(dt)
	s.tallyOutcomes(before)

	if s.mode == ModeMoving {
		s.scene.DetectCollisions(GroupTargets, GroupBeams, s.onTargetHit)
	}
}

// onTargetHit explodes the beam, records the shot and removes it
func (s *Simulation) onTargetHit(target, beam *Entity) {
	if !beam.Alive() || !target.Alive() {
		return
	}
	ExplosionBurst(s.scene, beam.Pos, s.cfg.Burst)
	if ic, ok := beam.Behavior.(*Intercept); ok {
		if s.ctx.Recording() {
			s.stats.Recorded++
		}
		s.ctx.appendRecord(InterceptRecord(ic))
	}
	SpawnCaption(s.scene, beam.Pos, "HIT", beam.Color)
	s.ctx.cue(CueHit)
	s.stats.Hits++
	beam.Kill()
}

// countOutcomes snapshots the guided rockets that are still pending
func (s *Simulation) countOutcomes() []*Guidance {
	var pending []*Guidance
	for _, e := range s.scene.Group(GroupBeams) {
		if g, ok := e.Behavior.(*Guidance); ok && g.Outcome < 0 {
			pending = append(pending, g)
		}
	}
	return pending
}

func (s *Simulation) tallyOutcomes(pending []*Guidance) {
	for _, g := range pending {
		switch g.Outcome {
		case 1:
			s.stats.Hits++
		case 0:
			s.stats.Misses++
		default:
			continue
		}
		if g.Record && s.ctx.Recording() {
			s.stats.Recorded++
		}
	}
}

// Draw hands the scene to sink in layer order
func (s *Simulation) Draw(sink DrawSink) {
	s.scene.Draw(sink)
}
