package game

import (
	"math"
	"slices"
	"testing"
)

type memorySink struct {
	records []Record
	err     error
}

func (m *memorySink) Append(r Record) error {
	m.records = append(m.records, r)
	return m.err
}

type cueLog []Cue

func (c *cueLog) Play(q Cue) { *c = append(*c, q) }

func TestGuidance_Outcome(t *testing.T) {
	band := TargetBand{Low: 200, High: 600, ThresholdX: 800}

	tests := []struct {
		name      string
		y         float64
		wantLabel int
		wantText  string
	}{
		{"inside_band", 400, 1, "HIT"},
		{"below_band", 650, 0, "MISS"},
		{"on_lower_edge", 200, 0, "MISS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScene(t)
			sink := &memorySink{}
			cues := &cueLog{}
			s.ctx.SetDatasetSink(sink)
			s.ctx.SetCueSink(cues)
			s.ctx.SetRecording(true)

			g := &Guidance{F1: 1.5, F2: 0, F3: 1, F4: -1, Band: band, Outcome: -1, Record: true}
			e := addEntity(s, EntityConfig{Pos: Vec(780, tt.y), Vel: Vec(50, 0), Behavior: g}, LayerProjectile, GroupBeams)

			for i := 0; i < 100 && e.Alive(); i++ {
				s.Update(0.1)
			}
			if e.Alive() {
				t.Fatal("rocket should be destroyed at the threshold")
			}
			if g.Outcome != tt.wantLabel {
				t.Errorf("Outcome = %d, expected %d", g.Outcome, tt.wantLabel)
			}
			if len(sink.records) != 1 {
				t.Fatalf("recorded %d rows, expected 1", len(sink.records))
			}
			row := sink.records[0]
			if row.Set != StaticDataset {
				t.Errorf("Set = %q, expected %q", row.Set, StaticDataset)
			}
			if want := "1.5,0.0,1,-1," + string(rune('0'+tt.wantLabel)); row.Line() != want {
				t.Errorf("Line() = %q, expected %q", row.Line(), want)
			}
			if len(*cues) != 1 || (*cues)[0] != CueExplosion {
				t.Errorf("cues = %v, expected one explosion", *cues)
			}

			var caption *Entity
			for _, x := range s.Entities() {
				if x.Kind == KindText {
					caption = x
				}
			}
			if caption == nil || caption.Text != tt.wantText {
				t.Errorf("caption = %v, expected %q", caption, tt.wantText)
			}
			sparks := len(s.Group(GroupSparks))
			if sparks < s.ctx.Config.Burst.SparksMin || sparks > 5 {
				t.Errorf("burst has %d sparks", sparks)
			}
		})
	}
}

func TestGuidance_EdgeKillRecordsMiss(t *testing.T) {
	s := newTestScene(t)
	sink := &memorySink{}
	s.ctx.SetDatasetSink(sink)
	s.ctx.SetRecording(true)

	g := &Guidance{F1: 1, F2: 0, F3: 1, F4: 1, Band: TargetBand{200, 600, 800}, Outcome: -1, Record: true}
	e := addEntity(s, EntityConfig{Pos: Vec(400, 2), Vel: Vec(0, -50), Boundary: BoundaryKill, Behavior: g}, LayerProjectile)

	s.Update(0.1)
	if e.Alive() {
		t.Fatal("rocket should leave through the top edge")
	}
	if g.Outcome != -1 {
		t.Errorf("Outcome = %d, expected -1", g.Outcome)
	}
	if len(sink.records) != 1 || sink.records[0].Values[4] != "0" {
		t.Errorf("records = %v, expected one row labelled 0", sink.records)
	}
	if len(s.Group(GroupSparks)) != 0 {
		t.Error("an unresolved rocket should not explode")
	}
}

func TestGuidance_Steering(t *testing.T) {
	s := newTestScene(t)
	g := &Guidance{F1: 2, F2: 30, F3: 1, F4: 1, Band: TargetBand{200, 600, 800}, Outcome: -1}
	e := addEntity(s, EntityConfig{Pos: Vec(100, 400), Vel: Vec(50, 0), Behavior: g}, LayerProjectile)

	s.Update(0.5)
	// age 0.5: sin(0.5*2*1) * 30 * 1 deg/s over 0.5 s
	want := math.Sin(1) * 30 * 0.5
	if math.Abs(e.Angle-want) > 1e-9 {
		t.Errorf("Angle = %v, expected %v", e.Angle, want)
	}
	if math.Abs(e.Vel.Length()-50) > 1e-9 {
		t.Errorf("speed = %v, expected 50", e.Vel.Length())
	}
}

func TestGuidance_Features(t *testing.T) {
	g := &Guidance{F1: 1.26, F2: 33.333, F3: -1, F4: 1}
	want := []float64{1.3, 33.3, -1, 1}
	got := g.Features()
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("Features() = %v, expected %v", got, want)
		}
	}
}

func TestTargetBand_Label(t *testing.T) {
	b := TargetBand{Low: 200, High: 600}
	tests := []struct {
		y    float64
		want int
	}{
		{199, 0}, {200, 0}, {201, 1}, {400, 1}, {599.9, 1}, {600, 0}, {650, 0},
	}
	for _, tt := range tests {
		if got := b.Label(tt.y); got != tt.want {
			t.Errorf("Label(%v) = %d, expected %d", tt.y, got, tt.want)
		}
	}
}

func TestFade_Smoke(t *testing.T) {
	s := newTestScene(t)
	s.ctx.SetWind(Vec(100, 0))
	e := SpawnSmoke(s, Vec(600, 400), s.ctx.Config.Smoke.Color.ToRGBA())

	s.Update(0.75)

	// progress 0.75 / 7.5
	if math.Abs(e.Radius-1.0) > 1e-9 {
		t.Errorf("Radius = %v, expected 1.0", e.Radius)
	}
	if math.Abs(e.Alpha-57.6) > 1e-9 {
		t.Errorf("Alpha = %v, expected 57.6", e.Alpha)
	}
	if !near(e.Vel, Vec(5, 0)) {
		t.Errorf("Vel = %v, expected wind drift (5,0)", e.Vel)
	}
	if math.Abs(e.Pos.X-603.75) > 1e-9 {
		t.Errorf("Pos.X = %v, expected 603.75", e.Pos.X)
	}
}

func TestFade_SparkFalls(t *testing.T) {
	s := newTestScene(t)
	s.ctx.SetWind(Vector2{})
	e := addEntity(s, EntityConfig{
		Pos:      Vec(600, 400),
		Vel:      Vec(10, 0),
		MaxAge:   10,
		Behavior: &Fade{AlphaStart: 255, AlphaEnd: 255, Gravity: Vec(0, 4), Propelled: true},
	}, LayerSpark)

	s.Update(1)
	s.Update(1)
	if !near(e.Vel, Vec(10, 8)) {
		t.Errorf("Vel = %v, expected (10,8)", e.Vel)
	}
	if e.Pos.Y <= 400 {
		t.Errorf("spark should fall down the screen, y = %v", e.Pos.Y)
	}
}

func TestCaption(t *testing.T) {
	s := newTestScene(t)
	e := SpawnCaption(s, Vec(400, 400), "HIT", predictedColor)

	s.Update(0.25)
	if e.Pos.Y >= 400 {
		t.Errorf("caption should rise, y = %v", e.Pos.Y)
	}
	if math.Abs(e.Alpha-(255+(64-255)*0.5)) > 1e-9 {
		t.Errorf("Alpha = %v halfway through", e.Alpha)
	}
	s.Update(0.3)
	s.Update(0.01)
	if e.Alive() {
		t.Error("caption should expire after half a second")
	}
}

func TestPrediction_FollowsTarget(t *testing.T) {
	s := newTestScene(t)
	target := s.Add(NewTarget(s.ctx, Vec(800, 100), Vec(0, 50), 50), LayerTarget, GroupTargets)

	var seen []float64
	p := PredictorFunc(func(features []float64) float64 {
		seen = features
		return features[2] + 10.4
	})
	pc := s.Add(NewPredictedCrosshair(s.ctx, p, target, 800, 200, 50), LayerCrosshair)

	s.Update(0.1)
	want := []float64{50, 200, 105, 1}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("features = %v, expected %v", seen, want)
		}
	}
	if pc.Pos != Vec(800, 115) {
		t.Errorf("Pos = %v, expected (800,115)", pc.Pos)
	}

	target.Kill()
	s.Update(0.1)
	if pc.Pos != Vec(800, 115) {
		t.Errorf("crosshair moved without a target: %v", pc.Pos)
	}
}

func TestPrediction_NaNPropagates(t *testing.T) {
	s := newTestScene(t)
	target := s.Add(NewTarget(s.ctx, Vec(800, 100), Vec(0, 50), 50), LayerTarget)
	p := PredictorFunc(func([]float64) float64 { return math.NaN() })
	pc := s.Add(NewPredictedCrosshair(s.ctx, p, target, 800, 200, 50), LayerCrosshair)

	s.Update(0.1)
	if !math.IsNaN(pc.Pos.Y) {
		t.Errorf("Pos.Y = %v, expected NaN", pc.Pos.Y)
	}
	if !pc.Alive() {
		t.Error("a NaN prediction should not destroy the crosshair")
	}
}

func TestPointer(t *testing.T) {
	s := newTestScene(t)
	c := s.Add(NewCrosshair(s.ctx, Vec(10, 10)), LayerCrosshair)
	c.Behavior.(*Pointer).At = Vec(300, 200)

	s.Update(0.1)
	if c.Pos != Vec(300, 200) {
		t.Errorf("Pos = %v, expected (300,200)", c.Pos)
	}
}

func TestTumble_KeepsSpeed(t *testing.T) {
	s := newTestScene(t)
	e := LaunchTumbling(s, Vec(100, 400), Vec(120, 0))
	for i := 0; i < 30; i++ {
		s.Update(1.0 / 60)
	}
	if math.Abs(e.Vel.Length()-120) > 1e-6 {
		t.Errorf("speed = %v, expected 120", e.Vel.Length())
	}
	if math.Abs(e.Vel.Angle()-wrapSigned(e.Angle)) > 1e-6 {
		t.Errorf("facing %v differs from heading %v", e.Angle, e.Vel.Angle())
	}
}

func TestTumble_StepsAndSmoke(t *testing.T) {
	const frames = 1000
	s := newTestScene(t)
	e := LaunchTumbling(s, Vec(600, 400), Vec(120, 0))

	seen := make(map[float64]int)
	for i := 0; i < frames; i++ {
		// keep the rocket in the middle of the screen
		e.Pos = Vec(600, 400)
		e.DistanceTraveled = 0

		before := e.Angle
		e.Update(1.0 / 60)
		if !e.Alive() {
			t.Fatalf("rocket destroyed on frame %d", i)
		}
		delta := math.Round(wrapSigned(e.Angle-before)*1e6) / 1e6
		if !slices.Contains(tumbleSteps, delta) {
			t.Fatalf("frame %d turned by %v, not one of %v", i, delta, tumbleSteps)
		}
		seen[delta]++
	}
	for _, step := range tumbleSteps {
		if seen[step] == 0 {
			t.Errorf("step %v never drawn in %d frames", step, frames)
		}
	}

	// puffs are never updated here, so none of them fade out
	puffs := len(s.Group(GroupSmoke))
	want := s.ctx.Config.Smoke.Chance * frames
	if math.Abs(float64(puffs)-want) > 0.05*frames {
		t.Errorf("%d smoke puffs in %d frames, expected about %v", puffs, frames, want)
	}
}

func TestLaunchBeam(t *testing.T) {
	tests := []struct {
		name      string
		pos, vel  Vector2
		wantPos   Vector2
		wantAlive bool
	}{
		{"straight flight", Vec(100, 400), Vec(100, 0), Vec(110, 400), true},
		{"diagonal flight", Vec(100, 400), Vec(100, -100), Vec(110, 390), true},
		{"right edge", Vec(1195, 400), Vec(300, 0), Vec(1225, 400), false},
		{"left edge", Vec(5, 400), Vec(-300, 0), Vec(-25, 400), false},
		{"bottom edge", Vec(600, 795), Vec(0, 300), Vec(600, 825), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScene(t)
			var cues cueLog
			s.ctx.SetCueSink(&cues)

			e := LaunchBeam(s, tt.pos, tt.vel)
			if e.Kind != KindBeam || e.Behavior != nil || !e.InGroup(GroupBeams) {
				t.Fatalf("beam kind %v behavior %T groups %v", e.Kind, e.Behavior, e.groups)
			}
			if len(cues) != 1 || cues[0] != CueLaunch {
				t.Errorf("cues = %v, expected one launch", cues)
			}
			if math.Abs(wrapSigned(e.Angle)-tt.vel.Angle()) > 1e-9 {
				t.Errorf("Angle = %v, expected %v", e.Angle, tt.vel.Angle())
			}

			e.Update(0.1)
			if e.Alive() != tt.wantAlive {
				t.Fatalf("Alive() = %v, expected %v", e.Alive(), tt.wantAlive)
			}
			if tt.wantAlive {
				if !near(e.Pos, tt.wantPos) {
					t.Errorf("Pos = %v, expected %v", e.Pos, tt.wantPos)
				}
				if e.Vel != tt.vel {
					t.Errorf("Vel = %v, expected %v", e.Vel, tt.vel)
				}
				return
			}
			if s.Len() != 0 || len(s.Group(GroupBeams)) != 0 {
				t.Errorf("killed beam still registered, Len() = %d", s.Len())
			}
		})
	}
}
