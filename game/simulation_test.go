package game_test

import (
	"io"
	"log/slog"
	"testing"

	"go.uber.org/mock/gomock"

	"rocketsim/game"
	"rocketsim/game/mocks"
)

func newSimulation(t *testing.T, classifier, aim game.Predictor) *game.Simulation {
	t.Helper()
	cfg := game.DefaultConfig()
	cfg.Seed = 3
	ctx := game.NewContext(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return game.NewSimulation(ctx, classifier, aim)
}

func TestSimulation_MenuNavigation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cues := mocks.NewMockCueSink(ctrl)
	cues.EXPECT().Play(game.CueMenu).Times(2)

	sim := newSimulation(t, nil, nil)
	sim.Context().SetCueSink(cues)

	sim.HandleEvent(game.KeyPress(game.KeyUp))
	for i := 0; i < 4; i++ {
		sim.HandleEvent(game.KeyPress(game.KeyDown))
	}
	if sim.Cursor() != len(game.MenuItems)-1 {
		t.Fatalf("Cursor() = %d, expected %d", sim.Cursor(), len(game.MenuItems)-1)
	}
	sim.HandleEvent(game.KeyPress(game.KeyEnter))
	if !sim.Done() {
		t.Error("selecting Quit should end the simulation")
	}
}

func TestSimulation_EnterScenarios(t *testing.T) {
	tests := []struct {
		name     string
		downs    int
		wantMode game.Mode
	}{
		{"static", 0, game.ModeStatic},
		{"moving", 1, game.ModeMoving},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := newSimulation(t, nil, nil)
			for i := 0; i < tt.downs; i++ {
				sim.HandleEvent(game.KeyPress(game.KeyDown))
			}
			sim.HandleEvent(game.KeyPress(game.KeySpace))
			if sim.Mode() != tt.wantMode {
				t.Fatalf("Mode() = %v, expected %v", sim.Mode(), tt.wantMode)
			}

			sim.HandleEvent(game.KeyPress(game.KeyEscape))
			if sim.Mode() != game.ModeMenu || sim.Done() {
				t.Errorf("escape should return to the menu, mode %v", sim.Mode())
			}
			if sim.Scene().Len() != 0 {
				t.Errorf("menu scene holds %d entities", sim.Scene().Len())
			}
		})
	}
}

func TestSimulation_QuitEvent(t *testing.T) {
	sim := newSimulation(t, nil, nil)
	sim.Enter(game.ModeMoving)
	sim.HandleEvent(game.Quit())
	if !sim.Done() {
		t.Error("quit event should end the simulation")
	}
}

func TestSimulation_FireSalvo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	classifier := mocks.NewMockPredictor(ctrl)
	classifier.EXPECT().Predict(gomock.Len(4)).Return(0.8).Times(5)

	sim := newSimulation(t, classifier, nil)
	sim.Enter(game.ModeStatic)
	sim.HandleEvent(game.KeyPress(game.KeySpace))

	if got := sim.Stats().Launched; got != 5 {
		t.Errorf("Launched = %d, expected 5", got)
	}
	rockets := sim.Scene().Group(game.GroupBeams)
	if len(rockets) != 5 {
		t.Fatalf("scene holds %d rockets, expected 5", len(rockets))
	}
	for _, r := range rockets {
		if r.Color.G != 255 || r.Color.R != 0 {
			t.Errorf("predicted hit should be green, got %v", r.Color)
		}
		if r.Pos != sim.LaunchPoint() {
			t.Errorf("rocket starts at %v, expected %v", r.Pos, sim.LaunchPoint())
		}
	}
}

func TestSimulation_FireUntil(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	calls := 0
	classifier := mocks.NewMockPredictor(ctrl)
	classifier.EXPECT().Predict(gomock.Any()).DoAndReturn(func(features []float64) float64 {
		calls++
		return float64((calls + 1) % 2)
	}).Times(10)

	sim := newSimulation(t, classifier, nil)
	sim.Enter(game.ModeStatic)
	sim.HandleEvent(game.KeyPress(game.KeyA))

	stats := sim.Stats()
	if stats.Launched != 5 || stats.Discarded != 5 {
		t.Errorf("Launched = %d Discarded = %d, expected 5 and 5", stats.Launched, stats.Discarded)
	}
	if n := len(sim.Scene().Group(game.GroupBeams)); n != 5 {
		t.Errorf("scene holds %d rockets, expected 5", n)
	}
}

func TestSimulation_FireUntilGivesUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	classifier := mocks.NewMockPredictor(ctrl)
	classifier.EXPECT().Predict(gomock.Any()).Return(0.0).AnyTimes()

	sim := newSimulation(t, classifier, nil)
	sim.Enter(game.ModeStatic)
	sim.FireUntil(1)

	limit := sim.Context().Config.Scenario.SalvoLimit
	if got := sim.Stats().Discarded; got != limit {
		t.Errorf("Discarded = %d, expected %d", got, limit)
	}
	if sim.Scene().Len() != 0 {
		t.Errorf("no rocket should have been launched, scene holds %d", sim.Scene().Len())
	}
}

func TestSimulation_StaticRecordsEveryRocket(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dataset := mocks.NewMockDatasetSink(ctrl)
	dataset.EXPECT().Append(gomock.Any()).DoAndReturn(func(r game.Record) error {
		if r.Set != game.StaticDataset || len(r.Values) != 5 {
			t.Errorf("unexpected row %+v", r)
		}
		return nil
	}).Times(5)

	sim := newSimulation(t, nil, nil)
	sim.Context().SetDatasetSink(dataset)
	sim.Enter(game.ModeStatic)
	sim.HandleEvent(game.KeyPress(game.KeyR))
	if !sim.Context().Recording() {
		t.Fatal("R should turn recording on")
	}
	sim.FireSalvo()

	for i := 0; i < 4000 && len(sim.Scene().Group(game.GroupBeams)) > 0; i++ {
		sim.Step(1.0 / 60)
	}
	if n := len(sim.Scene().Group(game.GroupBeams)); n != 0 {
		t.Fatalf("%d rockets still flying", n)
	}
	stats := sim.Stats()
	if stats.Hits+stats.Misses > 5 || stats.Recorded != stats.Hits+stats.Misses {
		t.Errorf("stats = %+v", stats)
	}
}

func TestSimulation_StaticBeams(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cues := mocks.NewMockCueSink(ctrl)
	cues.EXPECT().Play(game.CueLaunch).Times(2)

	sim := newSimulation(t, nil, nil)
	sim.Enter(game.ModeStatic)
	sim.Context().SetCueSink(cues)
	sim.HandleEvent(game.KeyPress(game.KeyL))
	sim.HandleEvent(game.KeyPress(game.KeyL))

	beams := sim.Scene().Group(game.GroupBeams)
	if len(beams) != 2 {
		t.Fatalf("%d beams in flight, expected 2", len(beams))
	}
	for _, b := range beams {
		if b.Kind != game.KindBeam || b.Behavior != nil {
			t.Errorf("beam kind %v behavior %T", b.Kind, b.Behavior)
		}
	}
	if got := sim.Stats().Launched; got != 2 {
		t.Errorf("Launched = %d, expected 2", got)
	}

	for i := 0; i < 1000 && len(sim.Scene().Group(game.GroupBeams)) > 0; i++ {
		sim.Step(1.0 / 60)
	}
	if n := len(sim.Scene().Group(game.GroupBeams)); n != 0 {
		t.Fatalf("%d beams still flying", n)
	}
	if stats := sim.Stats(); stats.Hits != 0 || stats.Misses != 0 {
		t.Errorf("plain beams should not be judged, stats = %+v", stats)
	}
}

func TestSimulation_MovingTargetHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dataset := mocks.NewMockDatasetSink(ctrl)
	dataset.EXPECT().Append(gomock.Any()).DoAndReturn(func(r game.Record) error {
		if r.Set != game.MovingDataset {
			t.Errorf("Set = %q, expected %q", r.Set, game.MovingDataset)
		}
		return nil
	}).Times(1)

	cues := mocks.NewMockCueSink(ctrl)
	cues.EXPECT().Play(game.CueHit).Times(1)
	cues.EXPECT().Play(game.CueLaunch).Times(1)

	sim := newSimulation(t, nil, nil)
	ctx := sim.Context()
	ctx.SetDatasetSink(dataset)
	ctx.SetCueSink(cues)
	ctx.SetRecording(true)
	sim.Enter(game.ModeMoving)

	targets := sim.Scene().Group(game.GroupTargets)
	if len(targets) != 1 {
		t.Fatalf("moving scenario should hold one target, got %d", len(targets))
	}
	target := targets[0]
	sc := ctx.Config.Scenario
	aim := game.PredictiveAim(sc.Launch(), target.Pos, target.Vel, sc.InterceptVel)
	sim.HandleEvent(game.PointerDown(aim))

	for i := 0; i < 600 && sim.Stats().Hits == 0; i++ {
		sim.Step(1.0 / 60)
	}
	stats := sim.Stats()
	if stats.Hits != 1 || stats.Recorded != 1 {
		t.Fatalf("stats = %+v, expected one recorded hit", stats)
	}
	if !target.Alive() {
		t.Error("the target survives hits")
	}
	if n := len(sim.Scene().Group(game.GroupSparks)); n == 0 {
		t.Error("a hit should leave sparks")
	}
}

func TestSimulation_PredictedCrosshair(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	aim := mocks.NewMockPredictor(ctrl)
	aim.EXPECT().Predict(gomock.Any()).Return(321.4).Times(3)

	sim := newSimulation(t, nil, aim)
	sim.Enter(game.ModeMoving)
	for i := 0; i < 3; i++ {
		sim.Step(1.0 / 60)
	}

	var found bool
	for _, e := range sim.Scene().Entities() {
		if e.Kind == game.KindPredictedCrosshair {
			found = true
			if e.Pos != game.Vec(sim.Band().ThresholdX, 321) {
				t.Errorf("predicted crosshair at %v", e.Pos)
			}
		}
	}
	if !found {
		t.Fatal("moving scenario with an aim predictor should show the predicted crosshair")
	}
}

func TestSimulation_PointerMovesCrosshair(t *testing.T) {
	sim := newSimulation(t, nil, nil)
	sim.Enter(game.ModeMoving)
	sim.HandleEvent(game.PointerMove(game.Vec(250, 150)))
	sim.Step(1.0 / 60)

	for _, e := range sim.Scene().Entities() {
		if e.Kind == game.KindCrosshair && e.Pos != game.Vec(250, 150) {
			t.Errorf("crosshair at %v, expected (250,150)", e.Pos)
		}
	}
}

func TestSimulation_DebugToggle(t *testing.T) {
	sim := newSimulation(t, nil, nil)
	steps := []game.DebugState{
		{ShowShapes: true},
		{ShowShapes: true, ShowGrid: true},
		{},
	}
	for i, want := range steps {
		sim.HandleEvent(game.KeyPress(game.KeyDebug))
		if *sim.Debug() != want {
			t.Errorf("toggle %d: %+v, expected %+v", i+1, *sim.Debug(), want)
		}
	}
}
