package app

// fpsMeter averages the frame rate over half-second windows and flags drops
// below a minimum once the warm-up has passed
type fpsMeter struct {
	minFPS  float64
	warmup  float64
	elapsed float64

	window float64
	frames int
	fps    float64
}

func newFPSMeter(minFPS, warmup float64, initial int) *fpsMeter {
	return &fpsMeter{minFPS: minFPS, warmup: warmup, fps: float64(initial)}
}

// Tick accounts one frame of dt seconds. drop is true only on the frame that
// closes a window whose average is below the minimum.
func (m *fpsMeter) Tick(dt float64) (fps float64, drop bool) {
	m.elapsed += dt
	m.window += dt
	m.frames++
	if m.window < 0.5 {
		return m.fps, false
	}
	m.fps = float64(m.frames) / m.window
	m.window, m.frames = 0, 0
	return m.fps, m.minFPS > 0 && m.elapsed >= m.warmup && m.fps < m.minFPS
}

// FPS returns the average of the last closed window
func (m *fpsMeter) FPS() float64 { return m.fps }

// clampDelta bounds a frame time to [0, 0.1] seconds so a stalled window does
// not teleport entities
func clampDelta(dt float64) float64 {
	if dt < 0 {
		return 0
	}
	if dt > 0.1 {
		return 0.1
	}
	return dt
}
