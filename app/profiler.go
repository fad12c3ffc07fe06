package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"rocketsim/game"
)

var (
	errCooldown  = errors.New("capture on cooldown")
	errProfiling = errors.New("already profiling")
)

// Profiler captures a CPU profile and an execution trace when the frame rate drops
type Profiler struct {
	mu          sync.Mutex
	isProfiling bool
	lastCapture time.Time
	cooldown    time.Duration
	duration    time.Duration
	dir         string
	logger      *slog.Logger
}

// NewProfiler creates a profiler writing to cfg.Dir
func NewProfiler(cfg game.ProfileConfig, logger *slog.Logger) (*Profiler, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create profile dir: %w", err)
	}
	return &Profiler{
		cooldown: seconds(cfg.Cooldown),
		duration: seconds(cfg.Duration),
		dir:      cfg.Dir,
		logger:   logger.With("component", "profiler"),
	}, nil
}

// CaptureProfile starts a capture in the background. It refuses while another
// capture runs or the cooldown has not passed.
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if since := time.Since(p.lastCapture); since < p.cooldown {
		return fmt.Errorf("%w: last capture was %v ago", errCooldown, since.Round(time.Millisecond))
	}
	if p.isProfiling {
		return errProfiling
	}
	p.isProfiling = true
	p.lastCapture = time.Now()

	baseName := fmt.Sprintf("fps-drop-%s-%s", time.Now().Format("20060102-150405"), reason)
	go func() {
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()
		if err := p.capture(baseName, p.duration); err != nil {
			p.logger.Error("profile capture failed", "error", err)
		}
	}()
	return nil
}

// IsProfiling reports whether a capture is in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

// capture records CPU profile and trace in parallel for d
func (p *Profiler) capture(baseName string, d time.Duration) error {
	var wg sync.WaitGroup
	var cpuErr, traceErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		cpuErr = p.record(baseName+".cpu.prof", d, pprof.StartCPUProfile, pprof.StopCPUProfile)
	}()
	go func() {
		defer wg.Done()
		traceErr = p.record(baseName+".trace", d, trace.Start, trace.Stop)
	}()
	wg.Wait()

	if err := errors.Join(cpuErr, traceErr); err != nil {
		return err
	}
	p.summarize(baseName)
	return nil
}

func (p *Profiler) record(name string, d time.Duration, start func(f io.Writer) error, stop func()) error {
	path := filepath.Join(p.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := start(f); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	time.Sleep(d)
	stop()
	p.logger.Info("profile saved", "path", path)
	return nil
}

func (p *Profiler) summarize(baseName string) {
	path := filepath.Join(p.dir, baseName+".cpu.prof")
	info, err := os.Stat(path)
	if err != nil {
		p.logger.Warn("could not analyse profile", "error", err)
		return
	}
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.logger.Info("profile captured",
		"file", path,
		"size_kb", info.Size()/1024,
		"view", "go tool pprof -http=:8080 "+path,
		"heap_alloc_kb", m.HeapAlloc/1024,
		"num_gc", m.NumGC,
		"heap_objects", m.HeapObjects,
	)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
