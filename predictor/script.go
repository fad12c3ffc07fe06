package predictor

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path"
	"sync"

	"github.com/dop251/goja"
)

var (
	// ErrScriptNotFound is returned when a script file, builtin or server entry does not exist
	ErrScriptNotFound = errors.New("script not found")

	// ErrNoPredictFunc is returned for scripts that do not define predict(features)
	ErrNoPredictFunc = errors.New("script must define a 'predict' function")
)

//go:embed scripts/*.js
var builtinScripts embed.FS

// Script is a game.Predictor backed by a JavaScript model.
// The script is compiled once and must define a function predict(features)
// returning a number. A runtime error makes Predict return NaN.
type Script struct {
	mu      sync.Mutex
	name    string
	vm      *goja.Runtime
	predict goja.Callable
	logger  *slog.Logger
}

// NewScript compiles code and binds its predict function. Every entry of
// globals is visible to the script as a global variable.
func NewScript(name, code string, globals map[string]any, logger *slog.Logger) (*Script, error) {
	if logger == nil {
		logger = slog.Default()
	}

	prog, err := goja.Compile(name, code, false)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}

	vm := goja.New()
	for k, v := range globals {
		if err := vm.Set(k, v); err != nil {
			return nil, fmt.Errorf("set global %s: %w", k, err)
		}
	}
	if _, err := vm.RunProgram(prog); err != nil {
		return nil, fmt.Errorf("run %s: %w", name, err)
	}

	fn, ok := goja.AssertFunction(vm.Get("predict"))
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNoPredictFunc)
	}

	return &Script{
		name:    name,
		vm:      vm,
		predict: fn,
		logger:  logger.With("script", name),
	}, nil
}

// LoadScript reads a script from disk
func LoadScript(file string, globals map[string]any, logger *slog.Logger) (*Script, error) {
	code, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", file, ErrScriptNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return NewScript(file, string(code), globals, logger)
}

// Builtin loads one of the embedded scripts ("classifier" or "aim")
func Builtin(name string, globals map[string]any, logger *slog.Logger) (*Script, error) {
	code, err := builtinScripts.ReadFile(path.Join("scripts", name+".js"))
	if err != nil {
		return nil, fmt.Errorf("builtin %s: %w", name, ErrScriptNotFound)
	}
	return NewScript("builtin:"+name, string(code), globals, logger)
}

// Name returns the name the script was compiled under
func (s *Script) Name() string { return s.name }

// Predict calls predict(features) in the script
func (s *Script) Predict(features []float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	args := make([]any, len(features))
	for i, f := range features {
		args[i] = f
	}

	result, err := s.predict(goja.Undefined(), s.vm.ToValue(args))
	if err != nil {
		s.logger.Warn("predict failed", "error", err)
		return math.NaN()
	}
	return result.ToFloat()
}
