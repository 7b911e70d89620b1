package engine

import (
	"strings"

	"github.com/dop251/goja"
	"go.uber.org/zap"
)

const defaultMaxCallStackSize = 4096

// VMConfig controls construction of a hardened goja runtime.
type VMConfig struct {
	// MaxCallStackSize caps script recursion depth. Zero means the engine
	// default.
	MaxCallStackSize int

	// EnableConsole installs a console object routed to the package logger
	// at debug level.
	EnableConsole bool

	// ConsoleTag is attached to console log lines, typically the realm name.
	ConsoleTag string
}

// NewVM creates a hardened goja runtime. The caller owns the runtime; it is
// not safe for concurrent use.
func NewVM(cfg VMConfig) *goja.Runtime {
	vm := goja.New()

	size := cfg.MaxCallStackSize
	if size <= 0 {
		size = defaultMaxCallStackSize
	}
	vm.SetMaxCallStackSize(size)

	// Remove node-flavored escape hatches
	vm.Set("require", goja.Undefined())
	vm.Set("process", goja.Undefined())
	vm.Set("module", goja.Undefined())
	vm.Set("exports", goja.Undefined())

	if cfg.EnableConsole {
		installConsole(vm, cfg.ConsoleTag)
	}

	return vm
}

func installConsole(vm *goja.Runtime, tag string) {
	console := vm.NewObject()
	for _, level := range []string{"log", "info", "warn", "error"} {
		console.Set(level, makeConsoleFunc(tag, level))
	}
	vm.Set("console", console)
}

func makeConsoleFunc(tag, level string) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		var b strings.Builder
		for i, arg := range call.Arguments {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(arg.String())
		}
		Logger().Debug("console",
			zap.String("realm", tag),
			zap.String("level", level),
			zap.String("message", b.String()))
		return goja.Undefined()
	}
}
