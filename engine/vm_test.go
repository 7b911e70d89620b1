package engine

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewVM_RemovesEscapeHatches(t *testing.T) {
	vm := NewVM(VMConfig{})

	for _, name := range []string{"require", "process", "module", "exports"} {
		v, err := vm.RunString("typeof " + name)
		if err != nil {
			t.Fatalf("typeof %s: %v", name, err)
		}
		if v.String() != "undefined" {
			t.Errorf("global %s should be undefined, got %s", name, v.String())
		}
	}
}

func TestNewVM_StackLimit(t *testing.T) {
	vm := NewVM(VMConfig{MaxCallStackSize: 64})

	_, err := vm.RunString("(function f() { return f(); })()")
	if err == nil {
		t.Fatal("unbounded recursion should fail with a capped stack")
	}
}

func TestNewVM_ConsoleRoutedToLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	vm := NewVM(VMConfig{EnableConsole: true, ConsoleTag: "test-realm"})
	if _, err := vm.RunString(`console.log("hello", 42)`); err != nil {
		t.Fatal(err)
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["realm"] != "test-realm" {
		t.Errorf("realm field = %v", fields["realm"])
	}
	if fields["message"] != "hello 42" {
		t.Errorf("message field = %v", fields["message"])
	}
}

func TestNewVM_ConsoleDisabledByDefault(t *testing.T) {
	vm := NewVM(VMConfig{})
	v, err := vm.RunString("typeof console")
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "undefined" {
		t.Errorf("console should be absent, got typeof %s", v.String())
	}
}
