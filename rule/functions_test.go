package rule

import (
	"reflect"
	"testing"
)

func TestFunctionRegistryRegisterAndCall(t *testing.T) {
	registry := NewFunctionRegistry()
	if err := registry.Register("Double", func(args ...any) (any, error) {
		n, _ := args[0].(int)
		return n * 2, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	// lookups are case-insensitive
	result, err := registry.Call("double", 21)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if result != 42 {
		t.Fatalf("want 42, got %v", result)
	}
}

func TestFunctionRegistryRejectsDuplicates(t *testing.T) {
	registry := NewFunctionRegistry()
	fn := func(args ...any) (any, error) { return nil, nil }
	if err := registry.Register("fn", fn); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register("FN", fn); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}

func TestFunctionRegistryValidation(t *testing.T) {
	registry := NewFunctionRegistry()
	if err := registry.Register("fn", nil); err == nil {
		t.Fatal("nil function should be rejected")
	}
	if err := registry.Register("", func(args ...any) (any, error) { return nil, nil }); err == nil {
		t.Fatal("empty name should be rejected")
	}
	if _, err := registry.Call("missing"); err == nil {
		t.Fatal("calling an unregistered function should fail")
	}
}

func TestFunctionRegistryCloneIsIndependent(t *testing.T) {
	registry := NewFunctionRegistry()
	fn := func(args ...any) (any, error) { return nil, nil }
	if err := registry.Register("a", fn); err != nil {
		t.Fatalf("register: %v", err)
	}
	clone := registry.Clone()
	if err := clone.Register("b", fn); err != nil {
		t.Fatalf("register on clone: %v", err)
	}
	if !reflect.DeepEqual(registry.Names(), []string{"a"}) {
		t.Fatalf("clone leaked into original: %v", registry.Names())
	}
	if !reflect.DeepEqual(clone.Names(), []string{"a", "b"}) {
		t.Fatalf("unexpected clone names: %v", clone.Names())
	}
}
