package logging

import "testing"

func TestModuleLogger_NilProvider(t *testing.T) {
	logger := ModuleLogger(nil, "dbtranslation.registry")
	if logger == nil {
		t.Fatal("ModuleLogger(nil) returned nil")
	}
	// Must be safe to use without a backing provider.
	logger.Debug("entry", "key", "value")
}

func TestWithFields(t *testing.T) {
	if got := WithFields(nil, map[string]any{"a": 1}); got != nil {
		t.Fatalf("WithFields(nil) = %v", got)
	}

	base := NoOp()
	if got := WithFields(base, nil); got != base {
		t.Fatal("empty fields must return the logger unchanged")
	}
	if got := WithFields(base, map[string]any{"a": 1}); got == nil {
		t.Fatal("WithFields returned nil")
	}
}
