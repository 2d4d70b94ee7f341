package backend

import (
	"context"
	"path/filepath"
	"testing"
)

func TestTypeIsValid(t *testing.T) {
	for _, ok := range []Type{Memory, File, SQLite} {
		if !ok.IsValid() {
			t.Fatalf("%s should be valid", ok)
		}
	}
	if Type("redis").IsValid() {
		t.Fatalf("unknown type should be invalid")
	}
}

func TestOpenInvalidType(t *testing.T) {
	if _, err := Open(Config{Type: "redis"}, nil); err == nil {
		t.Fatalf("expected error for invalid type")
	}
}

func TestOpenMemoryAndFile(t *testing.T) {
	ctx := context.Background()

	for _, cfg := range []Config{
		{Type: Memory},
		{Type: File, DataDirectory: filepath.Join(t.TempDir(), "slots")},
	} {
		slots, err := Open(cfg, nil)
		if err != nil {
			t.Fatalf("%s: open: %v", cfg.Type, err)
		}
		if err := slots.Set(ctx, "k", "v"); err != nil {
			t.Fatalf("%s: set: %v", cfg.Type, err)
		}
		v, ok, err := slots.Get(ctx, "k")
		if err != nil || !ok || v != "v" {
			t.Fatalf("%s: get: v=%q ok=%v err=%v", cfg.Type, v, ok, err)
		}
		if err := slots.Close(); err != nil {
			t.Fatalf("%s: close: %v", cfg.Type, err)
		}
	}
}
