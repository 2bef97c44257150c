package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelNormal, &buf)

	log.Debug("hidden %d", 1)
	log.Info("shown %d", 2)
	if strings.Contains(buf.String(), "hidden") {
		t.Fatal("debug line written at normal level")
	}
	if !strings.Contains(buf.String(), "[INF] shown 2") {
		t.Fatalf("expected info line, got %q", buf.String())
	}

	buf.Reset()
	log.SetLevel(LevelOff)
	log.Error("nothing")
	if buf.Len() != 0 {
		t.Fatalf("expected no output when off, got %q", buf.String())
	}
}

func TestNamedSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	root := New(LevelNormal, &buf)
	child := root.Named("watchface").Named("tick")

	child.Debug("before")
	root.SetLevel(LevelVerbose)
	child.Debug("after")

	out := buf.String()
	if strings.Contains(out, "before") {
		t.Fatal("child logged debug before level change")
	}
	if !strings.Contains(out, "[DBG] watchface.tick: after") {
		t.Fatalf("expected prefixed debug line, got %q", out)
	}
	if child.GetLevel() != LevelVerbose {
		t.Fatalf("expected child level verbose, got %s", child.GetLevel())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"off":     LevelOff,
		"INFO":    LevelNormal,
		"":        LevelNormal,
		"debug":   LevelVerbose,
		"verbose": LevelVerbose,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %s, %v; want %s", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
