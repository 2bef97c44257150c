package clock

import (
	"fmt"
	"testing"
	"time"

	"github.com/hammamikhairi/tickface/internal/domain"
)

func TestWallFormatScenario(t *testing.T) {
	tick := time.Date(2024, 3, 9, 13, 7, 42, 0, time.UTC)
	var buf domain.TextBuffer

	Wall{}.Format(&buf, tick, domain.H24)
	if buf.String() != "13:07" {
		t.Fatalf("24h: expected 13:07, got %q", buf.String())
	}

	Wall{}.Format(&buf, tick, domain.H12)
	if buf.String() != "01:07" {
		t.Fatalf("12h: expected 01:07, got %q", buf.String())
	}
}

func TestWallFormatEveryMinute24h(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var buf domain.TextBuffer
	for i := 0; i < 24*60; i++ {
		tm := base.Add(time.Duration(i) * time.Minute)
		Wall{}.Format(&buf, tm, domain.H24)

		got := buf.String()
		want := fmt.Sprintf("%02d:%02d", tm.Hour(), tm.Minute())
		if got != want {
			t.Fatalf("at %s: expected %q, got %q", tm.Format(time.Kitchen), want, got)
		}
		if buf[5] != 0 {
			t.Fatalf("at %s: expected terminator after five characters", got)
		}
	}
}

func TestWallFormat12hBoundaries(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "12:00"},
		{1, "01:00"},
		{11, "11:00"},
		{12, "12:00"},
		{23, "11:00"},
	}
	var buf domain.TextBuffer
	for _, tt := range tests {
		Wall{}.Format(&buf, time.Date(2024, 1, 1, tt.hour, 0, 0, 0, time.UTC), domain.H12)
		if buf.String() != tt.want {
			t.Errorf("hour %d: expected %q, got %q", tt.hour, tt.want, buf.String())
		}
	}
}

func TestWallFormatOverwritesLongerContent(t *testing.T) {
	var buf domain.TextBuffer
	copy(buf[:], "abcdefg")
	Wall{}.Format(&buf, time.Date(2024, 1, 1, 9, 5, 0, 0, time.UTC), domain.H24)
	if buf.String() != "09:05" {
		t.Fatalf("expected 09:05, got %q", buf.String())
	}
}

func TestFixedFormat(t *testing.T) {
	var buf domain.TextBuffer

	New(true, "").Format(&buf, time.Now(), domain.H24)
	if buf.String() != DefaultDemoText {
		t.Fatalf("expected default demo text, got %q", buf.String())
	}

	New(true, "this is far too long").Format(&buf, time.Now(), domain.H12)
	if buf.Len() != domain.TextBufferSize-1 {
		t.Fatalf("expected truncation to %d bytes, got %q", domain.TextBufferSize-1, buf.String())
	}

	if _, ok := New(false, "ignored").(Wall); !ok {
		t.Fatal("expected Wall formatter when demo is off")
	}
}

func TestFormatDoesNotAllocate(t *testing.T) {
	var buf domain.TextBuffer
	now := time.Date(2024, 1, 1, 13, 7, 0, 0, time.UTC)
	for _, f := range []Formatter{Wall{}, Fixed{Text: "10:10"}} {
		allocs := testing.AllocsPerRun(100, func() {
			f.Format(&buf, now, domain.H24)
		})
		if allocs != 0 {
			t.Errorf("%T: expected zero allocations, got %.1f", f, allocs)
		}
	}
}
