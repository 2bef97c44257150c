package domain

import "testing"

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		format TimeFormat
		caps   Capabilities
		want   FormatMode
	}{
		{TimeFormat24h, Capabilities{Clock24h: false}, H24},
		{TimeFormat12h, Capabilities{Clock24h: true}, H12},
		{TimeFormatSystem, Capabilities{Clock24h: true}, H24},
		{TimeFormatSystem, Capabilities{Clock24h: false}, H12},
	}
	for _, tt := range tests {
		if got := EffectiveMode(tt.format, tt.caps); got != tt.want {
			t.Errorf("EffectiveMode(%s, %+v) = %s, want %s", tt.format, tt.caps, got, tt.want)
		}
	}
}

func TestTextBufferLen(t *testing.T) {
	var b TextBuffer
	if b.Len() != 0 {
		t.Fatalf("expected empty buffer, got len %d", b.Len())
	}
	copy(b[:], "13:07")
	if b.String() != "13:07" {
		t.Fatalf("expected 13:07, got %q", b.String())
	}
	for i := range b {
		b[i] = 'x'
	}
	if b.Len() != TextBufferSize {
		t.Fatalf("unterminated buffer: expected len %d, got %d", TextBufferSize, b.Len())
	}
}

func TestTimeUnitHas(t *testing.T) {
	changed := MinuteUnit | HourUnit
	if !changed.Has(MinuteUnit) || !changed.Has(HourUnit) {
		t.Fatal("expected minute and hour set")
	}
	if changed.Has(DayUnit) {
		t.Fatal("day should not be set")
	}
	if changed.String() != "hour" {
		t.Fatalf("expected coarsest unit hour, got %s", changed)
	}
}

func TestVibeStateFromString(t *testing.T) {
	for in, want := range map[string]VibeState{"off": VibeOff, "1": VibeShort, "long": VibeLong} {
		got, ok := VibeStateFromString(in)
		if !ok || got != want {
			t.Errorf("VibeStateFromString(%q) = %s, %v", in, got, ok)
		}
	}
	if _, ok := VibeStateFromString("loud"); ok {
		t.Error("expected unknown vibe state to be rejected")
	}
}

func TestColorHexRoundTrip(t *testing.T) {
	c := ColorFromHex(0xFF5500)
	if c != (Color{0xFF, 0x55, 0x00}) {
		t.Fatalf("unexpected color %v", c)
	}
	if c.Hex() != 0xFF5500 || c.String() != "#ff5500" {
		t.Fatalf("unexpected hex %x / %s", c.Hex(), c)
	}
}
