package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-jumper/internal/core"
)

func TestRowRuns(t *testing.T) {
	s := core.NewScreen(8, 1)
	s.SetColored(0, 0, '█', core.ColorBlue)
	s.SetColored(1, 0, '█', core.ColorBlue)
	s.SetColored(2, 0, '•', core.ColorBlue)
	s.SetColored(3, 0, '▀', core.ColorGray)
	s.SetColored(4, 0, '▀', core.ColorGray)
	s.Set(5, 0, '█')

	expected := []styleRun{
		{runKey{core.ColorBlue, true}, "  "},
		{runKey{core.ColorBlue, false}, "•"},
		{runKey{core.ColorGray, false}, "▀▀"},
		{runKey{core.ColorDefault, false}, "█  "},
	}
	got := rowRuns(s, 0)
	if len(got) != len(expected) {
		t.Fatalf("got %d runs %+v, expected %d", len(got), got, len(expected))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("run %d = %+v, expected %+v", i, got[i], expected[i])
		}
	}
}

func TestRenderScreenKeepsLayout(t *testing.T) {
	s := core.NewScreen(4, 3)
	s.DrawText(0, 1, "ab")
	s.SetColored(3, 2, '●', core.ColorRed)

	out := RenderScreen(s)
	if n := strings.Count(out, "\n"); n != 2 {
		t.Errorf("expected 3 rows, got %d newlines", n)
	}
	if !strings.Contains(out, "ab") || !strings.Contains(out, "●") {
		t.Errorf("rendered screen lost content: %q", out)
	}
}

func TestFrameInterval(t *testing.T) {
	tests := []struct {
		fps      int
		expected time.Duration
	}{
		{60, time.Second / 60},
		{30, time.Second / 30},
		{0, time.Second / time.Duration(core.DefaultConfig().TickRate)},
		{-5, time.Second / time.Duration(core.DefaultConfig().TickRate)},
	}
	for _, tc := range tests {
		if got := frameInterval(tc.fps); got != tc.expected {
			t.Errorf("frameInterval(%d) = %v, expected %v", tc.fps, got, tc.expected)
		}
	}
}
