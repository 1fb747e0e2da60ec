package layout

import (
	"strings"
	"testing"
)

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Dashboard", "Space Explorer 1a2b", 2, 100)
	for _, want := range []string{"Spacey", "Dashboard", "Space Explorer 1a2b", "★ 2"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}

	if h := RenderHeader("Dashboard", "x", 0, 100); strings.Contains(h, "★") {
		t.Error("badge count should be hidden when zero")
	}
}

func TestContentHeight(t *testing.T) {
	if got := ContentHeight(30); got != 30-HeaderHeight-FooterHeight {
		t.Errorf("ContentHeight(30) = %d", got)
	}
	if got := ContentHeight(2); got != 0 {
		t.Errorf("ContentHeight(2) = %d, want 0", got)
	}
}
