package hotkeys

import (
	"testing"

	"github.com/1broseidon/launchbar/internal/platform"
)

func TestNewHandler_RequiresX11(t *testing.T) {
	if _, err := NewHandler(platform.NewStatic(800, 600), nil); err == nil {
		t.Fatalf("expected error for a non-X11 backend")
	}
}
