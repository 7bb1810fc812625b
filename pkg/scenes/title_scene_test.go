package scenes

import (
	"testing"

	"github.com/decker502/cavestrike/pkg/game"
)

func TestTitleSceneImplementsScene(t *testing.T) {
	sm := game.NewSceneManager()
	state := game.NewGameState(nil, 2)
	scene := NewTitleScene(sm, state, 0)

	var _ game.Scene = scene

	if scene.sceneManager == nil || scene.state == nil {
		t.Error("TitleScene missing manager or state")
	}
}

// TestTitleSceneUpdateNoPanic runs the title scene headlessly. Without a
// window no key is ever just-pressed, so the scene must idle in place.
func TestTitleSceneUpdateNoPanic(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Update() panicked: %v", r)
		}
	}()

	sm := game.NewSceneManager()
	state := game.NewGameState(nil, 2)
	scene := NewTitleScene(sm, state, 0)

	for i := 0; i < 10; i++ {
		scene.Update(0.016)
	}

	if state.State() != game.StateStartScreen {
		t.Errorf("Expected state to stay on the start screen, got %v", state.State())
	}
	if scene.blinkTimer <= 0 {
		t.Error("Expected the blink timer to accumulate")
	}
}
