package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-jumper/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string { return g.id }
func (g stubGame) Title() string { return g.id }
func (g stubGame) Reset(core.RuntimeConfig) {}
func (g stubGame) Step(core.MultiInputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen) {}
func (g stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("test_b", "Test B", func(Setup) (Game, error) { return stubGame{id: "test_b"}, nil })
	Register("test_a", "Test A", func(Setup) (Game, error) { return stubGame{id: "test_a"}, nil })

	if !Exists("test_a") || Exists("test_missing") {
		t.Error("Exists() reports the wrong modes")
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Fatalf("List() not sorted: %v", list)
		}
	}

	g, err := Create("test_a", Setup{})
	if err != nil || g.ID() != "test_a" {
		t.Errorf("Create() = %v, %v", g, err)
	}
	if _, err := Create("test_missing", Setup{}); err == nil {
		t.Error("Create() of an unknown mode should fail")
	}
}

func TestCreatePassesFactoryError(t *testing.T) {
	boom := errors.New("boom")
	Register("test_err", "Test Err", func(Setup) (Game, error) { return nil, boom })

	if _, err := Create("test_err", Setup{}); !errors.Is(err, boom) {
		t.Errorf("Create() error = %v, expected %v", err, boom)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test_dup", "Dup", func(Setup) (Game, error) { return stubGame{}, nil })

	defer func() {
		if recover() == nil {
			t.Error("registering the same ID twice should panic")
		}
	}()
	Register("test_dup", "Dup", func(Setup) (Game, error) { return stubGame{}, nil })
}
