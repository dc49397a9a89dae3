package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/supplyrun/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string                           { return g.id }
func (g stubGame) Title() string                        { return strings.ToUpper(g.id) }
func (g stubGame) Reset(core.RuntimeConfig)             {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen)                  {}
func (g stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterListCreate(t *testing.T) {
	Register("test_b", func() Game { return stubGame{id: "test_b"} })
	Register("test_a", func() Game { return stubGame{id: "test_a"} })

	if !Exists("test_a") || Exists("test_missing") {
		t.Error("Exists should reflect registrations")
	}

	var ids []string
	for _, info := range List() {
		if strings.HasPrefix(info.ID, "test_") {
			ids = append(ids, info.ID)
			if info.Title != strings.ToUpper(info.ID) {
				t.Errorf("title for %s = %q", info.ID, info.Title)
			}
		}
	}
	if len(ids) != 2 || ids[0] != "test_a" || ids[1] != "test_b" {
		t.Errorf("List() should be sorted by ID, got %v", ids)
	}

	g, err := Create("test_b")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "test_b" {
		t.Errorf("Create returned %q", g.ID())
	}

	if _, err := Create("test_missing"); err == nil {
		t.Error("Create of an unknown ID should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test_dup", func() Game { return stubGame{id: "test_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("test_dup", func() Game { return stubGame{id: "test_dup"} })
}

func TestIDsSorted(t *testing.T) {
	Register("test_z", func() Game { return stubGame{id: "test_z"} })
	Register("test_m", func() Game { return stubGame{id: "test_m"} })

	ids := IDs()
	if len(ids) != len(List()) {
		t.Fatalf("IDs() has %d entries, List() %d", len(ids), len(List()))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Errorf("IDs() not sorted: %v", ids)
		}
	}
}
