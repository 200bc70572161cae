package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/pendulums/internal/pendulum"
	"golang.org/x/exp/rand"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewRegistry(pendulum.DefaultSpec(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("new registry failed: %v", err)
	}
	return reg
}

func TestRegistryRejectsInvalidTemplate(t *testing.T) {
	spec := pendulum.DefaultSpec()
	spec.OuterLength = 0

	_, err := NewRegistry(spec, rand.New(rand.NewSource(1)))
	if !errors.Is(err, pendulum.ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength, got %v", err)
	}
}

func TestRegistrySpawnAndReset(t *testing.T) {
	reg := newTestRegistry(t)

	reg.SpawnMany(10)
	if reg.Len() != 10 {
		t.Fatalf("expected 10 pendulums, got %d", reg.Len())
	}

	reg.ResetAll()
	count := 0
	reg.ForEach(func(Handle, *pendulum.DoublePendulum) { count++ })
	if count != 0 || reg.Len() != 0 {
		t.Errorf("expected empty registry after reset, iterated %d", count)
	}
}

func TestRegistryHandles(t *testing.T) {
	reg := newTestRegistry(t)

	h1, p1 := reg.SpawnOne()
	h2, _ := reg.SpawnOne()
	if h1 == h2 {
		t.Fatal("handles must be unique")
	}

	got, ok := reg.Get(h1)
	if !ok || got != p1 {
		t.Error("Get returned the wrong pendulum")
	}

	reg.ResetAll()
	if _, ok := reg.Get(h1); ok {
		t.Error("handle survived reset")
	}

	h3, _ := reg.SpawnOne()
	if h3 == h1 || h3 == h2 {
		t.Error("handle reused after reset")
	}
}

func TestRegistryInsertionOrder(t *testing.T) {
	reg := newTestRegistry(t)
	want := make([]Handle, 0, 5)
	for i := 0; i < 5; i++ {
		h, _ := reg.SpawnOne()
		want = append(want, h)
	}

	got := make([]Handle, 0, 5)
	reg.ForEach(func(h Handle, _ *pendulum.DoublePendulum) { got = append(got, h) })

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch at %d: %v vs %v", i, got, want)
		}
	}
}

func TestCommandString(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{CmdReset, "reset"},
		{CmdSpawnMany, "spawn_many"},
		{CmdToggleDamping, "toggle_damping"},
		{Command(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.cmd, got, tt.want)
		}
	}
}

func TestRegistryEnergy(t *testing.T) {
	r := newTestRegistry(t)
	if e := r.Energy(9.8); e != 0 {
		t.Errorf("empty registry energy = %v, want 0", e)
	}

	for i := 0; i < 2; i++ {
		p, err := pendulum.New(pendulum.DefaultSpec())
		if err != nil {
			t.Fatal(err)
		}
		r.Add(p)
	}

	// two bobs at rest hanging 10 and 20 below the pivot, twice
	want := 2 * -(10.0 + 20.0) * 9.8
	if got := r.Energy(9.8); math.Abs(got-want) > 1e-9 {
		t.Errorf("Energy() = %v, want %v", got, want)
	}
}
