package clipboard

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var (
	_ Clipboard = System{}
	_ Clipboard = (*Memory)(nil)
)

func TestMemory(t *testing.T) {
	m := NewMemory("initial")

	got, err := m.ReadText()
	if err != nil || got != "initial" {
		t.Fatalf("ReadText = %q, %v", got, err)
	}

	m.SetText("external")
	if err := m.WriteText("ours"); err != nil {
		t.Fatal(err)
	}
	if got, _ := m.ReadText(); got != "ours" {
		t.Errorf("ReadText after write = %q", got)
	}
	if diff := cmp.Diff([]string{"ours"}, m.Writes()); diff != "" {
		t.Errorf("writes mismatch (-want +got):\n%s", diff)
	}

	boom := errors.New("no display")
	m.SetError(boom)
	if _, err := m.ReadText(); !errors.Is(err, boom) {
		t.Errorf("ReadText error = %v", err)
	}
	if err := m.WriteText("x"); !errors.Is(err, boom) {
		t.Errorf("WriteText error = %v", err)
	}
	m.SetError(nil)
	if _, err := m.ReadText(); err != nil {
		t.Errorf("ReadText after clearing error: %v", err)
	}
}
