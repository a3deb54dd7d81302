package history

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestHistoryRoundTrip(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "hist")

	h, err := New(file)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.Add("ls")
	h.Add("/bin/sleep 100 &")
	if err := h.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := New(file)
	if err != nil {
		t.Fatalf("New after save: %v", err)
	}
	want := []string{"ls", "/bin/sleep 100 &"}
	if got := reloaded.GetAll(); !reflect.DeepEqual(got, want) {
		t.Errorf("GetAll = %v, want %v", got, want)
	}
}

func TestHistoryBounded(t *testing.T) {
	t.Parallel()
	h, err := New(filepath.Join(t.TempDir(), "hist"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < maxItems+10; i++ {
		h.Add("cmd")
	}
	if got := len(h.GetAll()); got != maxItems {
		t.Errorf("history holds %d items, want %d", got, maxItems)
	}
}
