package packed

import (
	"slices"
	"testing"

	"github.com/wippyai/godot-bridge/internal/fakenative"
)

func TestStringsRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		seq  []string
	}{
		{"empty", nil},
		{"one", []string{"solo"}},
		{"many", []string{"", "héllo", "world", "a longer string value"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := fakenative.New()
			a, err := StringsFromSlice(host, tt.seq)
			if err != nil {
				t.Fatalf("StringsFromSlice: %v", err)
			}
			got, err := a.Slice()
			if err != nil {
				t.Fatalf("Slice: %v", err)
			}
			if len(got) != len(tt.seq) || (len(got) > 0 && !slices.Equal(got, tt.seq)) {
				t.Errorf("Slice() = %q, want %q", got, tt.seq)
			}
			a.Close()
			host.AssertClean(t)
		})
	}
}

func TestStringsMutation(t *testing.T) {
	host := fakenative.New()
	a, _ := StringsFromSlice(host, []string{"a", "b"})

	if err := a.Set(0, "alpha"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := a.Append("gamma"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if got, _ := a.Get(2); got != "gamma" {
		t.Errorf("Get(2) = %q", got)
	}
	if _, err := a.Get(3); err == nil {
		t.Error("Get(3) expected error")
	}
	if err := a.Resize(1); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if got, _ := a.Slice(); !slices.Equal(got, []string{"alpha"}) {
		t.Errorf("after shrink = %q", got)
	}
	// Element 0 is live, elements 1 and 2 were released by the shrink.
	if n := host.LiveStrings(); n != 1 {
		t.Errorf("live strings = %d, want 1", n)
	}
	a.Close()
	host.AssertClean(t)
}

func TestStringsEmptyBounds(t *testing.T) {
	host := fakenative.New()
	a, _ := NewStrings(host)
	if _, err := a.Get(0); err == nil {
		t.Error("Get(0) on empty expected error")
	}
	if err := a.Set(0, "x"); err == nil {
		t.Error("Set(0) on empty expected error")
	}
	if host.Stats.IndexCalls != 0 {
		t.Errorf("native index called %d times", host.Stats.IndexCalls)
	}
	a.Close()
	host.AssertClean(t)
}
