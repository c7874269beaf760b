package keymap

import "testing"

type action int

const (
	actionA action = iota + 1
	actionB
)

func mustSeq(t *testing.T, s string) []Key {
	t.Helper()
	keys, err := ParseSequence(s)
	if err != nil {
		t.Fatalf("ParseSequence(%q): %v", s, err)
	}
	return keys
}

func TestEmptyBindingsNeverResolve(t *testing.T) {
	b := NewBuilder[action]().Build()
	for _, seq := range []string{"h", "j", "g g"} {
		if got := b.Resolve(mustSeq(t, seq)); got.Status != NoBinding {
			t.Errorf("Resolve(%q) = %s, want %s", seq, got.Status, NoBinding)
		}
	}
}

func TestDuplicateBindingErrors(t *testing.T) {
	b, err := NewBuilder[action]().AddString("j", actionB)
	if err != nil {
		t.Fatalf("AddString: %v", err)
	}
	if _, err := b.AddString("j", actionB); err == nil {
		t.Errorf("expected error for duplicate binding")
	}
	if _, err := b.AddString("j", actionA); err == nil {
		t.Errorf("expected error for duplicate keys with different output")
	}
}

func TestSimpleResolution(t *testing.T) {
	tests := []struct {
		seq  string
		want action
	}{
		{"j", actionA},
		{"j k", actionB},
	}
	for _, tt := range tests {
		b, err := NewBuilder[action]().AddString(tt.seq, tt.want)
		if err != nil {
			t.Fatalf("AddString: %v", err)
		}
		got := b.Build().Resolve(mustSeq(t, tt.seq))
		if got.Status != Resolved || got.Output != tt.want {
			t.Errorf("Resolve(%q) = %+v, want resolved %v", tt.seq, got, tt.want)
		}
	}
}

func TestAwaitingNextKey(t *testing.T) {
	b := build(t, map[string]action{"j g": actionA, "j k": actionB})
	if got := b.Resolve(mustSeq(t, "j")); got.Status != AwaitingNextKey {
		t.Errorf("Resolve(j) = %s, want %s", got.Status, AwaitingNextKey)
	}
	if got := b.Resolve(mustSeq(t, "j g")); got.Status != Resolved || got.Output != actionA {
		t.Errorf("Resolve(j g) = %+v", got)
	}
	if got := b.Resolve(mustSeq(t, "j x")); got.Status != NoBinding {
		t.Errorf("Resolve(j x) = %s, want %s", got.Status, NoBinding)
	}
}

func TestExactMatchWinsOverLongerBinding(t *testing.T) {
	b := build(t, map[string]action{"j": actionA, "j k": actionB})
	if got := b.Resolve(mustSeq(t, "j")); got.Status != Resolved || got.Output != actionA {
		t.Errorf("Resolve(j) = %+v, want resolved A", got)
	}
}

func TestModifiersAreDistinct(t *testing.T) {
	b := build(t, map[string]action{"alt+j": actionA, "ctrl+j": actionB})
	if got := b.Resolve([]Key{{Code: "j", Ctrl: true}}); got.Status != Resolved || got.Output != actionB {
		t.Errorf("Resolve(ctrl+j) = %+v, want resolved B", got)
	}
	if got := b.Resolve([]Key{{Code: "j"}}); got.Status != NoBinding {
		t.Errorf("Resolve(j) = %s, want %s", got.Status, NoBinding)
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want Key
	}{
		{"G", Key{Code: "G"}},
		{"ctrl+D", Key{Code: "d", Ctrl: true}},
		{"Ctrl+Alt+x", Key{Code: "x", Ctrl: true, Alt: true}},
		{" ", Key{Code: "space"}},
		{"PgDown", Key{Code: "pgdown"}},
		{"+", Key{Code: "+"}},
	}
	for _, tt := range tests {
		got, err := ParseKey(tt.in)
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseKey(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseSequence("   "); err == nil {
		t.Errorf("expected error for empty sequence")
	}
	if s := FormatSequence(mustSeq(t, "g ctrl+d")); s != "g ctrl+d" {
		t.Errorf("FormatSequence = %q", s)
	}
}

func build(t *testing.T, bindings map[string]action) *Bindings[action] {
	t.Helper()
	b := NewBuilder[action]()
	for seq, out := range bindings {
		var err error
		if b, err = b.AddString(seq, out); err != nil {
			t.Fatalf("AddString(%q): %v", seq, err)
		}
	}
	return b.Build()
}
