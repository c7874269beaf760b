// Package keymap resolves sequences of pressed keys against a fixed set of
// bindings. A sequence either resolves to a binding's output, is the prefix of
// a longer binding (awaiting the next key), or matches nothing.
//
// Key sequences are written as space separated keys:
//
//	"j"        - single character (case-sensitive)
//	"g g"      - multi-key sequence
//	"ctrl+d"   - control modifier
//	"alt+x"    - alt modifier
//	"pgdown"   - named key
package keymap

import (
	"fmt"
	"strings"
)

// Key is one pressed key. Code is either a single character or a lowercase
// key name such as "up", "pgdown" or "space".
type Key struct {
	Code string
	Ctrl bool
	Alt  bool
}

func (k Key) String() string {
	var b strings.Builder
	if k.Ctrl {
		b.WriteString("ctrl+")
	}
	if k.Alt {
		b.WriteString("alt+")
	}
	b.WriteString(k.Code)
	return b.String()
}

// ParseKey parses a single key such as "G", "ctrl+d" or "space".
func ParseKey(s string) (Key, error) {
	if s == " " {
		return Key{Code: "space"}, nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return Key{}, fmt.Errorf("keymap: empty key")
	}
	var k Key
	for {
		lower := strings.ToLower(s)
		switch {
		case strings.HasPrefix(lower, "ctrl+") && len(s) > len("ctrl+"):
			k.Ctrl = true
			s = s[len("ctrl+"):]
			continue
		case strings.HasPrefix(lower, "alt+") && len(s) > len("alt+"):
			k.Alt = true
			s = s[len("alt+"):]
			continue
		}
		break
	}
	if len([]rune(s)) == 1 {
		k.Code = s
		// 终端把 ctrl 组合键报告为小写字母。
		if k.Ctrl {
			k.Code = strings.ToLower(s)
		}
		return k, nil
	}
	k.Code = strings.ToLower(s)
	return k, nil
}

// ParseSequence parses space separated keys.
func ParseSequence(s string) ([]Key, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("keymap: empty key sequence")
	}
	keys := make([]Key, 0, len(fields))
	for _, f := range fields {
		k, err := ParseKey(f)
		if err != nil {
			return nil, fmt.Errorf("keymap: parsing %q: %w", s, err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// FormatSequence is the inverse of ParseSequence.
func FormatSequence(keys []Key) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, " ")
}

// Status is the outcome of resolving a key sequence.
type Status int

const (
	NoBinding Status = iota
	AwaitingNextKey
	Resolved
)

func (s Status) String() string {
	switch s {
	case Resolved:
		return "resolved"
	case AwaitingNextKey:
		return "awaiting next key"
	default:
		return "no binding"
	}
}

// Resolution carries the status and, when resolved, the bound output.
type Resolution[T any] struct {
	Status Status
	Output T
}

type binding[T any] struct {
	keys   []Key
	output T
}

// Bindings is an immutable set of key bindings.
type Bindings[T any] struct {
	bindings []binding[T]
}

// Len returns the number of bindings.
func (b *Bindings[T]) Len() int { return len(b.bindings) }

// Resolve matches a partially typed sequence. An exact match wins even when
// longer bindings share the same prefix.
func (b *Bindings[T]) Resolve(keys []Key) Resolution[T] {
	prefixOf := false
	for _, bnd := range b.bindings {
		if !hasPrefix(bnd.keys, keys) {
			continue
		}
		if len(bnd.keys) == len(keys) {
			return Resolution[T]{Status: Resolved, Output: bnd.output}
		}
		prefixOf = true
	}
	if prefixOf {
		return Resolution[T]{Status: AwaitingNextKey}
	}
	return Resolution[T]{Status: NoBinding}
}

func hasPrefix(seq, prefix []Key) bool {
	if len(prefix) > len(seq) {
		return false
	}
	for i := range prefix {
		if seq[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Builder accumulates bindings and rejects duplicate sequences.
type Builder[T any] struct {
	bindings []binding[T]
}

// NewBuilder returns an empty builder.
func NewBuilder[T any]() *Builder[T] {
	return &Builder[T]{}
}

// Add registers keys -> output.
func (b *Builder[T]) Add(keys []Key, output T) (*Builder[T], error) {
	if len(keys) == 0 {
		return b, fmt.Errorf("keymap: empty key sequence")
	}
	for _, existing := range b.bindings {
		if len(existing.keys) == len(keys) && hasPrefix(existing.keys, keys) {
			return b, fmt.Errorf("keymap: duplicate binding for %q", FormatSequence(keys))
		}
	}
	b.bindings = append(b.bindings, binding[T]{keys: append([]Key(nil), keys...), output: output})
	return b, nil
}

// AddString parses seq and registers it.
func (b *Builder[T]) AddString(seq string, output T) (*Builder[T], error) {
	keys, err := ParseSequence(seq)
	if err != nil {
		return b, err
	}
	return b.Add(keys, output)
}

// Build returns the finished bindings.
func (b *Builder[T]) Build() *Bindings[T] {
	return &Bindings[T]{bindings: append([]binding[T](nil), b.bindings...)}
}
