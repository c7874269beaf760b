package pager

import (
	"fmt"
	"sort"

	"github.com/ByLCY/quill/keymap"
)

// Action is what a resolved key chord does to the pager.
type Action int

const (
	ActionDown Action = iota + 1
	ActionUp
	ActionHalfDown
	ActionHalfUp
	ActionPageDown
	ActionPageUp
	ActionTop
	ActionBottom
	ActionReload
	ActionQuit
)

var actionNames = map[string]Action{
	"down":      ActionDown,
	"up":        ActionUp,
	"half_down": ActionHalfDown,
	"half_up":   ActionHalfUp,
	"page_down": ActionPageDown,
	"page_up":   ActionPageUp,
	"top":       ActionTop,
	"bottom":    ActionBottom,
	"reload":    ActionReload,
	"quit":      ActionQuit,
}

func (a Action) String() string {
	for name, action := range actionNames {
		if action == a {
			return name
		}
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction maps a config action name to an Action.
func ParseAction(name string) (Action, error) {
	if a, ok := actionNames[name]; ok {
		return a, nil
	}
	return 0, fmt.Errorf("pager: unknown action %q", name)
}

// BuildBindings turns action -> sequences into a resolver.
// 按动作名排序，保证重复绑定时报错信息稳定。
func BuildBindings(keys map[string][]string) (*keymap.Bindings[Action], error) {
	names := make([]string, 0, len(keys))
	for name := range keys {
		names = append(names, name)
	}
	sort.Strings(names)

	b := keymap.NewBuilder[Action]()
	for _, name := range names {
		action, err := ParseAction(name)
		if err != nil {
			return nil, err
		}
		for _, seq := range keys[name] {
			if _, err := b.AddString(seq, action); err != nil {
				return nil, fmt.Errorf("pager: binding %s: %w", name, err)
			}
		}
	}
	return b.Build(), nil
}
