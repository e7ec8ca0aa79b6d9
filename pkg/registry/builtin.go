package registry

import (
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/ports"
)

// Builtins returns a fresh copy of the built-in handlers.
//
// Notification arguments, after the kind:
//
//	add:    item, ports.Collection, domain.Options
//	remove: item, ports.Collection, domain.Options
//	change: ports.Model, domain.Options
//	reset:  ports.Collection, domain.Options (Previous holds the old membership)
//
// Notifications with other argument types are not captured.
func Builtins() map[string]domain.Handler {
	return map[string]domain.Handler{
		domain.KindAdd: {
			Capture: func(args ...any) (domain.Payload, bool) {
				item, coll, opts, ok := membershipArgs(args)
				if !ok {
					return domain.Payload{}, false
				}
				return domain.Payload{Subject: coll, After: item, Options: opts}, true
			},
			Undo: func(a *domain.Action) {
				a.Subject.(ports.Collection).Remove(a.After, a.Options.Clone())
			},
			Redo: func(a *domain.Action) {
				a.Subject.(ports.Collection).Add(a.After, a.Options.AtIndex())
			},
		},
		domain.KindRemove: {
			Capture: func(args ...any) (domain.Payload, bool) {
				item, coll, opts, ok := membershipArgs(args)
				if !ok {
					return domain.Payload{}, false
				}
				return domain.Payload{Subject: coll, Before: item, Options: opts}, true
			},
			Undo: func(a *domain.Action) {
				a.Subject.(ports.Collection).Add(a.Before, a.Options.AtIndex())
			},
			Redo: func(a *domain.Action) {
				a.Subject.(ports.Collection).Remove(a.Before, a.Options.Clone())
			},
		},
		domain.KindChange: {
			Capture: func(args ...any) (domain.Payload, bool) {
				if len(args) == 0 {
					return domain.Payload{}, false
				}
				model, ok := args[0].(ports.Model)
				if !ok {
					return domain.Payload{}, false
				}
				changed := model.ChangedAttributes()
				if len(changed) == 0 {
					return domain.Payload{}, false
				}
				previous := model.PreviousAttributes()
				before := make(map[string]any)
				for k := range changed {
					if v, existed := previous[k]; existed {
						before[k] = v
					}
				}
				return domain.Payload{
					Subject: model,
					Before:  before,
					After:   domain.CopyAttributes(changed),
					Options: optionsAt(args, 1),
				}, true
			},
			Undo: func(a *domain.Action) {
				applyAttributes(a.Subject.(ports.Model), attrs(a.Before), attrs(a.After), a.Options)
			},
			Redo: func(a *domain.Action) {
				applyAttributes(a.Subject.(ports.Model), attrs(a.After), attrs(a.Before), a.Options)
			},
		},
		domain.KindReset: {
			Capture: func(args ...any) (domain.Payload, bool) {
				if len(args) == 0 {
					return domain.Payload{}, false
				}
				coll, ok := args[0].(ports.Collection)
				if !ok {
					return domain.Payload{}, false
				}
				opts := optionsAt(args, 1)
				return domain.Payload{
					Subject: coll,
					Before:  append([]any{}, opts.Previous...),
					After:   append([]any{}, coll.Items()...),
					Options: opts,
				}, true
			},
			Undo: func(a *domain.Action) {
				a.Subject.(ports.Collection).Reset(items(a.Before), domain.Options{})
			},
			Redo: func(a *domain.Action) {
				a.Subject.(ports.Collection).Reset(items(a.After), domain.Options{})
			},
		},
	}
}

func membershipArgs(args []any) (any, ports.Collection, domain.Options, bool) {
	if len(args) < 2 {
		return nil, nil, domain.Options{}, false
	}
	coll, ok := args[1].(ports.Collection)
	if !ok {
		return nil, nil, domain.Options{}, false
	}
	return args[0], coll, optionsAt(args, 2), true
}

func optionsAt(args []any, i int) domain.Options {
	if len(args) > i {
		switch o := args[i].(type) {
		case domain.Options:
			return o.Clone()
		case *domain.Options:
			if o != nil {
				return o.Clone()
			}
		}
	}
	return domain.Options{}
}

// applyAttributes moves a model to target. Keys only present in other did not
// exist in target's state and are removed.
func applyAttributes(m ports.Model, target, other map[string]any, opts domain.Options) {
	if len(target) == 0 {
		for k := range other {
			m.Unset(k, opts.Clone())
		}
		return
	}

	next := domain.CopyAttributes(target)
	for k := range other {
		if _, ok := next[k]; !ok {
			next[k] = nil
		}
	}
	m.Set(next, opts.Clone())
}

func attrs(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func items(v any) []any {
	s, _ := v.([]any)
	return append([]any{}, s...)
}
