package observability

import (
	"github.com/aretw0/rewind/pkg/domain"
)

// MultiHooks chains several hook sets. Each event is delivered to every set,
// in the order given.
func MultiHooks(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCapture: func(e *domain.ActionEvent) {
			for _, s := range sets {
				if s.OnCapture != nil {
					s.OnCapture(e)
				}
			}
		},
		OnEvict: func(e *domain.ActionEvent) {
			for _, s := range sets {
				if s.OnEvict != nil {
					s.OnEvict(e)
				}
			}
		},
		OnUndo: func(e *domain.CycleEvent) {
			for _, s := range sets {
				if s.OnUndo != nil {
					s.OnUndo(e)
				}
			}
		},
		OnRedo: func(e *domain.CycleEvent) {
			for _, s := range sets {
				if s.OnRedo != nil {
					s.OnRedo(e)
				}
			}
		},
		OnClear: func(e *domain.StackEvent) {
			for _, s := range sets {
				if s.OnClear != nil {
					s.OnClear(e)
				}
			}
		},
		OnMerge: func(e *domain.StackEvent) {
			for _, s := range sets {
				if s.OnMerge != nil {
					s.OnMerge(e)
				}
			}
		},
	}
}

func kindsOf(actions []*domain.Action) []string {
	var kinds []string
	seen := make(map[string]bool)
	for _, a := range actions {
		if !seen[a.Kind] {
			seen[a.Kind] = true
			kinds = append(kinds, a.Kind)
		}
	}
	return kinds
}
