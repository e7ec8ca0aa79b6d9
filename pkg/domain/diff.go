package domain

import (
	"reflect"
)

// DiffAttributes compares incoming attributes against the current ones.
//
// changed holds every incoming key whose value differs from current. A nil
// incoming value means deletion and only counts when the key exists.
// previous holds the current value of each changed key that existed before;
// keys that are new are absent from it.
//
// Both maps are nil when nothing changed.
func DiffAttributes(current, incoming map[string]any) (changed, previous map[string]any) {
	for k, newVal := range incoming {
		oldVal, exists := current[k]
		switch {
		case newVal == nil && !exists:
			continue
		case exists && reflect.DeepEqual(oldVal, newVal):
			continue
		}

		if changed == nil {
			changed = make(map[string]any)
			previous = make(map[string]any)
		}
		changed[k] = newVal
		if exists {
			previous[k] = oldVal
		}
	}
	return changed, previous
}

// CopyAttributes returns a shallow copy of attrs, or nil for an empty map.
func CopyAttributes(attrs map[string]any) map[string]any {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}
