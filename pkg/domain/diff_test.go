package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffAttributes(t *testing.T) {
	tests := []struct {
		name         string
		current      map[string]any
		incoming     map[string]any
		wantChanged  map[string]any
		wantPrevious map[string]any
	}{
		{
			name:     "No Changes",
			current:  map[string]any{"t": 1},
			incoming: map[string]any{"t": 1},
		},
		{
			name:         "Modified Key",
			current:      map[string]any{"t": 1},
			incoming:     map[string]any{"t": 2},
			wantChanged:  map[string]any{"t": 2},
			wantPrevious: map[string]any{"t": 1},
		},
		{
			name:         "New Key Has No Previous",
			current:      map[string]any{"t": 1},
			incoming:     map[string]any{"u": "x"},
			wantChanged:  map[string]any{"u": "x"},
			wantPrevious: map[string]any{},
		},
		{
			name:         "Deletion Of Existing Key",
			current:      map[string]any{"t": 1},
			incoming:     map[string]any{"t": nil},
			wantChanged:  map[string]any{"t": nil},
			wantPrevious: map[string]any{"t": 1},
		},
		{
			name:     "Deletion Of Missing Key",
			current:  map[string]any{"t": 1},
			incoming: map[string]any{"u": nil},
		},
		{
			name:         "Deep Values",
			current:      map[string]any{"tags": []string{"a"}},
			incoming:     map[string]any{"tags": []string{"a", "b"}},
			wantChanged:  map[string]any{"tags": []string{"a", "b"}},
			wantPrevious: map[string]any{"tags": []string{"a"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed, previous := DiffAttributes(tt.current, tt.incoming)
			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, tt.wantPrevious, previous)
		})
	}
}

func TestCopyAttributes(t *testing.T) {
	assert.Nil(t, CopyAttributes(nil))
	assert.Nil(t, CopyAttributes(map[string]any{}))

	src := map[string]any{"a": 1}
	cp := CopyAttributes(src)
	cp["a"] = 2
	assert.Equal(t, 1, src["a"])
}
