package cli

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/aretw0/rewind/pkg/session"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrExpectationFailed is returned when a script step does not leave the
// document in the expected state.
var ErrExpectationFailed = errors.New("expectation failed")

// Script is a sequence of steps replayed against one document.
//
//	name: shopping
//	steps:
//	  - run: ["add milk", "add eggs"]
//	    expect: {items: [milk, eggs], length: 2}
//	  - run: undo
//	    expect: {items: [], pointer: -1}
type Script struct {
	Name  string `mapstructure:"name"`
	Steps []Step `mapstructure:"steps"`
}

// Step runs its commands as one unit of work, then checks Expect.
type Step struct {
	Name   string       `mapstructure:"name"`
	Run    []string     `mapstructure:"run"`
	Expect *Expectation `mapstructure:"expect"`
}

// Expectation lists the checks of a step. Unset fields are not checked.
type Expectation struct {
	Attrs    map[string]any `mapstructure:"attrs"`
	Items    []any          `mapstructure:"items"`
	Length   *int           `mapstructure:"length"`
	Pointer  *int           `mapstructure:"pointer"`
	Undoable *bool          `mapstructure:"undoable"`
	Redoable *bool          `mapstructure:"redoable"`
}

// ParseScript decodes a YAML script.
// "run" may be a single string or a list.
func ParseScript(r io.Reader) (*Script, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}

	var script Script
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &script,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	return &script, nil
}

// RunScript applies every step to doc and stops at the first failure.
// Progress is written to out.
func RunScript(script *Script, doc *session.Document, out io.Writer) error {
	for i, step := range script.Steps {
		label := step.Name
		if label == "" {
			label = fmt.Sprintf("step %d", i+1)
		}

		cmds, err := session.Parse(strings.Join(step.Run, ";"))
		if err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
		if _, err := doc.Apply(cmds...); err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}

		if step.Expect != nil {
			if problems := step.Expect.check(doc); len(problems) > 0 {
				return fmt.Errorf("%s: %w: %s", label, ErrExpectationFailed, strings.Join(problems, "; "))
			}
		}
		fmt.Fprintf(out, "ok   %s\n", label)
	}
	printSystemMessage(out, "%d steps passed.", len(script.Steps))
	return nil
}

func (e *Expectation) check(doc *session.Document) []string {
	var problems []string
	mismatch := func(what string, want, got any) {
		problems = append(problems, fmt.Sprintf("%s: want %v, got %v", what, want, got))
	}

	if e.Attrs != nil {
		if got := doc.Attrs.Attributes(); !reflect.DeepEqual(normalize(e.Attrs), normalize(got)) {
			mismatch("attrs", e.Attrs, got)
		}
	}
	if e.Items != nil {
		want := make([]string, len(e.Items))
		for i, item := range e.Items {
			want[i] = fmt.Sprint(item)
		}
		got := make([]string, 0, doc.Items.Len())
		for _, item := range doc.Items.Items() {
			got = append(got, fmt.Sprint(item))
		}
		if !reflect.DeepEqual(want, got) {
			mismatch("items", want, got)
		}
	}

	h := doc.History
	if e.Length != nil && *e.Length != h.Len() {
		mismatch("length", *e.Length, h.Len())
	}
	if e.Pointer != nil && *e.Pointer != h.Pointer() {
		mismatch("pointer", *e.Pointer, h.Pointer())
	}
	if e.Undoable != nil && *e.Undoable != h.IsUndoable() {
		mismatch("undoable", *e.Undoable, h.IsUndoable())
	}
	if e.Redoable != nil && *e.Redoable != h.IsRedoable() {
		mismatch("redoable", *e.Redoable, h.IsRedoable())
	}
	return problems
}

// normalize compares attribute values by their printed form, so a script's
// 3 matches a document's 3 whatever numeric type either decoded to.
func normalize(attrs map[string]any) map[string]string {
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = fmt.Sprint(v)
	}
	return out
}
