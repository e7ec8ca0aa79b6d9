package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/rewind/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Command is one parsed document command.
type Command struct {
	Name string
	Args []string
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Commands understood by Document.Apply.
const (
	CmdSet     = "set"
	CmdUnset   = "unset"
	CmdAdd     = "add"
	CmdRemove  = "remove"
	CmdReset   = "reset"
	CmdUndo    = "undo"
	CmdRedo    = "redo"
	CmdUndoAll = "undo!"
	CmdRedoAll = "redo!"
	CmdTrack   = "track"
	CmdClear   = "clear"
	CmdMax     = "max"
)

// Parse splits a line into commands separated by ';'.
// Blank commands are skipped. The whole line is rejected if any command is
// malformed.
func Parse(line string) ([]Command, error) {
	return ParseCommands(strings.Split(line, ";"))
}

// ParseCommands parses each element as exactly one command, so a ';' inside
// an element is part of its arguments. Blank elements are skipped.
func ParseCommands(parts []string) ([]Command, error) {
	var cmds []Command
	for _, part := range parts {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		cmd := Command{Name: strings.ToLower(fields[0]), Args: fields[1:]}
		if err := validate(cmd); err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func invalid(cmd Command, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", domain.ErrInvalidCommand, cmd.Name, fmt.Sprintf(format, args...))
}

func validate(cmd Command) error {
	switch cmd.Name {
	case CmdSet:
		if len(cmd.Args) == 0 {
			return invalid(cmd, "expected key=value")
		}
		for _, arg := range cmd.Args {
			if k, _, ok := strings.Cut(arg, "="); !ok || k == "" {
				return invalid(cmd, "expected key=value, got %q", arg)
			}
		}
	case CmdUnset:
		if len(cmd.Args) == 0 {
			return invalid(cmd, "expected at least one key")
		}
	case CmdAdd:
		switch {
		case len(cmd.Args) == 1:
		case len(cmd.Args) == 3 && strings.EqualFold(cmd.Args[1], "at"):
			if _, err := strconv.Atoi(cmd.Args[2]); err != nil {
				return invalid(cmd, "position %q is not a number", cmd.Args[2])
			}
		default:
			return invalid(cmd, "expected: add ITEM [at N]")
		}
	case CmdRemove:
		if len(cmd.Args) != 1 {
			return invalid(cmd, "expected: remove ITEM")
		}
	case CmdReset:
		if len(cmd.Args) > 1 {
			return invalid(cmd, "expected: reset [a,b,c]")
		}
	case CmdUndo, CmdRedo, CmdUndoAll, CmdRedoAll, CmdClear:
		if len(cmd.Args) != 0 {
			return invalid(cmd, "takes no arguments")
		}
	case CmdTrack:
		if len(cmd.Args) != 1 || (cmd.Args[0] != "on" && cmd.Args[0] != "off") {
			return invalid(cmd, "expected: track on|off")
		}
	case CmdMax:
		if len(cmd.Args) != 1 {
			return invalid(cmd, "expected: max N")
		}
		if n, err := strconv.Atoi(cmd.Args[0]); err != nil || n < 0 {
			return invalid(cmd, "%q is not a non-negative number", cmd.Args[0])
		}
	default:
		return fmt.Errorf("%w: unknown command %q", domain.ErrInvalidCommand, cmd.Name)
	}
	return nil
}

// Result summarizes what a command line did to the history.
type Result struct {
	Applied int `json:"applied"`
	Undone  int `json:"undone"`
	Redone  int `json:"redone"`
}

// Exec parses line and applies it as one unit of work.
func (d *Document) Exec(line string) (Result, error) {
	cmds, err := Parse(line)
	if err != nil {
		return Result{}, err
	}
	return d.Apply(cmds...)
}

// Apply runs cmds as one unit of work. Commands applied before a failing
// one stay applied and belong to the same cycle.
func (d *Document) Apply(cmds ...Command) (Result, error) {
	var (
		res Result
		err error
	)
	d.Do(func() {
		for _, cmd := range cmds {
			if err = validate(cmd); err != nil {
				return
			}
			if err = d.apply(cmd, &res); err != nil {
				return
			}
			res.Applied++
		}
	})
	return res, err
}

func (d *Document) apply(cmd Command, res *Result) error {
	none := domain.Options{}
	m := d.History

	switch cmd.Name {
	case CmdSet:
		attrs := make(map[string]any, len(cmd.Args))
		for _, arg := range cmd.Args {
			k, v, _ := strings.Cut(arg, "=")
			attrs[k] = ParseValue(v)
		}
		d.Attrs.Set(attrs, none)
	case CmdUnset:
		attrs := make(map[string]any, len(cmd.Args))
		for _, k := range cmd.Args {
			attrs[k] = nil
		}
		d.Attrs.Set(attrs, none)
	case CmdAdd:
		opts := none
		if len(cmd.Args) == 3 {
			at, _ := strconv.Atoi(cmd.Args[2])
			opts.At = domain.Position(at)
		}
		if d.Items.Contains(cmd.Args[0]) {
			return invalid(cmd, "%q is already present", cmd.Args[0])
		}
		d.Items.Add(cmd.Args[0], opts)
	case CmdRemove:
		if !d.Items.Contains(cmd.Args[0]) {
			return invalid(cmd, "%q is not present", cmd.Args[0])
		}
		d.Items.Remove(cmd.Args[0], none)
	case CmdReset:
		var items []any
		if len(cmd.Args) == 1 {
			for _, item := range strings.Split(cmd.Args[0], ",") {
				if item != "" {
					items = append(items, item)
				}
			}
		}
		d.Items.Reset(items, none)
	case CmdUndo:
		if m.Undo() {
			res.Undone++
		}
	case CmdRedo:
		if m.Redo() {
			res.Redone++
		}
	case CmdUndoAll:
		res.Undone += m.UndoAll()
	case CmdRedoAll:
		res.Redone += m.RedoAll()
	case CmdTrack:
		if cmd.Args[0] == "on" {
			m.StartTracking()
		} else {
			m.StopTracking()
		}
	case CmdClear:
		m.Clear()
	case CmdMax:
		n, _ := strconv.Atoi(cmd.Args[0])
		m.SetMaxLength(n)
	}
	return nil
}

// ParseValue decodes a command value as a YAML scalar, so "3" is an int,
// "true" a bool and "null" removes the attribute. Anything that does not
// decode is kept as a string.
func ParseValue(s string) any {
	if s == "" {
		return s
	}
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	switch v.(type) {
	case map[string]any, []any:
		return s
	}
	return v
}
