package script

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rut-editor/rut/internal/engine/cursor"
)

// Kind identifies a script command.
type Kind uint8

const (
	Insert Kind = iota
	Backspace
	Delete
	Replace
	CursorAdd
	CursorBelow
	CursorAbove
	CursorClear
	Select
	Move
	Undo
	Redo
	GroupBegin
	GroupEnd
	ReplaceAll
	Save
)

var kindNames = [...]string{
	Insert:      "insert",
	Backspace:   "backspace",
	Delete:      "delete",
	Replace:     "replace",
	CursorAdd:   "cursor add",
	CursorBelow: "cursor below",
	CursorAbove: "cursor above",
	CursorClear: "cursor clear",
	Select:      "select",
	Move:        "move",
	Undo:        "undo",
	Redo:        "redo",
	GroupBegin:  "group begin",
	GroupEnd:    "group end",
	ReplaceAll:  "replaceall",
	Save:        "save",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Command is one parsed script line. Which fields are set depends on Kind:
//
//	insert "text"                    Text
//	backspace [n], delete [n]        N (default 1)
//	replace START END "text"         N, M, Text
//	cursor add OFFSET                N
//	select ANCHOR HEAD               N, M
//	move DIR [n] [extend]            Dir, N (default 1), Extend
//	group begin ["name"]             Text (default "group")
//	replaceall "find" "repl" [batch] Text, Replacement, N (default 0)
type Command struct {
	Line        int
	Kind        Kind
	Text        string
	Replacement string
	N, M        int64
	Dir         cursor.Direction
	Extend      bool
}

func (c Command) String() string {
	switch c.Kind {
	case Insert:
		return fmt.Sprintf("insert %q", c.Text)
	case Backspace, Delete, CursorAdd:
		return fmt.Sprintf("%s %d", c.Kind, c.N)
	case Replace:
		return fmt.Sprintf("replace %d %d %q", c.N, c.M, c.Text)
	case Select:
		return fmt.Sprintf("select %d %d", c.N, c.M)
	case Move:
		s := fmt.Sprintf("move %s %d", c.Dir, c.N)
		if c.Extend {
			s += " extend"
		}
		return s
	case GroupBegin:
		return fmt.Sprintf("group begin %q", c.Text)
	case ReplaceAll:
		return fmt.Sprintf("replaceall %q %q %d", c.Text, c.Replacement, c.N)
	}
	return c.Kind.String()
}

// Script is a parsed edit script.
type Script struct {
	Name     string
	Commands []Command
}

// Parse parses src. name is used in error positions and may be empty.
func Parse(name, src string) (*Script, error) {
	f, err := parse(name, src)
	if err != nil {
		return nil, err
	}
	sc := &Script{Name: name, Commands: make([]Command, 0, len(f.Lines))}
	for _, l := range f.Lines {
		cmd, err := compile(l)
		if err != nil {
			return nil, err
		}
		sc.Commands = append(sc.Commands, cmd)
	}
	return sc, nil
}

func compile(l *line) (Command, error) {
	a := &args{line: l}
	cmd := Command{Line: l.Pos.Line}
	var err error

	switch strings.ToLower(l.Name) {
	case "insert":
		cmd.Kind = Insert
		cmd.Text, err = a.str("text")
	case "backspace", "delete":
		cmd.Kind = Backspace
		if strings.EqualFold(l.Name, "delete") {
			cmd.Kind = Delete
		}
		cmd.N, err = a.optInt(1)
	case "replace":
		cmd.Kind = Replace
		err = a.all(a.intTo(&cmd.N, "start"), a.intTo(&cmd.M, "end"), a.strTo(&cmd.Text, "text"))
	case "cursor":
		var sub string
		if sub, err = a.word("cursor command"); err != nil {
			break
		}
		switch strings.ToLower(sub) {
		case "add":
			cmd.Kind = CursorAdd
			cmd.N, err = a.integer("offset")
		case "below":
			cmd.Kind = CursorBelow
		case "above":
			cmd.Kind = CursorAbove
		case "clear":
			cmd.Kind = CursorClear
		default:
			err = a.errorf("unknown cursor command %q", sub)
		}
	case "select":
		cmd.Kind = Select
		err = a.all(a.intTo(&cmd.N, "anchor"), a.intTo(&cmd.M, "head"))
	case "move":
		cmd.Kind = Move
		var dir string
		if dir, err = a.word("direction"); err != nil {
			break
		}
		if cmd.Dir, err = cursor.ParseDirection(dir); err != nil {
			err = a.errorf("%v", err)
			break
		}
		if cmd.N, err = a.optInt(1); err != nil {
			break
		}
		cmd.Extend = a.optWord("extend")
	case "undo":
		cmd.Kind = Undo
	case "redo":
		cmd.Kind = Redo
	case "group":
		var sub string
		if sub, err = a.word("group command"); err != nil {
			break
		}
		switch strings.ToLower(sub) {
		case "begin":
			cmd.Kind = GroupBegin
			cmd.Text = a.optStr("group")
		case "end":
			cmd.Kind = GroupEnd
		default:
			err = a.errorf("unknown group command %q", sub)
		}
	case "replaceall":
		cmd.Kind = ReplaceAll
		err = a.all(a.strTo(&cmd.Text, "search text"), a.strTo(&cmd.Replacement, "replacement"))
		if err == nil {
			cmd.N, err = a.optInt(0)
		}
	case "save":
		cmd.Kind = Save
	default:
		return cmd, &ParseError{Line: l.Pos.Line, Column: l.Pos.Column, Msg: fmt.Sprintf("unknown command %q", l.Name)}
	}

	if err == nil {
		err = a.done()
	}
	return cmd, err
}

// args consumes a line's arguments in order.
type args struct {
	line *line
	i    int
}

func (a *args) peek() *arg {
	if a.i < len(a.line.Args) {
		return a.line.Args[a.i]
	}
	return nil
}

func (a *args) errorf(format string, v ...any) error {
	pos := a.line.Pos
	if p := a.peek(); p != nil {
		pos = p.Pos
	} else if a.i > 0 {
		pos = a.line.Args[a.i-1].Pos
	}
	return &ParseError{Line: pos.Line, Column: pos.Column, Msg: a.line.Name + ": " + fmt.Sprintf(format, v...)}
}

func (a *args) str(what string) (string, error) {
	p := a.peek()
	if p == nil || p.String == nil {
		return "", a.errorf("expected quoted %s", what)
	}
	a.i++
	return *p.String, nil
}

func (a *args) integer(what string) (int64, error) {
	p := a.peek()
	if p == nil || p.Int == nil {
		return 0, a.errorf("expected %s", what)
	}
	a.i++
	return *p.Int, nil
}

func (a *args) word(what string) (string, error) {
	p := a.peek()
	if p == nil || p.Word == nil {
		return "", a.errorf("expected %s", what)
	}
	a.i++
	return *p.Word, nil
}

func (a *args) optInt(def int64) (int64, error) {
	p := a.peek()
	if p == nil || p.Int == nil {
		return def, nil
	}
	a.i++
	if *p.Int < 1 {
		return 0, a.errorf("count must be positive, got %s", strconv.FormatInt(*p.Int, 10))
	}
	return *p.Int, nil
}

func (a *args) optStr(def string) string {
	if p := a.peek(); p != nil && p.String != nil {
		a.i++
		return *p.String
	}
	return def
}

func (a *args) optWord(w string) bool {
	if p := a.peek(); p != nil && p.Word != nil && strings.EqualFold(*p.Word, w) {
		a.i++
		return true
	}
	return false
}

// intTo and strTo defer a required read so several can be chained
// through all in argument order.
func (a *args) intTo(dst *int64, what string) func() error {
	return func() (err error) {
		*dst, err = a.integer(what)
		return err
	}
}

func (a *args) strTo(dst *string, what string) func() error {
	return func() (err error) {
		*dst, err = a.str(what)
		return err
	}
}

func (a *args) all(reads ...func() error) error {
	for _, read := range reads {
		if err := read(); err != nil {
			return err
		}
	}
	return nil
}

func (a *args) done() error {
	if a.peek() != nil {
		return a.errorf("unexpected argument")
	}
	return nil
}
