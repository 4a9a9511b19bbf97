package script

import (
	"errors"
	"fmt"

	"github.com/rut-editor/rut/internal/engine"
	"github.com/rut-editor/rut/internal/engine/cursor"
	"github.com/rut-editor/rut/internal/engine/history"
	"github.com/rut-editor/rut/internal/engine/intent"
	"github.com/rut-editor/rut/internal/logging"
)

// Stats counts what a run did.
type Stats struct {
	Commands     int // commands executed
	Transactions int // undo steps recorded, undone or redone
	Skipped      int // recoverable no-ops: empty history, cursor collisions
}

// Executor runs scripts against a session.
type Executor struct {
	session *engine.Session
	log     *logging.Logger
	stats   Stats
}

// NewExecutor returns an executor for s. A nil logger discards output.
func NewExecutor(s *engine.Session, log *logging.Logger) *Executor {
	if log == nil {
		log = logging.Null()
	}
	return &Executor{session: s, log: log.WithComponent("script")}
}

// Stats returns the counts accumulated so far.
func (x *Executor) Stats() Stats {
	return x.stats
}

// Run executes every command in order and stops at the first failure,
// returned as an *ExecError. Undo or redo with an empty history and
// adding a cursor where one already is are logged and skipped. A group
// still open at the end is closed.
func (x *Executor) Run(sc *Script) error {
	defer x.session.EndGroup()
	for _, cmd := range sc.Commands {
		if err := x.Exec(cmd); err != nil {
			return err
		}
	}
	return nil
}

// Exec executes one command.
func (x *Executor) Exec(cmd Command) error {
	x.stats.Commands++
	err := x.exec(cmd)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, history.ErrEmpty), errors.Is(err, cursor.ErrCursorCollision):
		x.stats.Skipped++
		x.log.Info("line %d: %s skipped: %v", cmd.Line, cmd, err)
		return nil
	}
	return &ExecError{Line: cmd.Line, Command: cmd.String(), Err: err}
}

func (x *Executor) exec(cmd Command) error {
	s := x.session
	switch cmd.Kind {
	case Insert:
		return x.apply(intent.InsertText{Text: cmd.Text})
	case Backspace:
		return x.apply(intent.DeleteBackward{Count: int(cmd.N)})
	case Delete:
		return x.apply(intent.DeleteForward{Count: int(cmd.N)})
	case Replace:
		return x.apply(intent.ReplaceRange(cmd.N, cmd.M, cmd.Text))
	case CursorAdd:
		return s.AddCursorAt(cmd.N)
	case CursorBelow:
		return s.AddCursorBelow()
	case CursorAbove:
		return s.AddCursorAbove()
	case CursorClear:
		s.ClearSecondary()
		return nil
	case Select:
		return s.Select(cmd.N, cmd.M)
	case Move:
		s.MoveCursors(cmd.Dir, int(cmd.N), cmd.Extend)
		return nil
	case Undo:
		return x.track(s.Undo())
	case Redo:
		return x.track(s.Redo())
	case GroupBegin:
		s.BeginGroup(cmd.Text)
		return nil
	case GroupEnd:
		if res := s.EndGroup(); res.Changed {
			x.log.Debug("line %d: group %q closed with %d edits", cmd.Line, res.Description, res.Edits)
		}
		return nil
	case ReplaceAll:
		return x.replaceAll(cmd)
	case Save:
		return s.Save()
	}
	return fmt.Errorf("unsupported command %v", cmd.Kind)
}

func (x *Executor) apply(in intent.EditIntent) error {
	return x.track(x.session.ApplyIntent(in))
}

func (x *Executor) track(res engine.TransactionResult, err error) error {
	if err == nil && res.Changed {
		x.stats.Transactions++
	}
	return err
}

func (x *Executor) replaceAll(cmd Command) error {
	br, err := x.session.NewBulkReplace(cmd.Text, cmd.Replacement, int(cmd.N))
	if err != nil {
		return err
	}
	for !br.Done() {
		if err := x.track(br.Step()); err != nil {
			return err
		}
	}
	x.log.Debug("line %d: replaced %d occurrences of %q", cmd.Line, br.Replaced(), cmd.Text)
	return nil
}
