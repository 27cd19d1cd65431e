package session

import (
	"testing"

	"github.com/frexsdev/noq/internal/lexer"
	"github.com/frexsdev/noq/internal/parser"
)

// process lexes, parses, and runs a single command line against sess.
func process(t *testing.T, sess *Session, line string) (string, error) {
	t.Helper()
	p := parser.New(lexer.NewTokenStream(lexer.New(line, "")))
	cmd, err := p.ParseCommand()
	if err != nil {
		t.Fatalf("ParseCommand(%q): %v", line, err)
	}
	return sess.Process(cmd)
}

func TestDefineShapeApplyDone(t *testing.T) {
	sess := New()

	if _, err := process(t, sess, "rule comm a + b = b + a"); err != nil {
		t.Fatalf("define rule: %v", err)
	}
	out, err := process(t, sess, "shape a + b")
	if err != nil {
		t.Fatalf("shape: %v", err)
	}
	if out != " => a + b" {
		t.Errorf("shape output = %q", out)
	}

	out, err = process(t, sess, "apply all comm")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if out != " => b + a" {
		t.Errorf("apply output = %q, want ' => b + a'", out)
	}

	if sess.Current == nil || (*sess.Current).String() != "b + a" {
		t.Errorf("Current = %v, want b + a", sess.Current)
	}

	if _, err := process(t, sess, "done"); err != nil {
		t.Fatalf("done: %v", err)
	}
	if sess.Current != nil {
		t.Error("Current should be nil after done")
	}
}

func TestRedefiningRuleFails(t *testing.T) {
	sess := New()
	if _, err := process(t, sess, "rule comm a + b = b + a"); err != nil {
		t.Fatalf("define rule: %v", err)
	}
	if _, err := process(t, sess, "rule comm a * b = b * a"); err == nil {
		t.Error("expected error redefining an existing rule")
	}
}

func TestRedefiningReplaceFails(t *testing.T) {
	sess := New()
	if _, err := process(t, sess, "rule replace a = a"); err == nil {
		t.Error("expected error redefining the builtin replace rule")
	}
}

func TestApplyWithoutShapingFails(t *testing.T) {
	sess := New()
	if _, err := process(t, sess, "rule comm a + b = b + a"); err != nil {
		t.Fatalf("define rule: %v", err)
	}
	if _, err := process(t, sess, "apply all comm"); err == nil {
		t.Error("expected error applying without an active shape")
	}
}

func TestShapeWhileShapingFails(t *testing.T) {
	sess := New()
	if _, err := process(t, sess, "shape a + b"); err != nil {
		t.Fatalf("shape: %v", err)
	}
	if _, err := process(t, sess, "shape a * b"); err == nil {
		t.Error("expected error starting a second shape")
	}
}

func TestUndoReversesApply(t *testing.T) {
	sess := New()
	process(t, sess, "rule comm a + b = b + a")
	process(t, sess, "shape a + b")
	if _, err := process(t, sess, "apply all comm"); err != nil {
		t.Fatalf("apply: %v", err)
	}

	out, err := process(t, sess, "undo")
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if out != " => a + b" {
		t.Errorf("undo output = %q, want ' => a + b'", out)
	}
}

func TestUndoWithoutHistoryFails(t *testing.T) {
	sess := New()
	process(t, sess, "shape a + b")
	if _, err := process(t, sess, "undo"); err == nil {
		t.Error("expected error undoing with empty history")
	}
}

func TestUndoTwiceFails(t *testing.T) {
	sess := New()
	process(t, sess, "rule comm a + b = b + a")
	process(t, sess, "shape a + b")
	process(t, sess, "apply all comm")
	if _, err := process(t, sess, "undo"); err != nil {
		t.Fatalf("first undo: %v", err)
	}
	if _, err := process(t, sess, "undo"); err == nil {
		t.Error("expected second undo to fail with no history left")
	}
}

func TestApplyReversedNamedRule(t *testing.T) {
	sess := New()
	process(t, sess, "rule comm a + b = b + a")
	process(t, sess, "shape b + a")
	out, err := process(t, sess, "apply all reverse comm")
	if err != nil {
		t.Fatalf("apply reverse: %v", err)
	}
	if out != " => a + b" {
		t.Errorf("apply reverse output = %q, want ' => a + b'", out)
	}
}

func TestReverseOfReplaceFails(t *testing.T) {
	sess := New()
	process(t, sess, "shape a")
	if _, err := process(t, sess, "apply all reverse replace"); err == nil {
		t.Error("expected error reversing the irreversible builtin rule")
	}
}

func TestDeleteRule(t *testing.T) {
	sess := New()
	process(t, sess, "rule comm a + b = b + a")
	if _, err := process(t, sess, "delete comm"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := process(t, sess, "delete comm"); err == nil {
		t.Error("expected error deleting a rule that no longer exists")
	}
}

func TestQuitSetsFlag(t *testing.T) {
	sess := New()
	if _, err := process(t, sess, "quit"); err != nil {
		t.Fatalf("quit: %v", err)
	}
	if !sess.Quit {
		t.Error("expected Quit to be true")
	}
}
