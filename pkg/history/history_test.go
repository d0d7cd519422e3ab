package history

import (
	"fmt"
	"slices"
	"testing"
)

// counter is a toy model mutated by addCmd.
type counter struct{ value int }

type addCmd struct {
	c *counter
	n int
}

func (a addCmd) Execute()            { a.c.value += a.n }
func (a addCmd) Undo()               { a.c.value -= a.n }
func (a addCmd) Description() string { return fmt.Sprintf("add %d", a.n) }

func descriptions(cmds []Command) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.Description()
	}
	return out
}

func TestExecuteUndoRedoRoundTrip(t *testing.T) {
	c := &counter{}
	h := New(10)

	h.Execute(addCmd{c, 5})
	after := c.value

	if !h.Undo() {
		t.Fatal("Undo() = false after Execute")
	}
	if c.value != 0 {
		t.Errorf("value after undo = %d, want 0", c.value)
	}
	if !h.Redo() {
		t.Fatal("Redo() = false after Undo")
	}
	if c.value != after {
		t.Errorf("value after redo = %d, want %d", c.value, after)
	}
}

func TestUnderflow(t *testing.T) {
	h := New(3)
	if h.Undo() {
		t.Error("Undo() on empty history = true")
	}
	if h.Redo() {
		t.Error("Redo() on empty history = true")
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("empty history reports available actions")
	}
	if h.UndoDescription() != "" || h.RedoDescription() != "" {
		t.Error("empty history has descriptions")
	}
}

func TestBoundedDepth(t *testing.T) {
	const n = 5
	c := &counter{}
	h := New(n)

	for i := 1; i <= n+1; i++ {
		h.Execute(addCmd{c, i})
	}

	undos := h.Undos()
	if len(undos) != n {
		t.Fatalf("len(Undos()) = %d, want %d", len(undos), n)
	}
	if want := []string{"add 2", "add 3", "add 4", "add 5", "add 6"}; !slices.Equal(descriptions(undos), want) {
		t.Errorf("Undos() = %v, want %v", descriptions(undos), want)
	}

	undone := 0
	for h.Undo() {
		undone++
	}
	if undone != n {
		t.Errorf("undid %d commands, want %d", undone, n)
	}
	// The first command was evicted and stays applied.
	if c.value != 1 {
		t.Errorf("value = %d, want 1", c.value)
	}
}

func TestExecuteClearsRedo(t *testing.T) {
	c := &counter{}
	h := New(10)

	h.Execute(addCmd{c, 1})
	h.Execute(addCmd{c, 2})
	h.Undo()
	if !h.CanRedo() {
		t.Fatal("CanRedo() = false after Undo")
	}

	h.Execute(addCmd{c, 10})
	if h.CanRedo() {
		t.Error("new command did not clear redo stack")
	}
	if h.Redo() {
		t.Error("Redo() = true after redo stack was cleared")
	}
	if c.value != 11 {
		t.Errorf("value = %d, want 11", c.value)
	}
}

func TestStackOrder(t *testing.T) {
	c := &counter{}
	h := New(10)
	for i := 1; i <= 3; i++ {
		h.Execute(addCmd{c, i})
	}

	if got := h.UndoDescription(); got != "add 3" {
		t.Errorf("UndoDescription() = %q, want %q", got, "add 3")
	}
	h.Undo()
	h.Undo()
	if got := h.UndoDescription(); got != "add 1" {
		t.Errorf("UndoDescription() = %q, want %q", got, "add 1")
	}
	if got := h.RedoDescription(); got != "add 2" {
		t.Errorf("RedoDescription() = %q, want %q", got, "add 2")
	}
	if want := []string{"add 3", "add 2"}; !slices.Equal(descriptions(h.Redos()), want) {
		t.Errorf("Redos() = %v, want %v", descriptions(h.Redos()), want)
	}
}

func TestClear(t *testing.T) {
	c := &counter{}
	h := New(10)
	h.Execute(addCmd{c, 1})
	h.Execute(addCmd{c, 2})
	h.Undo()

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("Clear() left commands behind")
	}
	if c.value != 1 {
		t.Errorf("Clear() changed state: value = %d", c.value)
	}
}

func TestRestore(t *testing.T) {
	c := &counter{value: 3}
	h := New(2)
	h.Restore(
		[]Command{addCmd{c, 1}, addCmd{c, 2}, addCmd{c, 3}},
		[]Command{addCmd{c, 4}},
	)
	if c.value != 3 {
		t.Fatalf("Restore() executed commands: value = %d", c.value)
	}
	if want := []string{"add 2", "add 3"}; !slices.Equal(descriptions(h.Undos()), want) {
		t.Errorf("Undos() = %v, want %v", descriptions(h.Undos()), want)
	}
	h.Redo()
	if c.value != 7 {
		t.Errorf("value after redo = %d, want 7", c.value)
	}
}

func TestNewDefaultDepth(t *testing.T) {
	for _, d := range []int{0, -4} {
		if got := New(d).MaxDepth(); got != DefaultMaxDepth {
			t.Errorf("New(%d).MaxDepth() = %d, want %d", d, got, DefaultMaxDepth)
		}
	}
}

func TestStackWraps(t *testing.T) {
	s := newStack[int](3)
	for i := 1; i <= 7; i++ {
		s.push(i)
	}
	if got := s.slice(); !slices.Equal(got, []int{5, 6, 7}) {
		t.Fatalf("slice() = %v", got)
	}
	for _, want := range []int{7, 6, 5} {
		if v, ok := s.pop(); !ok || v != want {
			t.Fatalf("pop() = (%d, %v), want %d", v, ok, want)
		}
	}
	if _, ok := s.pop(); ok {
		t.Error("pop() on empty stack succeeded")
	}
	s.push(9)
	if v, _ := s.peek(); v != 9 {
		t.Errorf("peek() = %d, want 9", v)
	}
}
