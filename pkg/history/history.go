package history

// DefaultMaxDepth is the number of commands kept on each stack when New is
// given a non-positive depth.
const DefaultMaxDepth = 50

// Command is one reversible user action.
type Command interface {
	// Execute applies the action. It is called once by History.Execute and
	// again on every redo.
	Execute()
	// Undo reverses exactly what Execute did.
	Undo()
	// Description is a short human readable summary, e.g. "Place server-2u".
	Description() string
}

// History holds the undo and redo stacks.
type History struct {
	undo     *stack[Command]
	redo     *stack[Command]
	maxDepth int
}

// New creates an empty history keeping at most maxDepth commands per stack.
func New(maxDepth int) *History {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &History{
		undo:     newStack[Command](maxDepth),
		redo:     newStack[Command](maxDepth),
		maxDepth: maxDepth,
	}
}

// MaxDepth returns the stack capacity.
func (h *History) MaxDepth() int { return h.maxDepth }

// Execute applies cmd, records it for undo and discards any redo history.
// When the undo stack is full the oldest command is dropped.
func (h *History) Execute(cmd Command) {
	cmd.Execute()
	h.undo.push(cmd)
	h.redo.clear()
}

// Undo reverts the most recent command. It returns false if there is
// nothing to undo.
func (h *History) Undo() bool {
	cmd, ok := h.undo.pop()
	if !ok {
		return false
	}
	cmd.Undo()
	h.redo.push(cmd)
	return true
}

// Redo re-applies the most recently undone command. It returns false if
// there is nothing to redo.
func (h *History) Redo() bool {
	cmd, ok := h.redo.pop()
	if !ok {
		return false
	}
	cmd.Execute()
	h.undo.push(cmd)
	return true
}

// Clear empties both stacks without touching any state.
func (h *History) Clear() {
	h.undo.clear()
	h.redo.clear()
}

// CanUndo reports whether Undo would do anything.
func (h *History) CanUndo() bool { return h.undo.len() > 0 }

// CanRedo reports whether Redo would do anything.
func (h *History) CanRedo() bool { return h.redo.len() > 0 }

// UndoDescription describes the command Undo would revert, or "".
func (h *History) UndoDescription() string {
	if cmd, ok := h.undo.peek(); ok {
		return cmd.Description()
	}
	return ""
}

// RedoDescription describes the command Redo would re-apply, or "".
func (h *History) RedoDescription() string {
	if cmd, ok := h.redo.peek(); ok {
		return cmd.Description()
	}
	return ""
}

// Undos returns the undo stack, oldest first. The last element is the next
// command Undo would revert.
func (h *History) Undos() []Command { return h.undo.slice() }

// Redos returns the redo stack, oldest first. The last element is the next
// command Redo would re-apply.
func (h *History) Redos() []Command { return h.redo.slice() }

// Restore replaces both stacks without executing anything. The slices are
// ordered as returned by Undos and Redos; if either is longer than MaxDepth
// only the newest commands are kept. It is used to resume a history whose
// commands were already applied to the current state.
func (h *History) Restore(undos, redos []Command) {
	h.Clear()
	for _, c := range undos {
		h.undo.push(c)
	}
	for _, c := range redos {
		h.redo.push(c)
	}
}
