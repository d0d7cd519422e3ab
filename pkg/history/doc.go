// Package history implements a bounded linear undo/redo stack.
//
// # Overview
//
// Every accepted change to a layout is wrapped in a [Command] and passed to
// [History.Execute], which applies it and pushes it onto the undo stack.
// [History.Undo] and [History.Redo] move commands between the two stacks,
// calling Undo and Execute respectively.
//
//	h := history.New(50)
//	h.Execute(cmd)  // applied, undo=[cmd], redo=[]
//	h.Undo()        // reverted, undo=[], redo=[cmd]
//	h.Redo()        // re-applied, undo=[cmd], redo=[]
//
// # Semantics
//
// Executing a new command clears the redo stack. Both stacks hold at most
// MaxDepth commands; once the limit is exceeded the oldest command is
// dropped and can no longer be undone. Undo and Redo on an empty stack
// return false and do nothing.
//
// # Commands
//
// The history never inspects the state a command changes. A command's Undo
// must exactly reverse its Execute given the same starting state, and
// Execute must be repeatable after Undo. Commands are replayed without any
// validation, so they must only be created from changes that were already
// accepted.
//
// # Concurrency
//
// A History is not safe for concurrent use. It is meant to be owned by a
// single editor that serializes all calls.
package history
