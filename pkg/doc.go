// Package pkg provides the core libraries behind Rackula, a rack layout
// planner.
//
// # Overview
//
// A layout is one rack enclosure plus the catalog of device types its
// devices reference. The libraries are organized in layers:
//
//  1. [rack] - Geometry, face rules and collision detection
//  2. [layout] - The layout state and the commands that change it
//  3. [history] - Bounded undo and redo stacks
//  4. [editor] - Validated, logged editing on top of layout and history
//  5. [io], [catalog], [inventory] - Layout files, device libraries, reports
//  6. [cache], [session] - Persistent history journals between processes
//
// # Data Flow
//
//	layout file ──► io.Load ──► layout.Layout ◄── catalog.LoadPaths
//	                                 │
//	                       editor.Place / Move / ...
//	                                 │
//	                 rack.CanPlace ──┴──► history.Execute
//	                                 │
//	          io.Save ◄──────────────┴──────────► session.Persist
//
// Every change is planned first: a Plan method validates the request against
// the current rack and returns a command, or an error that leaves the rack
// untouched. Executing the command applies it and records it for undo.
package pkg
