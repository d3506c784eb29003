// Package explore implements bounded-cost filesystem exploration primitives.
//
// Five stateless operations share one immutable Policy: ListFiles enumerates the
// children of a directory, FindFiles locates files by glob pattern, ReadPreview
// shows the head and tail of a file, GrepSearch searches one file and
// GrepRecursive searches a whole subtree. Every operation returns a Result whose
// text is bounded by the policy's ceilings regardless of the size of the tree
// or file being inspected. Failures never escape as Go errors; they are
// classified into the kinds defined by package errors and rendered as sentinel
// text.
//
// All filesystem access goes through an afero.Fs so the operations can run
// against the OS, an in-memory tree, or an instrumented filesystem in tests.
package explore
