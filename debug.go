package spacedit

import (
	"fmt"
	"io"
	"os"
)

// globalDebug enables tree-operation checks on nodes. Set by
// Engine.SetDebugMode.
var globalDebug bool

// debugLog writes categorized diagnostics. The zero value writes nothing.
type debugLog struct {
	opts DebugOptions
}

func (d debugLog) out() io.Writer {
	if d.opts.Output != nil {
		return d.opts.Output
	}
	return os.Stderr
}

// pointerf logs normalized pointer positions.
func (d debugLog) pointerf(format string, args ...any) {
	if d.opts.Enabled && d.opts.PointerLog {
		_, _ = fmt.Fprintf(d.out(), "[spacedit] pointer: "+format+"\n", args...)
	}
}

// pickf logs intersections and resolution.
func (d debugLog) pickf(format string, args ...any) {
	if d.opts.Enabled && d.opts.PickLog {
		_, _ = fmt.Fprintf(d.out(), "[spacedit] pick: "+format+"\n", args...)
	}
}

// dragf logs drag lifecycle steps.
func (d debugLog) dragf(format string, args ...any) {
	if d.opts.Enabled && d.opts.DragLog {
		_, _ = fmt.Fprintf(d.out(), "[spacedit] drag: "+format+"\n", args...)
	}
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("spacedit debug: %s on disposed node %q", op, n.Name))
	}
}
