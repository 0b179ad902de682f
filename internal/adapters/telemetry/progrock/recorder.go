// Package progrock provides the Progrock implementation of the telemetry
// adapter.
package progrock

import (
	"context"
	"io"
	"os"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/mk/internal/core/ports"
)

// Recorder implements ports.Telemetry using progrock. Each executed target
// becomes a vertex on the tape; the vertex output is teed to the process
// streams so command output stays visible on the terminal.
type Recorder struct {
	w      progrock.Writer
	rec    *progrock.Recorder
	stdout io.Writer
	stderr io.Writer
}

// New creates a Recorder with a default tape, teeing output to the
// process's stdout and stderr.
func New() ports.Telemetry {
	return NewRecorder(progrock.NewTape(), os.Stdout, os.Stderr)
}

// NewRecorder creates a Recorder with the given writer and tee streams.
// Nil tee streams disable teeing.
func NewRecorder(w progrock.Writer, stdout, stderr io.Writer) *Recorder {
	return &Recorder{
		w:      w,
		rec:    progrock.NewRecorder(w),
		stdout: stdout,
		stderr: stderr,
	}
}

// Record starts recording a vertex for the named target.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	d := digest.FromString(name)
	v := &Vertex{
		vertex: r.rec.Vertex(d, name),
		stdout: r.stdout,
		stderr: r.stderr,
	}
	return ports.ContextWithVertex(ctx, v), v
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
