package progrock

import (
	"io"

	"github.com/vito/progrock"
)

// Vertex wraps *progrock.VertexRecorder for one target's execution.
type Vertex struct {
	vertex *progrock.VertexRecorder
	stdout io.Writer
	stderr io.Writer
}

// Stdout returns the writer capturing the target's standard output.
func (v *Vertex) Stdout() io.Writer {
	if v.stdout == nil {
		return v.vertex.Stdout()
	}
	return io.MultiWriter(v.vertex.Stdout(), v.stdout)
}

// Stderr returns the writer capturing the target's error output.
func (v *Vertex) Stderr() io.Writer {
	if v.stderr == nil {
		return v.vertex.Stderr()
	}
	return io.MultiWriter(v.vertex.Stderr(), v.stderr)
}

// Complete marks the vertex as finished.
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
}

// Cached marks the vertex as skipped because the target was up to date.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}
