// Package shell provides the shell executor adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/mk/internal/core/domain"
	"go.trai.ch/mk/internal/core/ports"
	"go.trai.ch/zerr"
)

// shellPath is the interpreter each command line runs under. Every line
// gets its own invocation, so state does not leak between lines.
const shellPath = "/bin/sh"

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new shell Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs the target's command lines strictly in declared order, each
// in a fresh `sh -c` shell. The first non-zero exit aborts the remaining
// lines and returns a domain.CommandError carrying the exit status.
//
// The environment is os.Environ() with the target's overrides applied on
// top. Output streams to the telemetry vertex carried by ctx when present,
// otherwise line-wise to the logger.
func (e *Executor) Execute(ctx context.Context, target *domain.Target) error {
	stdout, stderr := e.outputs(ctx)
	env := resolveEnvironment(os.Environ(), target.Environment)

	for _, line := range target.Commands {
		if err := ctx.Err(); err != nil {
			return zerr.Wrap(err, "execution interrupted")
		}

		cmd := exec.CommandContext(ctx, shellPath, "-c", line) //nolint:gosec // command lines come from the user's taskfile
		cmd.Env = env
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		if dir := target.WorkingDir.String(); dir != "" {
			cmd.Dir = dir
		}

		err := cmd.Run()
		flush(stdout, stderr)
		if err != nil {
			exitCode := -1
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				exitCode = exitErr.ExitCode()
			}
			cmdErr := &domain.CommandError{
				Command:  line,
				ExitCode: exitCode,
				Err:      err,
			}
			return zerr.With(zerr.Wrap(cmdErr, "command failed"), "exit_code", exitCode)
		}
	}

	return nil
}

// outputs returns the writers for the command's stdout and stderr. The
// vertex writers win when a vertex is recording; otherwise output is
// forwarded line-wise to the logger.
func (e *Executor) outputs(ctx context.Context) (io.Writer, io.Writer) {
	if v, ok := ports.VertexFromContext(ctx); ok {
		return v.Stdout(), v.Stderr()
	}
	return &logWriter{logger: e.logger}, &logWriter{logger: e.logger, errStream: true}
}

type flusher interface {
	Flush()
}

// flush emits any buffered partial lines once a command has finished.
func flush(writers ...io.Writer) {
	for _, w := range writers {
		if f, ok := w.(flusher); ok {
			f.Flush()
		}
	}
}

// logWriter forwards process output to the logger one line at a time.
type logWriter struct {
	logger    ports.Logger
	errStream bool
	buf       []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		idx := bytes.IndexByte(w.buf, '\n')
		if idx < 0 {
			break
		}
		w.emit(string(w.buf[:idx]))
		w.buf = w.buf[idx+1:]
	}
	return len(p), nil
}

// Flush emits any trailing output that was not newline-terminated.
func (w *logWriter) Flush() {
	if len(w.buf) > 0 {
		w.emit(string(w.buf))
		w.buf = nil
	}
}

func (w *logWriter) emit(line string) {
	if w.errStream {
		w.logger.Error(zerr.New(line))
		return
	}
	w.logger.Info(line)
}

// resolveEnvironment applies the target's overrides on top of the system
// environment.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return sysEnv
	}

	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	keys := make([]string, 0, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, seen := envMap[k]; !seen {
			keys = append(keys, k)
		}
		envMap[k] = v
	}
	for k, v := range overrides {
		if _, seen := envMap[k]; !seen {
			keys = append(keys, k)
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(keys))
	for _, k := range keys {
		result = append(result, k+"="+envMap[k])
	}
	return result
}
