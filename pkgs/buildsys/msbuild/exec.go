package msbuild

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"runtime"
	"sort"
	"strings"
)

// tailSize bounds the output kept for error reports.
const tailSize = 4096

// run executes inv and blocks until it exits. Standard output and error
// share one writer, and so one pipe, which preserves their interleaving.
func run(ctx context.Context, inv *Invocation, out io.Writer, env map[string]string) error {
	if out == nil {
		out = io.Discard
	}
	tail := &tailWriter{max: tailSize}
	w := io.MultiWriter(out, tail)

	cmd := exec.CommandContext(ctx, inv.Path, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Stdout = w
	cmd.Stderr = w
	if len(env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), env)
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}
	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return &ToolError{
		Tool:     inv.Path,
		ExitCode: code,
		Output:   tail.String(),
		Err:      err,
	}
}

// tailWriter keeps the last max bytes written to it.
type tailWriter struct {
	buf []byte
	max int
}

func (t *tailWriter) Write(p []byte) (int, error) {
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.max; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(p), nil
}

func (t *tailWriter) String() string {
	return strings.TrimRight(string(t.buf), "\r\n")
}

// mergeEnv overlays override on base. Windows variable names are case
// insensitive, so there an override of PATH replaces an inherited Path.
func mergeEnv(base []string, override map[string]string) []string {
	return mergeEnvFold(base, override, runtime.GOOS == "windows")
}

func mergeEnvFold(base []string, override map[string]string, fold bool) []string {
	type entry struct{ name, value string }
	envMap := make(map[string]entry, len(base)+len(override))
	key := func(name string) string {
		if fold {
			return strings.ToUpper(name)
		}
		return name
	}
	for _, kv := range base {
		if k, v, ok := strings.Cut(kv, "="); ok {
			envMap[key(k)] = entry{k, v}
		}
	}
	for k, v := range override {
		envMap[key(k)] = entry{k, v}
	}
	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		e := envMap[k]
		out = append(out, e.name+"="+e.value)
	}
	return out
}
