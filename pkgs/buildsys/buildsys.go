package buildsys

import (
	"context"

	"github.com/goplus/vsbuild/settings"
)

// BuildSystem captures shared capabilities of build helpers (MSBuild, etc).
// It keeps the common lifecycle and env setup; implementations add their own
// extras. O carries per-build options and R describes a finished build.
type BuildSystem[O, R any] interface {
	// Basic paths.
	Source(dir string)

	// Environment helper.
	Env(key, val string)

	// Lifecycle. Configure prepares project for a build with s without
	// building it; Build configures and builds.
	Configure(ctx context.Context, project string, s settings.Settings, opts O) error
	Build(ctx context.Context, project string, s settings.Settings, opts O) (R, error)
}

// BuildAll builds project once per settings combination, in order, and
// stops at the first failure.
func BuildAll[O, R any](ctx context.Context, b BuildSystem[O, R], project string, combos []settings.Settings, opts O) ([]R, error) {
	results := make([]R, 0, len(combos))
	for _, s := range combos {
		r, err := b.Build(ctx, project, s, opts)
		if err != nil {
			return results, &BuildError{Project: project, Settings: s, Err: err}
		}
		results = append(results, r)
	}
	return results, nil
}

// BuildError reports which combination of a BuildAll failed.
type BuildError struct {
	Project  string
	Settings settings.Settings
	Err      error
}

func (e *BuildError) Error() string {
	return "failed to build " + e.Project + " (" + e.Settings.String() + "): " + e.Err.Error()
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
