// Package msbuild drives Visual Studio solutions through MSBuild: it
// translates abstract settings into MSBuild vocabulary, generates a property
// sheet carrying compiler options, and runs the build.
package msbuild

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"os"

	"github.com/goplus/vsbuild/pkgs/buildsys"
	"github.com/goplus/vsbuild/settings"
)

var _ buildsys.BuildSystem[*Options, *Result] = (*MSBuild)(nil)

// MSBuild builds solutions found in SourceDir.
//
// An MSBuild holds no per-build state: every Build call receives its full
// settings and options, so one value can build several configurations in
// sequence. Builds sharing a SourceDir must not run concurrently.
type MSBuild struct {
	SourceDir   string
	executable  string
	devenv      string
	skipUpgrade func() bool
	stdout      io.Writer
	logger      *slog.Logger
	env         map[string]string
}

// Options are the per-build inputs besides settings.
type Options struct {
	Targets []string

	// Definitions are passed to the compiler as /D switches. An empty value
	// defines the bare name.
	Definitions map[string]string
	Flags       []string

	// Properties are extra /p:Name="Value" switches.
	Properties map[string]string

	// PropertyFile overrides DefaultPropertyFile.
	PropertyFile string

	// UserPropertyFiles are imported after the generated sheet, in order.
	UserPropertyFiles []string

	Verbosity string
	Jobs      int // 0 leaves parallelism to MSBuild
	BinaryLog BinaryLog
	UseEnv    bool

	Platforms map[string]string
	Toolset   string
}

// Result describes what a Build wrote and ran.
type Result struct {
	PropertyFile string
	Overlays     []string
	Upgrade      *Invocation // nil if the upgrade was skipped
	Build        *Invocation
}

// New creates an MSBuild helper for the solution directory dir.
func New(dir string) *MSBuild {
	return &MSBuild{
		SourceDir:  dir,
		executable: "msbuild",
		devenv:     "devenv",
		logger:     slog.Default(),
		env:        map[string]string{},
	}
}

// Source sets the directory holding the solution. Relative property sheet
// names resolve against it and the tools run in it.
func (m *MSBuild) Source(dir string) {
	m.SourceDir = dir
}

// Executable sets the MSBuild binary to run.
func (m *MSBuild) Executable(path string) *MSBuild {
	m.executable = path
	return m
}

// Devenv sets the binary used to upgrade projects.
func (m *MSBuild) Devenv(path string) *MSBuild {
	m.devenv = path
	return m
}

// SkipUpgrade sets the accessor consulted before every build. When it
// returns true the project upgrade step is not run.
func (m *MSBuild) SkipUpgrade(f func() bool) *MSBuild {
	m.skipUpgrade = f
	return m
}

// Stdout sets where tool output is streamed.
func (m *MSBuild) Stdout(w io.Writer) *MSBuild {
	m.stdout = w
	return m
}

func (m *MSBuild) Logger(l *slog.Logger) *MSBuild {
	if l == nil {
		l = slog.Default()
	}
	m.logger = l
	return m
}

// Env sets an environment variable for the tools started by m.
func (m *MSBuild) Env(key, value string) {
	if m.env == nil {
		m.env = map[string]string{}
	}
	m.env[key] = value
}

func (m *MSBuild) output() io.Writer {
	if m.stdout == nil {
		return os.Stdout
	}
	return m.stdout
}

type plan struct {
	inv          *Invocation
	propertyFile string
	props        []byte
	overlays     []string
}

// prepare validates all inputs and composes the build. It starts no process
// and writes no file.
func (m *MSBuild) prepare(project string, s settings.Settings, opts *Options) (*plan, error) {
	if opts == nil {
		opts = &Options{}
	}
	t, err := Translate(s, Overrides{Platforms: opts.Platforms, Toolset: opts.Toolset})
	if err != nil {
		return nil, err
	}
	verbosity, err := normalizeVerbosity(opts.Verbosity)
	if err != nil {
		return nil, err
	}
	props, err := PropertySheet(t, opts.Definitions, opts.Flags)
	if err != nil {
		return nil, err
	}
	propertyFile, err := propertyFilePath(m.SourceDir, opts.PropertyFile)
	if err != nil {
		return nil, err
	}
	overlays, err := resolveOverlays(m.SourceDir, opts.UserPropertyFiles)
	if err != nil {
		return nil, err
	}

	spec := &commandSpec{
		project:   project,
		t:         t,
		chain:     overlayChain(propertyFile, overlays),
		verbosity: verbosity,
		jobs:      opts.Jobs,
		binaryLog: opts.BinaryLog,
		targets:   opts.Targets,
		props:     maps.Clone(opts.Properties),
		useEnv:    opts.UseEnv,
	}
	_, binlog := binaryLogArg(opts.BinaryLog)
	return &plan{
		inv: &Invocation{
			Path:      m.executable,
			Args:      spec.args(),
			Dir:       m.SourceDir,
			BinaryLog: binlog,
		},
		propertyFile: propertyFile,
		props:        props,
		overlays:     overlays,
	}, nil
}

// Command returns the MSBuild invocation Build would run for project.
func (m *MSBuild) Command(project string, s settings.Settings, opts *Options) (*Invocation, error) {
	p, err := m.prepare(project, s, opts)
	if err != nil {
		return nil, err
	}
	return p.inv, nil
}

// WritePropertyFile writes only the generated property sheet and returns
// its path.
func (m *MSBuild) WritePropertyFile(s settings.Settings, opts *Options) (string, error) {
	p, err := m.prepare("", s, opts)
	if err != nil {
		return "", err
	}
	if err := writePropertyFile(p.propertyFile, p.props); err != nil {
		return "", err
	}
	return p.propertyFile, nil
}

// Configure writes the generated property sheet and upgrades project unless
// configured otherwise. It does not build.
func (m *MSBuild) Configure(ctx context.Context, project string, s settings.Settings, opts *Options) error {
	p, err := m.prepare(project, s, opts)
	if err != nil {
		return err
	}
	_, err = m.configure(ctx, project, p)
	return err
}

func (m *MSBuild) configure(ctx context.Context, project string, p *plan) (*Result, error) {
	if err := writePropertyFile(p.propertyFile, p.props); err != nil {
		return nil, err
	}
	res := &Result{PropertyFile: p.propertyFile, Overlays: p.overlays}
	var err error
	res.Upgrade, err = m.upgrade(ctx, project)
	return res, err
}

// Build writes the generated property sheet, upgrades the project unless
// configured otherwise, and runs MSBuild on project. Invalid settings or
// options are reported before any process starts.
func (m *MSBuild) Build(ctx context.Context, project string, s settings.Settings, opts *Options) (*Result, error) {
	p, err := m.prepare(project, s, opts)
	if err != nil {
		return nil, err
	}
	res, err := m.configure(ctx, project, p)
	if err != nil {
		return res, err
	}

	m.logger.Info("building", "settings", s.String(), "command", p.inv.String())
	if err := run(ctx, p.inv, m.output(), m.env); err != nil {
		return res, err
	}
	res.Build = p.inv
	return res, nil
}
