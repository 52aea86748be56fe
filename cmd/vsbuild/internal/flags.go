package internal

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/goplus/vsbuild/pkgs/buildsys/msbuild"
	"github.com/goplus/vsbuild/settings"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/spf13/cobra"
)

// buildFlags are shared by the commands that compose an MSBuild invocation.
type buildFlags struct {
	dir        string
	settings   []string
	defines    []string
	cflags     []string
	targets    []string
	properties []string
	propsFile  string
	userProps  []string
	verbosity  string
	jobs       int
	parallel   bool
	binlog     string
	useEnv     bool
	platforms  []string
	toolset    string
}

func (f *buildFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.dir, "dir", "C", "", "Directory holding the solution (default is the current directory)")
	fl.StringArrayVarP(&f.settings, "setting", "s", nil, "Setting as key=value; comma separated values build each one")
	fl.StringArrayVarP(&f.defines, "define", "D", nil, "Preprocessor definition NAME[=VALUE]")
	fl.StringArrayVar(&f.cflags, "cflag", nil, "Extra compiler option")
	fl.StringSliceVarP(&f.targets, "target", "t", nil, "MSBuild target")
	fl.StringArrayVarP(&f.properties, "property", "p", nil, "Extra MSBuild property as name=value")
	fl.StringVar(&f.propsFile, "props-file", "", "Name of the generated property sheet (default "+msbuild.DefaultPropertyFile+")")
	fl.StringSliceVar(&f.userProps, "user-props", nil, "User property sheets imported after the generated one, in order")
	fl.StringVarP(&f.verbosity, "verbosity", "v", "", "quiet, minimal, normal, detailed or diagnostic")
	fl.IntVarP(&f.jobs, "jobs", "j", 0, "Maximum number of parallel MSBuild nodes")
	fl.BoolVar(&f.parallel, "parallel", false, "Use one MSBuild node per CPU")
	fl.StringVar(&f.binlog, "binlog", "", "Write a binary log, optionally to the given file")
	fl.Lookup("binlog").NoOptDefVal = "true"
	fl.BoolVar(&f.useEnv, "use-env", false, "Let MSBuild take include and library paths from the environment")
	fl.StringArrayVar(&f.platforms, "platform", nil, "Platform name override as arch=platform, e.g. x86=Win32")
	fl.StringVar(&f.toolset, "toolset", "", "Platform toolset override")
}

// matrix collects the -s flags; comma separated values vary per build.
func (f *buildFlags) matrix() (settings.Matrix, error) {
	m := settings.Matrix{}
	for _, s := range f.settings {
		k, v, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("invalid setting %q: want key=value", s)
		}
		k = strings.TrimSpace(k)
		for _, value := range strings.Split(v, ",") {
			m[k] = append(m[k], strings.TrimSpace(value))
		}
	}
	return m, nil
}

// combinations expands the -s flags into one Settings per build.
func (f *buildFlags) combinations() ([]settings.Settings, error) {
	m, err := f.matrix()
	if err != nil {
		return nil, err
	}
	return m.Combinations(defaultSettings())
}

func (f *buildFlags) options(verbosity string, cpuCount int) (*msbuild.Options, error) {
	defs, err := parseDefinitions(f.defines)
	if err != nil {
		return nil, err
	}
	props, err := parsePairs("property", f.properties)
	if err != nil {
		return nil, err
	}
	platforms, err := parsePairs("platform", f.platforms)
	if err != nil {
		return nil, err
	}
	if f.verbosity != "" {
		verbosity = f.verbosity
	}
	jobs := f.jobs
	if jobs == 0 && f.parallel {
		jobs = cpuCount
		if jobs <= 0 {
			jobs = logicalCPUs()
		}
	}
	return &msbuild.Options{
		Targets:           f.targets,
		Definitions:       defs,
		Flags:             f.cflags,
		Properties:        props,
		PropertyFile:      f.propsFile,
		UserPropertyFiles: f.userProps,
		Verbosity:         verbosity,
		Jobs:              jobs,
		BinaryLog:         msbuild.ParseBinaryLog(f.binlog),
		UseEnv:            f.useEnv,
		Platforms:         platforms,
		Toolset:           f.toolset,
	}, nil
}

// defaultSettings describes the host: Windows on the running architecture.
func defaultSettings() settings.Settings {
	s := settings.Settings{OS: "Windows"}
	switch runtime.GOARCH {
	case "amd64":
		s.Arch = "x86_64"
	case "386":
		s.Arch = "x86"
	}
	return s
}

func logicalCPUs() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// parseDefinitions turns NAME=VALUE and bare NAME flags into a definition set.
func parseDefinitions(defs []string) (map[string]string, error) {
	if len(defs) == 0 {
		return nil, nil
	}
	m := make(map[string]string, len(defs))
	for _, d := range defs {
		name, value, _ := strings.Cut(d, "=")
		if name == "" {
			return nil, fmt.Errorf("invalid definition %q", d)
		}
		m[name] = value
	}
	return m, nil
}

func parsePairs(what string, pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid %s %q: want name=value", what, p)
		}
		m[k] = v
	}
	return m, nil
}
