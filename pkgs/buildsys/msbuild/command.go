package msbuild

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultVerbosity is used when no verbosity is requested.
const DefaultVerbosity = "minimal"

var verbosities = map[string]string{
	"q":          "quiet",
	"quiet":      "quiet",
	"m":          "minimal",
	"minimal":    "minimal",
	"n":          "normal",
	"normal":     "normal",
	"d":          "detailed",
	"detailed":   "detailed",
	"diag":       "diagnostic",
	"diagnostic": "diagnostic",
}

// Invocation is a fully composed command line.
type Invocation struct {
	Path string
	Args []string
	Dir  string

	// BinaryLog is the log file MSBuild writes into Dir, if requested.
	BinaryLog string
}

// String renders the invocation as it would be typed in a shell.
func (inv *Invocation) String() string {
	parts := make([]string, 0, 1+len(inv.Args))
	parts = append(parts, quoteArg(inv.Path))
	for _, a := range inv.Args {
		parts = append(parts, quoteArg(a))
	}
	return strings.Join(parts, " ")
}

func quoteArg(s string) string {
	if s == "" || (strings.ContainsAny(s, " \t") && !strings.Contains(s, `"`)) {
		return `"` + s + `"`
	}
	return s
}

func normalizeVerbosity(v string) (string, error) {
	if v == "" {
		return DefaultVerbosity, nil
	}
	if native, ok := verbosities[strings.ToLower(v)]; ok {
		return native, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidVerbosity, v)
}

type commandSpec struct {
	project   string
	t         Translated
	chain     []string
	verbosity string
	jobs      int
	binaryLog BinaryLog
	targets   []string
	props     map[string]string
	useEnv    bool
}

// args composes the MSBuild argument list. Property sheets are imported in
// chain order; MSBuild lets later imports win.
func (c *commandSpec) args() []string {
	args := []string{c.project}
	if c.t.Configuration != "" {
		args = append(args, property("Configuration", c.t.Configuration))
	}
	args = append(args, "/p:UseEnv="+strconv.FormatBool(c.useEnv))
	args = append(args, property("Platform", c.t.Platform))
	if c.t.Toolset != "" {
		args = append(args, property("PlatformToolset", c.t.Toolset))
	}
	args = append(args, "/verbosity:"+c.verbosity)
	if c.jobs > 0 {
		args = append(args, "/m:"+strconv.Itoa(c.jobs))
	}
	if bl, _ := binaryLogArg(c.binaryLog); bl != "" {
		args = append(args, bl)
	}
	if len(c.targets) > 0 {
		args = append(args, "/target:"+strings.Join(c.targets, ";"))
	}
	if len(c.props) > 0 {
		keys := make([]string, 0, len(c.props))
		for k := range c.props {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			args = append(args, property(k, c.props[k]))
		}
	}
	args = append(args, property("ForceImportBeforeCppTargets", strings.Join(c.chain, ";")))
	return args
}

// property renders a /p switch with a quoted value so that MSBuild keeps
// semicolons inside the value.
func property(name, value string) string {
	return "/p:" + name + `="` + value + `"`
}
