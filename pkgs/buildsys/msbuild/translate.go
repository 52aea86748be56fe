package msbuild

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goplus/vsbuild/settings"
)

var platforms = map[string]string{
	"x86_64": "x64",
	"x86":    "x86",
}

var toolsets = map[string]map[string]string{
	"Visual Studio": {
		"8":  "v80",
		"9":  "v90",
		"10": "v100",
		"11": "v110",
		"12": "v120",
		"14": "v140",
		"15": "v141",
		"16": "v142",
		"17": "v143",
	},
	"msvc": {
		"190": "v140",
		"191": "v141",
		"192": "v142",
		"193": "v143",
		"194": "v143",
	},
}

var runtimeLibraries = map[string]string{
	"MT":  "MultiThreaded",
	"MTd": "MultiThreadedDebug",
	"MD":  "MultiThreadedDLL",
	"MDd": "MultiThreadedDebugDLL",
}

var cppStdFlags = map[string]string{
	"14":     "/std:c++14",
	"17":     "/std:c++17",
	"20":     "/std:c++20",
	"23":     "/std:c++latest",
	"latest": "/std:c++latest",
}

// newestStd is the newest standard each toolset's cl.exe accepts by name.
// Newer standards are requested with /std:c++latest. Toolsets before v140
// have no /std switch. /std:c++20 arrived in 16.11, so v142 is treated as
// not having it.
var newestStd = map[string]int{
	"v140": 14,
	"v141": 17,
	"v142": 17,
	"v143": 20,
}

// Translated holds settings expressed in MSBuild vocabulary.
// Empty Configuration and Toolset mean the project defaults apply.
type Translated struct {
	Platform       string
	Configuration  string
	Toolset        string
	RuntimeLibrary string
	StdFlag        string
}

// Overrides replace parts of the translation for a single build.
type Overrides struct {
	// Platforms maps an architecture to the platform name used by the
	// solution, e.g. "x86" to "Win32".
	Platforms map[string]string
	Toolset   string
}

// Translate maps s to MSBuild platform, configuration, toolset and runtime
// library names.
func Translate(s settings.Settings, o Overrides) (Translated, error) {
	var t Translated

	platform, ok := platforms[s.Arch]
	if !ok {
		return t, fmt.Errorf("%w: %q", ErrUnsupportedArchitecture, s.Arch)
	}
	if p, ok := o.Platforms[s.Arch]; ok && p != "" {
		platform = p
	}
	t.Platform = platform
	t.Configuration = capitalize(s.BuildType)

	toolset, err := toolsetOf(s, o)
	if err != nil {
		return t, err
	}
	t.Toolset = toolset

	flag, err := runtimeFlag(s)
	if err != nil {
		return t, err
	}
	t.RuntimeLibrary = runtimeLibraries[flag]
	t.StdFlag = stdFlag(s)
	return t, nil
}

// toolsetOf returns the platform toolset for s. An explicit toolset, per
// build or in the settings, wins over the compiler version.
func toolsetOf(s settings.Settings, o Overrides) (string, error) {
	if o.Toolset != "" {
		return o.Toolset, nil
	}
	if s.Toolset != "" {
		return s.Toolset, nil
	}
	return compilerToolset(s)
}

func compilerToolset(s settings.Settings) (string, error) {
	if s.CompilerVersion == "" {
		return "", nil
	}
	versions, ok := toolsets[s.Compiler]
	if !ok {
		return "", fmt.Errorf("%w: compiler %q", ErrUnsupportedToolset, s.Compiler)
	}
	toolset, ok := versions[s.CompilerVersion]
	if !ok {
		return "", fmt.Errorf("%w: %s version %q", ErrUnsupportedToolset, s.Compiler, s.CompilerVersion)
	}
	return toolset, nil
}

// stdFlag returns the cl.exe language standard switch for s, limited to what
// the compiler version accepts. Without a known version every switch is used
// as is.
func stdFlag(s settings.Settings) string {
	std := strings.TrimPrefix(s.CppStd, "gnu")
	flag, ok := cppStdFlags[std]
	if !ok {
		return ""
	}
	toolset := toolsets[s.Compiler][s.CompilerVersion]
	if toolset == "" {
		return flag
	}
	newest, ok := newestStd[toolset]
	if !ok {
		return ""
	}
	if n, err := strconv.Atoi(std); err == nil && n > newest {
		return cppStdFlags["latest"]
	}
	return flag
}

// runtimeFlag returns the cl.exe runtime switch (without the slash) for s.
func runtimeFlag(s settings.Settings) (string, error) {
	switch s.Runtime {
	case "MT", "MTd", "MD", "MDd":
		return s.Runtime, nil
	case "", "static", "dynamic":
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedRuntime, s.Runtime)
	}

	flag := "MD"
	if s.Runtime == "static" {
		flag = "MT"
	}
	runtimeType := s.RuntimeType
	if runtimeType == "" {
		runtimeType = s.BuildType
	}
	if strings.EqualFold(runtimeType, "debug") {
		flag += "d"
	}
	return flag, nil
}

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
