// Package settings models the abstract build configuration handed to native
// build helpers: target platform, compiler and build flavor.
package settings

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSetting is returned when a setting key is not recognized.
var ErrUnknownSetting = errors.New("unknown setting")

// Settings describes one concrete build configuration.
//
// The zero value means "unset" for every field; helpers decide which fields
// they require.
type Settings struct {
	OS              string // "Windows"
	Arch            string // "x86_64", "x86"
	Compiler        string // "Visual Studio", "msvc"
	CompilerVersion string // "15", "193"
	BuildType       string // "Release", "Debug"
	CppStd          string // "14", "17", "20"
	Runtime         string // "MT", "MTd", "MD", "MDd", "static", "dynamic"
	RuntimeType     string // "Debug", "Release"; used with static/dynamic
	Toolset         string // explicit toolset, e.g. "v141_xp"
}

// Keys lists the setting keys accepted by Set, in rendering order.
var Keys = []string{
	"os",
	"arch",
	"compiler",
	"compiler.version",
	"compiler.toolset",
	"compiler.runtime",
	"compiler.runtime_type",
	"compiler.cppstd",
	"build_type",
}

func (s *Settings) field(key string) *string {
	switch key {
	case "os":
		return &s.OS
	case "arch":
		return &s.Arch
	case "compiler":
		return &s.Compiler
	case "compiler.version":
		return &s.CompilerVersion
	case "compiler.toolset":
		return &s.Toolset
	case "compiler.runtime":
		return &s.Runtime
	case "compiler.runtime_type":
		return &s.RuntimeType
	case "compiler.cppstd", "cppstd":
		return &s.CppStd
	case "build_type":
		return &s.BuildType
	}
	return nil
}

// Set assigns value to the setting named key.
func (s *Settings) Set(key, value string) error {
	p := s.field(key)
	if p == nil {
		return fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}
	*p = value
	return nil
}

// Parse applies "key=value" assignments on top of s and returns the result.
func (s Settings) Parse(assignments ...string) (Settings, error) {
	for _, a := range assignments {
		k, v, ok := strings.Cut(a, "=")
		if !ok {
			return s, fmt.Errorf("invalid setting %q: want key=value", a)
		}
		if err := s.Set(strings.TrimSpace(k), strings.TrimSpace(v)); err != nil {
			return s, err
		}
	}
	return s, nil
}

// String renders the non-empty settings as space separated key=value pairs.
func (s Settings) String() string {
	var parts []string
	for _, k := range Keys {
		if v := *s.field(k); v != "" {
			parts = append(parts, k+"="+v)
		}
	}
	return strings.Join(parts, " ")
}
