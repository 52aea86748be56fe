package settings

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	s, err := Settings{}.Parse(
		"os=Windows",
		"arch = x86",
		"compiler=Visual Studio",
		"compiler.version=16",
		"compiler.runtime=MTd",
		"cppstd=17",
		"build_type=Debug",
	)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	want := Settings{
		OS:              "Windows",
		Arch:            "x86",
		Compiler:        "Visual Studio",
		CompilerVersion: "16",
		Runtime:         "MTd",
		CppStd:          "17",
		BuildType:       "Debug",
	}
	if s != want {
		t.Fatalf("Parse() = %+v, want %+v", s, want)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := (Settings{}).Parse("arch"); err == nil {
		t.Fatal("Parse(\"arch\") succeeded, want error")
	}
	if _, err := (Settings{}).Parse("compiler.libcxx=libc++"); !errors.Is(err, ErrUnknownSetting) {
		t.Fatalf("Parse() error = %v, want ErrUnknownSetting", err)
	}
}
