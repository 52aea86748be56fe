package msbuild

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goplus/vsbuild/settings"
)

var release64 = settings.Settings{
	OS:              "Windows",
	Arch:            "x86_64",
	Compiler:        "Visual Studio",
	CompilerVersion: "15",
	BuildType:       "Release",
}

func TestCommandArgs(t *testing.T) {
	dir := t.TempDir()
	m := New(dir).Executable("msbuild.exe")

	inv, err := m.Command("MyProject.sln", release64, &Options{Verbosity: "normal"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"MyProject.sln",
		`/p:Configuration="Release"`,
		"/p:UseEnv=false",
		`/p:Platform="x64"`,
		`/p:PlatformToolset="v141"`,
		"/verbosity:normal",
		`/p:ForceImportBeforeCppTargets="` + filepath.Join(dir, DefaultPropertyFile) + `"`,
	}
	if diff := cmp.Diff(inv.Args, want); diff != "" {
		t.Fatalf("Args mismatch (-got +want):\n%s", diff)
	}
	if inv.Path != "msbuild.exe" || inv.Dir != dir {
		t.Fatalf("Path, Dir = %q, %q; want %q, %q", inv.Path, inv.Dir, "msbuild.exe", dir)
	}
	if inv.BinaryLog != "" {
		t.Fatalf("BinaryLog = %q, want none", inv.BinaryLog)
	}
}

func TestCommandAllOptions(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.props", "b.props"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("<Project/>"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	s := release64
	s.Arch = "x86"
	s.BuildType = "Debug"

	inv, err := New(dir).Command("MyProject.sln", s, &Options{
		Targets:           []string{"Clean", "Build"},
		Properties:        map[string]string{"WholeProgramOptimization": "true", "CharacterSet": "Unicode"},
		PropertyFile:      "mp.props",
		UserPropertyFiles: []string{"a.props", "b.props"},
		Verbosity:         "diag",
		Jobs:              8,
		BinaryLog:         NamedBinaryLog("my_log.binlog"),
		UseEnv:            true,
		Platforms:         map[string]string{"x86": "Win32"},
	})
	if err != nil {
		t.Fatal(err)
	}
	chain := strings.Join([]string{
		filepath.Join(dir, "mp.props"),
		filepath.Join(dir, "a.props"),
		filepath.Join(dir, "b.props"),
	}, ";")
	want := []string{
		"MyProject.sln",
		`/p:Configuration="Debug"`,
		"/p:UseEnv=true",
		`/p:Platform="Win32"`,
		`/p:PlatformToolset="v141"`,
		"/verbosity:diagnostic",
		"/m:8",
		"/bl:my_log.binlog",
		"/target:Clean;Build",
		`/p:CharacterSet="Unicode"`,
		`/p:WholeProgramOptimization="true"`,
		`/p:ForceImportBeforeCppTargets="` + chain + `"`,
	}
	if diff := cmp.Diff(inv.Args, want); diff != "" {
		t.Fatalf("Args mismatch (-got +want):\n%s", diff)
	}
	if inv.BinaryLog != "my_log.binlog" {
		t.Fatalf("BinaryLog = %q, want %q", inv.BinaryLog, "my_log.binlog")
	}
}

func TestCommandOmitsConfigurationWithoutBuildType(t *testing.T) {
	s := release64
	s.BuildType = ""
	inv, err := New(t.TempDir()).Command("MyProject.sln", s, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range inv.Args {
		if strings.HasPrefix(a, "/p:Configuration") {
			t.Fatalf("unexpected %q in %v", a, inv.Args)
		}
	}
	if !slices.Contains(inv.Args, "/verbosity:minimal") {
		t.Fatalf("default verbosity missing from %v", inv.Args)
	}
}

func TestCommandBinaryLog(t *testing.T) {
	tests := []struct {
		log      BinaryLog
		wantArg  string
		wantFile string
	}{
		{log: DefaultBinaryLog{}, wantArg: "/bl", wantFile: DefaultBinaryLogName},
		{log: NamedBinaryLog("my_log.binlog"), wantArg: "/bl:my_log.binlog", wantFile: "my_log.binlog"},
		{log: ParseBinaryLog("true"), wantArg: "/bl", wantFile: DefaultBinaryLogName},
		{log: ParseBinaryLog("false")},
		{log: nil},
	}
	for _, tt := range tests {
		inv, err := New(t.TempDir()).Command("p.sln", release64, &Options{BinaryLog: tt.log})
		if err != nil {
			t.Fatal(err)
		}
		var got []string
		for _, a := range inv.Args {
			if strings.HasPrefix(a, "/bl") {
				got = append(got, a)
			}
		}
		var want []string
		if tt.wantArg != "" {
			want = []string{tt.wantArg}
		}
		if diff := cmp.Diff(got, want); diff != "" {
			t.Errorf("binary log %#v switches mismatch (-got +want):\n%s", tt.log, diff)
		}
		if inv.BinaryLog != tt.wantFile {
			t.Errorf("binary log %#v: BinaryLog = %q, want %q", tt.log, inv.BinaryLog, tt.wantFile)
		}
	}
}

func TestCommandVerbosity(t *testing.T) {
	for in, want := range map[string]string{
		"":           "minimal",
		"quiet":      "quiet",
		"q":          "quiet",
		"Normal":     "normal",
		"detailed":   "detailed",
		"diagnostic": "diagnostic",
	} {
		inv, err := New(t.TempDir()).Command("p.sln", release64, &Options{Verbosity: in})
		if err != nil {
			t.Fatalf("verbosity %q: %v", in, err)
		}
		if !slices.Contains(inv.Args, "/verbosity:"+want) {
			t.Errorf("verbosity %q: args %v lack /verbosity:%s", in, inv.Args, want)
		}
	}

	_, err := New(t.TempDir()).Command("p.sln", release64, &Options{Verbosity: "ultra"})
	if !errors.Is(err, ErrInvalidVerbosity) {
		t.Fatalf("verbosity ultra: error = %v, want ErrInvalidVerbosity", err)
	}
	if !strings.Contains(err.Error(), `"ultra"`) {
		t.Fatalf("error %q does not name the verbosity", err)
	}
}

func TestCommandMissingOverlay(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.props"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := New(dir).Command("p.sln", release64, &Options{UserPropertyFiles: []string{"a.props", "missing.props"}})
	if !errors.Is(err, ErrMissingOverlayFile) {
		t.Fatalf("error = %v, want ErrMissingOverlayFile", err)
	}
	if !strings.Contains(err.Error(), "missing.props") {
		t.Fatalf("error %q does not name the missing file", err)
	}
}

func TestCommandReuse(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "user.props"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	m := New(dir)
	opts := &Options{
		Definitions:       map[string]string{"MyCustomDef": "MyCustomValue"},
		UserPropertyFiles: []string{"user.props"},
	}

	release, err := m.Command("p.sln", release64, opts)
	if err != nil {
		t.Fatal(err)
	}
	debugSettings := release64
	debugSettings.BuildType = "Debug"
	debug, err := m.Command("p.sln", debugSettings, opts)
	if err != nil {
		t.Fatal(err)
	}
	again, err := m.Command("p.sln", release64, opts)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(release.Args, again.Args); diff != "" {
		t.Fatalf("second release build differs (-first +second):\n%s", diff)
	}
	if len(release.Args) != len(debug.Args) {
		t.Fatalf("release %v and debug %v differ in length", release.Args, debug.Args)
	}
	for i := range release.Args {
		if release.Args[i] == debug.Args[i] {
			continue
		}
		if release.Args[i] != `/p:Configuration="Release"` || debug.Args[i] != `/p:Configuration="Debug"` {
			t.Errorf("arg %d differs: release %q, debug %q", i, release.Args[i], debug.Args[i])
		}
	}
	if len(opts.Definitions) != 1 || len(opts.UserPropertyFiles) != 1 {
		t.Fatalf("options were modified: %+v", opts)
	}
}

func TestOverlayChainOrder(t *testing.T) {
	got := overlayChain("gen.props", []string{"a.props", "b.props"})
	if diff := cmp.Diff(got, []string{"gen.props", "a.props", "b.props"}); diff != "" {
		t.Fatalf("overlayChain mismatch (-got +want):\n%s", diff)
	}
	if got := overlayChain("gen.props", nil); len(got) != 1 {
		t.Fatalf("overlayChain without user sheets = %v, want generated sheet only", got)
	}
}

func TestInvocationString(t *testing.T) {
	inv := &Invocation{Path: "msbuild", Args: []string{"My Project.sln", `/p:Platform="x64"`, "/m:2"}}
	want := `msbuild "My Project.sln" /p:Platform="x64" /m:2`
	if got := inv.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
