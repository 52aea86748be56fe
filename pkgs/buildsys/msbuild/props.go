package msbuild

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultPropertyFile is the name of the generated property sheet.
const DefaultPropertyFile = "vsbuild.props"

const msbuildNamespace = "http://schemas.microsoft.com/developer/msbuild/2003"

type propsProject struct {
	XMLName             xml.Name            `xml:"Project"`
	ToolsVersion        string              `xml:"ToolsVersion,attr"`
	Xmlns               string              `xml:"xmlns,attr"`
	ImportGroup         labelGroup          `xml:"ImportGroup"`
	PropertyGroup       labelGroup          `xml:"PropertyGroup"`
	ItemDefinitionGroup itemDefinitionGroup `xml:"ItemDefinitionGroup"`
	ItemGroup           struct{}            `xml:"ItemGroup"`
}

type labelGroup struct {
	Label string `xml:"Label,attr"`
}

type itemDefinitionGroup struct {
	ClCompile clCompile `xml:"ClCompile"`
}

type clCompile struct {
	RuntimeLibrary    string `xml:"RuntimeLibrary,omitempty"`
	AdditionalOptions string `xml:"AdditionalOptions,omitempty"`
}

// PropertySheet renders the generated property sheet: the runtime library
// of t, plus t's language standard flag, flags and one /D switch per
// definition as additional compiler options.
func PropertySheet(t Translated, defs map[string]string, flags []string) ([]byte, error) {
	var opts []string
	if t.StdFlag != "" {
		opts = append(opts, t.StdFlag)
	}
	opts = append(opts, flags...)
	opts = append(opts, definitionArgs(defs)...)

	additional := ""
	if len(opts) > 0 {
		additional = strings.Join(opts, " ") + " %(AdditionalOptions)"
	}

	doc := propsProject{
		ToolsVersion:  "4.0",
		Xmlns:         msbuildNamespace,
		ImportGroup:   labelGroup{Label: "PropertySheets"},
		PropertyGroup: labelGroup{Label: "UserMacros"},
		ItemDefinitionGroup: itemDefinitionGroup{
			ClCompile: clCompile{
				RuntimeLibrary:    t.RuntimeLibrary,
				AdditionalOptions: additional,
			},
		},
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// definitionArgs renders defs as "/D NAME=VALUE", or "/D NAME" for an empty
// value, sorted by name.
func definitionArgs(defs map[string]string) []string {
	if len(defs) == 0 {
		return nil
	}
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	args := make([]string, 0, len(names))
	for _, name := range names {
		if v := defs[name]; v != "" {
			args = append(args, "/D "+name+"="+v)
			continue
		}
		args = append(args, "/D "+name)
	}
	return args
}

// propertyFilePath returns the absolute path of the generated sheet in dir.
func propertyFilePath(dir, name string) (string, error) {
	if name == "" {
		name = DefaultPropertyFile
	}
	if !filepath.IsAbs(name) {
		name = filepath.Join(dir, name)
	}
	return filepath.Abs(name)
}

func writePropertyFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, content, 0o644)
}
