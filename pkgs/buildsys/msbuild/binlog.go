package msbuild

// DefaultBinaryLogName is the file MSBuild writes for a plain /bl switch.
const DefaultBinaryLogName = "msbuild.binlog"

// BinaryLog requests a structured MSBuild log. The only implementations are
// DefaultBinaryLog and NamedBinaryLog; a nil BinaryLog disables logging.
type BinaryLog interface {
	binaryLog()
}

// DefaultBinaryLog writes the log to DefaultBinaryLogName.
type DefaultBinaryLog struct{}

// NamedBinaryLog writes the log to the given file name.
type NamedBinaryLog string

func (DefaultBinaryLog) binaryLog() {}
func (NamedBinaryLog) binaryLog()   {}

// binaryLogArg returns the switch for l and the file it produces.
func binaryLogArg(l BinaryLog) (arg, file string) {
	switch l := l.(type) {
	case DefaultBinaryLog:
		return "/bl", DefaultBinaryLogName
	case NamedBinaryLog:
		if l == "" {
			return "/bl", DefaultBinaryLogName
		}
		return "/bl:" + string(l), string(l)
	}
	return "", ""
}

// ParseBinaryLog converts the loosely typed form used on command lines and in
// configuration: "" and "false" disable the log, "true" selects the default
// name, anything else names the file.
func ParseBinaryLog(v string) BinaryLog {
	switch v {
	case "", "false":
		return nil
	case "true":
		return DefaultBinaryLog{}
	}
	return NamedBinaryLog(v)
}
