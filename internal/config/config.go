// Package config holds the resolved command-line configuration shared
// by internal/cli and cmd/quc.
package config

// DefaultFile is the input path used when -f/--file is not given.
const DefaultFile = "./program.qu"

// Config is the resolved set of flags a run of the interpreter needs.
type Config struct {
	// File is the source path to read, or "-" for standard input.
	File string
	// Debug raises the logger to debug level; set by -d/--dump.
	Debug bool
}
