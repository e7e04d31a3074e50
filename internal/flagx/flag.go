// Package flagx holds command-line helpers for config loading that has to
// look at a few flags before the full flag set is parsed.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs keeps only the allowed flags from args, together with their
// values. Both "-c file" and "-c=file" forms are recognised. Scanning stops
// at the first positional argument that is not a flag value, as the flag
// package does.
func FilterArgs(args []string, allowed ...string) []string {
	keep := make(map[string]bool, len(allowed))
	for _, f := range allowed {
		keep[f] = true
	}

	out := []string{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" || !strings.HasPrefix(arg, "-") {
			break
		}

		if name, _, ok := strings.Cut(arg, "="); ok {
			if keep[name] {
				out = append(out, arg)
			}
			continue
		}

		hasValue := i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") && !isBool(arg)
		if keep[arg] {
			out = append(out, arg)
			if hasValue {
				out = append(out, args[i+1])
			}
		}
		if hasValue {
			i++
		}
	}
	return out
}

// boolFlags lists flags that never take a separate value.
var boolFlags = map[string]bool{"-pretty": true, "-m": true, "-h": true, "-help": true}

func isBool(arg string) bool {
	return boolFlags[arg]
}

// ConfigPath returns the JSON config file given with -c or -config, or ""
// when neither is present.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, "-c", "-config", "--config"))

	return path
}
