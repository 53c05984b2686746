// Package flagx lets several packages read their own subset of the command
// line without tripping over each other's flags.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// Spec lists the flags one consumer understands. Value flags take an
// argument; bool flags never consume the following token.
type Spec struct {
	Value []string
	Bool  []string
}

func (s Spec) kind(name string) (known, isBool bool) {
	name = normalize(name)
	for _, f := range s.Bool {
		if normalize(f) == name {
			return true, true
		}
	}
	for _, f := range s.Value {
		if normalize(f) == name {
			return true, false
		}
	}
	return false, false
}

// normalize maps "--name" to "-name" so both spellings match.
func normalize(name string) string {
	if strings.HasPrefix(name, "--") {
		return name[1:]
	}
	return name
}

// FilterArgs keeps only the arguments that belong to flags in spec, in their
// original order. "-f=value" forms are kept whole; for "-f value" forms the
// value is kept when it does not look like another flag.
func FilterArgs(args []string, spec Spec) []string {
	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		if name, _, ok := strings.Cut(arg, "="); ok {
			if known, _ := spec.kind(name); known {
				filtered = append(filtered, arg)
			}
			continue
		}

		known, isBool := spec.kind(arg)
		if !known {
			continue
		}
		filtered = append(filtered, arg)
		if !isBool && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigPath returns the JSON config file named by -c or -config in args,
// or "" when neither is given. The last occurrence wins.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, Spec{Value: []string{"-c", "-config"}}))

	return path
}
