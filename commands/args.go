package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/c360studio/worldgraph/entity"
)

// SplitArgs tokenizes a shell input line. Double quotes group words so
// multi-word names and descriptions survive splitting; the quotes
// themselves are stripped.
func SplitArgs(line string) []string {
	var (
		args    []string
		current strings.Builder
		quoted  bool
		started bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case !quoted && (r == ' ' || r == '\t'):
			if started {
				args = append(args, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if started {
		args = append(args, current.String())
	}
	return args
}

// parseFlags separates --key value and --key=value pairs from
// positional arguments. A repeated flag keeps its last value.
func parseFlags(args []string) (positional []string, flags map[string]string, err error) {
	flags = make(map[string]string)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			positional = append(positional, arg)
			continue
		}
		key := strings.TrimPrefix(arg, "--")
		if key == "" {
			return nil, nil, fmt.Errorf("empty flag name")
		}
		if name, value, found := strings.Cut(key, "="); found {
			flags[name] = value
			continue
		}
		if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") {
			return nil, nil, fmt.Errorf("flag --%s needs a value", key)
		}
		flags[key] = args[i+1]
		i++
	}
	return positional, flags, nil
}

// parseValue maps an argument token to a property value. Booleans and
// integers are recognized; everything else stays a string. Lists and
// mappings are only expressible in world documents.
func parseValue(token string) entity.Value {
	switch token {
	case "true":
		return entity.Bool(true)
	case "false":
		return entity.Bool(false)
	}
	if n, err := strconv.ParseInt(token, 10, 64); err == nil {
		return entity.Int(n)
	}
	return entity.String(token)
}

// wantArgs validates the positional argument count against the usage
// string.
func wantArgs(cfg Config, args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("usage: %s", cfg.Usage)
	}
	return nil
}
