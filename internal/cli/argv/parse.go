package argv

import (
	"strings"

	"github.com/yndnr/slackctl/internal/core/domain"
)

// DoubleDash ends flag and option interpretation.
const DoubleDash = "--"

// Parse converts args into a ParsedArgv.
func Parse(args []string) domain.ParsedArgv {
	parsed := domain.ParsedArgv{
		Tokens:                    []string{},
		PositionalsFromDoubleDash: []string{},
		Options:                   domain.Options{},
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == DoubleDash {
			parsed.PositionalsFromDoubleDash = append(parsed.PositionalsFromDoubleDash, args[i+1:]...)
			break
		}

		name, value, hasValue, ok := splitLong(arg)
		if !ok {
			parsed.Tokens = append(parsed.Tokens, arg)
			continue
		}

		if setGlobalFlag(&parsed.Flags, name) {
			continue
		}

		switch {
		case hasValue:
			parsed.Options[name] = domain.OptionValue{Str: value}
		case i+1 < len(args) && isBare(args[i+1]):
			parsed.Options[name] = domain.OptionValue{Str: args[i+1]}
			i++
		default:
			parsed.Options[name] = domain.OptionValue{IsBool: true}
		}
	}

	return parsed
}

// splitLong recognises --name and --name=value. ok is false for anything
// else, including --=value.
func splitLong(arg string) (name, value string, hasValue, ok bool) {
	if !strings.HasPrefix(arg, DoubleDash) || arg == DoubleDash {
		return "", "", false, false
	}
	body := arg[len(DoubleDash):]
	name, value, hasValue = strings.Cut(body, "=")
	if name == "" {
		return "", "", false, false
	}
	return name, value, hasValue, true
}

func setGlobalFlag(flags *domain.GlobalFlags, name string) bool {
	switch name {
	case "help":
		flags.Help = true
	case "version":
		flags.Version = true
	case "json":
		flags.JSON = true
	case "xoxp":
		flags.XOXP = true
	case "xoxb":
		flags.XOXB = true
	default:
		return false
	}
	return true
}

// isBare reports whether arg can be consumed as an option value.
func isBare(arg string) bool {
	return !strings.HasPrefix(arg, DoubleDash)
}
