package batch

import (
	"strings"

	"github.com/yndnr/slackctl/internal/core/domain"
)

// ParseBool parses a boolean option. A missing option yields def, a bare
// --name yields true.
func ParseBool(opts domain.Options, name string, def bool) (bool, error) {
	v, ok := opts[name]
	if !ok {
		return def, nil
	}
	if v.IsBool {
		return true, nil
	}
	switch strings.ToLower(strings.TrimSpace(v.Str)) {
	case "true", "1", "yes", "y", "on":
		return true, nil
	case "false", "0", "no", "n", "off":
		return false, nil
	}
	return false, domain.ErrInvalidArgument.
		WithDetails("--" + name + "=" + v.Str).
		WithHint("use true/false, 1/0, yes/no, y/n or on/off")
}
