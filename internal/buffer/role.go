package buffer

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Role identifies one of the three editable buffers.
type Role string

const (
	Markup Role = "html"
	Style  Role = "css"
	Script Role = "js"
)

// Roles lists the buffers in pane order.
var Roles = []Role{Markup, Style, Script}

// ErrUnknownRole is returned when a role name cannot be resolved.
var ErrUnknownRole = errors.New("unknown buffer role")

// Title is the pane label shown for the role.
func (r Role) Title() string {
	switch r {
	case Markup:
		return "HTML"
	case Style:
		return "CSS"
	case Script:
		return "JS"
	}
	return strings.ToUpper(string(r))
}

// FileName is the conventional on-disk name used by serve/build/check.
func (r Role) FileName() string {
	switch r {
	case Markup:
		return "index.html"
	case Style:
		return "style.css"
	case Script:
		return "script.js"
	}
	return string(r)
}

var aliases = map[string]Role{
	"html":       Markup,
	"markup":     Markup,
	"css":        Style,
	"style":      Style,
	"js":         Script,
	"javascript": Script,
	"script":     Script,
}

var aliasNames = func() []string {
	names := make([]string, 0, len(aliases))
	for n := range aliases {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}()

// ParseRole accepts the short names, a few aliases, and abbreviations that
// fuzzy-match exactly one role ("jav", "mark").
func ParseRole(s string) (Role, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if r, ok := aliases[key]; ok {
		return r, nil
	}
	if key != "" {
		found := map[Role]bool{}
		for _, m := range fuzzy.Find(key, aliasNames) {
			found[aliases[m.Str]] = true
		}
		if len(found) == 1 {
			for r := range found {
				return r, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}
