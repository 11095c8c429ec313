package rule

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Kind is the action a [Rule] performs on a preference file.
type Kind int

const (
	KindUnknown Kind = iota
	KindAdd
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "add"
	case KindDelete:
		return "delete"
	}

	return "unknown"
}

var (
	// ErrMalformed indicates a rule line is missing its delimiters.
	ErrMalformed = errors.New("malformed rule")

	sigils = map[byte]Kind{
		'+': KindAdd,
		'-': KindDelete,
	}
)

// Rule is a single add or delete directive for one preference.
type Rule struct {
	Name  string
	Value string
	Kind  Kind
}

// Parse parses a single rule line of the form `<sigil>(<name>,<value>)`.
//
// The name is the text between the first `(` and the first `,`, and the value
// is the text between the first `,` and the first `)`. Lines with an unknown
// sigil are returned as [KindUnknown] without further checks.
func Parse(line string) (Rule, error) {
	if line == "" {
		return Rule{}, nil
	}

	kind, ok := sigils[line[0]]
	if !ok {
		return Rule{Kind: KindUnknown}, nil
	}

	open := strings.IndexByte(line, '(')
	comma := strings.IndexByte(line, ',')
	closing := strings.IndexByte(line, ')')

	switch {
	case open == -1:
		return Rule{}, fmt.Errorf("%w: %q: missing '('", ErrMalformed, line)
	case comma == -1:
		return Rule{}, fmt.Errorf("%w: %q: missing ','", ErrMalformed, line)
	case closing == -1:
		return Rule{}, fmt.Errorf("%w: %q: missing ')'", ErrMalformed, line)
	case !(open < comma && comma < closing):
		return Rule{}, fmt.Errorf("%w: %q: delimiters out of order", ErrMalformed, line)
	}

	return Rule{
		Name:  line[open+1 : comma],
		Value: line[comma+1 : closing],
		Kind:  kind,
	}, nil
}

// MustParse parses a rule line and panics if there's an error.
func MustParse(line string) Rule {
	r, err := Parse(line)
	if err != nil {
		panic(err)
	}

	return r
}

// String returns the preference file serialization of the rule, which is the
// same for every [Kind].
func (r Rule) String() string {
	return "user_pref(" + r.Name + "," + r.Value + ");"
}

// Set holds the rules loaded from a rule file, in file order.
type Set struct {
	Added   []Rule
	Deleted []Rule
}

// Empty reports whether the set has no add and no delete rules.
func (s *Set) Empty() bool {
	return len(s.Added) == 0 && len(s.Deleted) == 0
}

// ParseSet parses the contents of a rule file. Lines are separated by `\n`
// and empty lines are skipped. The first malformed add or delete line stops
// parsing.
func ParseSet(data string) (*Set, error) {
	s := &Set{}

	for i, line := range strings.Split(data, "\n") {
		if line == "" {
			continue
		}

		r, err := Parse(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		switch r.Kind {
		case KindAdd:
			s.Added = append(s.Added, r)
		case KindDelete:
			s.Deleted = append(s.Deleted, r)
		case KindUnknown:
			slog.Debug("ignore rule line", slog.Int("line", i+1))
		}
	}

	return s, nil
}

// Load reads and parses the rule file at path. A missing file is not an
// error; it results in an empty [Set].
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: Rule file path is user input.
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("rule file does not exist", slog.String("path", path))

		return &Set{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read rule file: %w", err)
	}

	s, err := ParseSet(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse rule file %q: %w", path, err)
	}

	slog.Debug("loaded rules",
		slog.String("path", path),
		slog.Int("add", len(s.Added)),
		slog.Int("delete", len(s.Deleted)),
	)

	return s, nil
}
