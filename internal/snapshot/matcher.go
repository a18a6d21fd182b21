package snapshot

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/cluster"
)

// DefaultPattern marks the snapshots taken by the application-consistent
// backup tooling ("NONE-", "LH-" and "FREEZE-" prefixes).
const DefaultPattern = "^(NONE|LH|FREEZE)"

// Matcher is the naming predicate that marks a snapshot as significant.
// Matching is always anchored at the start of the snapshot name.
type Matcher struct {
	expr *regexp.Regexp
}

// NewMatcher compiles pattern, anchoring it at the start of the name.
// An empty pattern falls back to DefaultPattern.
func NewMatcher(pattern string) (*Matcher, error) {
	if strings.TrimSpace(pattern) == "" {
		pattern = DefaultPattern
	}

	re, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot pattern '%s': %w", pattern, err)
	}
	return &Matcher{expr: re}, nil
}

func MustMatcher(pattern string) *Matcher {
	m, err := NewMatcher(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

// Match reports whether the snapshot name carries the naming convention.
func (m *Matcher) Match(s cluster.Snapshot) bool {
	return m.expr.MatchString(s.Name)
}

// String returns the effective (anchored) expression.
func (m *Matcher) String() string {
	return m.expr.String()
}
