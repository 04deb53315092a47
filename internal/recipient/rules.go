package recipient

import (
	"regexp"
	"strings"

	"github.com/oshokin/delivery-flow/internal/domain/flow"
)

// keywordRule maps a leading keyword to the destination kind of the text after it.
type keywordRule struct {
	// name identifies the rule in traces and tests.
	name string
	// keyword matches the keyword including trailing colon and blanks.
	keyword *regexp.Regexp
	// kind is the destination produced for the candidate.
	kind flow.DestinationKind
}

// keywordRules are evaluated in order; on equal match positions the earlier rule wins.
//
//nolint:gochecknoglobals // Immutable grammar table.
var keywordRules = []keywordRule{
	{
		name:    "assign",
		keyword: regexp.MustCompile(`(?i)\bv?assign(?:ed)?\b[ \t]*:?[ \t]*`),
		kind:    flow.RoleAssignment,
	},
	{
		name:    "group",
		keyword: regexp.MustCompile(`(?i)\bv?group[ \t]*:[ \t]*`),
		kind:    flow.GroupAssignment,
	},
}

const (
	// rawGroupMarker prefixes identifiers that are group destinations already.
	rawGroupMarker = "g-"
	// minCandidateLength is the shortest run accepted as a role or group name.
	minCandidateLength = 2
	// delimiters separate directives on one line.
	delimiters = ",;\n"
	// candidateCutset is trimmed from both ends of a candidate.
	candidateCutset = " \t\r:-.,;"
)

var (
	// bracketPattern matches bracketed context tokens such as "[Room]".
	bracketPattern = regexp.MustCompile(`\[[^\]]*\]`)
	// contextWordPattern captures the text following the "Room" context word.
	contextWordPattern = regexp.MustCompile(`(?i)\broom\b[\s:]*(.+)$`)
)

// keywordMatch is the earliest keyword occurrence in a segment.
type keywordMatch struct {
	rule keywordRule
	// rest is the text after the keyword.
	rest string
}

// findKeyword returns the earliest keyword in the segment.
func findKeyword(segment string) (keywordMatch, bool) {
	var (
		best  keywordMatch
		start = -1
	)

	for _, rule := range keywordRules {
		loc := rule.keyword.FindStringIndex(segment)
		if loc == nil {
			continue
		}

		if start == -1 || loc[0] < start {
			start = loc[0]
			best = keywordMatch{rule: rule, rest: segment[loc[1]:]}
		}
	}

	return best, start != -1
}

// firstRun returns the text up to the first delimiter.
func firstRun(s string) string {
	if i := strings.IndexAny(s, delimiters); i >= 0 {
		return s[:i]
	}

	return s
}

// stripBrackets removes bracketed context tokens and surrounding punctuation.
func stripBrackets(s string) string {
	s = bracketPattern.ReplaceAllString(s, " ")

	return strings.Trim(strings.Join(strings.Fields(s), " "), candidateCutset)
}

// afterContextWord returns the text after a "Room" context word, if any.
func afterContextWord(s string) (string, bool) {
	matches := contextWordPattern.FindStringSubmatch(s)
	if matches == nil {
		return s, false
	}

	rest := strings.Trim(matches[1], candidateCutset)
	if rest == "" {
		return s, false
	}

	return rest, true
}

// isRawGroup reports whether the candidate carries the group-destination marker.
func isRawGroup(s string) bool {
	return len(s) > len(rawGroupMarker) && strings.EqualFold(s[:len(rawGroupMarker)], rawGroupMarker)
}
