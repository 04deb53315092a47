package recipient

import (
	"strings"

	"github.com/oshokin/delivery-flow/internal/domain/flow"
)

// Known holds the role and group vocabularies used for advisory validation.
type Known struct {
	roles  map[string]struct{}
	groups map[string]struct{}
}

// NewKnown builds case-insensitive role and group vocabularies.
func NewKnown(roles, groups []string) Known {
	return Known{
		roles:  toSet(roles),
		groups: toSet(groups),
	}
}

// HasRole reports whether name is a known role, ignoring case.
func (k Known) HasRole(name string) bool {
	_, ok := k.roles[strings.ToLower(name)]

	return ok
}

// HasGroup reports whether name is a known group, ignoring case.
func (k Known) HasGroup(name string) bool {
	_, ok := k.groups[strings.ToLower(name)]

	return ok
}

// Parse interprets one directive. Text after the first delimiter is ignored.
func Parse(directive string, known Known) flow.Destination {
	trimmed := strings.TrimSpace(directive)

	if match, ok := findKeyword(trimmed); ok {
		return parseCandidate(directive, match.rule.kind, firstRun(match.rest), known)
	}

	cleaned := stripBrackets(firstRun(trimmed))
	if isRawGroup(cleaned) {
		return flow.Destination{Kind: flow.RawGroup, Name: cleaned, Valid: true, Source: directive}
	}

	if candidate, ok := afterContextWord(cleaned); ok && len(candidate) >= minCandidateLength {
		return validate(flow.Destination{Kind: flow.RoleAssignment, Name: candidate, Source: directive}, known)
	}

	return passthrough(directive)
}

// ParseAll interprets every directive in text. Lines are parsed
// independently and split on commas and semicolons; blank pieces are skipped.
func ParseAll(text string, known Known) []flow.Destination {
	var result []flow.Destination

	for line := range strings.SplitSeq(text, "\n") {
		for segment := range strings.FieldsFuncSeq(line, isDelimiter) {
			if strings.TrimSpace(segment) == "" {
				continue
			}

			result = append(result, Parse(strings.TrimSpace(segment), known))
		}
	}

	return result
}

// parseCandidate turns the text following a keyword into a destination.
func parseCandidate(source string, kind flow.DestinationKind, run string, known Known) flow.Destination {
	candidate := stripBrackets(run)
	if isRawGroup(candidate) {
		return flow.Destination{Kind: flow.RawGroup, Name: candidate, Valid: true, Source: source}
	}

	if rest, ok := afterContextWord(candidate); ok {
		candidate = rest
	}

	if isRawGroup(candidate) {
		return flow.Destination{Kind: flow.RawGroup, Name: candidate, Valid: true, Source: source}
	}

	if len(candidate) < minCandidateLength {
		return passthrough(source)
	}

	return validate(flow.Destination{Kind: kind, Name: candidate, Source: source}, known)
}

// validate sets the advisory Valid flag.
func validate(d flow.Destination, known Known) flow.Destination {
	switch d.Kind {
	case flow.RoleAssignment:
		d.Valid = known.HasRole(d.Name)
	case flow.GroupAssignment:
		d.Valid = known.HasGroup(d.Name)
	case flow.Passthrough, flow.RawGroup:
	}

	return d
}

func passthrough(source string) flow.Destination {
	return flow.Destination{Kind: flow.Passthrough, Name: source, Source: source}
}

func isDelimiter(r rune) bool {
	return strings.ContainsRune(delimiters, r)
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			set[strings.ToLower(value)] = struct{}{}
		}
	}

	return set
}
