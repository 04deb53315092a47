package assemble

import (
	"strings"

	"github.com/oshokin/delivery-flow/internal/domain/flow"
)

// Response types.
const (
	responseNone          = "None"
	responseAcceptDecline = "Accept/Decline"
)

// acceptSynonyms maps accept tokens to their badge phrase.
//
//nolint:gochecknoglobals // Immutable lookup table.
var acceptSynonyms = map[string]string{
	"accept":       "Accept",
	"accepted":     "Accept",
	"acknowledge":  "Acknowledge",
	"acknowledged": "Acknowledge",
}

// declinePhrases are ordered by precedence: Decline > Reject > Escalate.
//
//nolint:gochecknoglobals // Immutable lookup table.
var declinePhrases = []struct {
	phrase string
	tokens []string
}{
	{"Decline", []string{"decline", "declined"}},
	{"Reject", []string{"reject", "rejected"}},
	{"Escalate", []string{"escalate", "escalated"}},
}

//nolint:gochecknoglobals // Immutable lookup table.
var callBackTokens = map[string]struct{}{
	"call back": {},
	"callback":  {},
}

// responseOptions is the parsed response-option list.
type responseOptions struct {
	// accept is the accept badge phrase, empty when no accept synonym is present.
	accept string
	// decline is the decline badge phrase, empty when no decline synonym is present.
	decline string
	// callBack reports a "Call Back" token.
	callBack bool
}

// parseResponseOptions matches comma-separated tokens against the synonym sets.
func parseResponseOptions(s string) responseOptions {
	var (
		opts    responseOptions
		present = make(map[string]struct{})
	)

	for _, token := range flow.SplitResponseOptions(s) {
		token = strings.ToLower(strings.Join(strings.Fields(token), " "))
		present[token] = struct{}{}

		if phrase, ok := acceptSynonyms[token]; ok && opts.accept == "" {
			opts.accept = phrase
		}

		if _, ok := callBackTokens[token]; ok {
			opts.callBack = true
		}
	}

	for _, candidate := range declinePhrases {
		if containsAny(present, candidate.tokens) {
			opts.decline = candidate.phrase

			break
		}
	}

	return opts
}

// responseParameters emits the response family in contract order.
func responseParameters(s string) []flow.ParameterAttribute {
	opts := parseResponseOptions(s)
	if opts.accept == "" && opts.decline == "" {
		return []flow.ParameterAttribute{parameter("responseType", flow.Literal(responseNone))}
	}

	acceptPhrase := opts.accept
	if acceptPhrase == "" {
		acceptPhrase = acceptSynonyms["accept"]
	}

	params := []flow.ParameterAttribute{parameter("responseType", flow.Literal(responseAcceptDecline))}

	if opts.callBack {
		params = append(params, parameter("callbackNumber", flow.Literal("#{bed.room.callback_number}")))
	}

	params = append(params, parameter("accept", flow.Literal("Accepted")))

	if opts.callBack {
		params = append(params, parameter("acceptAndCall", flow.Literal("Call Back")))
	}

	params = append(params, parameter("acceptBadgePhrases", flow.Literal([]string{acceptPhrase})))

	if opts.decline != "" {
		params = append(params,
			parameter("decline", flow.Literal("Decline Primary")),
			parameter("declineBadgePhrases", flow.Literal([]string{opts.decline})),
		)
	}

	return append(params,
		parameter("respondingLine", flow.Literal("responses.line.number")),
		parameter("respondingUser", flow.Literal("responses.usr.login")),
		parameter("responsePath", flow.Literal("responses.action")),
	)
}

func containsAny(set map[string]struct{}, tokens []string) bool {
	for _, token := range tokens {
		if _, ok := set[token]; ok {
			return true
		}
	}

	return false
}
