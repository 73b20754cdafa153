package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// graphqlRequest is the POST /query payload.
type graphqlRequest struct {
	Query     string                     `json:"query"`
	Variables map[string]json.RawMessage `json:"variables"`
}

// graphqlError is one entry of the errors array in the response envelope.
type graphqlError struct {
	Message string `json:"message"`
}

// graphqlResponse is the response envelope. Data maps the top-level field
// name to its resolved value; Errors is only present when resolution failed.
type graphqlResponse struct {
	Data   map[string]any `json:"data,omitempty"`
	Errors []graphqlError `json:"errors,omitempty"`
}

var (
	errEmptyDocument   = errors.New("empty query document")
	errNoSelection     = errors.New("query document has no selection set")
	errNoField         = errors.New("query document selects no field")
	errMutationForbids = errors.New("operation must be a mutation")
)

// operation is the result of parsing a GraphQL document: the operation type
// and the first top-level field, which is what the dispatch switches on.
type operation struct {
	Mutation bool
	Field    string
}

// parseDocument extracts the operation type and the first top-level field
// from a GraphQL document. The server's schema is closed (a fixed set of
// fields, one selected per request), so a full GraphQL parser is not needed:
// the document is scanned up to the first field name and the rest — selection
// sets, inline arguments, fragments — is ignored. Variables always arrive in
// the request's variables map.
func parseDocument(doc string) (operation, error) {
	var op operation

	s := strings.TrimSpace(doc)
	if s == "" {
		return op, errEmptyDocument
	}

	// Operation type keyword is optional; a bare "{...}" is a query.
	if rest, ok := cutKeyword(s, "mutation"); ok {
		op.Mutation = true
		s = rest
	} else if rest, ok := cutKeyword(s, "query"); ok {
		s = rest
	}

	// Skip operation name and variable definitions up to the selection set.
	brace := strings.IndexByte(s, '{')
	if brace < 0 {
		return op, errNoSelection
	}
	s = s[brace+1:]

	field := leadingIdent(strings.TrimSpace(s))
	if field == "" {
		return op, errNoField
	}
	op.Field = field
	return op, nil
}

// cutKeyword strips a leading keyword when it is followed by a non-identifier
// character, so a field named "queryStatus" is not mistaken for the keyword.
func cutKeyword(s, kw string) (string, bool) {
	if !strings.HasPrefix(s, kw) {
		return s, false
	}
	rest := s[len(kw):]
	if rest != "" && isIdentRune(rune(rest[0])) {
		return s, false
	}
	return rest, true
}

// leadingIdent returns the identifier at the start of s, if any.
func leadingIdent(s string) string {
	for i, r := range s {
		if !isIdentRune(r) {
			return s[:i]
		}
	}
	return s
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// decodeVariable unmarshals the first variable present under one of the given
// keys into target. Clients are inconsistent about variable naming across
// mutations ("input" vs the argument name), so each resolver lists the keys
// it accepts.
func decodeVariable(vars map[string]json.RawMessage, target any, keys ...string) error {
	for _, k := range keys {
		raw, ok := vars[k]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return fmt.Errorf("variable %q: %w", k, err)
		}
		return nil
	}
	return fmt.Errorf("missing variable %q", keys[0])
}
