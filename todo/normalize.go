package todo

import (
	internalstrings "github.com/amonks/taskgraph/internal/strings"
	"github.com/amonks/taskgraph/internal/validation"
)

// ParseCheckPolicy normalizes a user-supplied check policy. Empty input
// selects the default.
func ParseCheckPolicy(value string) (CheckPolicy, error) {
	policy := CheckPolicy(internalstrings.NormalizeLowerTrimSpace(value))
	if policy == "" {
		return CheckRejectBlocked, nil
	}
	if !policy.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidCheckPolicy, CheckPolicy(value), ValidCheckPolicies())
	}
	return policy, nil
}

// NormalizeDesc collapses whitespace in a description.
func NormalizeDesc(desc string) string {
	return internalstrings.NormalizeWhitespace(desc)
}
