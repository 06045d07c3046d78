// Package access decides which intents a caller role may dispatch. The
// policy is static and compiled in; roles are matched case-insensitively.
package access

import (
	"strings"

	"ai-portgate-be/pkg/intent"
)

const (
	RoleAdmin    = "ADMIN"
	RoleOperator = "OPERATOR"
	RoleCarrier  = "CARRIER"
)

// bypass intents are allowed for every caller, including roles the policy
// has never heard of. Refusing a help request gains nothing.
var bypass = map[string]struct{}{
	intent.Help:    {},
	intent.Unknown: {},
}

var carrierDenied = map[string]struct{}{
	intent.BlockchainAudit:   {},
	intent.OperatorAnalytics: {},
}

// Allowed reports whether role may dispatch intentName. The role is
// uppercased before lookup so "carrier" and "CARRIER" behave the same.
func Allowed(role, intentName string) bool {
	if _, ok := bypass[intentName]; ok {
		return true
	}
	switch strings.ToUpper(strings.TrimSpace(role)) {
	case RoleAdmin, RoleOperator:
		return true
	case RoleCarrier:
		_, denied := carrierDenied[intentName]
		return !denied
	default:
		return false
	}
}

// AllowedIntents lists every intent role may dispatch, in vocabulary order.
// Used by the help agent to tailor its capability listing.
func AllowedIntents(role string) []string {
	var out []string
	for _, name := range intent.Vocabulary() {
		if Allowed(role, name) {
			out = append(out, name)
		}
	}
	return out
}
