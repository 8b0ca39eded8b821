package entity

import "encoding/json"

// DefaultUserScope is the implicit single-user preference scope. Every
// preference operation carries a scope so multi-user support stays a data
// change rather than a rearchitecture.
const DefaultUserScope = "default"

// Preference is one (scope, key) -> serialized value mapping.
type Preference struct {
	UserID string
	Key    string
	Value  json.RawMessage
}

// UserScopeOrDefault falls back to the implicit scope for empty identifiers.
func UserScopeOrDefault(userID string) string {
	if userID == "" {
		return DefaultUserScope
	}
	return userID
}
