package auth

// Principal represents the authenticated identity.
// Intentionally minimal, there is no catch-all Claims map to prevent leakage.
type Principal struct {
	// User identity
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`

	// Authorization
	Roles    []string `json:"roles,omitempty"`
	TenantID string   `json:"tenant_id,omitempty"`

	// Provider session (for active verification)
	SessionID string `json:"session_id,omitempty"`

	// Expiration
	ExpiresAtUnixMs int64 `json:"expires_at_unix_ms"`
}

// HasRole reports whether the principal carries the given role.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
