package auth

// Scopes for the screening platform. Tokens carry a subset of these; the
// "area:*" form grants every action within an area.
const (
	// Profile scopes
	ScopeProfilesAll    = "profiles:*"
	ScopeProfilesRead   = "profiles:read"
	ScopeProfilesWrite  = "profiles:write"
	ScopeProfilesDelete = "profiles:delete"

	// Screening scopes
	ScopeScreeningsAll    = "screenings:*"
	ScopeScreeningsRead   = "screenings:read"
	ScopeScreeningsWrite  = "screenings:write"
	ScopeScreeningsDelete = "screenings:delete"

	// Requirement scopes
	ScopeRequirementsAll    = "requirements:*"
	ScopeRequirementsRead   = "requirements:read"
	ScopeRequirementsWrite  = "requirements:write"
	ScopeRequirementsDelete = "requirements:delete"
)

// DefaultRecruiterScopes is the scope set granted on login.
var DefaultRecruiterScopes = []string{
	ScopeProfilesAll,
	ScopeScreeningsAll,
	ScopeRequirementsAll,
}
