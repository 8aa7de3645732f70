package contextkeys

type contextKey string

const (
	IdentityKey contextKey = "CallerIdentity"
)
