package types

// AuthProvider identifies the identity provider backing console sign-in.
type AuthProvider string

const (
	AuthProviderSupabase AuthProvider = "supabase"
)
