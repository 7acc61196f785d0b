package common

type contextKey string

// AuthInfoKey holds the *models.CustomClaims of an authenticated request.
const AuthInfoKey contextKey = "authInfo"
