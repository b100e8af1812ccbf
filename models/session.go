package models

// SessionTokenKey is the session entry that holds the signed JWT.
const SessionTokenKey = "jwt"
