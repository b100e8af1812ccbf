package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashString computes an HMAC-SHA256 signature over the given string
// using the provided hash key and returns the result as a hex-encoded string.
//
// Example usage:
//
//	signature := utils.HashString("some data", "my-secret-key")
func HashString(data string, hashKey string) string {
	return hex.EncodeToString(hashBytes([]byte(data), hashKey))
}

// ValidHash reports whether signature is the hex-encoded HMAC-SHA256 of data
// under hashKey. The comparison is constant-time.
func ValidHash(data, hashKey, signature string) bool {
	decoded, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	return hmac.Equal(decoded, hashBytes([]byte(data), hashKey))
}

func hashBytes(data []byte, hashKey string) []byte {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write(data)
	return hasher.Sum(nil)
}
