package logging

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// GenerateRequestID creates an identifier for one admin request.
// Format: YYYYMMDD_HHMMSS_xxxxxxxx (timestamp + 8 random hex chars)
// Example: 20261017_205106_a7b3c91e
func GenerateRequestID() string {
	random := make([]byte, 4)
	_, _ = rand.Read(random)
	return time.Now().UTC().Format("20060102_150405") + "_" + hex.EncodeToString(random)
}

// ShortRequestID extracts the random suffix of a request ID.
// Example: "20261017_205106_a7b3c91e" -> "a7b3c91e"
func ShortRequestID(requestID string) string {
	const suffixLen = 8
	if len(requestID) < suffixLen {
		return requestID
	}
	return requestID[len(requestID)-suffixLen:]
}
