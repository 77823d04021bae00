package utils

import (
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const outputIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateOutputID returns a URL-safe identifier for a persisted PDF.
func GenerateOutputID() (string, error) {
	return gonanoid.Generate(outputIDAlphabet, 21)
}

func GenerateRequestID() string {
	return uuid.New().String()
}
