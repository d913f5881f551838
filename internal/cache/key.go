package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

type keyInput struct {
	Op    string   `json:"op"`
	Parts []string `json:"parts"`
}

// Key derives a stable cache key from an operation tag and its inputs.
func Key(op string, parts ...string) string {
	op = strings.TrimSpace(op)
	b, _ := json.Marshal(keyInput{Op: op, Parts: parts})
	sum := sha256.Sum256(b)
	return "ai:" + op + ":" + hex.EncodeToString(sum[:])
}
