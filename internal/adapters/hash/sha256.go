package hash

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/bnema/ludoteca-cli/internal/ports"
)

// SHA256 pre-hashes passwords before they leave the process. It only keeps
// the raw secret off the wire and is no substitute for TLS.
type SHA256 struct{}

var _ ports.PasswordHasher = SHA256{}

func (SHA256) Digest(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
