package hash

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var lowerHex64 = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestDigestKnownVectors(t *testing.T) {
	t.Parallel()

	hasher := SHA256{}
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", hasher.Digest(""))
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", hasher.Digest("abc"))
}

func TestDigestIsDeterministicFixedLengthLowerHex(t *testing.T) {
	t.Parallel()

	hasher := SHA256{}
	for _, input := range []string{"", "password", "pässwörd 🎲", string(make([]byte, 4096))} {
		digest := hasher.Digest(input)
		assert.Regexp(t, lowerHex64, digest)
		assert.Equal(t, digest, hasher.Digest(input))
	}
	assert.NotEqual(t, hasher.Digest("password"), hasher.Digest("Password"))
}
