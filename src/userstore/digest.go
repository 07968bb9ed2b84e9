package userstore

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest returns the digest of credential that is held in the authentication
// cache in place of the credential itself.
func Digest(credential string) string {
	sum := blake3.Sum256([]byte(credential))
	return hex.EncodeToString(sum[:])
}
