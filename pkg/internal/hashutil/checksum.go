package hashutil

import (
	"crypto/sha256"
	"fmt"
)

// Checksum returns the SHA256 checksum of data in "sha256:<hex>" form
func Checksum(data []byte) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256(data))
}
