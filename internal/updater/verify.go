package updater

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/updraft-io/updraft/pkg/manifest"
)

// VerifyChecksum checks downloaded archive bytes against the checksum
// advertised in the extension metadata. A nil checksum verifies trivially;
// manifests are not required to carry one.
func VerifyChecksum(data []byte, sum *manifest.Checksum) error {
	if sum == nil {
		return nil
	}
	if !strings.EqualFold(sum.Algorithm, "sha256") {
		return fmt.Errorf("unsupported checksum algorithm %q", sum.Algorithm)
	}

	digest := sha256.Sum256(data)
	got := hex.EncodeToString(digest[:])
	if !strings.EqualFold(got, sum.Value) {
		return fmt.Errorf("checksum mismatch: manifest says %s, archive is %s", sum.Value, got)
	}
	return nil
}
