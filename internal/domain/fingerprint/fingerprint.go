// Package fingerprint derives a stable content hash for a profile. Two
// profiles with the same records hash the same regardless of how their JSON
// was laid out on the wire.
package fingerprint

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/gowebpki/jcs"

	"github.com/okian/podium/internal/domain/model"
)

// Size is the length of a fingerprint in hex characters.
const Size = 16

// Of returns the 16 hex character fingerprint of p. The profile is encoded to
// JSON, canonicalized per RFC 8785 and hashed with xxhash64.
func Of(p *model.Profile) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("fingerprint: encode profile: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("fingerprint: canonicalize: %w", err)
	}
	return format(xxhash.Sum64(canonical)), nil
}

// Key joins a profile id and its fingerprint into a dedupe key.
func Key(profileID, fp string) string {
	return profileID + ":" + fp
}

func format(sum uint64) string {
	s := strconv.FormatUint(sum, 16)
	for len(s) < Size {
		s = "0" + s
	}
	return s
}
