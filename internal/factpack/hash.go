package factpack

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash computes a deterministic digest over every field except Metadata.
// The pack is serialized through an intermediate map so that object keys are
// emitted in sorted order regardless of struct declaration order; identical
// inputs always produce identical digests and any single leaf change produces
// a different one.
func Hash(p *FactPack) string {
	shadow := *p
	shadow.Metadata = Metadata{}

	raw, err := json.Marshal(shadow)
	if err != nil {
		return ""
	}

	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return ""
	}
	delete(generic, "metadata")

	canonical, err := json.Marshal(generic)
	if err != nil {
		return ""
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}
