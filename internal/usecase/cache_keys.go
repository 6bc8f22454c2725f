package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

func normalizeLookupEmail(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return s
}

// ProfileLookupCacheKey hashes the normalized email so addresses never
// appear verbatim in cache keys.
func ProfileLookupCacheKey(email string) string {
	sum := sha256.Sum256([]byte(normalizeLookupEmail(email)))
	return "profiles:lookup:" + hex.EncodeToString(sum[:])
}

// DossierAutoKey marks one (owner, contact) pair as having auto-generated
// a summary within the current session window.
func DossierAutoKey(ownerID uuid.UUID, contactID uuid.UUID) string {
	return "dossier:auto:" + ownerID.String() + ":" + contactID.String()
}
