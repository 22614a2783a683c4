package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Key identifies one batch match computation: a profile at a specific
// content revision, against a specific job set, under a specific scoring
// configuration. The structured form is retained so invalidation
// predicates can match on components; Fingerprint() is the stable hash
// used for storage and logging.
type Key struct {
	ProfileID     string
	ProfileHash   string
	JobIDs        []string
	ConfigVersion string
}

// NewKey builds a cache key with the job id set sorted, so the same batch
// requested in any order maps to one entry.
func NewKey(profileID, profileHash string, jobIDs []string, configVersion string) Key {
	sorted := make([]string, len(jobIDs))
	copy(sorted, jobIDs)
	sort.Strings(sorted)
	return Key{
		ProfileID:     profileID,
		ProfileHash:   profileHash,
		JobIDs:        sorted,
		ConfigVersion: configVersion,
	}
}

// Fingerprint returns the stable hash over (profile content hash, sorted
// job ids, scoring config version). Components and ids are NUL-separated
// so no printable id content can alias another key.
func (k Key) Fingerprint() string {
	h := sha256.New()
	h.Write([]byte(k.ProfileHash))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(k.JobIDs, "\x00")))
	h.Write([]byte{0})
	h.Write([]byte(k.ConfigVersion))
	return hex.EncodeToString(h.Sum(nil))
}

// ContainsJob reports whether the key's job set includes the given id.
func (k Key) ContainsJob(jobID string) bool {
	i := sort.SearchStrings(k.JobIDs, jobID)
	return i < len(k.JobIDs) && k.JobIDs[i] == jobID
}

// MatchProfile returns a predicate matching every entry computed for the
// given profile id, at any content revision. Used by the profile store's
// change notifications.
func MatchProfile(profileID string) func(Key) bool {
	return func(k Key) bool { return k.ProfileID == profileID }
}

// MatchJob returns a predicate matching every entry whose job set includes
// the given job id.
func MatchJob(jobID string) func(Key) bool {
	return func(k Key) bool { return k.ContainsJob(jobID) }
}
