package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strconv"
)

// keyVersion is bumped whenever the stored result format changes, so old
// entries are ignored instead of misread.
const keyVersion = 1

// Keyer derives cache keys from serialized graphs.
type Keyer interface {
	// MatchKey returns the key for the match result of src onto dst. The
	// order of the arguments matters: a mapping is directional.
	MatchKey(src, dst []byte) string

	// ProfileKey returns the key for the profile summary of one graph.
	ProfileKey(g []byte) string
}

// DefaultKeyer hashes the full serialized graphs.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// MatchKey returns "match:v<version>:" followed by a digest of both graphs.
func (DefaultKeyer) MatchKey(src, dst []byte) string {
	return "match:" + versionTag + ":" + digest(src, dst)
}

// ProfileKey returns "profile:v<version>:" followed by a digest of g.
func (DefaultKeyer) ProfileKey(g []byte) string {
	return "profile:" + versionTag + ":" + digest(g)
}

var versionTag = "v" + strconv.Itoa(keyVersion)

// digest hashes parts with SHA-256. Every part is prefixed with its length,
// so moving bytes from one graph to the other always changes the digest.
func digest(parts ...[]byte) string {
	h := sha256.New()
	var n [8]byte
	for _, p := range parts {
		binary.BigEndian.PutUint64(n[:], uint64(len(p)))
		h.Write(n[:])
		h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}
