package bencode

import (
	"encoding/binary"

	"github.com/dchest/siphash"
)

// Hash returns the keyed SipHash-2-4 of the canonical encoding of v. Values
// that are Equal hash equal, independent of how they were built or whether
// their strings are borrowed.
func (v Value) Hash(key [16]byte) uint64 {
	k0 := binary.LittleEndian.Uint64(key[:8])
	k1 := binary.LittleEndian.Uint64(key[8:])
	return siphash.Hash(k0, k1, v.Encode())
}
