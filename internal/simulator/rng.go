package simulator

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand"
)

// SubStream derives an independent generator for one entity from the run
// seed. Outcomes drawn from it do not depend on how many other entities were
// simulated before it, or on which goroutine ran it.
func SubStream(seed int64, entityID string) *rand.Rand {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(seed))
	h.Write(buf[:])
	h.Write([]byte(entityID))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}
