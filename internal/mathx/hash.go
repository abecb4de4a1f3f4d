package mathx

// Hash32 mixes a 32-bit input into a well-distributed 32-bit output using
// Murmur-style finalizer avalanching. Stable across versions; no math/rand.
func Hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// DeriveSeed expands a root seed and a per-consumer salt into an int64 noise
// seed. Each layer and sublayer gets its own salt so that no two noise
// sources share phase, and adjacent root seeds land far apart.
func DeriveSeed(root, salt uint32) int64 {
	hi := Hash32(root ^ salt*0x9e3779b1)
	lo := Hash32(hi + salt*0x85ebca6b + 0xc2b2ae35)
	return int64(uint64(hi)<<32 | uint64(lo))
}
