package table

import (
	xxhash "github.com/cespare/xxhash/v2"
)

const (
	indexCapacityFactor = 1.5
	indexLoadFactor     = 0.75
	indexGrowthFactor   = 2
	hashSignBitMask     = 0x7FFFFFFFFFFFFFFF
)

// joinIndex maps a join-key value to the ordered list of row positions in the
// right table sharing that value. It is built once per join call and
// discarded on return. Buckets are addressed by xxhash of the key.
type joinIndex struct {
	buckets  [][]indexEntry
	capacity int
	size     int
}

type indexEntry struct {
	key  string
	rows []int
}

// newJoinIndex creates an index sized for the estimated number of distinct keys.
func newJoinIndex(estimatedSize int) *joinIndex {
	capacity := nextPowerOfTwo(int(float64(estimatedSize) * indexCapacityFactor))
	return &joinIndex{
		buckets:  make([][]indexEntry, capacity),
		capacity: capacity,
	}
}

// Put appends a row position to the key's bucket, preserving insertion order.
func (ix *joinIndex) Put(key string, row int) {
	bucketIdx := ix.bucketFor(key, ix.capacity)

	for i := range ix.buckets[bucketIdx] {
		if ix.buckets[bucketIdx][i].key == key {
			ix.buckets[bucketIdx][i].rows = append(ix.buckets[bucketIdx][i].rows, row)
			return
		}
	}

	ix.buckets[bucketIdx] = append(ix.buckets[bucketIdx], indexEntry{
		key:  key,
		rows: []int{row},
	})
	ix.size++

	if float64(ix.size) > float64(ix.capacity)*indexLoadFactor {
		ix.resize()
	}
}

// Get retrieves the row positions recorded for a key, in insertion order.
func (ix *joinIndex) Get(key string) ([]int, bool) {
	bucketIdx := ix.bucketFor(key, ix.capacity)

	for _, entry := range ix.buckets[bucketIdx] {
		if entry.key == key {
			return entry.rows, true
		}
	}
	return nil, false
}

func (ix *joinIndex) bucketFor(key string, capacity int) int {
	hash := xxhash.Sum64String(key)
	return int((hash & hashSignBitMask) % uint64(capacity))
}

// resize doubles the capacity and rehashes all entries.
func (ix *joinIndex) resize() {
	newCapacity := ix.capacity * indexGrowthFactor
	newBuckets := make([][]indexEntry, newCapacity)

	for _, bucket := range ix.buckets {
		for _, entry := range bucket {
			idx := ix.bucketFor(entry.key, newCapacity)
			newBuckets[idx] = append(newBuckets[idx], entry)
		}
	}

	ix.buckets = newBuckets
	ix.capacity = newCapacity
}

// nextPowerOfTwo returns the next power of two >= n.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	power := 1
	for power < n {
		power <<= 1
	}
	return power
}
