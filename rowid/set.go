package rowid

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Set is a set of row ids backed by a 32-bit Roaring Bitmap. It is built
// from one or more partition spans and supports the set algebra that
// filter pushdown needs.
//
// Set is not safe for concurrent mutation.
type Set struct {
	rb *roaring.Bitmap
}

// NewSet creates a new empty set.
func NewSet() *Set {
	return &Set{
		rb: roaring.New(),
	}
}

// AddPartition decodes a partition span and adds all its row ids.
func (s *Set) AddPartition(b []byte) error {
	ids, err := Decode(b)
	if err != nil {
		return err
	}

	s.rb.AddMany(ids)

	return nil
}

// Add adds a single row id.
func (s *Set) Add(id uint32) {
	s.rb.Add(id)
}

// Contains checks if a row id is in the set.
func (s *Set) Contains(id uint32) bool {
	return s.rb.Contains(id)
}

// Cardinality returns the number of row ids in the set.
func (s *Set) Cardinality() uint64 {
	return s.rb.GetCardinality()
}

// IsEmpty returns true if the set is empty.
func (s *Set) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Iterate returns an iterator over the set in ascending order.
func (s *Set) Iterate() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// Union adds all row ids of other to the set.
func (s *Set) Union(other *Set) {
	s.rb.Or(other.rb)
}

// Intersect keeps only row ids present in both sets.
func (s *Set) Intersect(other *Set) {
	s.rb.And(other.rb)
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	return &Set{
		rb: s.rb.Clone(),
	}
}
