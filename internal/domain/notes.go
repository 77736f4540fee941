package domain

import (
	"encoding/json"
	"fmt"
	"math/bits"
)

// NoteSet holds a cell's candidate digits 1-9 as a 9-bit mask.
// Bit i represents digit i+1 (bit 0 = digit 1, bit 8 = digit 9).
// The zero value is the empty set; values copy, so handing a NoteSet
// to a caller can never expose internal state.
type NoteSet uint16

const noteMask NoteSet = 0x1FF

// NoteInRange reports whether n is a legal candidate digit.
func NoteInRange(n uint8) bool { return n >= 1 && n <= 9 }

// Has reports whether digit n is in the set.
func (s NoteSet) Has(n uint8) bool {
	if !NoteInRange(n) {
		return false
	}
	return s&(1<<(n-1)) != 0
}

// Toggle returns s with digit n added if absent, removed if present.
func (s NoteSet) Toggle(n uint8) NoteSet {
	return s ^ (1 << (n - 1))
}

// Count returns the number of digits in the set.
func (s NoteSet) Count() int { return bits.OnesCount16(uint16(s & noteMask)) }

// Empty reports whether the set holds no digits.
func (s NoteSet) Empty() bool { return s&noteMask == 0 }

// Values returns the digits in the set in ascending order.
func (s NoteSet) Values() []uint8 {
	out := make([]uint8, 0, s.Count())
	for n := uint8(1); n <= 9; n++ {
		if s.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

// MarshalJSON encodes the set as a sorted array of digits; sets are
// not JSON-native, so the wire shape is e.g. [1,4,9].
func (s NoteSet) MarshalJSON() ([]byte, error) {
	// []uint8 is []byte, which encoding/json emits as base64; go
	// through []int to get the documented digit-array shape.
	vals := s.Values()
	ints := make([]int, len(vals))
	for i, n := range vals {
		ints[i] = int(n)
	}
	return json.Marshal(ints)
}

// UnmarshalJSON decodes a digit array, rejecting out-of-range entries.
func (s *NoteSet) UnmarshalJSON(data []byte) error {
	var vals []int
	if err := json.Unmarshal(data, &vals); err != nil {
		return err
	}
	var set NoteSet
	for _, n := range vals {
		if n < 1 || n > 9 {
			return fmt.Errorf("note %d out of range [1,9]", n)
		}
		set |= 1 << (n - 1)
	}
	*s = set
	return nil
}
