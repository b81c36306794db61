package entity

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Bytes is a byte sequence that the distributor API encodes as a JSON array
// of numbers (0-255), e.g. a Merkle root or one proof node.
type Bytes []byte

func (b Bytes) MarshalJSON() ([]byte, error) {
	nums := make([]int, len(b))
	for i, v := range b {
		nums[i] = int(v)
	}
	out, err := json.Marshal(nums)
	return out, errors.WithStack(err)
}

func (b *Bytes) UnmarshalJSON(data []byte) error {
	var nums []int
	if err := json.Unmarshal(data, &nums); err != nil {
		return errors.Wrap(err, "byte sequence must be a JSON array of numbers")
	}
	out := make([]byte, len(nums))
	for i, v := range nums {
		if v < 0 || v > 255 {
			return errors.Errorf("byte sequence element %d out of range: %d", i, v)
		}
		out[i] = byte(v)
	}
	*b = out
	return nil
}
