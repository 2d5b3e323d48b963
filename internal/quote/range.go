package quote

import "fmt"

// TickRange represents an inclusive tick range.
type TickRange struct {
	From int32
	To   int32
}

// SplitTickRange splits a tick range into batches of batchSize ticks.
func SplitTickRange(from, to int32, batchSize uint32) ([]TickRange, error) {
	if batchSize == 0 {
		return nil, fmt.Errorf("batch size must be greater than zero")
	}
	if to < from {
		return nil, fmt.Errorf("to tick must be >= from tick")
	}

	ranges := make([]TickRange, 0)
	start := int64(from)
	for start <= int64(to) {
		remaining := int64(to) - start + 1
		var end int64
		if remaining <= int64(batchSize) {
			end = int64(to)
		} else {
			end = start + int64(batchSize) - 1
		}
		ranges = append(ranges, TickRange{From: int32(start), To: int32(end)})
		if end == int64(to) {
			break
		}
		start = end + 1
	}

	return ranges, nil
}
