package downloadstatus

import (
	"encoding/json"
	"sort"
	"strings"
)

// Numbered is anything that carries a catalog number
type Numbered interface {
	GetNum() string
}

// ExtractNums returns the non-blank catalog numbers of items in input order.
// Duplicates are kept; the server decides how to treat them.
func ExtractNums[T Numbered](items []T) []string {
	nums := make([]string, 0, len(items))
	for _, item := range items {
		num := item.GetNum()
		if strings.TrimSpace(num) == "" {
			continue
		}
		nums = append(nums, num)
	}
	return nums
}

// BatchKey returns a stable key for a batch of numbers: the sorted batch
// serialized as a JSON array. Two batches with the same content in a
// different order share a key.
func BatchKey(nums []string) string {
	sorted := make([]string, len(nums))
	copy(sorted, nums)
	sort.Strings(sorted)

	// Marshalling a []string cannot fail.
	data, _ := json.Marshal(sorted)
	return string(data)
}
