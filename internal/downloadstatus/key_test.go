package downloadstatus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tissueplus/tissue/internal/domain"
)

func TestExtractNumsDropsBlanks(t *testing.T) {
	videos := []domain.Video{
		{Num: "ABC-123"},
		{Num: ""},
		{Num: "DEF-456", Title: "second"},
		{Num: "   "},
	}

	assert.Equal(t, []string{"ABC-123", "DEF-456"}, ExtractNums(videos))
}

func TestExtractNumsKeepsDuplicatesAndOrder(t *testing.T) {
	videos := []domain.Video{{Num: "B-2"}, {Num: "A-1"}, {Num: "B-2"}}

	assert.Equal(t, []string{"B-2", "A-1", "B-2"}, ExtractNums(videos))
}

func TestExtractNumsEmpty(t *testing.T) {
	assert.Empty(t, ExtractNums[domain.Video](nil))
}

func TestBatchKeyIgnoresOrder(t *testing.T) {
	a := BatchKey([]string{"DEF-456", "ABC-123"})
	b := BatchKey([]string{"ABC-123", "DEF-456"})

	assert.Equal(t, a, b)
	assert.Equal(t, `["ABC-123","DEF-456"]`, a)
}

func TestBatchKeyDoesNotMutateInput(t *testing.T) {
	nums := []string{"b", "a"}
	BatchKey(nums)
	assert.Equal(t, []string{"b", "a"}, nums)
}

func TestBatchKeyDistinguishesContent(t *testing.T) {
	assert.NotEqual(t, BatchKey([]string{"A-1"}), BatchKey([]string{"A-1", "A-1"}))
	assert.NotEqual(t, BatchKey(nil), BatchKey([]string{""}))
	assert.Equal(t, "[]", BatchKey(nil))
}
