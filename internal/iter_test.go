package internal

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRange(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]int64{5, 6, 7, 8, 9}, slices.Collect(Range(5, 9)))
	assert.Equal([]int64{3}, slices.Collect(Range(3, 3)))
	assert.Nil(slices.Collect(Range(1, 0)))
}

func TestProduct(t *testing.T) {
	assert := assert.New(t)

	var pairs [][2]int64
	for a, b := range Product(Range(0, 2), Range(0, 1)) {
		pairs = append(pairs, [2]int64{a, b})
	}
	assert.Equal([][2]int64{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 0}, {2, 1}}, pairs)

	count := 0
	for range Product(Range(0, 99), Range(0, 99)) {
		count++
		if count == 10 {
			break
		}
	}
	assert.Equal(10, count)
}

func TestPermutations(t *testing.T) {
	assert := assert.New(t)

	perms := slices.Collect(Permutations([]string{"a", "b", "c"}))
	assert.Equal([][]string{
		{"a", "b", "c"},
		{"a", "c", "b"},
		{"b", "a", "c"},
		{"b", "c", "a"},
		{"c", "a", "b"},
		{"c", "b", "a"},
	}, perms)

	count := 0
	for perm := range Permutations([]int64{5, 6, 7, 8, 9}) {
		assert.Equal(5, len(perm))
		count++
	}
	assert.Equal(120, count)

	// Positions, not values, are permuted.
	assert.Equal(2, len(slices.Collect(Permutations([]int{1, 1}))))

	assert.Equal([][]int{{}}, slices.Collect(Permutations([]int{})))
}
