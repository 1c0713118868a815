package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFIFO(t *testing.T) {
	q := New[int]()
	assert.False(t, q.Available())

	q.Add(1)
	q.Add(2)
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, 1, q.Pop())
	assert.Equal(t, 2, q.Pop())
	assert.False(t, q.Available())
}

func TestInterleavedAcrossCompaction(t *testing.T) {
	q := New[int]()
	next, want := 0, 0
	for round := 0; round < 50; round++ {
		for i := 0; i < 10; i++ {
			q.Add(next)
			next++
		}
		for i := 0; i < 7; i++ {
			assert.Equal(t, want, q.Pop())
			want++
		}
	}
	for q.Available() {
		assert.Equal(t, want, q.Pop())
		want++
	}
	assert.Equal(t, next, want)
}

func TestPopEmptyPanics(t *testing.T) {
	assert.Panics(t, func() { New[string]().Pop() })
}
