package gallery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlideshowWrapsAround(t *testing.T) {
	var s Slideshow
	assert.Equal(t, 1, s.Advance(3))
	assert.Equal(t, 2, s.Advance(3))
	assert.Equal(t, 0, s.Advance(3), "после последнего слайда курсор заворачивается в 0")
}

func TestSlideshowClampsWhenCollectionShrinks(t *testing.T) {
	var s Slideshow
	s.Advance(5)
	s.Advance(5)
	s.Advance(5) // курсор 3

	// Коллекция сжалась до 2 — следующий тик не выходит за диапазон
	cursor := s.Advance(2)
	assert.GreaterOrEqual(t, cursor, 0)
	assert.Less(t, cursor, 2)
}

func TestSlideshowEmptyCollection(t *testing.T) {
	var s Slideshow
	assert.Equal(t, 0, s.Advance(0))
	assert.Equal(t, 0, s.Cursor())
}

func TestSlideshowRunTicks(t *testing.T) {
	var s Slideshow
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticks := make(chan int, 16)
	go s.Run(ctx, 5*time.Millisecond, func() int { return 3 }, func(cursor int) {
		select {
		case ticks <- cursor:
		default:
		}
	})

	var got []int
	for len(got) < 4 {
		select {
		case c := <-ticks:
			got = append(got, c)
		case <-time.After(time.Second):
			t.Fatal("slideshow did not tick")
		}
	}
	cancel()

	require.GreaterOrEqual(t, len(got), 4)
	assert.Equal(t, []int{1, 2, 0, 1}, got[:4])
}
