package gallery

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"live-foto-event-back/internal/model"
)

func recordAt(id string, uploader uuid.UUID, createdAt time.Time) model.PhotoRecord {
	return model.PhotoRecord{
		ID:         id,
		UploaderID: uploader,
		CreatedAt:  createdAt,
	}
}

func TestContributorsCountsDistinctUploaders(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	now := time.Now()

	records := []model.PhotoRecord{
		recordAt("1", alice, now),
		recordAt("2", alice, now),
		recordAt("3", bob, now),
	}
	assert.Equal(t, 2, Contributors(records))
	assert.Equal(t, 0, Contributors(nil))
}

func TestChronologicalFeedSortsDescending(t *testing.T) {
	u := uuid.New()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	records := []model.PhotoRecord{
		recordAt("old", u, base),
		recordAt("new", u, base.Add(2*time.Hour)),
		recordAt("mid", u, base.Add(time.Hour)),
	}
	feed := ChronologicalFeed(records)
	require.Len(t, feed, 3)
	assert.Equal(t, "new", feed[0].ID)
	assert.Equal(t, "mid", feed[1].ID)
	assert.Equal(t, "old", feed[2].ID)

	// Исходный срез не трогаем
	assert.Equal(t, "old", records[0].ID)
}

func TestDateBucketsUseLocalDay(t *testing.T) {
	u := uuid.New()
	loc := time.FixedZone("UTC-5", -5*60*60)

	// Разные UTC-даты, но один локальный день в UTC-5
	late := time.Date(2024, 3, 1, 23, 50, 0, 0, time.UTC)  // 01.03 18:50 локально
	early := time.Date(2024, 3, 2, 0, 5, 0, 0, time.UTC)   // 01.03 19:05 локально
	next := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)   // 02.03 07:00 локально

	records := []model.PhotoRecord{
		recordAt("late", u, late),
		recordAt("early", u, early),
		recordAt("next", u, next),
	}
	buckets := DateBuckets(records, loc)
	require.Len(t, buckets, 2)

	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, loc), buckets[0].Day)
	require.Len(t, buckets[0].Photos, 1)
	assert.Equal(t, "next", buckets[0].Photos[0].ID)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, loc), buckets[1].Day)
	require.Len(t, buckets[1].Photos, 2)
	// Внутри дня — хронологический порядок ленты (новые первыми)
	assert.Equal(t, "early", buckets[1].Photos[0].ID)
	assert.Equal(t, "late", buckets[1].Photos[1].ID)
}

func TestDateBucketsEmpty(t *testing.T) {
	assert.Empty(t, DateBuckets(nil, time.UTC))
}
