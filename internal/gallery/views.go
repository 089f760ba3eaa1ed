package gallery

import (
	"sort"
	"time"

	"live-foto-event-back/internal/model"
)

// Производные представления — чистые проекции над снимком стора.
// Состояния не держат: пересчитываются на каждый запрос или по подписке.

// DayBucket — фотографии одного календарного дня
type DayBucket struct {
	Day    time.Time // полночь локального дня
	Photos []model.PhotoRecord
}

// Contributors считает число различных загрузивших
func Contributors(records []model.PhotoRecord) int {
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		seen[rec.UploaderID.String()] = struct{}{}
	}
	return len(seen)
}

// ChronologicalFeed возвращает копию коллекции, отсортированную
// по created_at по убыванию (новые первыми)
func ChronologicalFeed(records []model.PhotoRecord) []model.PhotoRecord {
	feed := make([]model.PhotoRecord, len(records))
	copy(feed, records)
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].CreatedAt.After(feed[j].CreatedAt)
	})
	return feed
}

// DateBuckets группирует коллекцию по календарным дням в заданной
// таймзоне. День берётся локальный, не UTC: снимки по разные стороны
// полуночи UTC, но в одном локальном дне, попадают в одну группу.
// Внутри дня сохраняется хронологический порядок ленты.
func DateBuckets(records []model.PhotoRecord, loc *time.Location) []DayBucket {
	feed := ChronologicalFeed(records)

	var buckets []DayBucket
	for _, rec := range feed {
		local := rec.CreatedAt.In(loc)
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
		if n := len(buckets); n > 0 && buckets[n-1].Day.Equal(day) {
			buckets[n-1].Photos = append(buckets[n-1].Photos, rec)
			continue
		}
		buckets = append(buckets, DayBucket{Day: day, Photos: []model.PhotoRecord{rec}})
	}
	return buckets
}
