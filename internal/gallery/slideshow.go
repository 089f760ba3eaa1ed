package gallery

import (
	"context"
	"sync"
	"time"
)

// Slideshow — автолистающийся курсор по коллекции.
// Сам коллекцию не хранит: размер передаётся на каждом тике,
// так курсор не может разойтись со стором.
type Slideshow struct {
	mu     sync.Mutex
	cursor int
}

func (s *Slideshow) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Advance переводит курсор на следующий слайд. Достигнув конца
// коллекции, заворачивается в 0; если коллекция сжалась ниже
// текущего курсора, следующий тик тоже даёт 0, а не панику.
func (s *Slideshow) Advance(size int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if size <= 0 {
		s.cursor = 0
		return 0
	}
	next := s.cursor + 1
	if next >= size {
		next = 0
	}
	s.cursor = next
	return next
}

// Run крутит слайдшоу с заданным интервалом до отмены контекста
func (s *Slideshow) Run(ctx context.Context, interval time.Duration, size func() int, onTick func(int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cursor := s.Advance(size())
			if onTick != nil {
				onTick(cursor)
			}
		}
	}
}
