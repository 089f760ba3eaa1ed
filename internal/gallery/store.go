package gallery

import (
	"sync"

	"live-foto-event-back/internal/model"
)

// Store — общая коллекция фотографий активного события.
// Единственная точка мутации для пайплайна загрузки и realtime-реконсилятора:
// обе стороны ходят через Add/Remove/Replace, поэтому дедупликация
// оптимистичных записей и широковещательных эхо сосредоточена здесь.
//
// Порядок хранения — новые записи в начале (как ожидает лента).
type Store struct {
	mu      sync.RWMutex
	records []model.PhotoRecord
	present map[string]struct{}
	removed map[string]struct{} // id, удалённые до того, как их add стал виден
	subs    map[int]func()
	nextSub int
}

func NewStore() *Store {
	return &Store{
		present: make(map[string]struct{}),
		removed: make(map[string]struct{}),
		subs:    make(map[int]func()),
	}
}

// Add вставляет запись, если записи с таким id ещё нет.
// Повторный Add с тем же id — no-op: так гасится эхо собственной
// загрузки, прилетающее из канала после подтверждения бэкендом.
// Add записи, для которой уже видели Remove, — тоже no-op,
// чтобы запоздавший add не воскрешал удалённое фото.
func (s *Store) Add(rec model.PhotoRecord) bool {
	s.mu.Lock()
	if _, ok := s.present[rec.ID]; ok {
		s.mu.Unlock()
		return false
	}
	if _, ok := s.removed[rec.ID]; ok {
		s.mu.Unlock()
		return false
	}
	s.records = append([]model.PhotoRecord{rec}, s.records...)
	s.present[rec.ID] = struct{}{}
	s.mu.Unlock()

	s.notify()
	return true
}

// Remove удаляет запись по id. Отсутствующий id — не ошибка:
// удаление могло обогнать добавление, поэтому id запоминается,
// и последующий Add его уже не примет.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	s.removed[id] = struct{}{}
	if _, ok := s.present[id]; !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.present, id)
	for i, rec := range s.records {
		if rec.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.notify()
	return true
}

// Replace атомарно заменяет временную запись на подтверждённую,
// сохраняя её позицию в списке. Если временной записи уже нет
// (фото успели удалить), постоянная не вставляется. Если постоянный id
// успели удалить через канал, временная запись просто убирается.
func (s *Store) Replace(tempID string, rec model.PhotoRecord) bool {
	s.mu.Lock()
	pos := -1
	for i, r := range s.records {
		if r.ID == tempID {
			pos = i
			break
		}
	}
	if pos < 0 {
		s.mu.Unlock()
		return false
	}
	delete(s.present, tempID)
	if _, gone := s.removed[rec.ID]; gone {
		s.records = append(s.records[:pos], s.records[pos+1:]...)
		s.mu.Unlock()
		s.notify()
		return false
	}
	if _, dup := s.present[rec.ID]; dup {
		// Постоянная запись уже пришла через канал — временную убираем
		s.records = append(s.records[:pos], s.records[pos+1:]...)
		s.mu.Unlock()
		s.notify()
		return true
	}
	s.records[pos] = rec
	s.present[rec.ID] = struct{}{}
	s.mu.Unlock()

	s.notify()
	return true
}

// Restore возвращает запись после неудавшегося удаления (откат).
// В отличие от Add снимает tombstone, оставленный оптимистичным Remove.
func (s *Store) Restore(rec model.PhotoRecord) {
	s.mu.Lock()
	delete(s.removed, rec.ID)
	if _, ok := s.present[rec.ID]; ok {
		s.mu.Unlock()
		return
	}
	s.records = append([]model.PhotoRecord{rec}, s.records...)
	s.present[rec.ID] = struct{}{}
	s.mu.Unlock()

	s.notify()
}

// Get возвращает запись по id
func (s *Store) Get(id string) (model.PhotoRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.present[id]; !ok {
		return model.PhotoRecord{}, false
	}
	for _, rec := range s.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return model.PhotoRecord{}, false
}

// Snapshot возвращает копию текущей коллекции (новые в начале)
func (s *Store) Snapshot() []model.PhotoRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.PhotoRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Subscribe регистрирует колбэк, вызываемый после каждой мутации.
// Возвращает функцию отписки.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// notify зовёт подписчиков вне блокировки, чтобы они могли
// читать Snapshot из колбэка
func (s *Store) notify() {
	s.mu.RLock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}
