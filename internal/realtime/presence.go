package realtime

import "sync"

// Presence — счётчик зрителей активного события.
// Набор заполняется только join/leave сообщениями канала; таймаутов
// сам не ведёт — зависших зрителей выселяет сам канал.
// Живёт вместе с подключением: при переподключении начинается с нуля.
type Presence struct {
	mu      sync.RWMutex
	viewers map[string]struct{}
}

func NewPresence() *Presence {
	return &Presence{viewers: make(map[string]struct{})}
}

func (p *Presence) Join(viewerID string) {
	if viewerID == "" {
		return
	}
	p.mu.Lock()
	p.viewers[viewerID] = struct{}{}
	p.mu.Unlock()
}

func (p *Presence) Leave(viewerID string) {
	p.mu.Lock()
	delete(p.viewers, viewerID)
	p.mu.Unlock()
}

// Count возвращает число зрителей онлайн
func (p *Presence) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.viewers)
}

// Reset очищает набор (переподключение канала)
func (p *Presence) Reset() {
	p.mu.Lock()
	p.viewers = make(map[string]struct{})
	p.mu.Unlock()
}
