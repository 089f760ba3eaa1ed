package realtime

import (
	"context"

	"live-foto-event-back/internal/gallery"
	"live-foto-event-back/internal/model"
)

// Reconciler применяет сообщения канала события к локальному состоянию.
// Канал — только шина уведомлений: порядок между зрителями не
// гарантирован, поэтому add/remove должны быть идемпотентны и
// сходиться к одному множеству при любом порядке. Это обеспечивает
// стор, Reconciler лишь маршрутизирует дельты.
type Reconciler struct {
	Store    *gallery.Store
	Presence *Presence
}

func NewReconciler(store *gallery.Store, presence *Presence) *Reconciler {
	return &Reconciler{Store: store, Presence: presence}
}

// Apply разбирает одно сообщение канала. Эхо собственной загрузки
// (постоянный id уже в сторе после Replace) гасится идемпотентным Add.
func (r *Reconciler) Apply(msg model.Message) {
	switch msg.Type {
	case model.MsgImageUploaded:
		if msg.Image == nil {
			return
		}
		r.Store.Add(*msg.Image)
	case model.MsgImageDeleted:
		r.Store.Remove(msg.ImageID)
	case model.MsgViewerJoined:
		r.Presence.Join(msg.ViewerID)
	case model.MsgViewerLeft:
		r.Presence.Leave(msg.ViewerID)
	}
}

// Run читает сообщения до закрытия канала или отмены контекста.
// Историю при реконнекте не проигрывает: полная коллекция приходит
// один раз при загрузке страницы, дальше только новые дельты.
func (r *Reconciler) Run(ctx context.Context, messages <-chan model.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			r.Apply(msg)
		}
	}
}
