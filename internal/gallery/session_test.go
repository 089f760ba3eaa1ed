package gallery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"live-foto-event-back/internal/model"
)

// fakeBackend — подменный персистентный сервис
type fakeBackend struct {
	createErr error
	deleteErr error
	created   []string
	deleted   []string
}

func (f *fakeBackend) CreatePhotoRecord(ctx context.Context, eventSlug, reference, caption string) (
	model.PhotoRecord, error) {
	if f.createErr != nil {
		return model.PhotoRecord{}, f.createErr
	}
	id := "perm-" + uuid.New().String()
	f.created = append(f.created, id)
	return model.PhotoRecord{
		ID:        id,
		ImageURL:  reference,
		Caption:   caption,
		CreatedAt: time.Now(),
	}, nil
}

func (f *fakeBackend) DeletePhotoRecord(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestSession(backend *fakeBackend) *Session {
	return NewSession(NewStore(), backend, "wedding", uuid.New(), uuid.New())
}

func TestAddPhotoConfirmsAndReplacesTemp(t *testing.T) {
	backend := &fakeBackend{}
	session := newTestSession(backend)

	rec, err := session.AddPhoto(context.Background(), "https://cdn/p1.jpg", "первый танец")
	require.NoError(t, err)
	assert.False(t, rec.IsTemp())

	snap := session.Store.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, rec.ID, snap[0].ID)
}

func TestAddPhotoRollsBackOnBackendError(t *testing.T) {
	backend := &fakeBackend{createErr: errors.New("db down")}
	session := newTestSession(backend)

	_, err := session.AddPhoto(context.Background(), "https://cdn/p1.jpg", "")
	require.Error(t, err)
	assert.Equal(t, 0, session.Store.Len(), "временная запись должна откатиться")
}

func TestDeletePhotoRollsBackOnBackendError(t *testing.T) {
	backend := &fakeBackend{}
	session := newTestSession(backend)

	rec, err := session.AddPhoto(context.Background(), "https://cdn/p1.jpg", "")
	require.NoError(t, err)

	backend.deleteErr = errors.New("db down")
	err = session.DeletePhoto(context.Background(), rec.ID)
	require.Error(t, err)
	assert.Equal(t, 1, session.Store.Len(), "после отказа удаления запись возвращается")
}

func TestDeleteAbsentPhotoIsNoop(t *testing.T) {
	backend := &fakeBackend{}
	session := newTestSession(backend)

	require.NoError(t, session.DeletePhoto(context.Background(), "ghost"))
	assert.Empty(t, backend.deleted)
}

// Полный сценарий: загрузивший видит своё фото один раз, несмотря на
// эхо канала; второй зритель собирает то же состояние из одного эха.
func TestUploaderEchoAndSecondViewerConverge(t *testing.T) {
	backend := &fakeBackend{}
	uploaderSession := newTestSession(backend)

	rec, err := uploaderSession.AddPhoto(context.Background(), "https://cdn/p1.jpg", "")
	require.NoError(t, err)
	require.Equal(t, 1, uploaderSession.Store.Len())

	// Эхо собственной загрузки из канала
	uploaderSession.Store.Add(rec)
	assert.Equal(t, 1, uploaderSession.Store.Len())

	// Зритель B без оптимистичного шага
	viewerStore := NewStore()
	viewerStore.Add(rec)
	assert.Equal(t, 1, viewerStore.Len())
}
