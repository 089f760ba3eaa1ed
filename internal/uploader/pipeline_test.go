package uploader

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"live-foto-event-back/internal/model"
)

type fakeDest struct {
	calls int
	err   error
}

func (f *fakeDest) GenerateUploadDestination(ctx context.Context, eventSlug, filename string) (
	UploadDestination, error) {
	f.calls++
	if f.err != nil {
		return UploadDestination{}, f.err
	}
	key := fmt.Sprintf("event_%s/originals/%d_%s", eventSlug, f.calls, filename)
	return UploadDestination{UploadTarget: key, Path: "https://cdn/" + key}, nil
}

type fakeObjects struct {
	uploads []string
	failOn  int // 1-based номер вызова, который упадёт; 0 — без отказов
	calls   int
}

func (f *fakeObjects) Put(ctx context.Context, dest UploadDestination, data []byte, contentType string) (
	string, error) {
	f.calls++
	if f.failOn != 0 && f.calls == f.failOn {
		return "", errors.New("transfer failed")
	}
	f.uploads = append(f.uploads, dest.UploadTarget)
	return dest.Path, nil
}

func imageFile(name string) SourceFile {
	return SourceFile{
		Name:        name,
		ContentType: "image/jpeg",
		Data:        []byte("not really a jpeg but typed as one"),
	}
}

func newTestPipeline(maxImages int, objects *fakeObjects) *Pipeline {
	return &Pipeline{
		EventSlug: "wedding",
		MaxImages: maxImages,
		Dest:      &fakeDest{},
		Objects:   objects,
		OnUpload: func(ctx context.Context, reference, filename, caption string) (model.PhotoRecord, error) {
			return model.PhotoRecord{
				ID:        "perm-" + reference,
				ImageURL:  reference,
				FileName:  filename,
				Caption:   caption,
				CreatedAt: time.Now(),
			}, nil
		},
	}
}

func TestValidateRejectsNonImage(t *testing.T) {
	pipe := newTestPipeline(10, &fakeObjects{})

	accepted, errs := pipe.AddFiles(SourceFile{
		Name:        "notes.txt",
		ContentType: "text/plain",
		Data:        []byte("hello"),
	})
	assert.Equal(t, 0, accepted)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrInvalidType)
}

func TestValidateRejectsOversizedFile(t *testing.T) {
	pipe := newTestPipeline(10, &fakeObjects{})

	big := SourceFile{
		Name:        "huge.jpg",
		ContentType: "image/jpeg",
		Data:        make([]byte, MaxFileSize+1),
	}
	accepted, errs := pipe.AddFiles(big)
	assert.Equal(t, 0, accepted)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrTooLarge)
}

func TestValidateSniffsMissingContentType(t *testing.T) {
	pipe := newTestPipeline(10, &fakeObjects{})

	// PNG-сигнатура без заявленного Content-Type
	png := SourceFile{
		Name: "pic.png",
		Data: []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0},
	}
	accepted, errs := pipe.AddFiles(png)
	assert.Equal(t, 1, accepted)
	assert.Empty(t, errs)
}

func TestQuotaIsAllOrNothing(t *testing.T) {
	pipe := newTestPipeline(2, &fakeObjects{})

	accepted, errs := pipe.AddFiles(imageFile("a.jpg"), imageFile("b.jpg"), imageFile("c.jpg"))
	assert.Equal(t, 0, accepted, "превышение квоты отклоняет всю пачку")
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrTooManyFiles)
	assert.Empty(t, pipe.Jobs())

	accepted, errs = pipe.AddFiles(imageFile("a.jpg"), imageFile("b.jpg"))
	assert.Equal(t, 2, accepted)
	assert.Empty(t, errs)
}

func TestInvalidFilesDoNotBlockValidOnes(t *testing.T) {
	pipe := newTestPipeline(10, &fakeObjects{})

	accepted, errs := pipe.AddFiles(
		imageFile("a.jpg"),
		SourceFile{Name: "notes.txt", ContentType: "text/plain", Data: []byte("x")},
		imageFile("b.jpg"),
	)
	assert.Equal(t, 2, accepted)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrInvalidType)
}

func TestSequentialUploadWithPartialFailure(t *testing.T) {
	objects := &fakeObjects{failOn: 2}
	pipe := newTestPipeline(10, objects)

	var progress []Progress
	pipe.OnProgress = func(p Progress) { progress = append(progress, p) }

	accepted, _ := pipe.AddFiles(imageFile("a.jpg"), imageFile("b.jpg"), imageFile("c.jpg"))
	require.Equal(t, 3, accepted)

	res := pipe.Run(context.Background())
	assert.Equal(t, 2, res.SuccessCount)
	assert.Equal(t, 1, res.ErrorCount)
	assert.Equal(t, 3, objects.calls, "отказ второго файла не должен прерывать пачку")

	require.Len(t, progress, 3)
	assert.Equal(t, Progress{Current: 1, Total: 3}, progress[0])
	assert.Equal(t, Progress{Current: 3, Total: 3}, progress[2])
}

func TestPersistenceFailureCountsAsUploadFailure(t *testing.T) {
	objects := &fakeObjects{}
	pipe := newTestPipeline(10, objects)
	pipe.OnUpload = func(ctx context.Context, reference, filename, caption string) (model.PhotoRecord, error) {
		return model.PhotoRecord{}, errors.New("db down")
	}

	pipe.AddFiles(imageFile("a.jpg"))
	res := pipe.Run(context.Background())

	// Байты переданы, но запись не подтверждена: файл считается неудачным
	assert.Equal(t, 1, objects.calls)
	assert.Equal(t, 0, res.SuccessCount)
	assert.Equal(t, 1, res.ErrorCount)
}

func TestRunResetsSelection(t *testing.T) {
	pipe := newTestPipeline(10, &fakeObjects{failOn: 1})
	pipe.AddFiles(imageFile("a.jpg"))

	pipe.Run(context.Background())
	assert.Empty(t, pipe.Jobs(), "выбор сбрасывается и после неудачной пачки")
}

func TestRemoveFileRevokesPreview(t *testing.T) {
	var revoked []string
	pipe := newTestPipeline(10, &fakeObjects{})
	pipe.MakePreview = func(f SourceFile) string { return "blob:" + f.Name }
	pipe.RevokePreview = func(url string) { revoked = append(revoked, url) }

	pipe.AddFiles(imageFile("a.jpg"), imageFile("b.jpg"))
	pipe.RemoveFile(0)

	jobs := pipe.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "b.jpg", jobs[0].File.Name)
	assert.Equal(t, []string{"blob:a.jpg"}, revoked)

	pipe.Clear()
	assert.Empty(t, pipe.Jobs())
	assert.Equal(t, []string{"blob:a.jpg", "blob:b.jpg"}, revoked)
}

// Исходное имя файла доходит до бэкенда: по нему работает
// сортировка галереи по имени
func TestOriginalFileNameReachesBackend(t *testing.T) {
	var names []string
	pipe := newTestPipeline(10, &fakeObjects{})
	pipe.OnUpload = func(ctx context.Context, reference, filename, caption string) (model.PhotoRecord, error) {
		names = append(names, filename)
		return model.PhotoRecord{ID: "perm-" + reference, FileName: filename}, nil
	}

	pipe.AddFiles(imageFile("IMG_0042.jpg"), imageFile("IMG_0043.jpg"))
	res := pipe.Run(context.Background())

	assert.Equal(t, []string{"IMG_0042.jpg", "IMG_0043.jpg"}, names)
	require.Len(t, res.Photos, 2)
	assert.Equal(t, "IMG_0042.jpg", res.Photos[0].FileName)
}

// Jobs() можно опрашивать во время идущей пачки: снимок отражает
// статус текущего файла
func TestJobsSnapshotDuringRun(t *testing.T) {
	pipe := newTestPipeline(10, &fakeObjects{})
	entered := make(chan struct{})
	release := make(chan struct{})
	pipe.OnUpload = func(ctx context.Context, reference, filename, caption string) (model.PhotoRecord, error) {
		close(entered)
		<-release
		return model.PhotoRecord{ID: "perm-" + reference}, nil
	}

	pipe.AddFiles(imageFile("a.jpg"))

	done := make(chan Result, 1)
	go func() { done <- pipe.Run(context.Background()) }()

	<-entered
	jobs := pipe.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, StatusUploading, jobs[0].Status)

	close(release)
	res := <-done
	assert.Equal(t, 1, res.SuccessCount)
}

func TestCaptionsTravelWithFiles(t *testing.T) {
	var captions []string
	pipe := newTestPipeline(10, &fakeObjects{})
	pipe.OnUpload = func(ctx context.Context, reference, filename, caption string) (model.PhotoRecord, error) {
		captions = append(captions, caption)
		return model.PhotoRecord{ID: "perm-" + reference}, nil
	}

	pipe.AddFiles(imageFile("a.jpg"), imageFile("b.jpg"))
	pipe.SetCaption(0, "торт")
	pipe.Run(context.Background())

	assert.Equal(t, []string{"торт", ""}, captions)
}
