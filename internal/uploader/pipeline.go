package uploader

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"live-foto-event-back/internal/model"
)

// Статусы файла в пачке загрузки
type JobStatus string

const (
	StatusPending     JobStatus = "pending"
	StatusCompressing JobStatus = "compressing"
	StatusUploading   JobStatus = "uploading"
	StatusDone        JobStatus = "done"
	StatusFailed      JobStatus = "failed"
)

// Ошибки валидации: ловятся до любых сетевых вызовов
var (
	ErrInvalidType  = errors.New("file is not an image")
	ErrTooLarge     = errors.New("file exceeds size limit")
	ErrTooManyFiles = errors.New("batch exceeds remaining photo quota")
)

// Потолок размера одного файла
const MaxFileSize = 10 << 20 // 10 MB

// SourceFile — исходный файл, выбранный пользователем
type SourceFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Job — один файл в пачке
type Job struct {
	File       SourceFile
	Caption    string
	PreviewURL string
	Status     JobStatus
	Err        error
}

// UploadDestination — место назначения, выданное бэкендом
type UploadDestination struct {
	UploadTarget string // ключ/адрес в объектном хранилище
	Path         string // публичный путь будущего файла
}

// DestinationService выдаёт место назначения для загрузки
type DestinationService interface {
	GenerateUploadDestination(ctx context.Context, eventSlug, filename string) (UploadDestination, error)
}

// ObjectStore принимает байты и возвращает публичную ссылку
type ObjectStore interface {
	Put(ctx context.Context, dest UploadDestination, data []byte, contentType string) (string, error)
}

// Progress — прогресс пачки, (current, total) по файлам, не по байтам
type Progress struct {
	Current int
	Total   int
}

// Result — итог пачки
type Result struct {
	SuccessCount int
	ErrorCount   int
	Photos       []model.PhotoRecord
}

// Pipeline последовательно загружает пачку файлов одного события:
// валидация -> сжатие -> загрузка в объектное хранилище ->
// подтверждение бэкендом через OnUpload. Файлы идут строго по одному,
// в порядке выбора: это осознанное ограничение полосы, а не
// недооптимизация. Ошибка одного файла пачку не останавливает.
type Pipeline struct {
	EventSlug string
	MaxImages int // оставшаяся квота события для этого загружающего

	Dest    DestinationService
	Objects ObjectStore

	// OnUpload зовётся после успешной передачи байт: оптимистичное
	// добавление в стор + создание записи в БД (gallery.Session.AddPhoto).
	// filename — исходное имя файла, бэкенд хранит его для сортировки
	OnUpload func(ctx context.Context, reference, filename, caption string) (model.PhotoRecord, error)

	// Необязательные колбэки
	OnProgress    func(Progress)
	MakePreview   func(SourceFile) string
	RevokePreview func(string)

	mu   sync.Mutex
	jobs []*Job
}

// AddFiles валидирует выбранные файлы и ставит их в пачку.
// Ошибки типа и размера — пофайловые: негодный файл отбрасывается,
// остальные принимаются. Квота проверяется по всей пачке целиком:
// если валидных файлов больше, чем осталось по квоте, не принимается
// ни один (иначе пользователь не поймёт, какие именно не попали).
func (p *Pipeline) AddFiles(files ...SourceFile) (int, []error) {
	var errs []error
	var valid []SourceFile
	for _, f := range files {
		if err := validate(f); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Name, err))
			continue
		}
		valid = append(valid, f)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.jobs)+len(valid) > p.MaxImages {
		errs = append(errs, ErrTooManyFiles)
		return 0, errs
	}

	for _, f := range valid {
		job := &Job{File: f, Status: StatusPending}
		if p.MakePreview != nil {
			job.PreviewURL = p.MakePreview(f)
		}
		p.jobs = append(p.jobs, job)
	}
	return len(valid), errs
}

// SetCaption задаёт подпись файлу, ожидающему загрузки
func (p *Pipeline) SetCaption(i int, caption string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i >= 0 && i < len(p.jobs) {
		p.jobs[i].Caption = caption
	}
}

// RemoveFile убирает один ещё не начатый файл из пачки
// и освобождает его preview-ресурс
func (p *Pipeline) RemoveFile(i int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i < 0 || i >= len(p.jobs) {
		return
	}
	if p.jobs[i].Status != StatusPending {
		return
	}
	p.revoke(p.jobs[i])
	p.jobs = append(p.jobs[:i], p.jobs[i+1:]...)
}

// Clear сбрасывает всю пачку до старта загрузки
func (p *Pipeline) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clearLocked()
}

func (p *Pipeline) clearLocked() {
	for _, job := range p.jobs {
		p.revoke(job)
	}
	p.jobs = nil
}

func (p *Pipeline) revoke(job *Job) {
	if p.RevokePreview != nil && job.PreviewURL != "" {
		p.RevokePreview(job.PreviewURL)
	}
}

// Jobs возвращает снимок пачки
func (p *Pipeline) Jobs() []Job {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Job, len(p.jobs))
	for i, job := range p.jobs {
		out[i] = *job
	}
	return out
}

// Run прогоняет пачку: файлы строго последовательно, в порядке
// выбора. Отмены одного файла на лету нет — можно только убрать
// не начатые через RemoveFile до старта. Выбор сбрасывается лишь
// после завершения всей пачки, удачной или нет.
func (p *Pipeline) Run(ctx context.Context) Result {
	p.mu.Lock()
	jobs := p.jobs
	p.mu.Unlock()

	var res Result
	total := len(jobs)

	for i, job := range jobs {
		p.report(Progress{Current: i + 1, Total: total})

		rec, err := p.uploadOne(ctx, job)
		if err != nil {
			p.setStatus(job, StatusFailed, err)
			res.ErrorCount++
			continue
		}
		p.setStatus(job, StatusDone, nil)
		res.Photos = append(res.Photos, rec)
		res.SuccessCount++
	}

	p.mu.Lock()
	p.clearLocked()
	p.mu.Unlock()

	return res
}

// uploadOne — полный путь одного файла.
// Сжатие — оптимизация: при любой ошибке уходит оригинал.
// Отказ подтверждения после успешной передачи байт считается
// ошибкой файла, хотя блоб уже в хранилище: лучше осиротевший блоб,
// чем фантомная запись в галерее.
func (p *Pipeline) uploadOne(ctx context.Context, job *Job) (model.PhotoRecord, error) {
	p.setStatus(job, StatusCompressing, nil)
	data, contentType := compress(job.File)

	p.setStatus(job, StatusUploading, nil)
	dest, err := p.Dest.GenerateUploadDestination(ctx, p.EventSlug, job.File.Name)
	if err != nil {
		return model.PhotoRecord{}, fmt.Errorf("generate upload destination: %w", err)
	}

	reference, err := p.Objects.Put(ctx, dest, data, contentType)
	if err != nil {
		return model.PhotoRecord{}, fmt.Errorf("upload to object storage: %w", err)
	}

	rec, err := p.OnUpload(ctx, reference, job.File.Name, job.Caption)
	if err != nil {
		return model.PhotoRecord{}, err
	}
	return rec, nil
}

// setStatus меняет статус джобы под мьютексом: Jobs() может
// опрашиваться параллельно с идущей пачкой
func (p *Pipeline) setStatus(job *Job, status JobStatus, err error) {
	p.mu.Lock()
	job.Status = status
	job.Err = err
	p.mu.Unlock()
}

func (p *Pipeline) report(progress Progress) {
	if p.OnProgress != nil {
		p.OnProgress(progress)
	}
}

// validate проверяет тип и размер до любых сетевых вызовов
func validate(f SourceFile) error {
	contentType := f.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(f.Data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return ErrInvalidType
	}
	if len(f.Data) > MaxFileSize {
		return ErrTooLarge
	}
	return nil
}
