package uploader

import (
	"bytes"

	"github.com/disintegration/imaging"
)

const (
	compressMaxWidth = 1920
	compressQuality  = 85
)

// compress пережимает изображение перед загрузкой: ресайз до
// compressMaxWidth по ширине и JPEG с качеством compressQuality.
// Это best-effort оптимизация: на любой ошибке декодирования или
// кодирования уходит оригинал, пачка не прерывается и пользователю
// ничего не показывается.
func compress(f SourceFile) ([]byte, string) {
	img, err := imaging.Decode(bytes.NewReader(f.Data), imaging.AutoOrientation(true))
	if err != nil {
		return f.Data, f.ContentType
	}

	if img.Bounds().Dx() > compressMaxWidth {
		img = imaging.Resize(img, compressMaxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(compressQuality)); err != nil {
		return f.Data, f.ContentType
	}

	// Если сжатие не дало выигрыша, оставляем оригинал
	if buf.Len() >= len(f.Data) {
		return f.Data, f.ContentType
	}
	return buf.Bytes(), "image/jpeg"
}
