// Package images — буфер выбранных картинок для формы товара и
// кодирование файлов в data URL.
package images

import (
	"encoding/base64"
	"errors"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrFull     = errors.New("images: selection is full")
	ErrIndex    = errors.New("images: no image at index")
	ErrNotImage = errors.New("images: unsupported image format")
	ErrTooLarge = errors.New("images: file too large")
	ErrEmpty    = errors.New("images: empty file")
)

// MaxFileBytes — предел размера одного файла
const MaxFileBytes = 2 << 20

var allowed = []string{"image/png", "image/jpeg", "image/webp", "image/gif"}

// Encode определяет тип по содержимому и возвращает data:<mime>;base64,...
func Encode(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if len(data) > MaxFileBytes {
		return "", ErrTooLarge
	}
	mt := mimetype.Detect(data)
	ok := false
	for _, a := range allowed {
		if mt.Is(a) {
			ok = true
			break
		}
	}
	if !ok {
		return "", ErrNotImage
	}
	return "data:" + mt.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Buffer — упорядоченный набор выбранных картинок, не больше max
type Buffer struct {
	max   int
	items []string
}

func NewBuffer(max int) *Buffer {
	return &Buffer{max: max}
}

// Add добавляет в порядке поступления; при заполненном буфере ErrFull
// и буфер не меняется
func (b *Buffer) Add(payload string) error {
	if len(b.items) >= b.max {
		return ErrFull
	}
	b.items = append(b.items, payload)
	return nil
}

// Remove удаляет картинку по индексу
func (b *Buffer) Remove(i int) error {
	if i < 0 || i >= len(b.items) {
		return ErrIndex
	}
	b.items = append(b.items[:i], b.items[i+1:]...)
	return nil
}

// Items — копия содержимого
func (b *Buffer) Items() []string {
	return append([]string(nil), b.items...)
}

func (b *Buffer) Len() int { return len(b.items) }

func (b *Buffer) Cap() int { return b.max }

func (b *Buffer) Clear() { b.items = nil }
