// Package store — плоское key-value хранилище: каждая запись целиком
// перезаписывается при каждом изменении.
package store

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrNotFound — ключа нет в хранилище
	ErrNotFound = errors.New("store: key not found")
	// ErrCorrupt — запись есть, но не разбирается
	ErrCorrupt = errors.New("store: record cannot be decoded")
)

// Store — плоское пространство ключей
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Txer — хранилище, которое выполняет read-modify-write целиком: пока fn
// работает, другие Tx ждут. Внутри fn читать и писать только через st.
type Txer interface {
	Tx(ctx context.Context, fn func(st Store) error) error
}

// MemoryStore хранит записи в памяти процесса
type MemoryStore struct {
	mu   sync.RWMutex
	tx   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Tx сериализует fn с другими Tx. Отката нет: что fn успела записать,
// то и осталось.
func (s *MemoryStore) Tx(_ context.Context, fn func(st Store) error) error {
	s.tx.Lock()
	defer s.tx.Unlock()
	return fn(s)
}

// Len — число ключей (для тестов и health)
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
