package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	models "storefront/internal/models"
)

// GormStore держит записи в таблице kv_records
type GormStore struct {
	db     *gorm.DB
	locked bool // внутри Tx: чтения берут FOR UPDATE
}

// recordsLockID — ключ advisory-блокировки для Tx
const recordsLockID = 0x53_46_52_45_43

// NewGormStore мигрирует таблицу и возвращает хранилище
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&models.Record{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var rec models.Record
	q := s.db.WithContext(ctx)
	if s.locked {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := q.First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(rec.Value), nil
}

// Tx выполняет fn в транзакции. Строки ключа может ещё не быть, и FOR
// UPDATE её не заблокирует, поэтому сначала берём advisory-блокировку.
func (s *GormStore) Tx(ctx context.Context, fn func(st Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", recordsLockID).Error; err != nil {
			return err
		}
		return fn(&GormStore{db: tx, locked: true})
	})
}

// Set — upsert целой записи
func (s *GormStore) Set(ctx context.Context, key string, value []byte) error {
	rec := models.Record{Key: key, Value: string(value)}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("key = ?", key).Delete(&models.Record{}).Error
}

// Ping — проверка соединения для /health
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
