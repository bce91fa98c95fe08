package models

import "time"

// Record — таблица kv_records: одна строка на ключ хранилища
type Record struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName фиксирует имя таблицы
func (Record) TableName() string { return "kv_records" }
