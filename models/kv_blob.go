package models

import "time"

// KVBlob is one key of the persistence boundary: the whole JSON list stored
// under a single key.
type KVBlob struct {
	Key       string    `gorm:"primaryKey;type:varchar(64)"`
	Value     string    `gorm:"type:longtext;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (KVBlob) TableName() string {
	return "kv_blobs"
}
