package model

import (
	"time"

	"kurva/internal/config"
)

// TgChat - represents a Telegram chat subscribed to the daily digest.
type TgChat struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	SourceID      int64     `gorm:"column:source_id;uniqueIndex"`
	Language      string    `gorm:"column:language"` // en, id
	DigestEnabled bool      `gorm:"column:digest"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (*TgChat) TableName() string {
	return "tg_chats"
}

func (that *TgChat) GetLanguageCode() string {
	if that.Language != "" {
		return that.Language
	}

	return config.DefaultLanguageCode
}
