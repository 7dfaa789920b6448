package chats

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"kurva/internal/model"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// EnableDigest subscribes a chat to the daily curve digest, creating the
// chat on first contact.
func (that *Repository) EnableDigest(ctx context.Context, chatID int64, language string) error {
	query := that.db.WithContext(ctx).Model(&model.TgChat{}).Where("source_id = ?", chatID)

	result := query.Updates(map[string]interface{}{"digest": true, "language": language})
	if err := result.Error; err != nil {
		return fmt.Errorf("update existing chat: %w", err)
	}

	if result.RowsAffected == 0 {
		if err := query.Create(&model.TgChat{SourceID: chatID, Language: language, DigestEnabled: true}).Error; err != nil {
			return fmt.Errorf("create new chat: %w", err)
		}
	}

	return nil
}

// DisableDigest unsubscribes a chat from the daily curve digest.
func (that *Repository) DisableDigest(ctx context.Context, chatID int64) error {
	query := that.db.WithContext(ctx).Model(&model.TgChat{}).Where("source_id = ?", chatID)

	if err := query.Update("digest", "false").Error; err != nil {
		return fmt.Errorf("update existing chat: %w", err)
	}

	return nil
}

// FetchDigestChats returns every chat subscribed to the daily digest.
func (that *Repository) FetchDigestChats(ctx context.Context) ([]*model.TgChat, error) {
	var chats []*model.TgChat

	query := that.db.WithContext(ctx).Model(&model.TgChat{}).Where("digest = true")
	if err := query.Find(&chats).Error; err != nil {
		return nil, fmt.Errorf("fetch digest chats from database: %w", err)
	}

	return chats, nil
}
