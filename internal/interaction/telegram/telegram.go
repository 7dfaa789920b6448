package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	telegramBot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/nicksnyder/go-i18n/v2/i18n"

	"kurva/internal/model"
)

var ErrWrongNumberOfArguments = fmt.Errorf("wrong number of arguments")

type CurvesRepository interface {
	GetLatestCurve(ctx context.Context) ([]*model.CurvePoint, error)
	GetCurveByDate(ctx context.Context, date time.Time) ([]*model.CurvePoint, error)
}

type ChatsRepository interface {
	EnableDigest(ctx context.Context, chatID int64, language string) error
	DisableDigest(ctx context.Context, chatID int64) error
}

type Interaction struct {
	logger           *slog.Logger
	TgBot            *telegramBot.Bot
	bundle           *i18n.Bundle
	curvesRepository CurvesRepository
	chatsRepository  ChatsRepository
}

func NewInteraction(logger *slog.Logger, token string, client telegramBot.HttpClient, bundle *i18n.Bundle, curvesRepository CurvesRepository, chatsRepository ChatsRepository) *Interaction {
	cnt := &Interaction{
		logger:           logger.With("component", "telegram"),
		bundle:           bundle,
		curvesRepository: curvesRepository,
		chatsRepository:  chatsRepository,
	}

	opts := []telegramBot.Option{
		telegramBot.WithHTTPClient(time.Minute, client),
		telegramBot.WithSkipGetMe(),
	}

	b, _ := telegramBot.New(token, opts...)
	b.RegisterHandler(telegramBot.HandlerTypeMessageText, "/start", telegramBot.MatchTypeExact, cnt.handlerStart)
	b.RegisterHandler(telegramBot.HandlerTypeMessageText, "/curve", telegramBot.MatchTypePrefix, cnt.handlerCurve)
	b.RegisterHandler(telegramBot.HandlerTypeMessageText, "/stop", telegramBot.MatchTypeExact, cnt.handlerStop)
	b.RegisterHandler(telegramBot.HandlerTypeMessageText, "/help", telegramBot.MatchTypeExact, cnt.handlerHelp)

	cnt.TgBot = b
	return cnt
}

func (that *Interaction) Start(ctx context.Context) {
	that.TgBot.Start(ctx)
}

// SendMessage sends a pre-rendered HTML message to a chat; used by the
// digest fan-out.
func (that *Interaction) SendMessage(ctx context.Context, chatID int64, text string) error {
	_, err := that.TgBot.SendMessage(ctx, &telegramBot.SendMessageParams{ChatID: chatID, Text: text, ParseMode: models.ParseModeHTML})
	if err != nil {
		return fmt.Errorf("send message to telegram chat: %w", err)
	}

	return nil
}

// getUserLocalizer returns a localizer for the user.
func (that *Interaction) getUserLocalizer(update *models.Update) *i18n.Localizer {
	lang := update.Message.From.LanguageCode // "en", "id", etc.
	if lang == "" {
		lang = "en"
	}

	return i18n.NewLocalizer(that.bundle, lang)
}

// renderLocaledMessage renders a localized message.
func (that *Interaction) renderLocaledMessage(update *models.Update, messageID string, args ...string) (string, error) {
	if len(args)%2 != 0 {
		return "", ErrWrongNumberOfArguments
	}

	templateData := make(map[string]string, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		templateData[args[i]] = args[i+1]
	}

	text, err := that.getUserLocalizer(update).Localize(&i18n.LocalizeConfig{MessageID: messageID, TemplateData: templateData})
	if err != nil {
		return "", fmt.Errorf("localize message: %w", err)
	}

	return text, nil
}

// sendLocaledMessage sends a localized message to the user.
func (that *Interaction) sendLocaledMessage(ctx context.Context, bot *telegramBot.Bot, update *models.Update, messageID string, args ...string) (*models.Message, error) {
	text, err := that.renderLocaledMessage(update, messageID, args...)
	if err != nil {
		return nil, fmt.Errorf("render localed message: %w", err)
	}

	msg, err := bot.SendMessage(ctx, &telegramBot.SendMessageParams{ChatID: update.Message.Chat.ID, Text: text})
	if err != nil {
		return nil, fmt.Errorf("send message to telegram user: %w", err)
	}

	return msg, nil
}
