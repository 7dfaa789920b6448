package telegram

import (
	"context"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	telegramBot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"kurva/internal/model"
)

func (that *Interaction) handlerStart(ctx context.Context, bot *telegramBot.Bot, update *models.Update) {
	log := that.logger.With("method", "handlerStart", "user_id", update.Message.From.ID, "language", update.Message.From.LanguageCode)

	if err := that.chatsRepository.EnableDigest(ctx, update.Message.Chat.ID, update.Message.From.LanguageCode); err != nil {
		log.Error("failed to enable digest", "error", err)
	}

	if _, err := that.sendLocaledMessage(ctx, bot, update, "startWelcomeMessage"); err != nil {
		log.Error("failed to send message", "error", err)
		return
	}
}

// handlerCurve replies with the latest curve, or with the curve of the
// requested date when the command carries an argument, ex:
// "/curve 2026-08-27" or "/curve 27 Aug 2026".
func (that *Interaction) handlerCurve(ctx context.Context, bot *telegramBot.Bot, update *models.Update) {
	log := that.logger.With("method", "handlerCurve", "user_id", update.Message.From.ID)

	var points []*model.CurvePoint
	var err error

	if arg := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/curve")); arg != "" {
		date, parseErr := dateparse.ParseAny(arg)
		if parseErr != nil {
			if _, err = that.sendLocaledMessage(ctx, bot, update, "badDateMessage", "Input", arg); err != nil {
				log.Error("failed to send message", "error", err)
			}
			return
		}

		date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		points, err = that.curvesRepository.GetCurveByDate(ctx, date)
	} else {
		points, err = that.curvesRepository.GetLatestCurve(ctx)
	}

	if err != nil {
		log.Error("failed to get curve", "error", err)
		return
	}

	if len(points) == 0 {
		if _, err = that.sendLocaledMessage(ctx, bot, update, "noCurveMessage"); err != nil {
			log.Error("failed to send message", "error", err)
		}
		return
	}

	text := that.CurveToString(update.Message.From.LanguageCode, points)
	if _, err = bot.SendMessage(ctx, &telegramBot.SendMessageParams{ChatID: update.Message.Chat.ID, Text: text, ParseMode: models.ParseModeHTML}); err != nil {
		log.Error("error sending message", "error", err)
		return
	}
}

func (that *Interaction) handlerStop(ctx context.Context, bot *telegramBot.Bot, update *models.Update) {
	log := that.logger.With("method", "handlerStop", "user_id", update.Message.From.ID)

	if err := that.chatsRepository.DisableDigest(ctx, update.Message.Chat.ID); err != nil {
		log.Error("failed to disable digest", "error", err)
	}

	if _, err := that.sendLocaledMessage(ctx, bot, update, "stopMessage"); err != nil {
		log.Error("failed to send message", "error", err)
		return
	}
}

func (that *Interaction) handlerHelp(ctx context.Context, bot *telegramBot.Bot, update *models.Update) {
	log := that.logger.With("method", "handlerHelp", "user_id", update.Message.From.ID)

	_, err := that.sendLocaledMessage(ctx, bot, update, "helpMessage")
	if err != nil {
		log.Error("error sending message", "error", err)
		return
	}
}
