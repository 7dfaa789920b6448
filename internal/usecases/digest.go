package usecases

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"kurva/internal/model"
)

const ParallelSendLimit = 100

type DigestCurvesRepository interface {
	GetLatestCurve(ctx context.Context) ([]*model.CurvePoint, error)
}

type DigestChatsRepository interface {
	FetchDigestChats(ctx context.Context) ([]*model.TgChat, error)
}

type DigestTGIntegration interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	CurveToString(languageCode string, points []*model.CurvePoint) string
}

type DigestUseCase struct {
	logger           *slog.Logger
	curvesRepository DigestCurvesRepository
	chatsRepository  DigestChatsRepository
	tgIntegration    DigestTGIntegration
}

func NewDigestUseCase(logger *slog.Logger, curvesRepository DigestCurvesRepository, chatsRepository DigestChatsRepository, tgIntegration DigestTGIntegration) *DigestUseCase {
	return &DigestUseCase{logger: logger.With("component", "digest"), curvesRepository: curvesRepository, chatsRepository: chatsRepository, tgIntegration: tgIntegration}
}

// Run sends the latest curve to every subscribed chat.
func (that *DigestUseCase) Run(ctx context.Context) {
	log := that.logger.With("method", "Run")

	points, err := that.curvesRepository.GetLatestCurve(ctx)
	if err != nil {
		log.Error("failed to get latest curve", "error", err)
		return
	}

	if len(points) == 0 {
		log.Info("no curve found")
		return
	}

	chats, err := that.chatsRepository.FetchDigestChats(ctx)
	if err != nil {
		log.Error("failed to get chats", "error", err)
		return
	}

	// Render each language once, not per chat
	localizedDigestLookup := make(map[string]string)
	for _, chat := range chats {
		languageCode := chat.GetLanguageCode()
		if _, exists := localizedDigestLookup[languageCode]; !exists {
			localizedDigestLookup[languageCode] = that.tgIntegration.CurveToString(languageCode, points)
		}
	}

	parallelSend, parallelSendCtx := errgroup.WithContext(ctx)
	parallelSend.SetLimit(ParallelSendLimit)

	for _, chat := range chats {
		parallelSend.Go(func() error {
			text := localizedDigestLookup[chat.GetLanguageCode()]

			if sendErr := that.tgIntegration.SendMessage(parallelSendCtx, chat.SourceID, text); sendErr != nil {
				log.Error("failed to send digest", "error", sendErr, "chat_id", chat.SourceID)
			}
			return nil
		})
	}

	// Wait for all parallel sends to finish
	_ = parallelSend.Wait()
}
