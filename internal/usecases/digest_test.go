package usecases_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"kurva/internal/model"
	"kurva/internal/repository/chats"
	"kurva/internal/repository/curves"
	"kurva/internal/usecases"
	"kurva/testing/suite"
)

type capturingIntegration struct {
	mu    sync.Mutex
	sends map[int64]string
}

func (that *capturingIntegration) SendMessage(_ context.Context, chatID int64, text string) error {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.sends[chatID] = text
	return nil
}

func (*capturingIntegration) CurveToString(languageCode string, points []*model.CurvePoint) string {
	return languageCode + ":" + points[0].Date.Format("2006-01-02")
}

func Test_DigestUseCase(t *testing.T) {
	ctx, st := suite.New(t, suite.WithPostgres())

	curvesRepository := curves.NewRepository(st.GetDB())
	chatsRepository := chats.NewRepository(st.GetDB())

	// Given: A stored curve and two subscribed chats with different languages
	date := suite.GetDateTime(t, "2026-08-27")
	require.NoError(t, curvesRepository.SavePoints(ctx, []*model.CurvePoint{
		{Date: date, TenorYears: 1, ParYield: 0.05, SpotRate: 0.05},
	}))
	require.NoError(t, chatsRepository.EnableDigest(ctx, 1, "en"))
	require.NoError(t, chatsRepository.EnableDigest(ctx, 2, "id"))

	integration := &capturingIntegration{sends: map[int64]string{}}
	digestUC := usecases.NewDigestUseCase(st.Logger, curvesRepository, chatsRepository, integration)

	// When: The digest runs
	digestUC.Run(ctx)

	// Then: Every subscriber got the curve rendered in its own language
	require.Equal(t, map[int64]string{
		1: "en:2026-08-27",
		2: "id:2026-08-27",
	}, integration.sends)
}
