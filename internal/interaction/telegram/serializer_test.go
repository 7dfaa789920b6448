package telegram_test

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"kurva/internal/interaction/telegram"
	"kurva/internal/model"
	"kurva/locales"
	"kurva/testing/suite"
)

type fakeHTTPClient struct{}

func (*fakeHTTPClient) Do(*http.Request) (*http.Response, error) {
	return &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader(`{"ok":true}`))}, nil
}

func Test_CurveToString(t *testing.T) {
	_, st := suite.New(t)

	bundle, err := locales.GetBundle(st.BaseDir + "/")
	require.NoError(t, err)

	interaction := telegram.NewInteraction(st.Logger, "token", &fakeHTTPClient{}, bundle, nil, nil)

	forward := 0.0625
	date := suite.GetDateTime(t, "2026-08-27")
	points := []*model.CurvePoint{
		{Date: date, TenorYears: 1, ParYield: 0.055, SpotRate: 0.055},
		{Date: date, TenorYears: 5, ParYield: 0.06, SpotRate: 0.0612, ForwardRate: &forward},
	}

	text := interaction.CurveToString("en", points)

	require.Equal(t, "<b>IDR government yield curve (2026-08-27)</b>\n<pre>\n"+
		"Tenor    Yield    Spot     Fwd     \n"+
		"1        0.0550   0.0550   -       \n"+
		"5        0.0600   0.0612   0.0625  \n"+
		"</pre>", text)
}

func Test_CurveToString_FallsBackToEnglish(t *testing.T) {
	_, st := suite.New(t)

	bundle, err := locales.GetBundle(st.BaseDir + "/")
	require.NoError(t, err)

	interaction := telegram.NewInteraction(st.Logger, "token", &fakeHTTPClient{}, bundle, nil, nil)

	points := []*model.CurvePoint{
		{Date: suite.GetDateTime(t, "2026-08-27"), TenorYears: 1, ParYield: 0.055, SpotRate: 0.055},
	}

	require.Contains(t, interaction.CurveToString("", points), "IDR government yield curve")
	require.Contains(t, interaction.CurveToString("id", points), "Kurva imbal hasil SBN")
}
