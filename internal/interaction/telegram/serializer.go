package telegram

import (
	"fmt"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"

	"kurva/internal/model"
)

// CurveToString returns a string representation of the curve to send to the user.
func (that *Interaction) CurveToString(languageCode string, points []*model.CurvePoint) string {
	if languageCode == "" {
		languageCode = "en"
	}
	localizer := i18n.NewLocalizer(that.bundle, languageCode)

	localize := func(messageID string, templateData map[string]string) string {
		text, _ := localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID, TemplateData: templateData})
		return text
	}

	title := localize("curveTitle", map[string]string{"Date": points[0].Date.Format("2006-01-02")})
	headerTenor := localize("columnTenor", nil)
	headerYield := localize("columnYield", nil)
	headerSpot := localize("columnSpot", nil)
	headerForward := localize("columnForward", nil)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<b>%s</b>\n<pre>\n", title))
	sb.WriteString(fmt.Sprintf("%-8s %-8s %-8s %-8s\n", headerTenor, headerYield, headerSpot, headerForward))

	for _, p := range points {
		forward := "-"
		if p.ForwardRate != nil {
			forward = fmt.Sprintf("%.4f", *p.ForwardRate)
		}
		sb.WriteString(fmt.Sprintf("%-8.4g %-8.4f %-8.4f %-8s\n", p.TenorYears, p.ParYield, p.SpotRate, forward))
	}

	sb.WriteString("</pre>")
	return sb.String()
}
