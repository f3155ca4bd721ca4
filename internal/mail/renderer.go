package mail

import (
	"fmt"
	"html"
	"strings"

	"github.com/M66TECH/MoneyWise-Project-sub000/internal/core"
)

// Inline styles keyed by severity. Email clients ignore stylesheets, so
// everything is inlined.
var severityStyles = map[string]struct {
	border string
	text   string
	bg     string
}{
	core.SeverityHigh:   {border: "#d13438", text: "#d13438", bg: "#fff4f4"},
	core.SeverityMedium: {border: "#ca8a04", text: "#854d0e", bg: "#fefce8"},
	core.SeverityLow:    {border: "#2563eb", text: "#1e40af", bg: "#eff6ff"},
}

// RenderAlertSection renders one alert as a colored callout block.
func RenderAlertSection(alert core.Alert) string {
	style, ok := severityStyles[alert.Severity]
	if !ok {
		style = severityStyles[core.SeverityLow]
	}
	return fmt.Sprintf(`
		<div style="background-color: %s; border-left: 5px solid %s; padding: 15px; margin-bottom: 15px;">
			<h3 style="color: %s; margin-top: 0; font-size: 16px;">%s</h3>
			<p style="margin-bottom: 0;">%s</p>
		</div>
	`, style.bg, style.border, style.text,
		html.EscapeString(strings.ToUpper(alert.Kind)),
		html.EscapeString(alert.Message))
}

// RenderAlertBody renders the full HTML body for an alert email.
func RenderAlertBody(displayName string, alerts []core.Alert) string {
	var sections strings.Builder
	for _, a := range alerts {
		sections.WriteString(RenderAlertSection(a))
	}

	greeting := "Hello"
	if displayName != "" {
		greeting = "Hello " + html.EscapeString(displayName)
	}

	return fmt.Sprintf(`
		<html>
		<body style="font-family: 'Segoe UI', sans-serif; color: #333; line-height: 1.6; background-color: #f4f4f4; margin: 0; padding: 20px;">
			<div style="max-width: 600px; margin: 0 auto; background: white; border-radius: 8px; overflow: hidden; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
				<div style="background-color: #1f2937; padding: 20px; text-align: center; color: white;">
					<h2 style="margin: 0;">MoneyWise Alerts</h2>
				</div>
				<div style="padding: 20px;">
					<p>%s, your account raised the following alerts:</p>
					%s
				</div>
			</div>
		</body>
		</html>
	`, greeting, sections.String())
}
