package emailsend

import (
	"bytes"
	"fmt"
	"html/template"
)

var bodyTemplate = template.Must(template.New("report").Parse(`<html>
<body style="font-family: 'Microsoft YaHei', Arial, sans-serif; padding: 20px; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #333;">🌤️ {{.City}}今日天气</h2>
    <p style="color: #666;">📍 今日地标：<strong>{{.Landmark}}</strong></p>
    <div style="background: #f5f5f5; padding: 15px; border-radius: 8px; margin: 15px 0;">
        <pre style="margin: 0; white-space: pre-wrap;">{{.Weather}}</pre>
    </div>
{{- if .HasImage}}
    <img src="cid:weather_image" style="max-width: 100%; border-radius: 12px; margin: 15px 0;">
{{- end}}
    <p style="color: #999; font-size: 12px;">
        生成时间：{{.GeneratedAt.Format "2006-01-02 15:04:05"}}
    </p>
</body>
</html>
`))

// RenderHTML renders the report body. Field values are HTML-escaped.
func RenderHTML(r Report) (string, error) {
	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("render email body: %w", err)
	}
	return buf.String(), nil
}

// Subject formats the mail subject, e.g. 【杭州市天气】2025年01月31日 - 雷峰塔.
func Subject(r Report) string {
	return fmt.Sprintf("【%s天气】%s - %s", r.City, r.GeneratedAt.Format("2006年01月02日"), r.Landmark)
}
