package assetextract

import (
	"testing"

	"daily-weather-image/internal/common/genai"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.Response
		want SynthesisResult
	}{
		{
			name: "nil reply",
			resp: nil,
			want: TextOnly{},
		},
		{
			name: "plain string reply",
			resp: &genai.Response{Text: "抱歉，我无法生成图片"},
			want: TextOnly{Text: "抱歉，我无法生成图片"},
		},
		{
			name: "list without image",
			resp: &genai.Response{ListShaped: true, Text: "说明", Parts: []genai.Part{{Type: genai.PartText, Text: "说明"}}},
			want: TextOnly{Text: "说明"},
		},
		{
			name: "first image url wins",
			resp: &genai.Response{ListShaped: true, Parts: []genai.Part{
				{Type: genai.PartText, Text: "ok"},
				{Type: genai.PartImageURL, URL: "https://img/1.png"},
				{Type: genai.PartImageURL, URL: "https://img/2.png"},
			}, Text: "ok"},
			want: WithImage{Text: "ok", Ref: ImageRef{URL: "https://img/1.png"}},
		},
		{
			name: "inline blob",
			resp: &genai.Response{ListShaped: true, Parts: []genai.Part{
				{Type: genai.PartInlineData, Data: []byte("png"), MIMEType: "image/png"},
			}},
			want: WithImage{Ref: ImageRef{Data: []byte("png"), MIMEType: "image/png"}},
		},
		{
			name: "empty image entries are skipped",
			resp: &genai.Response{ListShaped: true, Parts: []genai.Part{
				{Type: genai.PartText, URL: "https://img/text.png"},
				{Type: genai.PartImageURL},
				{Type: genai.PartInlineData, MIMEType: "image/png"},
				{Type: genai.PartImageURL, URL: "https://img/3.png"},
			}},
			want: WithImage{Ref: ImageRef{URL: "https://img/3.png"}},
		},
		{
			name: "string reply is never scanned for images",
			resp: &genai.Response{Text: "https://img/1.png", Parts: []genai.Part{{Type: genai.PartImageURL, URL: "https://img/1.png"}}},
			want: TextOnly{Text: "https://img/1.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.resp))
		})
	}
}

func TestDecodeDataURL(t *testing.T) {
	data, mimeType, err := decodeDataURL("data:image/png;base64,iVBORw0K")
	assert.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G', '\r', '\n'}, data)

	data, mimeType, err = decodeDataURL("data:,hello%20world")
	assert.NoError(t, err)
	assert.Equal(t, "text/plain", mimeType)
	assert.Equal(t, "hello world", string(data))

	_, _, err = decodeDataURL("data:image/png;base64")
	assert.Error(t, err)
	_, _, err = decodeDataURL("data:image/png;base64,@@@")
	assert.Error(t, err)
}
