package assetextract

import (
	"daily-weather-image/internal/common/genai"
)

// ImageRef points at a generated image: either a URL (possibly a data: URL)
// or bytes already carried in the reply.
type ImageRef struct {
	URL      string
	Data     []byte
	MIMEType string
}

// String is a log-safe description of the reference.
func (r ImageRef) String() string {
	switch {
	case r.URL != "" && !isDataURL(r.URL):
		return r.URL
	case r.URL != "":
		return "data-url"
	default:
		return "inline:" + r.MIMEType
	}
}

// SynthesisResult is either TextOnly or WithImage.
type SynthesisResult interface {
	isSynthesisResult()
}

// TextOnly means the service produced no image.
type TextOnly struct {
	Text string
}

// WithImage carries the first image reference found in the reply.
type WithImage struct {
	Text string
	Ref  ImageRef
}

func (TextOnly) isSynthesisResult()  {}
func (WithImage) isSynthesisResult() {}

// Parse classifies a synthesis reply. Plain-string replies and lists without
// an image entry are TextOnly.
func Parse(resp *genai.Response) SynthesisResult {
	if resp == nil {
		return TextOnly{}
	}
	if !resp.ListShaped {
		return TextOnly{Text: resp.Text}
	}
	for _, p := range resp.Parts {
		if !p.IsImage() {
			continue
		}
		switch {
		case p.URL != "":
			return WithImage{Text: resp.Text, Ref: ImageRef{URL: p.URL}}
		case len(p.Data) > 0:
			return WithImage{Text: resp.Text, Ref: ImageRef{Data: p.Data, MIMEType: p.MIMEType}}
		}
	}
	return TextOnly{Text: resp.Text}
}
