package emailsend

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
)

const base64LineLen = 76

// BuildMessage assembles a multipart/related message with an HTML part and,
// when img is non-nil, an inline image part addressed by ContentID.
func BuildMessage(from string, to []string, subject, html string, img *InlineImage, date time.Time) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := []struct{ key, value string }{
		{"From", from},
		{"To", strings.Join(to, ", ")},
		{"Subject", mime.BEncoding.Encode("utf-8", subject)},
		{"Date", date.Format(time.RFC1123Z)},
		{"Message-ID", messageID(from)},
		{"MIME-Version", "1.0"},
		{"Content-Type", mime.FormatMediaType("multipart/related", map[string]string{
			"boundary": mw.Boundary(),
			"type":     "text/html",
		})},
	}
	for _, h := range header {
		fmt.Fprintf(&buf, "%s: %s\r\n", h.key, h.value)
	}
	buf.WriteString("\r\n")

	htmlPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {`text/html; charset="utf-8"`},
		"Content-Transfer-Encoding": {"quoted-printable"},
	})
	if err != nil {
		return nil, fmt.Errorf("create html part: %w", err)
	}
	qp := quotedprintable.NewWriter(htmlPart)
	// Keep line endings as written so the weather text survives verbatim.
	qp.Binary = true
	if _, err := io.WriteString(qp, html); err != nil {
		return nil, fmt.Errorf("write html part: %w", err)
	}
	if err := qp.Close(); err != nil {
		return nil, fmt.Errorf("flush html part: %w", err)
	}

	if img != nil {
		contentType := img.ContentType
		if contentType == "" {
			contentType = "image/png"
		}
		imgPart, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {contentType},
			"Content-Transfer-Encoding": {"base64"},
			"Content-ID":                {"<" + ContentID + ">"},
			"Content-Disposition":       {mime.FormatMediaType("inline", map[string]string{"filename": img.Filename})},
		})
		if err != nil {
			return nil, fmt.Errorf("create image part: %w", err)
		}
		if err := writeBase64Lines(imgPart, img.Data); err != nil {
			return nil, fmt.Errorf("write image part: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}
	return buf.Bytes(), nil
}

func writeBase64Lines(w io.Writer, data []byte) error {
	enc := base64.StdEncoding.EncodeToString(data)
	for len(enc) > 0 {
		n := min(base64LineLen, len(enc))
		if _, err := io.WriteString(w, enc[:n]+"\r\n"); err != nil {
			return err
		}
		enc = enc[n:]
	}
	return nil
}

func messageID(from string) string {
	domain := "localhost"
	if i := strings.LastIndex(from, "@"); i >= 0 && i < len(from)-1 {
		domain = from[i+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}
