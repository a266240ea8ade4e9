package apisvc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strings"
	"time"

	"github.com/unicrm/unicli/core"
)

// UploadFile posts file as multipart/form-data under the "file" field, with
// any extra form fields, reporting fractional progress as the body is read.
func (c *Client) UploadFile(ctx context.Context, path string, file core.Upload, extra map[string]string, out interface{}, onProgress core.ProgressFunc) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range extra {
		_ = w.WriteField(k, v)
	}

	part, err := createFilePart(w, file.Filename, file.ContentType)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	if _, err = io.Copy(part, file.Body); err != nil {
		return &Error{Message: err.Error()}
	}
	if err = w.Close(); err != nil {
		return &Error{Message: err.Error()}
	}

	body := &progressReader{r: &buf, total: int64(buf.Len()), onProgress: onProgress}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path, nil), body)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.ContentLength = body.total
	c.decorate(req)

	return c.roundTrip(req, out)
}

// DownloadFile fetches a binary body and writes it to dest; an empty dest
// falls back to download_<unix>.
func (c *Client) DownloadFile(ctx context.Context, path, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path, nil), nil)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	c.decorate(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return c.failTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		return c.fail(resp.StatusCode, data)
	}

	if dest == "" {
		dest = fmt.Sprintf("download_%d", time.Now().Unix())
	}
	f, err := os.Create(dest)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	if _, err = io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(dest)
		return c.failTransport(err)
	}
	return f.Close()
}

func createFilePart(w *multipart.Writer, filename, contentType string) (io.Writer, error) {
	if contentType == "" {
		return w.CreateFormFile("file", filename)
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filename)))
	h.Set("Content-Type", contentType)
	return w.CreatePart(h)
}

func escapeQuotes(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, "\\\"").Replace(s)
}

// progressReader reports cumulative read progress as a fraction of total.
type progressReader struct {
	r          io.Reader
	total      int64
	read       int64
	onProgress core.ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if p.onProgress != nil && p.total > 0 {
		p.onProgress(float64(p.read) / float64(p.total))
	}
	return n, err
}

func readBody(resp *http.Response) ([]byte, error) {
	return io.ReadAll(resp.Body)
}
