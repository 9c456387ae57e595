package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// ParseModeHTML enables Telegram's HTML caption markup.
const ParseModeHTML = "HTML"

const docxMIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Doer abstracts the HTTP transport so tests can count and fail calls.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a minimal Telegram Bot API client covering the two methods the
// relay needs: sendDocument and sendPhoto.
type Client struct {
	baseURL string
	token   string
	httpc   Doer
}

// NewClient builds a client. httpc defaults to http.DefaultClient.
func NewClient(baseURL, token string, httpc Doer) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpc:   httpc,
	}
}

// Document is a sendDocument payload.
type Document struct {
	ChatID    string
	Filename  string
	Caption   string
	ParseMode string
	Data      []byte
}

// Photo is a sendPhoto payload.
type Photo struct {
	ChatID   string
	Filename string
	Caption  string
	Data     []byte
}

// APIError is returned when the Bot API answers with a non-success status.
type APIError struct {
	Status      int
	Description string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("telegram api status %d: %s", e.Status, e.Description)
	}
	return fmt.Sprintf("telegram api status %d", e.Status)
}

// SendDocument posts a file attachment with a caption to a chat.
func (c *Client) SendDocument(ctx context.Context, doc Document) error {
	fields := map[string]string{
		"chat_id": doc.ChatID,
		"caption": doc.Caption,
	}
	if doc.ParseMode != "" {
		fields["parse_mode"] = doc.ParseMode
	}
	return c.post(ctx, "sendDocument", fields, "document", doc.Filename, docxMIMEType, doc.Data)
}

// SendPhoto posts an image with a caption to a chat.
func (c *Client) SendPhoto(ctx context.Context, photo Photo) error {
	fields := map[string]string{
		"chat_id": photo.ChatID,
		"caption": photo.Caption,
	}
	return c.post(ctx, "sendPhoto", fields, "photo", photo.Filename, "application/octet-stream", photo.Data)
}

func (c *Client) post(ctx context.Context, method string, fields map[string]string, fileField, filename, mimeType string, data []byte) error {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("write field %s: %w", key, err)
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, filename))
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("write file part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close multipart body: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Description: readDescription(resp.Body)}
	}
	return nil
}

// readDescription pulls the human-readable error out of a Bot API reply.
func readDescription(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var reply struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(raw, &reply); err == nil && reply.Description != "" {
		return reply.Description
	}
	return strings.TrimSpace(string(raw))
}
