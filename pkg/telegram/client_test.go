package telegram

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientSendDocument(t *testing.T) {
	var gotPath, gotChatID, gotCaption, gotParseMode string
	var gotFilename, gotContentType string
	var gotData []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotChatID = r.FormValue("chat_id")
		gotCaption = r.FormValue("caption")
		gotParseMode = r.FormValue("parse_mode")

		file, header, err := r.FormFile("document")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename
		gotContentType = header.Header.Get("Content-Type")
		buf, err := io.ReadAll(file)
		require.NoError(t, err)
		gotData = buf

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token-123", server.Client())
	err := client.SendDocument(context.Background(), Document{
		ChatID:    "-100200300",
		Filename:  "SKA_12345.docx",
		Caption:   "<b>SK AKTIF BARU</b>",
		ParseMode: ParseModeHTML,
		Data:      []byte("docx-bytes"),
	})
	require.NoError(t, err)

	require.Equal(t, "/bottoken-123/sendDocument", gotPath)
	require.Equal(t, "-100200300", gotChatID)
	require.Equal(t, "<b>SK AKTIF BARU</b>", gotCaption)
	require.Equal(t, ParseModeHTML, gotParseMode)
	require.Equal(t, "SKA_12345.docx", gotFilename)
	require.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", gotContentType)
	require.Equal(t, []byte("docx-bytes"), gotData)
}

func TestClientSendDocumentOmitsEmptyParseMode(t *testing.T) {
	var hasParseMode bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, hasParseMode = r.MultipartForm.Value["parse_mode"]
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok", server.Client())
	err := client.SendDocument(context.Background(), Document{ChatID: "1", Filename: "a.docx", Caption: "plain", Data: []byte("x")})
	require.NoError(t, err)
	require.False(t, hasParseMode)
}

func TestClientSendPhoto(t *testing.T) {
	var gotPath, gotCaption, gotFilename string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotCaption = r.FormValue("caption")
		_, header, err := r.FormFile("photo")
		require.NoError(t, err)
		gotFilename = header.Filename
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok", server.Client())
	err := client.SendPhoto(context.Background(), Photo{ChatID: "1", Filename: "ktm.jpg", Caption: "Foto KTM", Data: []byte("jpg")})
	require.NoError(t, err)
	require.Equal(t, "/bottok/sendPhoto", gotPath)
	require.Equal(t, "Foto KTM", gotCaption)
	require.Equal(t, "ktm.jpg", gotFilename)
}

func TestClientSendDocumentAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: can't parse entities"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok", server.Client())
	err := client.SendDocument(context.Background(), Document{ChatID: "1", Filename: "a.docx", Caption: "<b", Data: []byte("x")})
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Contains(t, apiErr.Description, "can't parse entities")
}
