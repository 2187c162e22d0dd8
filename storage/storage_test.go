package storage_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/jrsteele09/schoolgest-client/apierror"
	"github.com/jrsteele09/schoolgest-client/internal/apitest"
	"github.com/jrsteele09/schoolgest-client/storage"
	"github.com/stretchr/testify/require"
)

func TestUpload_DefaultFolder(t *testing.T) {
	c, calls := apitest.NewClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"url":"https://cdn.example.com/general/cv.pdf"}`))
	})

	got, err := storage.NewClient(c).Upload(context.Background(), "", "cv.pdf", "application/pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/general/cv.pdf", got)
	require.Equal(t, "/api/stockage/upload", calls.Last().Path)
	require.Equal(t, "dossier=general", calls.Last().Query)
	require.True(t, strings.HasPrefix(calls.Last().ContentType, "multipart/form-data"))
}

func TestUpload_Folder(t *testing.T) {
	c, calls := apitest.NewClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"url":"https://cdn.example.com/justificatifs/a.png"}`))
	})

	_, err := storage.NewClient(c).Upload(context.Background(), "justificatifs", "a.png", "image/png", strings.NewReader("png"))
	require.NoError(t, err)
	require.Equal(t, "dossier=justificatifs", calls.Last().Query)
}

func TestUpload_Errors(t *testing.T) {
	c, _ := apitest.NewClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Query().Get("dossier"), "empty") {
			_, _ = w.Write([]byte(`{}`))
			return
		}
		http.Error(w, `{"message":"Fichier trop volumineux"}`, http.StatusRequestEntityTooLarge)
	})
	client := storage.NewClient(c)

	_, err := client.Upload(context.Background(), "empty", "a.txt", "", strings.NewReader("x"))
	require.ErrorIs(t, err, storage.EmptyURLErr)

	_, err = client.Upload(context.Background(), "big", "a.txt", "", strings.NewReader("x"))
	var httpErr *apierror.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusRequestEntityTooLarge, httpErr.StatusCode)
}
