package resources_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/jrsteele09/schoolgest-client/internal/apitest"
	"github.com/jrsteele09/schoolgest-client/resources"
	"github.com/stretchr/testify/require"
)

func setupClient(t *testing.T, respond http.HandlerFunc) (*resources.Client, *apitest.Recorder) {
	t.Helper()
	c, rec := apitest.NewClient(t, respond)
	return resources.NewClient(c), rec
}

func TestClient_Create(t *testing.T) {
	var resource, filename string
	client, calls := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		resource = r.FormValue("resource")
		filename = ""
		if fh, ok := r.MultipartForm.File["file"]; ok {
			filename = fh[0].Filename
		}
		apitest.WriteJSON(w, resources.Resource{ID: 3, Title: "Cours 1", FileURL: "https://files/cours1.pdf", Published: true})
	})
	ctx := context.Background()

	got, err := client.Create(ctx, resources.Resource{Title: "Cours 1", SubjectID: 4, Published: true},
		&resources.Document{Name: "cours1.pdf", ContentType: "application/pdf", Content: strings.NewReader("%PDF")})
	require.NoError(t, err)
	require.Equal(t, "https://files/cours1.pdf", got.FileURL)
	require.Equal(t, "/api/ressources", calls.Last().Path)
	require.JSONEq(t, `{"title":"Cours 1","subjectId":4,"published":true}`, resource)
	require.Equal(t, "cours1.pdf", filename)

	_, err = client.Create(ctx, resources.Resource{Title: "Lien"}, nil)
	require.NoError(t, err)
	require.Empty(t, filename)
}

func TestClient_Listing(t *testing.T) {
	client, calls := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(`[{"id":3,"title":"Cours 1","published":true}]`))
	})
	ctx := context.Background()

	all, err := client.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []resources.Resource{{ID: 3, Title: "Cours 1", Published: true}}, all)

	_, err = client.BySubject(ctx, 4)
	require.NoError(t, err)
	require.Equal(t, "/api/ressources/matiere/4", calls.Last().Path)

	_, err = client.ByClass(ctx, 2, 5)
	require.NoError(t, err)
	require.Equal(t, "/api/ressources/classe/2", calls.Last().Path)
	require.Equal(t, "studentId=5", calls.Last().Query)

	_, err = client.ByClass(ctx, 2, 0)
	require.NoError(t, err)
	require.Empty(t, calls.Last().Query)

	require.NoError(t, client.Delete(ctx, 3))
	require.Equal(t, apitest.Call{Method: http.MethodDelete, Path: "/api/ressources/3"}, calls.Last())
}
