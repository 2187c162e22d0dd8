package bulletins_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jrsteele09/schoolgest-client/bulletins"
	"github.com/jrsteele09/schoolgest-client/internal/apitest"
	"github.com/stretchr/testify/require"
)

func TestClient_GenerateAndRank(t *testing.T) {
	c, calls := apitest.NewClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/bulletins/generer" {
			apitest.WriteJSON(w, bulletins.ReportCard{ID: 10, StudentID: 5, SemesterID: 2, Average: 13.25})
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	client := bulletins.NewClient(c)
	ctx := context.Background()

	card, err := client.Generate(ctx, 5, 2, "2025-2026")
	require.NoError(t, err)
	require.Equal(t, 13.25, card.Average)
	require.JSONEq(t, `{"studentId":5,"semesterId":2,"academicYear":"2025-2026"}`, calls.Last().Body)

	require.NoError(t, client.CalculateRanks(ctx, 2, "2025-2026"))
	require.Equal(t, "/api/bulletins/calculer-rangs", calls.Last().Path)
	require.JSONEq(t, `{"semesterId":2,"academicYear":"2025-2026"}`, calls.Last().Body)
}

func TestClient_ByStudentAndPDF(t *testing.T) {
	c, calls := apitest.NewClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/bulletins/10/pdf" {
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", `attachment; filename="bulletin-10.pdf"`)
			_, _ = w.Write([]byte("%PDF-1.7"))
			return
		}
		_, _ = w.Write([]byte(`[{"id":10,"studentId":5,"semesterId":2,"average":12,"rank":3,"validated":true,
			"moduleResults":[{"id":1,"moduleId":4,"average":12,"totalCredits":6,
				"subjectResults":[{"id":1,"subjectId":7,"ccAverage":11,"examGrade":13,"finalAverage":12.2}]}]}]`))
	})
	client := bulletins.NewClient(c)
	ctx := context.Background()

	cards, err := client.ByStudent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	require.Equal(t, 3, cards[0].Rank)
	require.Equal(t, 12.2, cards[0].ModuleResults[0].SubjectResults[0].FinalAverage)
	require.Equal(t, "/api/bulletins/etudiant/5", calls.Last().Path)

	pdf, err := client.DownloadPDF(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, "bulletin-10.pdf", pdf.Filename)
	require.Equal(t, "application/pdf", pdf.ContentType)
	require.Equal(t, []byte("%PDF-1.7"), pdf.Data)
}
