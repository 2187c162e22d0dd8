package attendance_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/jrsteele09/schoolgest-client/attendance"
	"github.com/jrsteele09/schoolgest-client/internal/apitest"
	"github.com/stretchr/testify/require"
)

func setupClient(t *testing.T, respond http.HandlerFunc) (*attendance.Client, *apitest.Recorder) {
	t.Helper()
	c, rec := apitest.NewClient(t, respond)
	return attendance.NewClient(c), rec
}

func TestClient_MarkAndBatch(t *testing.T) {
	client, calls := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/batch") {
			_, _ = w.Write([]byte(`[{"id":1,"status":"PRESENT"},{"id":2,"status":"RETARD"}]`))
			return
		}
		apitest.WriteJSON(w, attendance.Attendance{ID: 1, StudentID: 5, PlanningID: 8, Status: attendance.StatusAbsent})
	})
	ctx := context.Background()

	got, err := client.Mark(ctx, attendance.Mark{StudentID: 5, PlanningID: 8, Status: attendance.StatusAbsent})
	require.NoError(t, err)
	require.Equal(t, attendance.StatusAbsent, got.Status)
	require.Equal(t, "/api/presences/marquer", calls.Last().Path)
	require.Equal(t, `{"studentId":5,"planningId":8,"status":"ABSENT"}`, calls.Last().Body)

	batch, err := client.MarkBatch(ctx, 8, []attendance.Mark{
		{StudentID: 5, Status: attendance.StatusPresent},
		{StudentID: 6, Status: attendance.StatusLate, Notes: "10 min"},
	})
	require.NoError(t, err)
	require.Len(t, batch, 2)
	require.Equal(t, "/api/presences/marquer/batch", calls.Last().Path)
	require.JSONEq(t, `{"planningId":8,"attendances":[
		{"studentId":5,"planningId":8,"status":"PRESENT"},
		{"studentId":6,"planningId":8,"status":"RETARD","notes":"10 min"}]}`, calls.Last().Body)
}

func TestClient_Justify(t *testing.T) {
	client, calls := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse form: %v", err)
		}
		apitest.WriteJSON(w, attendance.Attendance{
			ID:                  3,
			JustificationReason: r.FormValue("reason"),
			JustificationStatus: attendance.JustificationPending,
		})
	})
	ctx := context.Background()

	got, err := client.Justify(ctx, 3, "Rendez-vous médical", nil)
	require.NoError(t, err)
	require.Equal(t, "Rendez-vous médical", got.JustificationReason)
	require.NotContains(t, calls.Last().Body, `name="file"`)

	_, err = client.Justify(ctx, 3, "Certificat", &attendance.Proof{Name: "certificat.pdf", ContentType: "application/pdf", Content: strings.NewReader("%PDF")})
	require.NoError(t, err)
	require.Equal(t, "/api/presences/3/justifier", calls.Last().Path)
	require.Contains(t, calls.Last().Body, `name="file"; filename="certificat.pdf"`)
	require.Contains(t, calls.Last().Body, "%PDF")
}

func TestClient_ValidateJustification(t *testing.T) {
	client, calls := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		apitest.WriteJSON(w, attendance.Attendance{ID: 3, JustificationStatus: attendance.JustificationRejected})
	})

	got, err := client.ValidateJustification(context.Background(), 3, false)
	require.NoError(t, err)
	require.Equal(t, attendance.JustificationRejected, got.JustificationStatus)
	require.Equal(t, apitest.Call{Method: http.MethodPatch, Path: "/api/presences/3/valider-justificatif", Query: "accepted=false", Body: "{}", ContentType: "application/json"}, calls.Last())
}

func TestClient_StudentStatsAndHistory(t *testing.T) {
	client, calls := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/stats/") {
			_, _ = w.Write([]byte(`{"total":20,"absences":2,"rate":90.0}`))
			return
		}
		_, _ = w.Write([]byte(`[{"id":1,"studentId":5,"date":"2026-03-02","status":"ABSENT","justificationStatus":"NONE"}]`))
	})
	ctx := context.Background()

	stats, err := client.StudentStats(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, float64(20), stats["total"])
	require.Equal(t, "/api/presences/stats/etudiant/5", calls.Last().Path)

	history, err := client.StudentHistory(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, []attendance.Attendance{{
		ID:                  1,
		StudentID:           5,
		Date:                "2026-03-02",
		Status:              attendance.StatusAbsent,
		JustificationStatus: attendance.JustificationNone,
	}}, history)
	require.Equal(t, "/api/presences/etudiant/5", calls.Last().Path)
}
