package admin_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jrsteele09/schoolgest-client/admin"
	"github.com/jrsteele09/schoolgest-client/internal/apitest"
	"github.com/stretchr/testify/require"
)

func TestClient_DashboardStats(t *testing.T) {
	c, calls := apitest.NewClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"totalStudents":420,"totalTeachers":31,"totalClasses":12,"totalSubjects":58,
			"globalAttendanceRate":93.5,"reportCardsGenerated":120,"databaseStatus":"UP","mode":"PROD"}`))
	})

	got, err := admin.NewClient(c).DashboardStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, &admin.DashboardStats{
		TotalStudents:        420,
		TotalTeachers:        31,
		TotalClasses:         12,
		TotalSubjects:        58,
		GlobalAttendanceRate: 93.5,
		ReportCardsGenerated: 120,
		DatabaseStatus:       "UP",
		Mode:                 "PROD",
	}, got)
	require.Equal(t, "/api/admin/dashboard/stats", calls.Last().Path)
}

func TestClient_SystemStatus(t *testing.T) {
	c, calls := apitest.NewClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"database":"UP","uptime":3600}`))
	})

	got, err := admin.NewClient(c).SystemStatus(context.Background())
	require.NoError(t, err)
	require.Equal(t, "UP", got["database"])
	require.Equal(t, "/api/admin/system/status", calls.Last().Path)
}
