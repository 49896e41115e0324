package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/licensehub/licensehub/internal/application/admin/dto"
	"github.com/licensehub/licensehub/internal/interfaces/http/handlers/testutil"
)

type mockDashboardUC struct {
	result *dto.AdminDashboardResponse
	err    error
}

func (m *mockDashboardUC) Execute(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	return m.result, m.err
}

func TestAdminDashboardHandler_GetDashboard(t *testing.T) {
	uc := &mockDashboardUC{result: &dto.AdminDashboardResponse{
		TotalCustomers:      12,
		ActiveSubscriptions: 4,
		PendingRequests:     2,
		TotalRevenue:        "196.00",
		RecentActivities:    []*dto.RecentActivityDTO{},
	}}
	h := NewAdminDashboardHandler(uc, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/admin/dashboard", nil)
	h.GetDashboard(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var got dto.AdminDashboardResponse
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, int64(4), got.ActiveSubscriptions)
	assert.Equal(t, "196.00", got.TotalRevenue)
}

func TestAdminDashboardHandler_GetDashboard_Error(t *testing.T) {
	h := NewAdminDashboardHandler(&mockDashboardUC{err: fmt.Errorf("count failed")}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/admin/dashboard", nil)
	h.GetDashboard(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
