package admin_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datingapp/request-fabric/internal/platform/outbound"
	"github.com/datingapp/request-fabric/internal/platform/resilience"
	"github.com/datingapp/request-fabric/internal/services/admin"
)

func newDataClient(t *testing.T) *outbound.Client {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(upstream.Close)
	return outbound.New("data", upstream.URL, resilience.NewResilienceWrapper())
}

func TestService_DecideModeration(t *testing.T) {
	svc := admin.NewService(newDataClient(t))
	err := svc.DecideModeration(context.Background(), admin.ModerationDecision{AssetID: "asset-1", Approve: true})
	require.NoError(t, err)
}

func TestService_DecideModerationRejectsMissingAssetID(t *testing.T) {
	svc := admin.NewService(newDataClient(t))
	err := svc.DecideModeration(context.Background(), admin.ModerationDecision{})
	assert.Error(t, err)
}

func TestService_SuspendUser(t *testing.T) {
	svc := admin.NewService(newDataClient(t))
	err := svc.SuspendUser(context.Background(), admin.SuspendRequest{UserID: "alice", Reason: "abuse"})
	require.NoError(t, err)
}
