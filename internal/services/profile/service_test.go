package profile_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datingapp/request-fabric/internal/platform/outbound"
	"github.com/datingapp/request-fabric/internal/platform/resilience"
	"github.com/datingapp/request-fabric/internal/services/profile"
)

func TestService_UpdateForwardsToDataCollaborator(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p profile.Profile
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(p)
	}))
	defer upstream.Close()

	client := outbound.New("data", upstream.URL, resilience.NewResilienceWrapper())
	svc := profile.NewService(client)

	updated, err := svc.Update(t.Context(), profile.Profile{UserID: "alice", DisplayName: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.DisplayName)
}

func TestService_UpdateRejectsMissingUserID(t *testing.T) {
	client := outbound.New("data", "http://unused", resilience.NewResilienceWrapper())
	svc := profile.NewService(client)

	_, err := svc.Update(t.Context(), profile.Profile{DisplayName: "Alice"})
	assert.Error(t, err)
}
