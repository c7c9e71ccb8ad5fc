package clients

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transitpay/internal/models"
)

func TestResourcePathsAndMethods(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	b := h.backend
	b.handle(http.MethodPut, "/users/{id}", http.StatusOK, envelope(map[string]any{"id": 7, "firstName": "New"}))
	b.handle(http.MethodPost, "/users/{id}/balance/add", http.StatusOK, envelope(map[string]any{"id": 7, "balance": 30}))
	b.handle(http.MethodPut, "/users/{id}/password", http.StatusOK, envelope(nil))
	b.handle(http.MethodPost, "/cards/user/{id}", http.StatusCreated, envelope(map[string]any{"id": 9, "cardNumber": "4111111111111111", "status": "ACTIVE"}))
	b.handle(http.MethodPut, "/cards/{id}/set-default", http.StatusOK, envelope(nil))
	b.handle(http.MethodPost, "/journeys/tap-in", http.StatusOK, envelope(map[string]any{"id": 11, "status": "IN_PROGRESS"}))
	b.handle(http.MethodPut, "/journeys/{id}/tap-out", http.StatusOK, envelope(map[string]any{"id": 11, "status": "COMPLETED", "fare": 2.75}))
	b.handle(http.MethodPost, "/auth/register", http.StatusCreated, envelope(map[string]any{"user": map[string]any{"id": 8}}))

	u, err := h.api.Users.UpdateProfile(ctx, 7, models.ProfileUpdate{FirstName: "New"})
	require.NoError(t, err)
	assert.Equal(t, "New", u.FirstName)

	require.NoError(t, h.api.Users.AddBalance(ctx, 7, 25.5))
	require.NoError(t, h.api.Users.ChangePassword(ctx, 7, "oldpass12", "newpass12"))

	card, err := h.api.Cards.Add(ctx, 7, models.CardRequest{CardNumber: "4111111111111111", CardType: models.CardTypeCredit, ExpiryMonth: "12", ExpiryYear: "2030"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), card.ID)
	require.NoError(t, h.api.Cards.SetDefault(ctx, 9))

	j, err := h.api.Journeys.TapIn(ctx, models.TapInRequest{UserID: 7, CardID: 9, EntryStationID: 2})
	require.NoError(t, err)
	assert.Equal(t, models.JourneyInProgress, j.Status)

	j, err = h.api.Journeys.TapOut(ctx, 11, 3)
	require.NoError(t, err)
	assert.InDelta(t, 2.75, j.FareAmount(), 1e-9)

	reg, err := h.api.Auth.Register(ctx, models.RegisterRequest{Email: "n@b.com", Password: "longenough"})
	require.NoError(t, err)
	require.NotNil(t, reg.User)
	assert.Equal(t, int64(8), reg.User.ID)
	assert.Empty(t, reg.Token)

	reqs := b.recorded()
	require.Len(t, reqs, 8)
	assert.Equal(t, "PUT /api/users/7", reqs[0].Method+" "+reqs[0].Path)
	assert.Equal(t, "POST /api/users/7/balance/add", reqs[1].Method+" "+reqs[1].Path)
	assert.Equal(t, "amount=25.5", reqs[1].Query)
	assert.Equal(t, map[string]any{"oldPassword": "oldpass12", "newPassword": "newpass12"}, reqs[2].Body)
	assert.Equal(t, "POST /api/cards/user/7", reqs[3].Method+" "+reqs[3].Path)
	assert.Equal(t, false, reqs[3].Body["isDefault"])
	assert.Equal(t, "PUT /api/cards/9/set-default", reqs[4].Method+" "+reqs[4].Path)
	assert.Equal(t, map[string]any{"userId": 7.0, "cardId": 9.0, "entryStationId": 2.0}, reqs[5].Body)
	assert.Equal(t, "PUT /api/journeys/11/tap-out", reqs[6].Method+" "+reqs[6].Path)
	assert.Equal(t, "exitStationId=3", reqs[6].Query)
	assert.Equal(t, "POST /api/auth/register", reqs[7].Method+" "+reqs[7].Path)
}

func TestActiveJourneyLookup(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.backend.handle(http.MethodGet, "/journeys/user/{id}", http.StatusOK, envelope([]map[string]any{
		{"id": 1, "status": "COMPLETED", "tapInTime": "2024-05-01T08:00:00", "fare": 2.5},
		{"id": 2, "status": "IN_PROGRESS", "tapInTime": "2024-05-02T08:00:00", "entryStation": map[string]any{"id": 1, "name": "Central", "zone": 1}},
	}))

	active := h.api.Journeys.Active(ctx, 7)
	require.NotNil(t, active)
	assert.Equal(t, int64(2), active.ID)
	assert.Equal(t, "Central", active.EntryStation.Name)
	assert.Equal(t, "/api/journeys/user/7", h.backend.recorded()[0].Path)
}

func TestActiveJourneyLookupSwallowsFailure(t *testing.T) {
	h := newHarness(t)
	h.backend.handle(http.MethodGet, "/journeys/user/{id}", http.StatusInternalServerError, map[string]any{"message": "boom"})
	assert.Nil(t, h.api.Journeys.Active(context.Background(), 7))
}

func TestBlockCardNeverCallsBackend(t *testing.T) {
	h := newHarness(t)
	err := h.api.Cards.Block(context.Background(), 3)
	assert.ErrorIs(t, err, ErrNotSupported)
	assert.Empty(t, h.backend.recorded())
}
