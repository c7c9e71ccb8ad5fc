package views

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transitpay/internal/models"
)

func TestProfileShow(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.backend.ok(http.MethodGet, "/users/{id}", map[string]any{
		"id": 7, "firstName": "Ada", "lastName": "Lovelace", "email": "a@b.com",
		"role": "USER", "balance": 1234.5, "createdAt": "2023-01-15T10:00:00",
	})

	require.NoError(t, NewProfileController(f.deps).Show(context.Background()))
	out := f.out.String()
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "$1,234.50")
	assert.Contains(t, out, "Jan 15, 2023")
}

func TestProfileUpdateMergesAndRefreshesSession(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	ctx := context.Background()
	f.backend.ok(http.MethodGet, "/users/{id}", map[string]any{
		"id": 7, "firstName": "Ada", "lastName": "Lovelace", "email": "a@b.com", "phoneNumber": "555",
	})
	f.backend.ok(http.MethodPut, "/users/{id}", map[string]any{
		"id": 7, "firstName": "Ada", "lastName": "King", "email": "a@b.com", "phoneNumber": "555",
	})

	require.NoError(t, NewProfileController(f.deps).Update(ctx, models.ProfileUpdate{LastName: "King"}))

	calls := f.backend.recorded()
	require.Len(t, calls, 2)
	assert.Equal(t, map[string]any{"firstName": "Ada", "lastName": "King", "email": "a@b.com", "phoneNumber": "555"}, calls[1].Body)

	user, err := f.store.User(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Ada King", user.FullName())
}

func TestPasswordFormValidate(t *testing.T) {
	assert.NoError(t, PasswordForm{Current: "oldsecret", New: "newsecret", Confirm: "newsecret"}.Validate())

	// length counts characters, not bytes
	assert.NoError(t, PasswordForm{Current: "oldsecret", New: "éééééééé", Confirm: "éééééééé"}.Validate())

	cases := []struct {
		form PasswordForm
		want string
	}{
		{PasswordForm{Current: "oldsecret", New: "newsecret", Confirm: "newsecreT"}, "New passwords do not match!"},
		{PasswordForm{Current: "oldsecret", New: "short", Confirm: "short"}, "New password must be at least 8 characters long!"},
		{PasswordForm{Current: "oldsecret", New: "ééééé", Confirm: "ééééé"}, "New password must be at least 8 characters long!"},
		{PasswordForm{Current: "samesecret", New: "samesecret", Confirm: "samesecret"}, "New password must be different from current password!"},
	}
	for _, tc := range cases {
		err := tc.form.Validate()
		require.Error(t, err)
		assert.Equal(t, tc.want, err.Error())
	}
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.backend.ok(http.MethodPut, "/users/{id}/password", nil)

	require.NoError(t, NewProfileController(f.deps).ChangePassword(context.Background(),
		PasswordForm{Current: "oldsecret", New: "newsecret", Confirm: "newsecret"}))
	calls := f.backend.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, map[string]any{"oldPassword": "oldsecret", "newPassword": "newsecret"}, calls[0].Body)
}

func TestStationsList(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.backend.ok(http.MethodGet, "/stations", []map[string]any{station(3, "Central"), station(4, "Harbour")})

	require.NoError(t, NewStationsController(f.deps).List(context.Background()))
	assert.Contains(t, f.out.String(), "Central")
	assert.Contains(t, f.out.String(), "Zone 1")
}
