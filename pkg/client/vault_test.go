package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileStorageRoundTrip(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.Get("tokens")
	require.ErrorIs(t, err, ErrNotStored)

	require.NoError(t, storage.Set("tokens", []byte(`{"access_token":"a"}`)))
	data, err := storage.Get("tokens")
	require.NoError(t, err)
	require.JSONEq(t, `{"access_token":"a"}`, string(data))

	require.NoError(t, storage.Delete("tokens"))
	_, err = storage.Get("tokens")
	require.ErrorIs(t, err, ErrNotStored)

	// Deleting an absent key is not an error.
	require.NoError(t, storage.Delete("tokens"))
}

func TestVaultRoundTrip(t *testing.T) {
	vault := NewTokenVault(NewMemStorage())

	pair, err := vault.Tokens()
	require.NoError(t, err)
	require.Nil(t, pair)

	in := &TokenPair{
		AccessToken:      "a1",
		RefreshToken:     "r1",
		AccessExpiresAt:  time.Now().Add(15 * time.Minute).UTC(),
		RefreshExpiresAt: time.Now().Add(168 * time.Hour).UTC(),
	}
	require.NoError(t, vault.SetTokens(in))

	out, err := vault.Tokens()
	require.NoError(t, err)
	require.Equal(t, in.RefreshToken, out.RefreshToken)
	require.WithinDuration(t, in.AccessExpiresAt, out.AccessExpiresAt, time.Second)

	linked := "p1"
	require.NoError(t, vault.SetIdentity(&Identity{ID: "u1", Role: "caregiver", LinkedPatientID: &linked}))
	identity, err := vault.Identity()
	require.NoError(t, err)
	require.Equal(t, "caregiver", identity.Role)
	require.NotNil(t, identity.LinkedPatientID)

	require.NoError(t, vault.Clear())
	pair, err = vault.Tokens()
	require.NoError(t, err)
	require.Nil(t, pair)
	identity, err = vault.Identity()
	require.NoError(t, err)
	require.Nil(t, identity)
}

func TestVaultSurvivesProcessRestart(t *testing.T) {
	dir := t.TempDir()

	storage, err := NewFileStorage(dir)
	require.NoError(t, err)
	require.NoError(t, NewTokenVault(storage).SetTokens(&TokenPair{AccessToken: "a", RefreshToken: "r"}))

	reopened, err := NewFileStorage(dir)
	require.NoError(t, err)
	pair, err := NewTokenVault(reopened).Tokens()
	require.NoError(t, err)
	require.Equal(t, "r", pair.RefreshToken)
}
