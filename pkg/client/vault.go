package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	keyTokens   = "tokens"
	keyIdentity = "identity"
)

// TokenVault is durable storage for the current token pair and cached
// identity. It does no validation of token contents; it is pure storage.
type TokenVault struct {
	storage Storage
}

func NewTokenVault(storage Storage) *TokenVault {
	return &TokenVault{storage: storage}
}

// Tokens returns the stored pair, or nil when none is stored.
func (v *TokenVault) Tokens() (*TokenPair, error) {
	data, err := v.storage.Get(keyTokens)
	if errors.Is(err, ErrNotStored) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var pair TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return nil, fmt.Errorf("corrupt token store: %w", err)
	}
	return &pair, nil
}

func (v *TokenVault) SetTokens(pair *TokenPair) error {
	data, err := json.Marshal(pair)
	if err != nil {
		return err
	}
	return v.storage.Set(keyTokens, data)
}

// Identity returns the cached identity, or nil when none is stored.
func (v *TokenVault) Identity() (*Identity, error) {
	data, err := v.storage.Get(keyIdentity)
	if errors.Is(err, ErrNotStored) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var identity Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, fmt.Errorf("corrupt identity store: %w", err)
	}
	return &identity, nil
}

func (v *TokenVault) SetIdentity(identity *Identity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	return v.storage.Set(keyIdentity, data)
}

// Clear removes both tokens and cached identity.
func (v *TokenVault) Clear() error {
	if err := v.storage.Delete(keyTokens); err != nil {
		return err
	}
	return v.storage.Delete(keyIdentity)
}
