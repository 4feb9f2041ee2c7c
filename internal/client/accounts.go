package client

import (
	"context"
	"fmt"
	"net/http"
)

// AccountView is the client-side projection of an account.
type AccountView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type accountListEnvelope struct {
	Data []AccountView `json:"data"`
}

type accountEnvelope struct {
	Data AccountView `json:"data"`
}

type deletedEnvelope struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

type deletedListEnvelope struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Accounts lists the caller's accounts (cached under "accounts").
func (c *Client) Accounts(ctx context.Context) ([]AccountView, error) {
	if v, ok := c.cache.get("accounts"); ok {
		return v.([]AccountView), nil
	}

	var env accountListEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/accounts", nil, &env); err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	c.cache.set("accounts", env.Data)
	return env.Data, nil
}

// Account fetches one account (cached under "account:<id>"). With an empty
// id the query stays idle and returns ErrMissingID.
func (c *Client) Account(ctx context.Context, id string) (*AccountView, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	key := "account:" + id
	if v, ok := c.cache.get(key); ok {
		view := v.(AccountView)
		return &view, nil
	}

	var env accountEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/accounts/"+id, nil, &env); err != nil {
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}

	c.cache.set(key, env.Data)
	view := env.Data
	return &view, nil
}

type nameInput struct {
	Name string `json:"name"`
}

// CreateAccount creates an account and invalidates dependent cache entries.
func (c *Client) CreateAccount(ctx context.Context, name string) (*AccountView, error) {
	var env accountEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/accounts", nameInput{Name: name}, &env); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	c.invalidate("accounts.create")
	view := env.Data
	return &view, nil
}

// UpdateAccount renames an account.
func (c *Client) UpdateAccount(ctx context.Context, id, name string) (*AccountView, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	var env accountEnvelope
	if err := c.do(ctx, http.MethodPatch, "/api/accounts/"+id, nameInput{Name: name}, &env); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	c.invalidate("accounts.update")
	view := env.Data
	return &view, nil
}

// DeleteAccount deletes an account and returns the deleted id.
func (c *Client) DeleteAccount(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", ErrMissingID
	}
	var env deletedEnvelope
	if err := c.do(ctx, http.MethodDelete, "/api/accounts/"+id, nil, &env); err != nil {
		return "", fmt.Errorf("failed to delete account: %w", err)
	}
	c.invalidate("accounts.delete")
	return env.Data.ID, nil
}

type bulkDeleteInput struct {
	IDs []string `json:"ids"`
}

// BulkDeleteAccounts deletes the owned subset of ids and returns the ids
// actually removed.
func (c *Client) BulkDeleteAccounts(ctx context.Context, ids []string) ([]string, error) {
	var env deletedListEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/accounts/bulk-delete", bulkDeleteInput{IDs: ids}, &env); err != nil {
		return nil, fmt.Errorf("failed to delete accounts: %w", err)
	}
	c.invalidate("accounts.bulkDelete")
	deleted := make([]string, 0, len(env.Data))
	for _, d := range env.Data {
		deleted = append(deleted, d.ID)
	}
	return deleted, nil
}
