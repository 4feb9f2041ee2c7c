package client

import (
	"context"
	"fmt"
	"net/http"
)

// CategoryView is the client-side projection of a category.
type CategoryView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type categoryListEnvelope struct {
	Data []CategoryView `json:"data"`
}

type categoryEnvelope struct {
	Data CategoryView `json:"data"`
}

// Categories lists the caller's categories (cached under "categories").
func (c *Client) Categories(ctx context.Context) ([]CategoryView, error) {
	if v, ok := c.cache.get("categories"); ok {
		return v.([]CategoryView), nil
	}

	var env categoryListEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &env); err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	c.cache.set("categories", env.Data)
	return env.Data, nil
}

// Category fetches one category; empty id keeps the query idle.
func (c *Client) Category(ctx context.Context, id string) (*CategoryView, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	key := "category:" + id
	if v, ok := c.cache.get(key); ok {
		view := v.(CategoryView)
		return &view, nil
	}

	var env categoryEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/categories/"+id, nil, &env); err != nil {
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}

	c.cache.set(key, env.Data)
	view := env.Data
	return &view, nil
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, name string) (*CategoryView, error) {
	var env categoryEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/categories", nameInput{Name: name}, &env); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	c.invalidate("categories.create")
	view := env.Data
	return &view, nil
}

// UpdateCategory renames a category.
func (c *Client) UpdateCategory(ctx context.Context, id, name string) (*CategoryView, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	var env categoryEnvelope
	if err := c.do(ctx, http.MethodPatch, "/api/categories/"+id, nameInput{Name: name}, &env); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	c.invalidate("categories.update")
	view := env.Data
	return &view, nil
}

// DeleteCategory deletes a category and returns the deleted id.
func (c *Client) DeleteCategory(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", ErrMissingID
	}
	var env deletedEnvelope
	if err := c.do(ctx, http.MethodDelete, "/api/categories/"+id, nil, &env); err != nil {
		return "", fmt.Errorf("failed to delete category: %w", err)
	}
	c.invalidate("categories.delete")
	return env.Data.ID, nil
}

// BulkDeleteCategories deletes the owned subset of ids.
func (c *Client) BulkDeleteCategories(ctx context.Context, ids []string) ([]string, error) {
	var env deletedListEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/categories/bulk-delete", bulkDeleteInput{IDs: ids}, &env); err != nil {
		return nil, fmt.Errorf("failed to delete categories: %w", err)
	}
	c.invalidate("categories.bulkDelete")
	deleted := make([]string, 0, len(env.Data))
	for _, d := range env.Data {
		deleted = append(deleted, d.ID)
	}
	return deleted, nil
}
