package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/aayush-paliwal/finance-sass/internal/util"
)

// TransactionView is the client-side projection of a transaction. Amount is
// the display decimal ("1500.00"), converted from wire cents exactly once
// when the response envelope is unwrapped.
type TransactionView struct {
	ID         string
	Amount     string
	Payee      string
	Notes      string
	OccurredAt string
	AccountID  string
	CategoryID string
}

// transactionRow is the wire shape: amounts still in cents.
type transactionRow struct {
	ID         string  `json:"id"`
	Amount     int64   `json:"amount"`
	Payee      string  `json:"payee"`
	Notes      string  `json:"notes"`
	OccurredAt string  `json:"occurred_at"`
	AccountID  string  `json:"account_id"`
	CategoryID *string `json:"category_id"`
}

func (r *transactionRow) toView() TransactionView {
	view := TransactionView{
		ID:         r.ID,
		Amount:     util.FormatCents(r.Amount),
		Payee:      r.Payee,
		Notes:      r.Notes,
		OccurredAt: r.OccurredAt,
		AccountID:  r.AccountID,
	}
	if r.CategoryID != nil {
		view.CategoryID = *r.CategoryID
	}
	return view
}

type transactionListEnvelope struct {
	Data []transactionRow `json:"data"`
}

type transactionEnvelope struct {
	Data transactionRow `json:"data"`
}

// TransactionFilter narrows list queries; zero value lists everything.
type TransactionFilter struct {
	From      string // YYYY-MM-DD
	To        string // YYYY-MM-DD, inclusive
	AccountID string
}

func (f TransactionFilter) cacheKey() string {
	return fmt.Sprintf("transactions:%s:%s:%s", f.From, f.To, f.AccountID)
}

func (f TransactionFilter) queryString() string {
	q := url.Values{}
	if f.From != "" {
		q.Set("from", f.From)
	}
	if f.To != "" {
		q.Set("to", f.To)
	}
	if f.AccountID != "" {
		q.Set("account_id", f.AccountID)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// Transactions lists transactions matching the filter. An unfiltered list
// caches under "transactions", filtered ones under a parameterized key.
func (c *Client) Transactions(ctx context.Context, filter TransactionFilter) ([]TransactionView, error) {
	key := "transactions"
	if filter != (TransactionFilter{}) {
		key = filter.cacheKey()
	}
	if v, ok := c.cache.get(key); ok {
		return v.([]TransactionView), nil
	}

	var env transactionListEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/transactions"+filter.queryString(), nil, &env); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	views := make([]TransactionView, 0, len(env.Data))
	for i := range env.Data {
		views = append(views, env.Data[i].toView())
	}
	c.cache.set(key, views)
	return views, nil
}

// Transaction fetches one transaction; empty id keeps the query idle.
func (c *Client) Transaction(ctx context.Context, id string) (*TransactionView, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	key := "transaction:" + id
	if v, ok := c.cache.get(key); ok {
		view := v.(TransactionView)
		return &view, nil
	}

	var env transactionEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/transactions/"+id, nil, &env); err != nil {
		return nil, fmt.Errorf("failed to fetch transaction: %w", err)
	}

	view := env.Data.toView()
	c.cache.set(key, view)
	return &view, nil
}

// TransactionInput carries mutation fields in display form; the amount is
// parsed to cents here, once, before it goes on the wire.
type TransactionInput struct {
	Amount     string // decimal display value, e.g. "-42.50"
	Payee      string
	Notes      string
	OccurredAt string // YYYY-MM-DD
	AccountID  string
	CategoryID string // optional
}

type transactionWireInput struct {
	Amount     int64   `json:"amount"`
	Payee      string  `json:"payee"`
	Notes      string  `json:"notes"`
	OccurredAt string  `json:"occurred_at"`
	AccountID  string  `json:"account_id"`
	CategoryID *string `json:"category_id,omitempty"`
}

func (in TransactionInput) toWire() (transactionWireInput, error) {
	cents, err := util.ParseCents(in.Amount)
	if err != nil {
		return transactionWireInput{}, fmt.Errorf("invalid amount: %w", err)
	}
	wire := transactionWireInput{
		Amount:     cents,
		Payee:      in.Payee,
		Notes:      in.Notes,
		OccurredAt: in.OccurredAt,
		AccountID:  in.AccountID,
	}
	if in.CategoryID != "" {
		catID := in.CategoryID
		wire.CategoryID = &catID
	}
	return wire, nil
}

// CreateTransaction records a transaction.
func (c *Client) CreateTransaction(ctx context.Context, input TransactionInput) (*TransactionView, error) {
	wire, err := input.toWire()
	if err != nil {
		return nil, err
	}
	var env transactionEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/transactions", wire, &env); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	c.invalidate("transactions.create")
	view := env.Data.toView()
	return &view, nil
}

// UpdateTransaction replaces the whitelisted fields of a transaction.
func (c *Client) UpdateTransaction(ctx context.Context, id string, input TransactionInput) (*TransactionView, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	wire, err := input.toWire()
	if err != nil {
		return nil, err
	}
	var env transactionEnvelope
	if err := c.do(ctx, http.MethodPatch, "/api/transactions/"+id, wire, &env); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	c.invalidate("transactions.update")
	view := env.Data.toView()
	return &view, nil
}

// DeleteTransaction deletes a transaction and returns the deleted id.
func (c *Client) DeleteTransaction(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", ErrMissingID
	}
	var env deletedEnvelope
	if err := c.do(ctx, http.MethodDelete, "/api/transactions/"+id, nil, &env); err != nil {
		return "", fmt.Errorf("failed to delete transaction: %w", err)
	}
	c.invalidate("transactions.delete")
	return env.Data.ID, nil
}

// BulkDeleteTransactions deletes the owned subset of ids.
func (c *Client) BulkDeleteTransactions(ctx context.Context, ids []string) ([]string, error) {
	var env deletedListEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/transactions/bulk-delete", bulkDeleteInput{IDs: ids}, &env); err != nil {
		return nil, fmt.Errorf("failed to delete transactions: %w", err)
	}
	c.invalidate("transactions.bulkDelete")
	deleted := make([]string, 0, len(env.Data))
	for _, d := range env.Data {
		deleted = append(deleted, d.ID)
	}
	return deleted, nil
}
