package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aayush-paliwal/finance-sass/internal/util"
)

// CategoryTotal is one row of the summary rollup, amounts in display form.
type CategoryTotal struct {
	Name    string
	Income  string
	Expense string
}

// SummaryView carries the period totals with display-converted amounts.
type SummaryView struct {
	From       string
	To         string
	Income     string
	Expense    string
	Balance    string
	ByCategory []CategoryTotal
}

type summaryEnvelope struct {
	Data struct {
		From        string `json:"from"`
		To          string `json:"to"`
		IncomeCent  int64  `json:"income_cent"`
		ExpenseCent int64  `json:"expense_cent"`
		BalanceCent int64  `json:"balance_cent"`
		ByCategory  []struct {
			Name        string `json:"name"`
			IncomeCent  int64  `json:"income_cent"`
			ExpenseCent int64  `json:"expense_cent"`
		} `json:"by_category"`
	} `json:"data"`
}

// Summary fetches the period totals (cached under "summary"). Cents are
// converted to display decimals here, once.
func (c *Client) Summary(ctx context.Context) (*SummaryView, error) {
	if v, ok := c.cache.get("summary"); ok {
		view := v.(SummaryView)
		return &view, nil
	}

	var env summaryEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/summary", nil, &env); err != nil {
		return nil, fmt.Errorf("failed to fetch summary: %w", err)
	}

	view := SummaryView{
		From:    env.Data.From,
		To:      env.Data.To,
		Income:  util.FormatCents(env.Data.IncomeCent),
		Expense: util.FormatCents(env.Data.ExpenseCent),
		Balance: util.FormatCents(env.Data.BalanceCent),
	}
	for _, row := range env.Data.ByCategory {
		view.ByCategory = append(view.ByCategory, CategoryTotal{
			Name:    row.Name,
			Income:  util.FormatCents(row.IncomeCent),
			Expense: util.FormatCents(row.ExpenseCent),
		})
	}

	c.cache.set("summary", view)
	return &view, nil
}
