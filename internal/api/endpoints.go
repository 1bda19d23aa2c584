package api

import (
	"context"
	"net/http"
	"strconv"

	"moneymaven/internal/core"
)

// Login exchanges credentials for a token. Only a 200 counts as success.
func (c *Client) Login(ctx context.Context, creds core.Credentials) (core.LoginResult, error) {
	var out core.LoginResult
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/login",
		body:   creds,
		out:    &out,
		want:   http.StatusOK,
	})
	if err != nil {
		return core.LoginResult{}, err
	}
	if out.Token == "" {
		return core.LoginResult{}, &StatusError{Status: http.StatusOK}
	}
	return out, nil
}

// Register creates an account. Only a 201 counts as success.
func (c *Client) Register(ctx context.Context, reg core.Registration) error {
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/registration",
		body:   reg,
		want:   http.StatusCreated,
	})
	return err
}

// UserProfile fetches the logged-in user's profile.
func (c *Client) UserProfile(ctx context.Context) (core.UserProfile, error) {
	var out core.UserProfile
	_, err := c.do(ctx, request{method: http.MethodGet, path: "/user-profile", auth: true, out: &out})
	return out, err
}

// UpdateProfile replaces the user's profile.
func (c *Client) UpdateProfile(ctx context.Context, p core.UserProfile) error {
	_, err := c.do(ctx, request{method: http.MethodPut, path: "/update-profile", auth: true, body: p})
	return err
}

// Expenses lists the expenses recorded on date (YYYY-MM-DD).
func (c *Client) Expenses(ctx context.Context, date string) ([]core.Expense, error) {
	var out []core.Expense
	_, err := c.do(ctx, request{method: http.MethodGet, path: "/expenses/" + date, auth: true, out: &out})
	if out == nil {
		out = []core.Expense{}
	}
	return out, err
}

// AddExpense records a new expense.
func (c *Client) AddExpense(ctx context.Context, e core.Expense) error {
	_, err := c.do(ctx, request{method: http.MethodPost, path: "/expenses", auth: true, body: e})
	return err
}

// FinancialProfile fetches income and fixed costs.
func (c *Client) FinancialProfile(ctx context.Context) (core.FinancialProfile, error) {
	var out core.FinancialProfile
	_, err := c.do(ctx, request{method: http.MethodGet, path: "/financial-profile", auth: true, out: &out})
	return out, err
}

// UpdateFinancialProfile replaces income and fixed costs.
func (c *Client) UpdateFinancialProfile(ctx context.Context, p core.FinancialProfile) error {
	_, err := c.do(ctx, request{method: http.MethodPut, path: "/financial-profile", auth: true, body: p})
	return err
}

// FinancialGoal fetches this month's goal. An empty body reads as no goal.
func (c *Client) FinancialGoal(ctx context.Context) (core.FinancialGoal, error) {
	var out core.FinancialGoal
	_, err := c.do(ctx, request{method: http.MethodGet, path: "/financial-goal", auth: true, out: &out})
	return out, err
}

// SetFinancialGoal saves the monthly target amount.
func (c *Client) SetFinancialGoal(ctx context.Context, target float64) error {
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/financial-goal",
		auth:   true,
		body:   map[string]float64{"targetAmount": target},
	})
	return err
}

// GoalHistory lists how past months ended.
func (c *Client) GoalHistory(ctx context.Context) ([]core.GoalHistoryEntry, error) {
	var out []core.GoalHistoryEntry
	_, err := c.do(ctx, request{method: http.MethodGet, path: "/goal-history", auth: true, out: &out})
	return out, err
}

// MonthlyExpenses returns spending per month, in server order.
func (c *Client) MonthlyExpenses(ctx context.Context) (core.Series, error) {
	return c.series(ctx, "/dashboard/monthly-expenses", nil)
}

// ImpulseVsNecessity returns spending per expense type.
func (c *Client) ImpulseVsNecessity(ctx context.Context) (core.Series, error) {
	return c.series(ctx, "/dashboard/impulse-vs-necessity", nil)
}

// DailyExpenses returns spending per day of the given month.
func (c *Client) DailyExpenses(ctx context.Context, month, year int) (core.Series, error) {
	return c.series(ctx, "/dashboard/daily-expenses", periodQuery(month, year))
}

// WeeklyExpenses returns spending per week of the given month.
func (c *Client) WeeklyExpenses(ctx context.Context, month, year int) (core.Series, error) {
	return c.series(ctx, "/dashboard/weekly-expenses", periodQuery(month, year))
}

func (c *Client) series(ctx context.Context, path string, query map[string]string) (core.Series, error) {
	var out core.Series
	_, err := c.do(ctx, request{method: http.MethodGet, path: path, auth: true, query: query, out: &out})
	return out, err
}

func periodQuery(month, year int) map[string]string {
	return map[string]string{
		"month": strconv.Itoa(month),
		"year":  strconv.Itoa(year),
	}
}
