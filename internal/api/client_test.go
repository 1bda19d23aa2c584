package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneymaven/internal/core"
	"moneymaven/internal/trace"
)

type staticToken string

func (s staticToken) Token() (string, bool) { return string(s), s != "" }

func newTestClient(t *testing.T, token string, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/", Tokens: staticToken(token)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("200 with token", func(t *testing.T) {
		c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/login", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Empty(t, r.Header.Get("Authorization"))

			var creds core.Credentials
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			assert.Equal(t, core.Credentials{Email: "a@b.co", Password: "secret1"}, creds)

			writeJSON(w, http.StatusOK, map[string]string{"token": "jwt"})
		})
		res, err := c.Login(ctx, core.Credentials{Email: "a@b.co", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, "jwt", res.Token)
	})

	t.Run("non-200 success is a failure", func(t *testing.T) {
		c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusAccepted, map[string]string{"token": "jwt"})
		})
		_, err := c.Login(ctx, core.Credentials{})
		assert.True(t, IsStatus(err, http.StatusAccepted))
		assert.Equal(t, MsgLoginFailed, Message(err, MsgLoginFailed))
	})

	t.Run("401 with plain body", func(t *testing.T) {
		c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, "Invalid email or password")
		})
		_, err := c.Login(ctx, core.Credentials{})
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusUnauthorized, se.Status)
		assert.Equal(t, "Invalid email or password", Message(err, MsgLoginFailed))
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
		wantMsg string
	}{
		{"created", http.StatusCreated, "", false, ""},
		{"ok is not enough", http.StatusOK, "", true, MsgRegistration},
		{"conflict", http.StatusConflict, `{"message":"duplicate"}`, true, MsgEmailInUse},
		{"server message", http.StatusBadRequest, `{"error":"bad birthday"}`, true, "bad birthday"},
		{"empty error body", http.StatusInternalServerError, "", true, MsgRegistration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/registration", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			err := c.Register(ctx, core.Registration{Name: "Ana"})
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantMsg, RegistrationMessage(err))
		})
	}
}

func TestAuthenticatedCallsSendBearer(t *testing.T) {
	var auth atomic.Value
	c := newTestClient(t, "tok123", func(w http.ResponseWriter, r *http.Request) {
		auth.Store(r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, core.UserProfile{Name: "Ana", Email: "a@b.co"})
	})

	p, err := c.UserProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Name)
	assert.Equal(t, "Bearer tok123", auth.Load())
}

func TestNoTokenSendsNoHeader(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, core.FinancialProfile{Rent: 700})
	})
	p, err := c.FinancialProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 700.0, p.Rent)
}

func TestExpenses(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/expenses/2025-03-14":
			_, _ = io.WriteString(w, `[{"id":7,"itemName":"Coffee","price":2.5,"type":"NECESSITY",
				"emotionAfterPurchase":"HAPPY","emotionAtRegistration":"PROUD","date":"2025-03-14"}]`)
		case r.Method == http.MethodPost && r.URL.Path == "/expenses":
			var e map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&e))
			assert.Equal(t, 12.99, e["price"], "price travels as a JSON number")
			w.WriteHeader(http.StatusCreated)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	list, err := c.Expenses(ctx, "2025-03-14")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, core.ID("7"), list[0].ID)
	assert.Equal(t, "Coffee", list[0].ItemName)

	require.NoError(t, c.AddExpense(ctx, core.Expense{ItemName: "Book", Price: 12.99, Type: core.Impulse}))
}

func TestGoalEndpoints(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/financial-goal":
			if r.Method == http.MethodPost {
				var body map[string]float64
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, 500.0, body["targetAmount"])
				w.WriteHeader(http.StatusOK)
				return
			}
			w.WriteHeader(http.StatusOK)
		case "/goal-history":
			writeJSON(w, http.StatusOK, []core.GoalHistoryEntry{{Month: 2, Year: 2025, TargetAmount: 300, Achieved: true}})
		}
	})

	g, err := c.FinancialGoal(ctx)
	require.NoError(t, err, "empty body reads as no goal")
	assert.Zero(t, g.TargetAmount)

	require.NoError(t, c.SetFinancialGoal(ctx, 500))

	h, err := c.GoalHistory(ctx)
	require.NoError(t, err)
	require.Len(t, h, 1)
	assert.True(t, h[0].Achieved)
}

func TestDashboardSeries(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/dashboard/monthly-expenses":
			_, _ = io.WriteString(w, `{"March":30,"January":10,"February":20}`)
		case "/dashboard/daily-expenses":
			assert.Equal(t, "3", r.URL.Query().Get("month"))
			assert.Equal(t, "2025", r.URL.Query().Get("year"))
			_, _ = io.WriteString(w, `{"2025-03-02":5,"2025-03-01":4}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	monthly, err := c.MonthlyExpenses(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"March", "January", "February"}, monthly.Labels())

	daily, err := c.DailyExpenses(ctx, 3, 2025)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-01", "2025-03-02"}, daily.SortedByDate().Labels())

	_, err = c.WeeklyExpenses(ctx, 3, 2025)
	assert.True(t, IsStatus(err, http.StatusNotFound))
}

func TestNoResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(Config{BaseURL: url})
	_, err := c.UserProfile(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoResponse))
	assert.True(t, IsNoResponse(err))
	assert.Equal(t, MsgNoResponse, Message(err, "fallback"))
	assert.Equal(t, MsgNoResponse, RegistrationMessage(err))
}

func TestNoRetries(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	_, err := c.MonthlyExpenses(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRequestIDAndStats(t *testing.T) {
	var ids []string
	var mu sync.Mutex
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		ids = append(ids, r.Header.Get(trace.HeaderRequestID))
		mu.Unlock()
		if r.URL.Path == "/goal-history" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, core.FinancialGoal{TargetAmount: 10})
	})

	ctx := trace.WithRequestID(context.Background(), "req_given")
	_, err := c.FinancialGoal(ctx)
	require.NoError(t, err)
	_, err = c.GoalHistory(context.Background())
	require.Error(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, ids, 2)
	assert.Equal(t, "req_given", ids[0])
	assert.NotEmpty(t, ids[1])
	assert.NotEqual(t, ids[0], ids[1])

	stats := c.Stats()
	assert.Equal(t, int64(2), stats.TotalRequests)
	assert.Equal(t, int64(1), stats.FailedRequests)
}

func TestServerMessage(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{``, ""},
		{`   `, ""},
		{`Email not found`, "Email not found"},
		{`{"message":"nope"}`, "nope"},
		{`{"error":"bad"}`, "bad"},
		{`{"message":"first","error":"second"}`, "first"},
		{`{"status":500}`, ""},
		{`"quoted"`, `"quoted"`},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			assert.Equal(t, tt.want, serverMessage([]byte(tt.body)))
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Empty(t, Message(nil, "x"))
	assert.Equal(t, "x", Message(errors.New("decode"), "x"))
	assert.Equal(t, "x", Message(&StatusError{Status: 500}, "x"))
	assert.Equal(t, "server said", Message(&StatusError{Status: 500, Message: "server said"}, "x"))
}
