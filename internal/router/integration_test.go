//go:build integration

package router_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mathews-augusto-alves/library-api/internal/config"
	"github.com/mathews-augusto-alves/library-api/internal/infra"
	"github.com/mathews-augusto-alves/library-api/internal/model"
	"github.com/mathews-augusto-alves/library-api/internal/repository"
	"github.com/mathews-augusto-alves/library-api/internal/router"
	"github.com/mathews-augusto-alves/library-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

type testEnv struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	token  string
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("library"),
		tcpostgres.WithUsername("library"),
		tcpostgres.WithPassword("library"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	redisC, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	redisURL, err := redisC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               0,
		Env:                "development",
		DatabaseURL:        dsn,
		RedisURL:           redisURL,
		CacheTTLSeconds:    120,
		JWTSecret:          "integration-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    2,
		Timezone:           "America/Sao_Paulo",
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	env := &testEnv{engine: router.New(cfg, db, rdb), db: db, cfg: cfg}
	env.token = env.login(t)
	return env
}

// login seeds a staff user directly and exchanges credentials for a token.
func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	userRepo := repository.NewUserRepository(e.db)
	authSvc := service.NewAuthService(userRepo, e.cfg)

	hash, err := authSvc.HashPassword("s3cret!")
	require.NoError(t, err)
	user := &model.User{Name: "Staff", Email: "staff@library.local", PasswordHash: hash}
	require.NoError(t, userRepo.DB().Create(user).Error)

	w := e.do(t, http.MethodPost, "/v1/auth/login",
		`{"email":"staff@library.local","password":"s3cret!"}`, false)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func (e *testEnv) do(t *testing.T, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *testEnv) createBook(t *testing.T, title string) uint {
	t.Helper()
	w := e.do(t, http.MethodPost, "/v1/books",
		fmt.Sprintf(`{"title":%q,"author":"Test Author"}`, title), true)
	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func (e *testEnv) createPerson(t *testing.T, name string) uint {
	t.Helper()
	w := e.do(t, http.MethodPost, "/v1/people",
		fmt.Sprintf(`{"name":%q,"phone":"11999990000","birth_date":"1990-03-14"}`, name), true)
	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func TestLoanLifecycleOverHTTP(t *testing.T) {
	env := setupEnv(t)
	bookID := env.createBook(t, "Memórias Póstumas")
	personID := env.createPerson(t, "Maria Silva")

	// Borrow
	w := env.do(t, http.MethodPost, "/v1/books/loans",
		fmt.Sprintf(`{"book_id":%d,"person_id":%d}`, bookID, personID), true)
	require.Equal(t, http.StatusCreated, w.Code)

	// Book now unavailable
	w = env.do(t, http.MethodGet, fmt.Sprintf("/v1/books/%d", bookID), "", true)
	require.Equal(t, http.StatusOK, w.Code)
	var book struct {
		Available bool `json:"available"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &book))
	assert.False(t, book.Available)

	// Double borrow is a conflict
	w = env.do(t, http.MethodPost, "/v1/books/loans",
		fmt.Sprintf(`{"book_id":%d,"person_id":%d}`, bookID, personID), true)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Return
	w = env.do(t, http.MethodPut, fmt.Sprintf("/v1/books/%d/return", bookID), "", true)
	require.Equal(t, http.StatusOK, w.Code)

	// Book available again
	w = env.do(t, http.MethodGet, fmt.Sprintf("/v1/books/%d", bookID), "", true)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &book))
	assert.True(t, book.Available)

	// Second return is a conflict, not a silent no-op
	w = env.do(t, http.MethodPut, fmt.Sprintf("/v1/books/%d/return", bookID), "", true)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoanListingFilters(t *testing.T) {
	env := setupEnv(t)
	personID := env.createPerson(t, "João Souza")

	active := env.createBook(t, "Active Book")
	returned := env.createBook(t, "Returned Book")
	for _, id := range []uint{active, returned} {
		w := env.do(t, http.MethodPost, "/v1/books/loans",
			fmt.Sprintf(`{"book_id":%d,"person_id":%d}`, id, personID), true)
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w := env.do(t, http.MethodPut, fmt.Sprintf("/v1/books/%d/return", returned), "", true)
	require.Equal(t, http.StatusOK, w.Code)

	count := func(status string) int64 {
		w := env.do(t, http.MethodGet, "/v1/loans?status="+status, "", true)
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Meta struct {
				Total int64 `json:"total"`
			} `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp.Meta.Total
	}

	assert.Equal(t, int64(1), count("active"))
	assert.Equal(t, int64(1), count("returned"))
	assert.Equal(t, int64(2), count("all"))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, http.MethodGet, "/v1/books", "", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/health", "", false)
	assert.Equal(t, http.StatusOK, w.Code)
}

// failingLoanRepo breaks the loan insert after the availability flag was
// flipped inside the transaction.
type failingLoanRepo struct {
	repository.LoanRepository
}

func (f *failingLoanRepo) CreateTx(tx *gorm.DB, l *model.Loan) error {
	return errors.New("simulated insert failure")
}

func TestBorrowRollsBackAvailabilityOnFailure(t *testing.T) {
	env := setupEnv(t)
	bookID := env.createBook(t, "Atomic Book")
	personID := env.createPerson(t, "Ana Costa")

	bookRepo := repository.NewBookRepository(env.db)
	loanRepo := &failingLoanRepo{repository.NewLoanRepository(env.db)}
	loanSvc := service.NewLoanService(loanRepo, bookRepo, env.cfg.Location())

	_, err := loanSvc.Borrow(context.Background(), bookID, personID, 1)
	require.Error(t, err)

	// The availability write inside the same transaction must have rolled back.
	book, err := bookRepo.FindByID(context.Background(), bookID)
	require.NoError(t, err)
	require.NotNil(t, book)
	assert.True(t, book.Available, "failed borrow must leave the book available")

	// And no loan row exists.
	loans, total, err := repository.NewLoanRepository(env.db).
		List(context.Background(), 1, 10, model.LoanStatusAll)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, loans)
}

func TestActiveLoanUniqueIndexBlocksDuplicates(t *testing.T) {
	env := setupEnv(t)
	bookID := env.createBook(t, "Indexed Book")
	personID := env.createPerson(t, "Rui Barbosa")

	loanRepo := repository.NewLoanRepository(env.db)
	now := time.Now()

	first := &model.Loan{BookID: bookID, PersonID: personID, UserID: 1, LoanedAt: now}
	require.NoError(t, loanRepo.DB().Create(first).Error)

	second := &model.Loan{BookID: bookID, PersonID: personID, UserID: 1, LoanedAt: now}
	err := loanRepo.DB().Create(second).Error
	require.Error(t, err, "two active loans for one book must violate the partial unique index")
}
