package handlers

import (
	"context"
	"errors"

	"expense_ledger/internal/models"
	"expense_ledger/internal/service"

	"github.com/gin-gonic/gin"
)

var errSentinel = errors.New("sqlite i/o failure")

// ---- Service Mocks ----

type mockAccounts struct {
	signUpUser *models.User
	signUpErr  error
	authUser   *models.User
	authErr    error

	lastSignUpUsername string
	lastSignUpPassword string
	lastAuthUsername   string
}

func (m *mockAccounts) SignUp(_ context.Context, username, password string) (*models.User, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpUser, m.signUpErr
}

func (m *mockAccounts) Authenticate(_ context.Context, username, _ string) (*models.User, error) {
	m.lastAuthUsername = username
	return m.authUser, m.authErr
}

type mockLedger struct {
	addResp     *models.Expense
	addErr      error
	listResp    []models.Expense
	listErr     error
	updateResp  *models.Expense
	updateErr   error
	deleteErr   error
	weekResp    *service.WeekExpenses
	weekErr     error
	replaceResp *service.WeekRange
	replaceErr  error

	lastAdd         service.AddExpenseParams
	lastUpdateID    string
	lastUpdate      service.UpdateExpenseParams
	lastDeleteID    string
	lastWeekUser    string
	lastWeekNumber  int
	lastReplaceUser string
	lastReplaceWeek int
	lastItems       []service.WeekItem
}

func (m *mockLedger) Add(_ context.Context, p service.AddExpenseParams) (*models.Expense, error) {
	m.lastAdd = p
	return m.addResp, m.addErr
}

func (m *mockLedger) List(_ context.Context, username string) ([]models.Expense, error) {
	return m.listResp, m.listErr
}

func (m *mockLedger) Update(_ context.Context, id string, p service.UpdateExpenseParams) (*models.Expense, error) {
	m.lastUpdateID = id
	m.lastUpdate = p
	return m.updateResp, m.updateErr
}

func (m *mockLedger) Delete(_ context.Context, id string) error {
	m.lastDeleteID = id
	return m.deleteErr
}

func (m *mockLedger) WeekExpenses(_ context.Context, username string, weekNumber int) (*service.WeekExpenses, error) {
	m.lastWeekUser = username
	m.lastWeekNumber = weekNumber
	return m.weekResp, m.weekErr
}

func (m *mockLedger) ReplaceWeek(_ context.Context, username string, weekNumber int, items []service.WeekItem) (*service.WeekRange, error) {
	m.lastReplaceUser = username
	m.lastReplaceWeek = weekNumber
	m.lastItems = items
	return m.replaceResp, m.replaceErr
}

type mockSummaries struct {
	weeklyResp   *models.Summary
	weeklyErr    error
	byNumberResp *models.Summary
	byNumberErr  error

	lastUsername string
	lastWeek     int
}

func (m *mockSummaries) Weekly(_ context.Context, username string) (*models.Summary, error) {
	m.lastUsername = username
	return m.weeklyResp, m.weeklyErr
}

func (m *mockSummaries) WeeklyByNumber(_ context.Context, username string, weekNumber int) (*models.Summary, error) {
	m.lastUsername = username
	m.lastWeek = weekNumber
	return m.byNumberResp, m.byNumberErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	return newTestRouterWithConfig(s, Config{})
}

func newTestRouterWithConfig(s *service.Service, cfg Config) *gin.Engine {
	h := NewHandler(s, nil, cfg)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
