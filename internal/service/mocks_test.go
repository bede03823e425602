package service

import (
	"context"
	"time"

	"expense_ledger/internal/models"
	"expense_ledger/internal/repository"
)

// ---- Repository mocks ----

type mockUsers struct {
	users     map[string]*models.User
	getErr    error
	createErr error
	nextID    int

	createdUsernames []string
	createdHashes    []string
}

func newMockUsers(existing ...string) *mockUsers {
	m := &mockUsers{users: map[string]*models.User{}, nextID: 1}
	for _, name := range existing {
		m.users[name] = &models.User{ID: m.nextID, Username: name}
		m.nextID++
	}
	return m
}

func userWithHash(id int, username, hash string) *models.User {
	return &models.User{ID: id, Username: username, PasswordHash: hash}
}

func (m *mockUsers) Create(_ context.Context, username, hash string, createdAt time.Time) (int, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.createdUsernames = append(m.createdUsernames, username)
	m.createdHashes = append(m.createdHashes, hash)
	id := m.nextID
	m.nextID++
	m.users[username] = &models.User{ID: id, Username: username, PasswordHash: hash, CreatedAt: createdAt}
	return id, nil
}

func (m *mockUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.users[username], nil
}

type mockExpenses struct {
	insertErr  error
	getErr     error
	updateErr  error
	deleteErr  error
	listErr    error
	replaceErr error

	byID        map[string]*models.Expense
	listResp    []models.Expense
	betweenResp []models.Expense

	inserted     []models.Expense
	updated      []models.Expense
	deletedIDs   []string
	lastFrom     models.Date
	lastTo       models.Date
	replaceCalls int
	replaced     []models.Expense
}

func (m *mockExpenses) Insert(_ context.Context, e models.Expense) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, e)
	return nil
}

func (m *mockExpenses) GetByID(_ context.Context, id string) (*models.Expense, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	e, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *mockExpenses) ListByUser(_ context.Context, username string) ([]models.Expense, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listResp, nil
}

func (m *mockExpenses) ListByUserBetween(_ context.Context, _ string, from, to models.Date) ([]models.Expense, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.lastFrom, m.lastTo = from, to
	return m.betweenResp, nil
}

func (m *mockExpenses) Update(_ context.Context, e models.Expense) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = append(m.updated, e)
	return nil
}

func (m *mockExpenses) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedIDs = append(m.deletedIDs, id)
	return nil
}

func (m *mockExpenses) ReplaceWeek(_ context.Context, _ string, from, to models.Date, items []models.Expense) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replaceCalls++
	m.lastFrom, m.lastTo = from, to
	m.replaced = items
	return nil
}
