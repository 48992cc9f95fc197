package userrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/cookledger/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_FindByLogin(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	query := regexp.QuoteMeta(`SELECT id, login, password_hash, role, created_at FROM users WHERE login = $1`)

	tests := []struct {
		name      string
		login     string
		mockSetup func()
		expectErr bool
		result    *domain.User
	}{
		{
			name:  "Existing login returns user",
			login: "cook1",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "login", "password_hash", "role", "created_at"}).
					AddRow(1, "cook1", "hashed", domain.RoleCook, now)
				mock.ExpectQuery(query).WithArgs("cook1").WillReturnRows(rows)
			},
			result: &domain.User{ID: 1, Login: "cook1", PasswordHash: "hashed", Role: domain.RoleCook, CreatedAt: now},
		},
		{
			name:  "Unknown login returns nil",
			login: "ghost",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("ghost").WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name:  "Database error",
			login: "cook1",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("cook1").WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByLogin(context.Background(), tt.login)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	query := regexp.QuoteMeta(`INSERT INTO users (login, password_hash, role) VALUES ($1, $2, $3) RETURNING id, created_at`)

	tests := []struct {
		name      string
		user      *domain.User
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Successfully creates user",
			user: &domain.User{Login: "cook1", PasswordHash: "hashed", Role: domain.RoleCook},
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, now)
				mock.ExpectQuery(query).WithArgs("cook1", "hashed", domain.RoleCook).WillReturnRows(rows)
			},
		},
		{
			name: "Database error",
			user: &domain.User{Login: "cook2", PasswordHash: "hashed", Role: domain.RoleCook},
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("cook2", "hashed", domain.RoleCook).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Create(context.Background(), tt.user)

			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, result.ID)
				assert.Equal(t, now, result.CreatedAt)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
