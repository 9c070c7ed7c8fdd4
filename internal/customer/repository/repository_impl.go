package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/mazout/internal/customer/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) CreateCustomer(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Create(customer).Error
}

func (r *repo) FindCustomerByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Customer, error) {
	var c domain.Customer
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, email, phone, street, zip, city, country_code, metadata, created_at, updated_at
		 FROM customers WHERE id = ?`,
		id,
	).Scan(&c).Error
	if err != nil {
		return nil, err
	}
	if c.ID == 0 {
		return nil, nil
	}
	return &c, nil
}

func (r *repo) CreateAccount(ctx context.Context, db *gorm.DB, account *domain.Account) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO accounts (id, customer_id, login, password_hash, role, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		account.ID,
		account.CustomerID,
		account.Login,
		account.PasswordHash,
		account.Role,
		account.Active,
		account.CreatedAt,
		account.UpdatedAt,
	).Error
}

func (r *repo) FindAccountByLogin(ctx context.Context, db *gorm.DB, login string) (*domain.Account, error) {
	var a domain.Account
	err := db.WithContext(ctx).Raw(
		`SELECT id, customer_id, login, password_hash, role, active, created_at, updated_at
		 FROM accounts WHERE login = ?`,
		login,
	).Scan(&a).Error
	if err != nil {
		return nil, err
	}
	if a.ID == 0 {
		return nil, nil
	}
	return &a, nil
}

func (r *repo) FindAccountByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Account, error) {
	var a domain.Account
	err := db.WithContext(ctx).Raw(
		`SELECT id, customer_id, login, password_hash, role, active, created_at, updated_at
		 FROM accounts WHERE id = ?`,
		id,
	).Scan(&a).Error
	if err != nil {
		return nil, err
	}
	if a.ID == 0 {
		return nil, nil
	}
	return &a, nil
}

func (r *repo) CreateSession(ctx context.Context, db *gorm.DB, session *domain.Session) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO sessions (id, account_id, token_hash, expires_at, created_at, last_seen_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.AccountID,
		session.TokenHash,
		session.ExpiresAt,
		session.CreatedAt,
		session.LastSeenAt,
	).Error
}

func (r *repo) FindSessionByTokenHash(ctx context.Context, db *gorm.DB, tokenHash string) (*domain.Session, error) {
	var s domain.Session
	err := db.WithContext(ctx).Raw(
		`SELECT id, account_id, token_hash, expires_at, revoked_at, created_at, last_seen_at
		 FROM sessions WHERE token_hash = ?`,
		tokenHash,
	).Scan(&s).Error
	if err != nil {
		return nil, err
	}
	if s.ID == 0 {
		return nil, nil
	}
	return &s, nil
}

func (r *repo) TouchSession(ctx context.Context, db *gorm.DB, id snowflake.ID, lastSeen time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE sessions SET last_seen_at = ? WHERE id = ?`,
		lastSeen, id,
	).Error
}

func (r *repo) RevokeSession(ctx context.Context, db *gorm.DB, id snowflake.ID, revokedAt time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE sessions SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL`,
		revokedAt, id,
	).Error
}
