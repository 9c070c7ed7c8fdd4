package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Customer is the billing and delivery contact an order is attached to.
type Customer struct {
	ID          snowflake.ID      `json:"id" gorm:"primaryKey"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone"`
	Street      string            `json:"street"`
	Zip         string            `json:"zip"`
	City        string            `json:"city"`
	CountryCode string            `json:"country_code"`
	Metadata    datatypes.JSONMap `json:"metadata" gorm:"type:jsonb"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}

// Account is the portal login bound to a customer. Login is the
// normalized email address and is unique across accounts.
type Account struct {
	ID           snowflake.ID `json:"id" gorm:"primaryKey"`
	CustomerID   snowflake.ID `json:"customer_id"`
	Login        string       `json:"login" gorm:"uniqueIndex"`
	PasswordHash string       `json:"-"`
	Role         string       `json:"role"`
	Active       bool         `json:"active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

// Session is a server-side login session. Only the sha256 hash of the
// cookie token is stored; the raw token never touches the database.
type Session struct {
	ID         snowflake.ID `json:"id" gorm:"primaryKey"`
	AccountID  snowflake.ID `json:"account_id" gorm:"index"`
	TokenHash  string       `json:"-" gorm:"uniqueIndex"`
	ExpiresAt  time.Time    `json:"expires_at"`
	RevokedAt  *time.Time   `json:"revoked_at"`
	CreatedAt  time.Time    `json:"created_at"`
	LastSeenAt time.Time    `json:"last_seen_at"`
}

func (Session) TableName() string {
	return "sessions"
}
