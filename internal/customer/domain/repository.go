package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	CreateCustomer(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindCustomerByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Customer, error)
	CreateAccount(ctx context.Context, db *gorm.DB, account *Account) error
	FindAccountByLogin(ctx context.Context, db *gorm.DB, login string) (*Account, error)
	FindAccountByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Account, error)
	CreateSession(ctx context.Context, db *gorm.DB, session *Session) error
	FindSessionByTokenHash(ctx context.Context, db *gorm.DB, tokenHash string) (*Session, error)
	TouchSession(ctx context.Context, db *gorm.DB, id snowflake.ID, lastSeen time.Time) error
	RevokeSession(ctx context.Context, db *gorm.DB, id snowflake.ID, revokedAt time.Time) error
}
