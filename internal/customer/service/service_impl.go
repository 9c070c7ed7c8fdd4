package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/mazout/internal/customer/domain"
	"github.com/smallbiznis/mazout/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	sessionTokenBytes = 32
	sessionTTL        = 30 * 24 * time.Hour
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("customer.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func normalizeLogin(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Signup(ctx context.Context, req domain.SignupRequest) (*domain.Customer, *domain.Account, error) {
	login := normalizeLogin(req.Email)

	existing, err := s.repo.FindAccountByLogin(ctx, s.db, login)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, domain.ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	customer := &domain.Customer{
		ID:          s.genID.Generate(),
		Name:        strings.TrimSpace(req.Name),
		Email:       login,
		Phone:       strings.TrimSpace(req.Phone),
		Street:      strings.TrimSpace(req.Street),
		Zip:         strings.TrimSpace(req.Zip),
		City:        strings.TrimSpace(req.City),
		CountryCode: "BE",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	account := &domain.Account{
		ID:           s.genID.Generate(),
		CustomerID:   customer.ID,
		Login:        login,
		PasswordHash: string(hash),
		Role:         "portal",
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.CreateCustomer(ctx, tx, customer); err != nil {
			return err
		}
		return s.repo.CreateAccount(ctx, tx, account)
	})
	if err != nil {
		// Two signups racing on the same email both pass the lookup
		// above; the unique index decides the loser.
		if db.IsDuplicateKeyErr(err) {
			return nil, nil, domain.ErrAccountExists
		}
		return nil, nil, err
	}

	s.log.Info("customer signed up",
		zap.String("customer_id", customer.ID.String()),
		zap.String("login", login),
	)
	return customer, account, nil
}

func (s *Service) Authenticate(ctx context.Context, login, password string) (*domain.Account, error) {
	account, err := s.repo.FindAccountByLogin(ctx, s.db, normalizeLogin(login))
	if err != nil {
		return nil, err
	}
	if account == nil || !account.Active {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return account, nil
}

func (s *Service) StartSession(ctx context.Context, accountID snowflake.ID) (*domain.SessionToken, error) {
	rawToken, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:         s.genID.Generate(),
		AccountID:  accountID,
		TokenHash:  hashToken(rawToken),
		ExpiresAt:  now.Add(sessionTTL),
		CreatedAt:  now,
		LastSeenAt: now,
	}
	if err := s.repo.CreateSession(ctx, s.db, session); err != nil {
		return nil, err
	}

	return &domain.SessionToken{
		RawToken:  rawToken,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *Service) ResolveSession(ctx context.Context, rawToken string) (*domain.Account, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return nil, domain.ErrInvalidSession
	}

	session, err := s.repo.FindSessionByTokenHash(ctx, s.db, hashToken(token))
	if err != nil {
		return nil, err
	}
	if session == nil || session.RevokedAt != nil {
		return nil, domain.ErrInvalidSession
	}

	now := time.Now().UTC()
	if now.After(session.ExpiresAt) {
		return nil, domain.ErrInvalidSession
	}

	account, err := s.repo.FindAccountByID(ctx, s.db, session.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil || !account.Active {
		return nil, domain.ErrInvalidSession
	}

	if err := s.repo.TouchSession(ctx, s.db, session.ID, now); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *Service) EndSession(ctx context.Context, rawToken string) error {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return domain.ErrInvalidSession
	}

	session, err := s.repo.FindSessionByTokenHash(ctx, s.db, hashToken(token))
	if err != nil {
		return err
	}
	if session == nil {
		return domain.ErrInvalidSession
	}
	return s.repo.RevokeSession(ctx, s.db, session.ID, time.Now().UTC())
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func (s *Service) GetCustomer(ctx context.Context, id snowflake.ID) (*domain.Customer, error) {
	customer, err := s.repo.FindCustomerByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return customer, nil
}
