package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/resumeanalyzer/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/resumeanalyzer/internal/common"
	"github.com/dmitrijs2005/resumeanalyzer/internal/dbx"
)

// TokenStore persists the bearer token under a single durable key.
type TokenStore struct {
	db   *sql.DB
	repo *metadata.SQLiteRepository
	now  func() time.Time
}

func NewTokenStore(db *sql.DB) *TokenStore {
	return &TokenStore{db: db, repo: metadata.NewSQLiteRepository(db), now: time.Now}
}

// Load returns the stored token, or "" when none is stored. A JWT whose
// exp claim is already in the past is deleted and reported as
// common.ErrTokenExpired.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	it, err := s.repo.Get(ctx, common.TokenMetadataKey)
	if err != nil {
		return "", err
	}
	if it == nil || len(it.Value) == 0 {
		return "", nil
	}
	token := string(it.Value)
	if tokenExpired(token, s.now()) {
		if err := s.Clear(ctx); err != nil {
			return "", err
		}
		return "", common.ErrTokenExpired
	}
	return token, nil
}

func (s *TokenStore) Save(ctx context.Context, token string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Delete(ctx, common.TokenMetadataKey); err != nil {
			return err
		}
		return repo.Set(ctx, common.TokenMetadataKey, []byte(token))
	})
}

func (s *TokenStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, common.TokenMetadataKey)
}

// tokenExpired inspects the exp claim without verifying the signature; the
// client never holds the signing key. Tokens that are not JWTs, or carry no
// exp, are never considered expired.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}
