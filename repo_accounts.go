package auth

import (
	"context"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UpdateLoginStateSQL persists the (failed_attempts, locked_until) pair in
// one statement so concurrent attempts against the same row cannot
// interleave partial updates.
var UpdateLoginStateSQL = `UPDATE "accounts" AS "acc"
SET
	"failed_attempts" = ?,
	"locked_until" = ?,
	"updated_at" = ?
WHERE
	"acc"."deleted_at" IS NULL
AND (
	"acc"."id" = ?
);`

type Accounts interface {
	repository.Repository[*Account]

	FindByUsername(ctx context.Context, username string) (*Account, error)
	FindByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*Account, error)
	UpdateLoginState(ctx context.Context, account *Account) error
	UpdateLoginStateTx(ctx context.Context, tx bun.IDB, account *Account) error
}

type accounts struct {
	repository.Repository[*Account]
	db *bun.DB
}

var (
	_ Accounts                        = (*accounts)(nil)
	_ repository.Repository[*Account] = (*accounts)(nil)
	_ CredentialStore                 = (*accounts)(nil)
)

func NewAccountsRepository(db *bun.DB) Accounts {
	repo := repository.NewRepository[*Account](db, repository.ModelHandlers[*Account]{
		NewRecord: func() *Account { return &Account{} },
		GetID: func(a *Account) uuid.UUID {
			if a == nil {
				return uuid.Nil
			}
			return a.ID
		},
		SetID: func(a *Account, id uuid.UUID) {
			if a != nil {
				a.ID = id
			}
		},
		GetIdentifier: func() string {
			return "username"
		},
	})

	return &accounts{
		Repository: repo,
		db:         db,
	}
}

func (a *accounts) FindByUsername(ctx context.Context, username string) (*Account, error) {
	return a.FindByUsernameTx(ctx, a.db, username)
}

// FindByUsernameTx looks up an account by exact, case-sensitive username.
func (a *accounts) FindByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*Account, error) {
	record := &Account{}

	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.username = ?", username).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"username": username,
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *accounts) UpdateLoginState(ctx context.Context, account *Account) error {
	return a.UpdateLoginStateTx(ctx, a.db, account)
}

// UpdateLoginStateTx writes the attempt counter and lock window as one
// atomic row update.
// NOTE: Updating through the ORM will not null out locked_until when the
// lock is cleared, so this goes through raw SQL.
func (a *accounts) UpdateLoginStateTx(ctx context.Context, tx bun.IDB, account *Account) error {
	_, err := tx.NewRaw(
		UpdateLoginStateSQL,
		account.FailedAttempts,
		account.LockedUntil,
		time.Now(),
		account.ID,
	).Exec(ctx)

	return err
}
