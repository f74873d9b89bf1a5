package repository

import (
	"context"

	"gorm.io/gorm"
)

// LedgerTx runs review-ledger mutations inside one database transaction.
// The repositories handed to fn are bound to that transaction; returning an
// error from fn rolls everything back.
type LedgerTx interface {
	RunInTx(ctx context.Context, fn func(watchLists WatchListRepository, reviews ReviewRepository) error) error
}

type gormLedgerTx struct {
	db *gorm.DB
}

func NewLedgerTx(db *gorm.DB) LedgerTx {
	return &gormLedgerTx{db: db}
}

func (t *gormLedgerTx) RunInTx(ctx context.Context, fn func(watchLists WatchListRepository, reviews ReviewRepository) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewWatchListRepository(tx), NewReviewRepository(tx))
	})
}
