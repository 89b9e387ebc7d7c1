package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domainRepo "github.com/abubakar1702/taskflow/internal/domain/repository"
)

type txKey struct{}

// withTx returns a context carrying an open transaction handle.
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// txFrom extracts the transaction handle placed by withTx, if any.
func txFrom(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	return tx, ok
}

// conn resolves the database handle for a call: the enclosing transaction
// if one is on the context, the shared pool otherwise.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := txFrom(ctx); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// txManager implements the TxManager interface on a gorm connection
type txManager struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewTxManager creates a new transaction manager instance
func NewTxManager(db *gorm.DB, logger *zap.Logger) domainRepo.TxManager {
	return &txManager{
		db:     db,
		logger: logger,
	}
}

// Do runs fn inside a single database transaction. Repository calls made
// with the ctx passed to fn join that transaction; a nested Do joins the
// outer transaction instead of opening a second one.
func (m *txManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFrom(ctx); ok {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}
