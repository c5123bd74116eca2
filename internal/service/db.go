package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate locks the selected rows until the transaction ends. SQLite has no
// row locks and serializes writers on its own, so the clause is postgres only.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func wrapStorage(logger *zap.Logger, op string, err error) error {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return err
	}
	logger.Error("storage failure", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("failed to %s: %w", op, err)
}
