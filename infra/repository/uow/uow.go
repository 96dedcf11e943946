// Package uow implements the unit-of-work on GORM/Postgres.
package uow

import (
	"context"

	"gorm.io/gorm"

	accountinfra "github.com/granafacil/financeiro/infra/repository/account"
	billinfra "github.com/granafacil/financeiro/infra/repository/bill"
	categoryinfra "github.com/granafacil/financeiro/infra/repository/category"
	goalinfra "github.com/granafacil/financeiro/infra/repository/goal"
	transactioninfra "github.com/granafacil/financeiro/infra/repository/transaction"
	userinfra "github.com/granafacil/financeiro/infra/repository/user"
	"github.com/granafacil/financeiro/pkg/repository"
	accountrepo "github.com/granafacil/financeiro/pkg/repository/account"
	billrepo "github.com/granafacil/financeiro/pkg/repository/bill"
	categoryrepo "github.com/granafacil/financeiro/pkg/repository/category"
	goalrepo "github.com/granafacil/financeiro/pkg/repository/goal"
	transactionrepo "github.com/granafacil/financeiro/pkg/repository/transaction"
	userrepo "github.com/granafacil/financeiro/pkg/repository/user"
)

// UoW provides a transaction boundary and repository access in one
// abstraction. Every repository obtained from a UoW inside Do is bound to
// the same database transaction, which is what makes a transaction record
// write and its compensating balance update atomic.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// session returns the transaction when inside Do, the base connection
// otherwise.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// Do runs fn in a transaction boundary, providing a UoW bound to that
// transaction. fn returning an error rolls everything back.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// AccountRepository implements repository.UnitOfWork.
func (u *UoW) AccountRepository() (accountrepo.Repository, error) {
	return accountinfra.New(u.session()), nil
}

// TransactionRepository implements repository.UnitOfWork.
func (u *UoW) TransactionRepository() (transactionrepo.Repository, error) {
	return transactioninfra.New(u.session()), nil
}

// CategoryRepository implements repository.UnitOfWork.
func (u *UoW) CategoryRepository() (categoryrepo.Repository, error) {
	return categoryinfra.New(u.session()), nil
}

// GoalRepository implements repository.UnitOfWork.
func (u *UoW) GoalRepository() (goalrepo.Repository, error) {
	return goalinfra.New(u.session()), nil
}

// BillRepository implements repository.UnitOfWork.
func (u *UoW) BillRepository() (billrepo.Repository, error) {
	return billinfra.New(u.session()), nil
}

// UserRepository implements repository.UnitOfWork.
func (u *UoW) UserRepository() (userrepo.Repository, error) {
	return userinfra.New(u.session()), nil
}
