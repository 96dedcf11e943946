package repository

import (
	"context"

	accountrepo "github.com/granafacil/financeiro/pkg/repository/account"
	billrepo "github.com/granafacil/financeiro/pkg/repository/bill"
	categoryrepo "github.com/granafacil/financeiro/pkg/repository/category"
	goalrepo "github.com/granafacil/financeiro/pkg/repository/goal"
	transactionrepo "github.com/granafacil/financeiro/pkg/repository/transaction"
	userrepo "github.com/granafacil/financeiro/pkg/repository/user"
)

// UnitOfWork defines the contract for transactional work and repository
// access.
//
// Repository accessors are part of UnitOfWork so that every repository
// obtained inside Do is bound to the same DB session/transaction: a failing
// step rolls back everything done in the same unit, which is what keeps a
// transaction record write and its compensating balance update consistent.
type UnitOfWork interface {
	// Do executes the given function within a transaction boundary. The
	// provided function receives a UnitOfWork bound to that transaction.
	// If the function returns an error, the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	AccountRepository() (accountrepo.Repository, error)
	TransactionRepository() (transactionrepo.Repository, error)
	CategoryRepository() (categoryrepo.Repository, error)
	GoalRepository() (goalrepo.Repository, error)
	BillRepository() (billrepo.Repository, error)
	UserRepository() (userrepo.Repository, error)
}
