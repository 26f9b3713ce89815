package repositories

import (
	"gorm.io/gorm"
)

// Store groups the repositories the checkout commit touches. Inside a
// transaction, the repositories returned by a Store are bound to that
// transaction.
type Store interface {
	Clients() ClientRepository
	Products() ProductRepository
	Orders() OrderRepository
	Payments() PaymentRepository
}

// UnitOfWork is a Store that can run a function atomically: every store
// operation performed through the Store passed to fn either commits as a
// whole or is rolled back when fn returns an error.
type UnitOfWork interface {
	Store
	WithinTx(fn func(Store) error) error
}

// GORMUnitOfWork implements UnitOfWork on a GORM database. WithinTx maps
// onto a database transaction.
type GORMUnitOfWork struct {
	db *gorm.DB
}

// NewGORMUnitOfWork creates a new instance of GORMUnitOfWork.
func NewGORMUnitOfWork(db *gorm.DB) *GORMUnitOfWork {
	return &GORMUnitOfWork{db: db}
}

// Clients returns a client repository bound to the database.
func (u *GORMUnitOfWork) Clients() ClientRepository { return NewGORMClientRepository(u.db) }

// Products returns a product repository bound to the database.
func (u *GORMUnitOfWork) Products() ProductRepository { return NewGORMProductRepository(u.db) }

// Orders returns an order repository bound to the database.
func (u *GORMUnitOfWork) Orders() OrderRepository { return NewGORMOrderRepository(u.db) }

// Payments returns a payment repository bound to the database.
func (u *GORMUnitOfWork) Payments() PaymentRepository { return NewGORMPaymentRepository(u.db) }

// WithinTx runs fn inside a database transaction, handing it a Store whose
// repositories all write through that transaction. An error from fn rolls
// everything back and is returned unchanged.
func (u *GORMUnitOfWork) WithinTx(fn func(Store) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMUnitOfWork(tx))
	})
}

// MockUnitOfWork implements UnitOfWork over the in-memory mock repositories.
// WithinTx snapshots every repository's state before running fn and restores
// it on error, so rollback behavior is testable without a database.
type MockUnitOfWork struct {
	ClientRepo  *MockClientRepository
	ProductRepo *MockProductRepository
	OrderRepo   *MockOrderRepository
	PaymentRepo *MockPaymentRepository
}

// NewMockUnitOfWork creates a MockUnitOfWork with fresh empty repositories.
func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		ClientRepo:  NewMockClientRepository(),
		ProductRepo: NewMockProductRepository(),
		OrderRepo:   NewMockOrderRepository(),
		PaymentRepo: NewMockPaymentRepository(),
	}
}

// Clients returns the mock client repository.
func (u *MockUnitOfWork) Clients() ClientRepository { return u.ClientRepo }

// Products returns the mock product repository.
func (u *MockUnitOfWork) Products() ProductRepository { return u.ProductRepo }

// Orders returns the mock order repository.
func (u *MockUnitOfWork) Orders() OrderRepository { return u.OrderRepo }

// Payments returns the mock payment repository.
func (u *MockUnitOfWork) Payments() PaymentRepository { return u.PaymentRepo }

// WithinTx runs fn against the mock repositories, restoring their previous
// state when fn fails.
func (u *MockUnitOfWork) WithinTx(fn func(Store) error) error {
	clients := u.ClientRepo.snapshot()
	products := u.ProductRepo.snapshot()
	orders := u.OrderRepo.snapshot()
	payments := u.PaymentRepo.snapshot()

	if err := fn(u); err != nil {
		u.ClientRepo.restore(clients)
		u.ProductRepo.restore(products)
		u.OrderRepo.restore(orders)
		u.PaymentRepo.restore(payments)
		return err
	}
	return nil
}
