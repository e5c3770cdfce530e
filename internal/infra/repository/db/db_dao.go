package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RoyceAzure/lab/plantshop/internal/model"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx so the same queries run
// inside and outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Querier interface {
	ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (model.Product, error)
	GetProductByID(ctx context.Context, id int64) (model.Product, error)
	ListCategories(ctx context.Context) ([]model.Category, error)

	ListCartLines(ctx context.Context, userID int64) ([]model.CartLine, error)
	GetCartItem(ctx context.Context, id, userID int64) (CartItem, error)
	GetCartItemByProduct(ctx context.Context, userID, productID int64) (CartItem, error)
	InsertCartItem(ctx context.Context, userID, productID int64, quantity int32) error
	UpdateCartItemQuantity(ctx context.Context, id int64, quantity int32) error
	DeleteCartItem(ctx context.Context, id, userID int64) (int64, error)
	ClearCart(ctx context.Context, userID int64) error

	CreateOrder(ctx context.Context, arg CreateOrderParams) (model.Order, error)
	CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (model.OrderItem, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]model.Order, error)
	GetOrderForUser(ctx context.Context, orderID, userID int64) (model.Order, error)
	ListOrderItems(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	DecrementProductStock(ctx context.Context, productID int64, quantity int32) (int64, error)

	CreateCategoryIfNotExists(ctx context.Context, arg CreateCategoryParams) (int64, error)
	CreateProductIfNotExists(ctx context.Context, arg CreateProductParams) error
	CreateUser(ctx context.Context, arg CreateUserParams) (int64, error)
}

var _ Querier = (*Queries)(nil)

type IStore interface {
	Querier
	ExecTx(ctx context.Context, fn func(*Queries) error) error
}

// Store manages the connection pool and transactions.
type Store struct {
	*Queries
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{
		db:      db,
		Queries: New(db),
	}
}

// ExecTx runs fn inside a single ReadCommitted transaction. Any error from
// fn rolls the whole transaction back.
func (s *Store) ExecTx(ctx context.Context, fn func(*Queries) error) error {
	opts := pgx.TxOptions{
		IsoLevel:       pgx.ReadCommitted,
		AccessMode:     pgx.ReadWrite,
		DeferrableMode: pgx.NotDeferrable,
	}

	tx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	q := New(tx)
	err = fn(q)

	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return rbErr
		}
		return err
	}

	return tx.Commit(ctx)
}

var _ IStore = (*Store)(nil)

// IsUniqueViolation reports whether err is a postgres unique-constraint
// violation (e.g. an order-number collision).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
