package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cafekiosk/kiosk/internal/model"
	"github.com/cafekiosk/kiosk/internal/repository"
	"github.com/cafekiosk/kiosk/internal/storage/db"
)

// fakeDB satisfies db.DB for service tests. WithTx runs the function against
// itself; the raw query methods are never reached because the repositories
// are faked too.
type fakeDB struct{}

func (f *fakeDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	panic("not implemented")
}

func (f *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("not implemented")
}

func (f *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("not implemented")
}

func (f *fakeDB) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	panic("not implemented")
}

func (f *fakeDB) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults {
	panic("not implemented")
}

func (f *fakeDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	return txFunc(f)
}

type fakeProductRepo struct {
	products []model.Product
}

func (r *fakeProductRepo) WithDB(db.DB) repository.ProductRepository { return r }

func (r *fakeProductRepo) CreateProduct(_ context.Context, product model.Product) error {
	r.products = append(r.products, product)
	return nil
}

func (r *fakeProductRepo) ListProductsByNumbers(_ context.Context, productNumbers []string) ([]model.Product, error) {
	wanted := make(map[string]struct{}, len(productNumbers))
	for _, number := range productNumbers {
		wanted[number] = struct{}{}
	}

	matches := make([]model.Product, 0)
	for _, product := range r.products {
		if _, ok := wanted[product.ProductNumber]; ok {
			matches = append(matches, product)
		}
	}
	return matches, nil
}

func (r *fakeProductRepo) ListProductsBySellingStatuses(_ context.Context, statuses []model.SellingStatus) ([]model.Product, error) {
	wanted := make(map[model.SellingStatus]struct{}, len(statuses))
	for _, status := range statuses {
		wanted[status] = struct{}{}
	}

	matches := make([]model.Product, 0)
	for _, product := range r.products {
		if _, ok := wanted[product.SellingStatus]; ok {
			matches = append(matches, product)
		}
	}
	return matches, nil
}

func (r *fakeProductRepo) LatestProductNumberForUpdate(context.Context) (string, error) {
	latest := ""
	for _, product := range r.products {
		if product.ProductNumber > latest {
			latest = product.ProductNumber
		}
	}
	return latest, nil
}

type fakeStockRepo struct {
	stocks map[string]model.Stock
}

func newFakeStockRepo(stocks ...model.Stock) *fakeStockRepo {
	r := &fakeStockRepo{stocks: make(map[string]model.Stock)}
	for _, stock := range stocks {
		r.stocks[stock.ProductNumber] = stock
	}
	return r
}

func (r *fakeStockRepo) WithDB(db.DB) repository.StockRepository { return r }

func (r *fakeStockRepo) CreateStock(_ context.Context, stock model.Stock) error {
	r.stocks[stock.ProductNumber] = stock
	return nil
}

func (r *fakeStockRepo) ListStocksByNumbersForUpdate(_ context.Context, productNumbers []string) ([]model.Stock, error) {
	matches := make([]model.Stock, 0)
	for _, number := range productNumbers {
		if stock, ok := r.stocks[number]; ok {
			matches = append(matches, stock)
		}
	}
	return matches, nil
}

func (r *fakeStockRepo) UpdateStockQuantity(_ context.Context, productNumber string, quantity int64) error {
	stock := r.stocks[productNumber]
	stock.Quantity = quantity
	r.stocks[productNumber] = stock
	return nil
}

type fakeOrderRepo struct {
	created []model.Order

	listed      []model.Order
	listedStart time.Time
	listedEnd   time.Time
	listedState model.OrderStatus
}

func (r *fakeOrderRepo) WithDB(db.DB) repository.OrderRepository { return r }

func (r *fakeOrderRepo) CreateOrder(_ context.Context, order model.Order) error {
	r.created = append(r.created, order)
	return nil
}

func (r *fakeOrderRepo) ListOrdersRegisteredBetween(_ context.Context, start, end time.Time, status model.OrderStatus) ([]model.Order, error) {
	r.listedStart = start
	r.listedEnd = end
	r.listedState = status

	matches := make([]model.Order, 0)
	for _, order := range r.listed {
		if order.Status != status {
			continue
		}
		if order.RegisteredAt.Before(start) || !order.RegisteredAt.Before(end) {
			continue
		}
		matches = append(matches, order)
	}
	return matches, nil
}

type fakeOutboxMsgRepo struct {
	created []repository.CreateOutboxMsgParams
}

func (r *fakeOutboxMsgRepo) WithDB(db.DB) repository.OutboxMsgRepository { return r }

func (r *fakeOutboxMsgRepo) CreateOutboxMsg(_ context.Context, params repository.CreateOutboxMsgParams) error {
	r.created = append(r.created, params)
	return nil
}

func (r *fakeOutboxMsgRepo) ListUnprocessedOutboxMsgs(context.Context, repository.ListUnprocessedOutboxMsgsParams) ([]repository.ListUnprocessedOutboxMsgsResult, error) {
	return nil, nil
}

func (r *fakeOutboxMsgRepo) BulkUpdateOutboxMsgs(context.Context, repository.BulkUpdateOutboxMsgsParams) error {
	return nil
}

type fakeMailHistoryRepo struct {
	created []model.MailSendHistory
}

func (r *fakeMailHistoryRepo) WithDB(db.DB) repository.MailSendHistoryRepository { return r }

func (r *fakeMailHistoryRepo) CreateMailSendHistory(_ context.Context, history model.MailSendHistory) error {
	r.created = append(r.created, history)
	return nil
}

type sentMail struct {
	fromEmail string
	toEmail   string
	subject   string
	content   string
}

type fakeMailClient struct {
	sendErr error
	sent    []sentMail
}

func (c *fakeMailClient) SendEmail(_ context.Context, fromEmail, toEmail, subject, content string) error {
	if c.sendErr != nil {
		return c.sendErr
	}
	c.sent = append(c.sent, sentMail{
		fromEmail: fromEmail,
		toEmail:   toEmail,
		subject:   subject,
		content:   content,
	})
	return nil
}
