package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"sabordigital/internal/domain/checkout"
	orderdom "sabordigital/internal/domain/order"
)

var (
	ErrOrderInvalidArgument = errors.New("order_usecase: invalid argument")
)

// StatusUpdateResult carries the updated order plus the ready-made customer
// notification the admin screen offers (WhatsApp deep link to the customer).
type StatusUpdateResult struct {
	Order        orderdom.Order `json:"order"`
	Message      string         `json:"message"`
	WhatsAppLink string         `json:"whatsappLink"`
}

// DashboardSummary aggregates the numbers the admin dashboard renders.
type DashboardSummary struct {
	TodayOrders       int            `json:"todayOrders"`
	TodayRevenueCents int64          `json:"todayRevenueCents"`
	CountsByStatus    map[string]int `json:"countsByStatus"`
}

// OrderUsecase serves the admin order management surface.
type OrderUsecase struct {
	repo  orderdom.Repository
	clock Clock
}

func NewOrderUsecase(repo orderdom.Repository) *OrderUsecase {
	return &OrderUsecase{repo: repo, clock: systemClock{}}
}

// NewOrderUsecaseWithClock is useful for tests.
func NewOrderUsecaseWithClock(repo orderdom.Repository, clock Clock) *OrderUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &OrderUsecase{repo: repo, clock: clock}
}

// OrderListQuery narrows the admin order list: status, customer-name
// search and creation date range, all optional.
type OrderListQuery struct {
	Status      string
	Search      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// List returns a page of orders matching the query.
func (uc *OrderUsecase) List(ctx context.Context, q OrderListQuery, page orderdom.Page) (orderdom.PageResult, error) {
	f := orderdom.Filter{
		Query:       strings.TrimSpace(q.Search),
		CreatedFrom: q.CreatedFrom,
		CreatedTo:   q.CreatedTo,
	}
	if s := strings.TrimSpace(q.Status); s != "" && s != "all" {
		f.Statuses = []orderdom.Status{orderdom.Status(s)}
	}
	return uc.repo.List(ctx, f, page)
}

func (uc *OrderUsecase) Get(ctx context.Context, id string) (orderdom.Order, error) {
	if strings.TrimSpace(id) == "" {
		return orderdom.Order{}, ErrOrderInvalidArgument
	}
	return uc.repo.GetByID(ctx, strings.TrimSpace(id))
}

// UpdateStatus moves an order through the allowed transitions and prepares
// the customer notification.
func (uc *OrderUsecase) UpdateStatus(ctx context.Context, id string, to orderdom.Status) (StatusUpdateResult, error) {
	o, err := uc.Get(ctx, id)
	if err != nil {
		return StatusUpdateResult{}, err
	}

	updated, err := o.WithStatus(to, uc.clock.Now())
	if err != nil {
		return StatusUpdateResult{}, err
	}

	if err := uc.repo.UpdateStatus(ctx, updated.ID, updated.Status, updated.UpdatedAt); err != nil {
		return StatusUpdateResult{}, err
	}

	msg := checkout.StatusUpdateMessage(updated.CustomerName, orderdom.StatusLabel(updated.Status))
	return StatusUpdateResult{
		Order:        updated,
		Message:      msg,
		WhatsAppLink: checkout.WhatsAppLink(updated.CustomerPhone, msg),
	}, nil
}

// dashboardPageSize bounds a single repository read while Dashboard walks
// every page of today's orders.
const dashboardPageSize = 500

// Dashboard aggregates today's orders and status counts. It pages through
// the whole day so a busy day never undercounts.
func (uc *OrderUsecase) Dashboard(ctx context.Context) (DashboardSummary, error) {
	now := uc.clock.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	f := orderdom.Filter{CreatedFrom: &dayStart}

	sum := DashboardSummary{CountsByStatus: map[string]int{}}
	page := orderdom.Page{Number: 1, PerPage: dashboardPageSize}
	for {
		res, err := uc.repo.List(ctx, f, page)
		if err != nil {
			return DashboardSummary{}, err
		}
		for _, o := range res.Items {
			sum.TodayOrders++
			sum.CountsByStatus[string(o.Status)]++
			if o.Status != orderdom.StatusCancelled {
				sum.TodayRevenueCents += o.TotalCents
			}
		}
		if len(res.Items) == 0 || sum.TodayOrders >= res.TotalCount {
			break
		}
		page.Number++
	}
	return sum, nil
}
