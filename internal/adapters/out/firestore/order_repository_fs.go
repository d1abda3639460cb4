package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	orderdom "sabordigital/internal/domain/order"
)

// OrderRepositoryFS implements order.Repository using Firestore.
//
// Collection design:
// - collection: orders
// - docId: order id (client-generated uuid, used as idempotency key)
//
// Create uses Doc(id).Create so a replayed submission with the same id
// fails with ErrConflict instead of producing a duplicate order.
type OrderRepositoryFS struct {
	Client *firestore.Client
}

func NewOrderRepositoryFS(client *firestore.Client) *OrderRepositoryFS {
	return &OrderRepositoryFS{Client: client}
}

func (r *OrderRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("orders")
}

func (r *OrderRepositoryFS) GetByID(ctx context.Context, id string) (orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return orderdom.Order{}, errors.New("order_repository_fs: firestore client is nil")
	}

	snap, err := r.col().Doc(strings.TrimSpace(id)).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return orderdom.Order{}, orderdom.ErrNotFound
		}
		return orderdom.Order{}, err
	}

	o := decodeOrder(snap.Data())
	o.ID = snap.Ref.ID
	return o, nil
}

func (r *OrderRepositoryFS) List(ctx context.Context, filter orderdom.Filter, page orderdom.Page) (orderdom.PageResult, error) {
	if r == nil || r.Client == nil {
		return orderdom.PageResult{}, errors.New("order_repository_fs: firestore client is nil")
	}

	iter := r.col().OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	matched := make([]orderdom.Order, 0, 64)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return orderdom.PageResult{}, err
		}

		o := decodeOrder(snap.Data())
		o.ID = snap.Ref.ID
		if !orderMatches(o, filter) {
			continue
		}
		matched = append(matched, o)
	}

	total := len(matched)
	start, end := pageBounds(total, page)
	return orderdom.PageResult{Items: matched[start:end], TotalCount: total}, nil
}

func (r *OrderRepositoryFS) Count(ctx context.Context, filter orderdom.Filter) (int, error) {
	res, err := r.List(ctx, filter, orderdom.Page{Number: 1, PerPage: 0})
	if err != nil {
		return 0, err
	}
	return res.TotalCount, nil
}

func (r *OrderRepositoryFS) Create(ctx context.Context, o orderdom.Order) error {
	if r == nil || r.Client == nil {
		return errors.New("order_repository_fs: firestore client is nil")
	}
	_, err := r.col().Doc(o.ID).Create(ctx, encodeOrder(o))
	if isAlreadyExists(err) {
		return orderdom.ErrConflict
	}
	return err
}

func (r *OrderRepositoryFS) UpdateStatus(ctx context.Context, id string, status orderdom.Status, updatedAt time.Time) error {
	if r == nil || r.Client == nil {
		return errors.New("order_repository_fs: firestore client is nil")
	}
	_, err := r.col().Doc(strings.TrimSpace(id)).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(status)},
		{Path: "updatedAt", Value: updatedAt},
	})
	if isNotFound(err) {
		return orderdom.ErrNotFound
	}
	return err
}

func orderMatches(o orderdom.Order, f orderdom.Filter) bool {
	if f.SessionID != "" && o.SessionID != f.SessionID {
		return false
	}
	if len(f.Statuses) > 0 {
		ok := false
		for _, s := range f.Statuses {
			if o.Status == s {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.Query != "" && !strings.Contains(strings.ToLower(o.CustomerName), strings.ToLower(f.Query)) {
		return false
	}
	if f.CreatedFrom != nil && o.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedTo != nil && !o.CreatedAt.Before(*f.CreatedTo) {
		return false
	}
	return true
}

// pageBounds clamps a page window to [0, total]. PerPage <= 0 means all.
func pageBounds(total int, page orderdom.Page) (int, int) {
	if page.PerPage <= 0 {
		return 0, total
	}
	num := page.Number
	if num < 1 {
		num = 1
	}
	start := (num - 1) * page.PerPage
	if start > total {
		start = total
	}
	end := start + page.PerPage
	if end > total {
		end = total
	}
	return start, end
}

// ------------------------------------------------------------
// doc codec
// ------------------------------------------------------------

func encodeOrder(o orderdom.Order) map[string]any {
	items := make([]map[string]any, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, map[string]any{
			"menuItemId": it.MenuItemID,
			"name":       it.Name,
			"priceCents": it.PriceCents,
			"qty":        it.Qty,
		})
	}

	doc := map[string]any{
		"id":               o.ID,
		"sessionId":        o.SessionID,
		"customerName":     o.CustomerName,
		"customerPhone":    o.CustomerPhone,
		"items":            items,
		"subtotalCents":    o.SubtotalCents,
		"deliveryFeeCents": o.DeliveryFeeCents,
		"totalCents":       o.TotalCents,
		"isDelivery":       o.IsDelivery,
		"paymentMethod":    o.PaymentMethod,
		"notes":            o.Notes,
		"status":           string(o.Status),
		"createdAt":        o.CreatedAt,
		"updatedAt":        o.UpdatedAt,
	}
	if o.IsDelivery {
		doc["address"] = map[string]any{
			"street":  o.Address.Street,
			"city":    o.Address.City,
			"zipCode": o.Address.ZipCode,
		}
	}
	return doc
}

func decodeOrder(data map[string]any) orderdom.Order {
	o := orderdom.Order{
		ID:               asString(data["id"]),
		SessionID:        asString(data["sessionId"]),
		CustomerName:     asString(data["customerName"]),
		CustomerPhone:    asString(data["customerPhone"]),
		SubtotalCents:    asInt64(data["subtotalCents"]),
		DeliveryFeeCents: asInt64(data["deliveryFeeCents"]),
		TotalCents:       asInt64(data["totalCents"]),
		IsDelivery:       asBool(data["isDelivery"]),
		PaymentMethod:    asString(data["paymentMethod"]),
		Notes:            asString(data["notes"]),
		Status:           orderdom.Status(asString(data["status"])),
		CreatedAt:        asTime(data["createdAt"]),
		UpdatedAt:        asTime(data["updatedAt"]),
	}

	for _, raw := range asSlice(data["items"]) {
		m := asMap(raw)
		if m == nil {
			continue
		}
		o.Items = append(o.Items, orderdom.ItemSnapshot{
			MenuItemID: asString(m["menuItemId"]),
			Name:       asString(m["name"]),
			PriceCents: asInt64(m["priceCents"]),
			Qty:        asInt(m["qty"]),
		})
	}

	if addr := asMap(data["address"]); addr != nil {
		o.Address = orderdom.AddressSnapshot{
			Street:  asString(addr["street"]),
			City:    asString(addr["city"]),
			ZipCode: asString(addr["zipCode"]),
		}
	}
	return o
}
