package queries

import (
	"context"
	"strings"
	"time"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryResponse is one page of a user's order history together
// with the token for the following page. NextCursor is nil on the last
// page.
type ListOrdersQueryResponse struct {
	Orders     []OrderResponse
	NextCursor *string
}

// OrderResponse is a single order row with denormalized dish and owner
// attributes, so callers need no second round-trip per row. Only the
// owner's display name is carried; auth fields never reach this type.
type OrderResponse struct {
	ID        kernel.UUID
	Quantity  int
	Status    order.Status
	CreatedAt time.Time
	UpdatedAt time.Time
	Dish      DishResponse
	User      UserResponse
}

// DishResponse carries the denormalized dish attributes of an order row.
type DishResponse struct {
	ID    kernel.UUID
	Name  string
	Price int
}

// UserResponse carries the order owner's display name.
type UserResponse struct {
	Name string
}

// predicate is one independent filter condition of the listing query.
// Predicates are pure functions of the query parameters and are combined
// with logical AND in a fixed order: ownership, status, date range, cursor.
type predicate struct {
	expr string
	arg  any
}

// ListOrdersQueryHandler produces one page of a user's orders, newest
// first. It reads through an indexed range query on
// (user_id, created_at) / (user_id, status, created_at) and fetches one
// row beyond the page size to detect whether a next page exists without a
// separate count query.
//
// Example:
//
//	handler := NewListOrdersQueryHandler(db)
//	query, _ := NewListOrdersQuery(userID, ListOrdersParams{})
//
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	if page.NextCursor != nil {
//	    // pass it back as ?cursor= to fetch the following page
//	}
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order history queries.
// Requires a GORM database connection for query execution.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing query.
//
// Rows are ordered strictly by created_at descending with id descending as
// the tie-breaker, so ordering is deterministic even for equal timestamps.
// When more than Limit rows match, the extra row is dropped and NextCursor
// is set to the created_at of the last returned row, serialized as RFC 3339
// with full precision; the cursor is an exclusive upper bound on the next
// page.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	predicates := buildPredicates(query)
	exprs := make([]string, 0, len(predicates))
	args := make([]any, 0, len(predicates)+1)
	for _, p := range predicates {
		exprs = append(exprs, p.expr)
		args = append(args, p.arg)
	}
	args = append(args, query.Limit()+1)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			orders.id,
			orders.quantity,
			orders.status,
			orders.created_at,
			orders.updated_at,
			dishes.id,
			dishes.name,
			dishes.price,
			users.name
		FROM orders
		JOIN dishes ON dishes.id = orders.dish_id
		JOIN users ON users.id = orders.user_id
		WHERE `+strings.Join(exprs, " AND ")+`
		ORDER BY orders.created_at DESC, orders.id DESC
		LIMIT ?
	`, args...).Rows()
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0, query.Limit()+1)
	for rows.Next() {
		var (
			orderID   uuid.UUID
			quantity  int
			status    int
			createdAt time.Time
			updatedAt time.Time
			dishID    uuid.UUID
			dishName  string
			dishPrice int
			userName  string
		)

		if err = rows.Scan(
			&orderID,
			&quantity,
			&status,
			&createdAt,
			&updatedAt,
			&dishID,
			&dishName,
			&dishPrice,
			&userName,
		); err != nil {
			return ListOrdersQueryResponse{}, err
		}

		id, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return ListOrdersQueryResponse{}, idErr
		}
		dID, dishErr := kernel.UUIDFromBytes(dishID[:])
		if dishErr != nil {
			return ListOrdersQueryResponse{}, dishErr
		}

		orders = append(orders, OrderResponse{
			ID:        id,
			Quantity:  quantity,
			Status:    order.Status(status),
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
			Dish: DishResponse{
				ID:    dID,
				Name:  dishName,
				Price: dishPrice,
			},
			User: UserResponse{
				Name: userName,
			},
		})
	}

	if err = rows.Err(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	return paginate(orders, query.Limit()), nil
}

// buildPredicates composes the filter chain in its fixed order. Ownership
// is the outermost predicate and is always present; no filter can bypass
// it.
func buildPredicates(query ListOrdersQuery) []predicate {
	predicates := []predicate{
		{expr: "orders.user_id = ?", arg: query.UserID().Bytes()},
	}

	if query.Status() != order.Unknown {
		predicates = append(predicates, predicate{
			expr: "orders.status = ?",
			arg:  int(query.Status()),
		})
	}

	if start := query.StartDate(); start != nil {
		predicates = append(predicates, predicate{
			expr: "orders.created_at >= ?",
			arg:  *start,
		})
	}

	if end := query.EndDate(); end != nil {
		predicates = append(predicates, predicate{
			expr: "orders.created_at <= ?",
			arg:  *end,
		})
	}

	if cursor := query.Cursor(); cursor != nil {
		predicates = append(predicates, predicate{
			expr: "orders.created_at < ?",
			arg:  *cursor,
		})
	}

	return predicates
}

// paginate applies the limit+1 probe: when the fetch exceeded the page
// size, the extra row is dropped and the last kept row's created_at
// becomes the next cursor.
func paginate(orders []OrderResponse, limit int) ListOrdersQueryResponse {
	if len(orders) <= limit {
		return ListOrdersQueryResponse{Orders: orders}
	}

	page := orders[:limit]
	nextCursor := page[len(page)-1].CreatedAt.UTC().Format(time.RFC3339Nano)
	return ListOrdersQueryResponse{
		Orders:     page,
		NextCursor: &nextCursor,
	}
}
