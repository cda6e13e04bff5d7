package http

import (
	"time"

	"cafeteria/internal/core/application/usecases/queries"
	"cafeteria/internal/core/domain/model/order"
)

// Request bodies.

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	DishID   string `json:"dish_id"`
	Quantity int    `json:"quantity"`
}

// UpdateOrderRequest is the body of PATCH /api/v1/orders/:id.
type UpdateOrderRequest struct {
	Status string `json:"status"`
}

// Response payloads.

// Error is the generic error payload.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ValidationErrors carries field-level validation messages.
type ValidationErrors struct {
	Errors []string `json:"errors"`
}

// OrderDish is the denormalized dish fragment of a listed order.
type OrderDish struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// OrderUser is the denormalized owner fragment of a listed order. It
// intentionally carries the display name only.
type OrderUser struct {
	Name string `json:"name"`
}

// ListedOrder is one row of the order history listing.
type ListedOrder struct {
	ID        string    `json:"id"`
	Quantity  int       `json:"quantity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Dish      OrderDish `json:"dish"`
	User      OrderUser `json:"user"`
}

// ListOrdersResponse is the payload of GET /api/v1/orders. NextCursor is
// null on the last page.
type ListOrdersResponse struct {
	Orders     []ListedOrder `json:"orders"`
	NextCursor *string       `json:"next_cursor"`
}

// Order is the payload of POST and PATCH responses: the order's own
// attributes without denormalized fragments.
type Order struct {
	ID        string    `json:"id"`
	DishID    string    `json:"dish_id"`
	Quantity  int       `json:"quantity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toListOrdersResponse(page queries.ListOrdersQueryResponse) ListOrdersResponse {
	orders := make([]ListedOrder, len(page.Orders))
	for i, row := range page.Orders {
		orders[i] = ListedOrder{
			ID:        row.ID.String(),
			Quantity:  row.Quantity,
			Status:    row.Status.String(),
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
			Dish: OrderDish{
				ID:    row.Dish.ID.String(),
				Name:  row.Dish.Name,
				Price: row.Dish.Price,
			},
			User: OrderUser{
				Name: row.User.Name,
			},
		}
	}

	return ListOrdersResponse{
		Orders:     orders,
		NextCursor: page.NextCursor,
	}
}

func toOrderResponse(aggregate *order.Order) Order {
	return Order{
		ID:        aggregate.ID().String(),
		DishID:    aggregate.DishID().String(),
		Quantity:  aggregate.Quantity(),
		Status:    aggregate.Status().String(),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
	}
}
