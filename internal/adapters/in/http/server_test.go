package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpin "cafeteria/internal/adapters/in/http"
	"cafeteria/internal/core/application/usecases/commands"
	"cafeteria/internal/core/application/usecases/queries"
	"cafeteria/internal/core/domain/model/dish"
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/domain/model/user"
	"cafeteria/internal/core/ports"
	"cafeteria/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByAccessToken(ctx context.Context, token string) (*user.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) GetForUser(ctx context.Context, userID, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) ListStalePending(ctx context.Context, olderThan time.Time, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, olderThan, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockDishRepository struct{ mock.Mock }

func (m *MockDishRepository) Get(ctx context.Context, id kernel.UUID) (*dish.Dish, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dish.Dish), args.Error(1)
}

// stubUoW is a pass-through unit of work with no real transaction, enough
// to exercise the request path without a database.
type stubUoW struct {
	orders *MockOrderRepository
	dishes *MockDishRepository
}

func (u *stubUoW) Begin(context.Context) error            { return nil }
func (u *stubUoW) Commit(context.Context) error           { return nil }
func (u *stubUoW) Rollback(context.Context) error         { return nil }
func (u *stubUoW) OrderRepository() ports.OrderRepository { return u.orders }
func (u *stubUoW) DishRepository() ports.DishRepository   { return u.dishes }

type stubOrderUoWFactory struct{ uow *stubUoW }

func (f stubOrderUoWFactory) Create() commands.OrderUoW { return f.uow }

type stubPlaceOrderUoWFactory struct{ uow *stubUoW }

func (f stubPlaceOrderUoWFactory) Create() commands.PlaceOrderUoW { return f.uow }

type serverFixture struct {
	echo       *echo.Echo
	users      *MockUserRepository
	orders     *MockOrderRepository
	dishes     *MockDishRepository
	actingUser *user.User
	userID     kernel.UUID
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func restoredOrder(t *testing.T, userID kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	createdAt := time.Now().UTC().Add(-time.Hour)
	o, err := order.RestoreOrder(
		kernel.NewUUID(), userID, kernel.NewUUID(), 1, status, createdAt, createdAt,
	)
	require.NoError(t, err)
	return o
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	userID := kernel.NewUUID()
	actingUser, err := user.NewUser(userID, "Haruka")
	require.NoError(t, err)

	users := new(MockUserRepository)
	orders := new(MockOrderRepository)
	dishes := new(MockDishRepository)
	uow := &stubUoW{orders: orders, dishes: dishes}

	server := httpin.NewServer(
		commands.NewPlaceOrderCommandHandler(stubPlaceOrderUoWFactory{uow: uow}),
		commands.NewChangeOrderStatusCommandHandler(stubOrderUoWFactory{uow: uow}, nil, discardLogger()),
		queries.ListOrdersQueryHandler{},
	)

	e := echo.New()
	server.RegisterRoutes(e, httpin.NewAuthMiddleware(users))

	return &serverFixture{
		echo:       e,
		users:      users,
		orders:     orders,
		dishes:     dishes,
		actingUser: actingUser,
		userID:     userID,
	}
}

func (f *serverFixture) authenticate() {
	f.users.On("GetByAccessToken", mock.Anything, "valid-token").Return(f.actingUser, nil)
}

func (f *serverFixture) do(method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func TestGetHealth_NoTokenRequired(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodGet, "/health", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK"}`, rec.Body.String())
}

func TestAuthMiddleware_MissingToken_Returns401(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/orders", "", "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_UnknownToken_Returns401(t *testing.T) {
	f := newServerFixture(t)
	f.users.On("GetByAccessToken", mock.Anything, "wrong-token").
		Return(nil, errs.NewObjectNotFoundError("user", "by access token"))

	rec := f.do(http.MethodGet, "/api/v1/orders", "", "wrong-token")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	f.users.AssertExpectations(t)
}

func TestAuthMiddleware_MalformedAuthorizationHeader_Returns401(t *testing.T) {
	f := newServerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", strings.NewReader(""))
	req.Header.Set(echo.HeaderAuthorization, "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateOrder_ValidRequest_Returns201WithPendingOrder(t *testing.T) {
	f := newServerFixture(t)
	f.authenticate()

	dishID := kernel.NewUUID()
	testDish, err := dish.NewDish(dishID, "Karaage Bento", 650)
	require.NoError(t, err)

	f.dishes.On("Get", mock.Anything, dishID).Return(testDish, nil).Once()
	f.orders.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	body := `{"dish_id":"` + dishID.String() + `","quantity":2}`
	rec := f.do(http.MethodPost, "/api/v1/orders", body, "valid-token")

	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "pending", created["status"])
	assert.Equal(t, dishID.String(), created["dish_id"])
	assert.EqualValues(t, 2, created["quantity"])
	f.orders.AssertExpectations(t)
	f.dishes.AssertExpectations(t)
}

func TestCreateOrder_UnknownDish_Returns422(t *testing.T) {
	f := newServerFixture(t)
	f.authenticate()

	dishID := kernel.NewUUID()
	f.dishes.On("Get", mock.Anything, dishID).
		Return(nil, errs.NewObjectNotFoundError("dish", dishID.String())).Once()

	body := `{"dish_id":"` + dishID.String() + `","quantity":1}`
	rec := f.do(http.MethodPost, "/api/v1/orders", body, "valid-token")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "dish must exist")
}

func TestCreateOrder_NonPositiveQuantity_Returns422(t *testing.T) {
	f := newServerFixture(t)
	f.authenticate()

	body := `{"dish_id":"` + kernel.NewUUID().String() + `","quantity":0}`
	rec := f.do(http.MethodPost, "/api/v1/orders", body, "valid-token")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "quantity must be greater than 0")
}

func TestCreateOrder_MalformedDishID_Returns422(t *testing.T) {
	f := newServerFixture(t)
	f.authenticate()

	rec := f.do(http.MethodPost, "/api/v1/orders", `{"dish_id":"not-a-uuid","quantity":1}`, "valid-token")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUpdateOrder_AllowedTransition_Returns200(t *testing.T) {
	f := newServerFixture(t)
	f.authenticate()

	existing := restoredOrder(t, f.userID, order.Pending)
	f.orders.On("GetForUser", mock.Anything, f.userID, existing.ID()).Return(existing, nil).Once()
	f.orders.On("UpdateStatus", mock.Anything, existing, order.Pending).Return(nil).Once()

	rec := f.do(http.MethodPatch, "/api/v1/orders/"+existing.ID().String(),
		`{"status":"confirmed"}`, "valid-token")

	require.Equal(t, http.StatusOK, rec.Code)

	var updated map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "confirmed", updated["status"])
	f.orders.AssertExpectations(t)
}

func TestUpdateOrder_InvalidTransition_Returns422(t *testing.T) {
	f := newServerFixture(t)
	f.authenticate()

	existing := restoredOrder(t, f.userID, order.Completed)
	f.orders.On("GetForUser", mock.Anything, f.userID, existing.ID()).Return(existing, nil).Once()

	rec := f.do(http.MethodPatch, "/api/v1/orders/"+existing.ID().String(),
		`{"status":"cancelled"}`, "valid-token")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid status transition")
}

func TestUpdateOrder_UnknownStatusValue_Returns422(t *testing.T) {
	f := newServerFixture(t)
	f.authenticate()

	rec := f.do(http.MethodPatch, "/api/v1/orders/"+kernel.NewUUID().String(),
		`{"status":"teleported"}`, "valid-token")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUpdateOrder_OrderNotFound_Returns404(t *testing.T) {
	f := newServerFixture(t)
	f.authenticate()

	orderID := kernel.NewUUID()
	f.orders.On("GetForUser", mock.Anything, f.userID, orderID).
		Return(nil, errs.NewObjectNotFoundError("order", orderID.String())).Once()

	rec := f.do(http.MethodPatch, "/api/v1/orders/"+orderID.String(),
		`{"status":"confirmed"}`, "valid-token")

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateOrder_MalformedOrderID_Returns404(t *testing.T) {
	f := newServerFixture(t)
	f.authenticate()

	rec := f.do(http.MethodPatch, "/api/v1/orders/not-a-uuid",
		`{"status":"confirmed"}`, "valid-token")

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateOrder_ConcurrentConflict_Returns409(t *testing.T) {
	f := newServerFixture(t)
	f.authenticate()

	existing := restoredOrder(t, f.userID, order.Pending)
	f.orders.On("GetForUser", mock.Anything, f.userID, existing.ID()).Return(existing, nil).Once()
	f.orders.On("UpdateStatus", mock.Anything, existing, order.Pending).
		Return(errs.NewConflictError("order", existing.ID().String())).Once()

	rec := f.do(http.MethodPatch, "/api/v1/orders/"+existing.ID().String(),
		`{"status":"cancelled"}`, "valid-token")

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetOrders_InvalidFilters_Return400(t *testing.T) {
	f := newServerFixture(t)
	f.authenticate()

	for _, target := range []string{
		"/api/v1/orders?status=teleported",
		"/api/v1/orders?start_date=20-08-2026",
		"/api/v1/orders?cursor=not-a-timestamp",
		"/api/v1/orders?limit=abc",
		"/api/v1/orders?limit=-1",
	} {
		rec := f.do(http.MethodGet, target, "", "valid-token")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "expected 400 for %s", target)
	}
}
