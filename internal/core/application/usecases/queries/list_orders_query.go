// Package queries contains read-only operations over the order store.
// Queries bypass the unit of work and read through a plain database handle;
// they never mutate state.
package queries

import (
	"errors"
	"fmt"
	"time"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/pkg/errs"
	"cafeteria/internal/pkg/guard"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// DefaultPageSize is the page size applied when a caller does not specify
// a limit.
const DefaultPageSize = 10

// dateLayout is the calendar-date format of the start_date/end_date
// filters. Dates are not timestamps; they are expanded to start-of-day and
// end-of-day instants in UTC.
const dateLayout = "2006-01-02"

// ListOrdersParams carries the raw, optional filter values as they arrive
// from the transport. Empty strings mean "no filter"; Limit 0 means
// "use the default".
type ListOrdersParams struct {
	Status    string
	StartDate string
	EndDate   string
	Cursor    string
	Limit     int
}

// ListOrdersQuery retrieves one page of the acting user's orders, newest
// first. All raw parameters are parsed and validated at construction, so a
// malformed cursor or date fails the request before any SQL runs.
//
// Example:
//
//	query, err := NewListOrdersQuery(userID, ListOrdersParams{Status: "pending"})
//	if err != nil {
//	    return err // 4xx: bad filter value
//	}
//
//	page, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	userID    kernel.UUID
	status    order.Status // Unknown means no status filter
	startDate *time.Time
	endDate   *time.Time
	cursor    *time.Time
	limit     int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a validated listing query for the given user.
//
// Validation rules:
//   - userID is mandatory (ownership scoping cannot be bypassed)
//   - status, when non-blank, must be a member of the status enumeration
//   - start/end dates, when non-blank, must be calendar dates (2006-01-02)
//   - cursor, when non-blank, must be an RFC 3339 timestamp
//   - limit, when non-zero, must be positive; zero selects DefaultPageSize
func NewListOrdersQuery(userID kernel.UUID, params ListOrdersParams) (ListOrdersQuery, error) {
	q := ListOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setUserID(userID),
		q.setStatus(params.Status),
		q.setDateRange(params.StartDate, params.EndDate),
		q.setCursor(params.Cursor),
		q.setLimit(params.Limit),
	); err != nil {
		return ListOrdersQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// UserID returns the acting user's identifier. Every returned row is owned
// by this user.
func (q ListOrdersQuery) UserID() kernel.UUID {
	return q.userID
}

// Status returns the status filter, or Unknown when no status filter was
// requested.
func (q ListOrdersQuery) Status() order.Status {
	return q.status
}

// StartDate returns the inclusive lower bound instant (start of day) or
// nil when unset.
func (q ListOrdersQuery) StartDate() *time.Time {
	return q.startDate
}

// EndDate returns the inclusive upper bound instant (end of day) or nil
// when unset.
func (q ListOrdersQuery) EndDate() *time.Time {
	return q.endDate
}

// Cursor returns the exclusive upper bound on created_at or nil when the
// first page was requested.
func (q ListOrdersQuery) Cursor() *time.Time {
	return q.cursor
}

// Limit returns the page size.
func (q ListOrdersQuery) Limit() int {
	return q.limit
}

func (q *ListOrdersQuery) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	q.userID = userID
	return nil
}

func (q *ListOrdersQuery) setStatus(raw string) error {
	if raw == "" {
		q.status = order.Unknown
		return nil
	}

	status, err := order.StatusFromString(raw)
	if err != nil {
		return err
	}

	q.status = status
	return nil
}

func (q *ListOrdersQuery) setDateRange(rawStart, rawEnd string) error {
	if rawStart != "" {
		date, err := time.ParseInLocation(dateLayout, rawStart, time.UTC)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("start_date", err)
		}
		q.startDate = &date
	}

	if rawEnd != "" {
		date, err := time.ParseInLocation(dateLayout, rawEnd, time.UTC)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("end_date", err)
		}
		endOfDay := date.AddDate(0, 0, 1).Add(-time.Nanosecond)
		q.endDate = &endOfDay
	}

	return nil
}

func (q *ListOrdersQuery) setCursor(raw string) error {
	if raw == "" {
		return nil
	}

	cursor, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("cursor", err)
	}

	q.cursor = &cursor
	return nil
}

func (q *ListOrdersQuery) setLimit(limit int) error {
	if limit == 0 {
		q.limit = DefaultPageSize
		return nil
	}

	if limit < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"limit",
			fmt.Errorf("%d is not greater than 0", limit),
		)
	}

	q.limit = limit
	return nil
}
