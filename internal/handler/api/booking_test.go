//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/handler/api"
	"shareit/internal/handler/middleware"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"
	"shareit/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	stubCommands *stubBookingCommands
	stubQueries  *stubBookingQueries
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.stubCommands = &stubBookingCommands{}
	s.stubQueries = &stubBookingQueries{}
	handler := api.NewBookingHandler(s.stubCommands, s.stubQueries)

	actor := middleware.RequireActor()
	s.router.POST("/bookings", actor, handler.Create)
	s.router.GET("/bookings", actor, handler.ListByBooker)
	s.router.GET("/bookings/owner", actor, handler.ListByOwner)
	s.router.GET("/bookings/:bookingId", actor, handler.Get)
	s.router.PATCH("/bookings/:bookingId", actor, handler.Approve)
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func sampleBookingView() *queries.BookingView {
	return &queries.BookingView{
		ID:     10,
		Start:  time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC),
		End:    time.Date(2025, 7, 2, 12, 0, 0, 0, time.UTC),
		Status: "WAITING",
		Item:   queries.ItemRef{ID: 3, Name: "drill"},
		Booker: queries.BookerRef{ID: 7},
	}
}

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"
	reqBody := map[string]any{
		"itemId": 3,
		"start":  "2025-07-01T12:00:00Z",
		"end":    "2025-07-02T12:00:00Z",
	}

	s.Run("success: returns 201 with the created view", func() {
		s.stubCommands.createFn = func(_ context.Context, actorID int64, input commands.CreateBookingInput) (*queries.BookingView, error) {
			s.Equal(int64(7), actorID)
			s.Equal(int64(3), input.ItemID)
			return sampleBookingView(), nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, 7)

		var got queries.BookingView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &got)
		s.Equal(int64(10), got.ID)
		s.Equal("drill", got.Item.Name)
	})

	s.Run("missing actor header: returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, 0)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "X-Sharer-User-Id header required")
	})

	s.Run("non-integer actor header: returns 400", func() {
		rec := httptest.PerformRequestRawActor(s.T(), s.router, http.MethodPost, url, reqBody, "abc")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "must be an integer")
	})

	s.Run("malformed body: returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"itemId": 3}, 7)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	errorCases := []struct {
		name       string
		err        error
		expectCode int
	}{
		{name: "missing item: 404", err: markedErr(commands.ErrItemNotFound), expectCode: http.StatusNotFound},
		{name: "missing booker: 404", err: markedErr(commands.ErrUserNotFound), expectCode: http.StatusNotFound},
		{name: "bad interval: 400", err: markedErr(booking.ErrInvalidInterval), expectCode: http.StatusBadRequest},
		{name: "own item: 403", err: booking.ErrOwnItemBooking, expectCode: http.StatusForbidden},
		{name: "unavailable item: 400", err: booking.ErrItemUnavailable, expectCode: http.StatusBadRequest},
		{name: "unexpected failure: 500", err: context.DeadlineExceeded, expectCode: http.StatusInternalServerError},
	}
	for _, tc := range errorCases {
		s.Run(tc.name, func() {
			s.stubCommands.createFn = func(context.Context, int64, commands.CreateBookingInput) (*queries.BookingView, error) {
				return nil, tc.err
			}

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, 7)
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
		})
	}
}

func (s *BookingHandlerTestSuite) TestApprove() {
	s.Run("success: passes parsed approved flag through", func() {
		s.stubCommands.approveFn = func(_ context.Context, ownerID, bookingID int64, approved bool) (*queries.BookingView, error) {
			s.Equal(int64(5), ownerID)
			s.Equal(int64(10), bookingID)
			s.False(approved)
			view := sampleBookingView()
			view.Status = "REJECTED"
			return view, nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/10?approved=false", nil, 5)

		var got queries.BookingView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal("REJECTED", got.Status)
	})

	s.Run("missing approved param: returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/10", nil, 5)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "approved")
	})

	s.Run("non-numeric booking id: returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/abc?approved=true", nil, 5)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID")
	})

	errorCases := []struct {
		name       string
		err        error
		expectCode int
	}{
		{name: "missing booking: 404", err: markedErr(commands.ErrBookingNotFound), expectCode: http.StatusNotFound},
		{name: "non-owner: 403", err: commands.ErrNotItemOwner, expectCode: http.StatusForbidden},
		{name: "already decided: 400", err: booking.ErrAlreadyDecided, expectCode: http.StatusBadRequest},
	}
	for _, tc := range errorCases {
		s.Run(tc.name, func() {
			s.stubCommands.approveFn = func(context.Context, int64, int64, bool) (*queries.BookingView, error) {
				return nil, tc.err
			}

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/10?approved=true", nil, 5)
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
		})
	}
}

func (s *BookingHandlerTestSuite) TestGet() {
	s.Run("success: returns the view", func() {
		s.stubQueries.getFn = func(_ context.Context, actorID, bookingID int64) (*queries.BookingView, error) {
			s.Equal(int64(7), actorID)
			s.Equal(int64(10), bookingID)
			return sampleBookingView(), nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/10", nil, 7)

		var got queries.BookingView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal(int64(10), got.ID)
	})

	errorCases := []struct {
		name       string
		err        error
		expectCode int
	}{
		{name: "missing booking: 404", err: markedErr(queries.ErrBookingNotFound), expectCode: http.StatusNotFound},
		{name: "missing actor: 404", err: markedErr(queries.ErrUserNotFound), expectCode: http.StatusNotFound},
		{name: "third party: 403", err: queries.ErrViewForbidden, expectCode: http.StatusForbidden},
	}
	for _, tc := range errorCases {
		s.Run(tc.name, func() {
			s.stubQueries.getFn = func(context.Context, int64, int64) (*queries.BookingView, error) {
				return nil, tc.err
			}

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/10", nil, 7)
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
		})
	}
}

func (s *BookingHandlerTestSuite) TestList() {
	s.Run("booker list: forwards raw state and returns views", func() {
		s.stubQueries.listByBookerFn = func(_ context.Context, actorID int64, rawState string) ([]*queries.BookingView, error) {
			s.Equal(int64(7), actorID)
			s.Equal("FUTURE", rawState)
			return []*queries.BookingView{sampleBookingView()}, nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?state=FUTURE", nil, 7)

		var got []*queries.BookingView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Len(got, 1)
	})

	s.Run("owner list: hits the owner query", func() {
		s.stubQueries.listByOwnerFn = func(_ context.Context, actorID int64, rawState string) ([]*queries.BookingView, error) {
			s.Equal(int64(5), actorID)
			s.Equal("", rawState)
			return []*queries.BookingView{}, nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/owner", nil, 5)

		var got []*queries.BookingView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Empty(got)
	})

	s.Run("unknown state token: returns 400 with the token in the message", func() {
		s.stubQueries.listByBookerFn = func(context.Context, int64, string) ([]*queries.BookingView, error) {
			_, err := booking.StateFrom("BANANA")
			return nil, err
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?state=BANANA", nil, 7)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "BANANA")
	})

	s.Run("missing actor user: returns 404", func() {
		s.stubQueries.listByBookerFn = func(context.Context, int64, string) ([]*queries.BookingView, error) {
			return nil, markedErr(queries.ErrUserNotFound)
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, 999)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "User not found")
	})
}
