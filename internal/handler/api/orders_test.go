//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"

	"order-core/internal/domain/cart"
	"order-core/internal/domain/order"
	"order-core/internal/handler/api"
	resdto "order-core/internal/handler/dto/response"
	"order-core/internal/handler/middleware"
	"order-core/internal/pkg/errs"
	"order-core/internal/usecase/queries"
	"order-core/tests/common/builder"
	"order-core/tests/common/httptest"
	commandsmock "order-core/tests/mock/commands"
	queriesmock "order-core/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockOrderCommands
	mockQueries  *queriesmock.MockOrderQueries
	handler      *api.OrderHandler
	owner        cart.Owner
	headers      map[string]string
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockOrderCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.handler = api.NewOrderHandler(s.mockCommands, s.mockQueries)

	s.owner, _ = cart.SessionOwner("sess_orders")
	s.headers = map[string]string{middleware.SessionHeader: s.owner.ID}

	s.router.GET("/api/orders", fakeOwner, s.handler.List)
	s.router.GET("/api/orders/:id", fakeOwner, s.handler.Get)
	s.router.POST("/api/orders/:id/cancel", fakeOwner, s.handler.Cancel)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

func (s *OrderHandlerTestSuite) view() *queries.OrderView {
	b := builder.NewOrderBuilder().WithOwner(s.owner)
	o, err := b.Build()
	s.Require().NoError(err)
	return queries.ToOrderView(o, b.BuildIntent(o))
}

func (s *OrderHandlerTestSuite) TestGet() {
	s.Run("success: renders the order with its payment", func() {
		v := s.view()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.owner, v.ID).Return(v, nil)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/api/orders/"+v.ID.String(), nil, s.headers)

		var body resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(v.ID.String(), body.ID)
		s.Equal(v.Number, body.Number)
		s.Equal(v.Items[0].ProductID.String(), body.Items[0].ProductID)
		s.Equal("Springfield", body.ShippingAddress.City)
		s.Require().NotNil(body.Payment)
		s.Equal("pending", body.Payment.Status)
	})

	s.Run("error: 400 on a malformed id", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/api/orders/nope", nil, s.headers)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 for someone else's order", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.owner, id).Return(nil, errs.ErrOrderNotFound)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/api/orders/"+id.String(), nil, s.headers)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})
}

func (s *OrderHandlerTestSuite) TestList() {
	s.Run("success: passes filters through and returns the next cursor", func() {
		v := s.view()
		items := []*queries.OrderListItem{{ID: v.ID, Number: v.Number, Status: v.Status, Currency: v.Currency, Total: v.Total, CreatedAt: v.CreatedAt}}
		s.mockQueries.EXPECT().
			ListByOwner(gomock.Any(), s.owner, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ cart.Owner, p queries.ListOrdersParams) ([]*queries.OrderListItem, *queries.Cursor, error) {
				s.Equal(5, p.Limit)
				s.Require().NotNil(p.Status)
				s.Equal(order.StatusPaid, *p.Status)
				s.Require().NotNil(p.After)
				s.Equal("abc", p.After.After)
				return items, &queries.Cursor{After: "next"}, nil
			})

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/api/orders?status=paid&limit=5&after=abc", nil, s.headers)

		var body resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Items, 1)
		s.Equal(v.ID.String(), body.Items[0].ID)
		s.Equal("next", body.NextCursor)
	})

	s.Run("success: defaults the page size", func() {
		s.mockQueries.EXPECT().
			ListByOwner(gomock.Any(), s.owner, queries.ListOrdersParams{Limit: 20}).
			Return(nil, nil, nil)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/api/orders", nil, s.headers)

		var body resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.Items)
		s.Empty(body.NextCursor)
	})

	testCases := []struct {
		name  string
		query string
		msg   string
	}{
		{name: "unknown status", query: "?status=lost", msg: "Invalid status"},
		{name: "limit above max", query: "?limit=101", msg: "Invalid query"},
		{name: "limit not a number", query: "?limit=ten", msg: "Invalid query"},
	}
	for _, tc := range testCases {
		s.Run("error: 400 "+tc.name, func() {
			rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/api/orders"+tc.query, nil, s.headers)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, tc.msg)
		})
	}

	s.Run("error: 400 on a tampered cursor", func() {
		s.mockQueries.EXPECT().
			ListByOwner(gomock.Any(), s.owner, gomock.Any()).
			Return(nil, nil, errs.Mark(errs.New("bad base64"), queries.ErrInvalidCursor))

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/api/orders?after=not-a-cursor", nil, s.headers)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid cursor")
	})
}

func (s *OrderHandlerTestSuite) TestCancel() {
	s.Run("success: returns the canceled order", func() {
		v := s.view()
		v.Status = string(order.StatusCanceled)
		s.mockCommands.EXPECT().Cancel(gomock.Any(), v.ID, s.owner).Return(nil, nil)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.owner, v.ID).Return(v, nil)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/api/orders/"+v.ID.String()+"/cancel", nil, s.headers)

		var body resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("canceled", body.Status)
	})

	s.Run("error: 409 once payment has been taken", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id, s.owner).
			Return(nil, errs.Mark(errs.New("paid -> canceled by customer"), errs.ErrInvalidTransition))

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/api/orders/"+id.String()+"/cancel", nil, s.headers)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "cannot move")
	})
}
