//go:build unit

package api_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"order-core/internal/domain/cart"
	"order-core/internal/domain/inventory"
	"order-core/internal/handler/api"
	resdto "order-core/internal/handler/dto/response"
	"order-core/internal/handler/middleware"
	"order-core/internal/pkg/errs"
	"order-core/internal/usecase/commands"
	"order-core/tests/common/builder"
	"order-core/tests/common/httptest"
	"order-core/tests/common/testutil"
	commandsmock "order-core/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// fakeOwner stands in for the identity middleware: a session header becomes the owner.
func fakeOwner(c *gin.Context) {
	id := c.GetHeader(middleware.SessionHeader)
	if id == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
		return
	}
	owner, _ := cart.SessionOwner(id)
	middleware.SetOwner(c, owner)
	c.Next()
}

type CheckoutHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCheckoutCommands
	handler      *api.CheckoutHandler
}

func (s *CheckoutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.handler = api.NewCheckoutHandler(s.mockCommands)

	s.router.POST("/api/checkout", fakeOwner, s.handler.Checkout)
}

func (s *CheckoutHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(CheckoutHandlerTestSuite))
}

func checkoutHeaders(key string) map[string]string {
	return map[string]string{
		middleware.SessionHeader: "sess_42",
		api.IdempotencyKeyHeader: key,
	}
}

func (s *CheckoutHandlerTestSuite) placedResult(replayed bool) *commands.CheckoutResult {
	b := builder.NewOrderBuilder()
	o, err := b.Build()
	s.Require().NoError(err)
	return &commands.CheckoutResult{Order: o, Intent: b.BuildIntent(o), Replayed: replayed}
}

func (s *CheckoutHandlerTestSuite) TestCheckout() {
	url := "/api/checkout"
	reqBody := builder.NewCheckoutBuilder().BuildRequestDTO()

	s.Run("success: 201 Created with the order and payment handle", func() {
		result := s.placedResult(false)
		s.mockCommands.EXPECT().
			Checkout(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req commands.CheckoutRequest) (*commands.CheckoutResult, error) {
				s.Equal("session:sess_42", req.Owner.String())
				s.Equal("key-1", req.IdempotencyKey)
				s.Equal("USD", req.Currency)
				s.Equal(req.Shipping, req.Billing)
				s.Equal("US", req.Shipping.Country)
				return result, nil
			})

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, checkoutHeaders("key-1"))

		var body resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(result.Order.ID().String(), body.Order.ID)
		s.Equal("pending_payment", body.Order.Status)
		s.Equal("25.00", body.Order.Total)
		s.Len(body.Order.Items, 1)
		s.Require().NotNil(body.Payment)
		s.Equal(result.Intent.ClientSecret, body.Payment.ClientSecret)
		s.False(body.Replayed)
		s.Empty(rec.Header().Get(api.ReplayedHeader))
	})

	s.Run("success: replay answers 200 with the replay header", func() {
		s.mockCommands.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(s.placedResult(true), nil)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, checkoutHeaders("key-1"))

		var body resdto.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Replayed)
		httptest.AssertHeaders(s.T(), rec, map[string]string{api.ReplayedHeader: "true"})
	})

	s.Run("success: explicit billing address is kept", func() {
		withBilling := testutil.DtoMap(s.T(), reqBody, testutil.Field("billing_address", map[string]any{
			"name": "Accounts", "line1": "9 Ledger Rd", "city": "Paris", "postal_code": "75001", "country": "fr",
		}))
		s.mockCommands.EXPECT().
			Checkout(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req commands.CheckoutRequest) (*commands.CheckoutResult, error) {
				s.Equal("Accounts", req.Billing.Name)
				s.Equal("FR", req.Billing.Country)
				s.NotEqual(req.Shipping, req.Billing)
				return s.placedResult(false), nil
			})

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, withBilling, checkoutHeaders("key-2"))
		s.Equal(http.StatusCreated, rec.Code)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing shipping address", mutate: testutil.Field("shipping_address", nil)},
			{name: "currency too short", mutate: testutil.Field("currency", "US")},
			{name: "shipping country not ISO alpha-2", mutate: testutil.Field("shipping_address.country", "USA")},
			{name: "shipping line1 missing", mutate: testutil.Field("shipping_address.line1", nil)},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, requestMap, checkoutHeaders("key-3"))
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: 400 when the idempotency key is oversized", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody,
			checkoutHeaders(strings.Repeat("k", 256)))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "too long")
		httptest.AssertErrorCode(s.T(), rec, "bad_request")
	})

	s.Run("error: 401 without an owner", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody,
			map[string]string{api.IdempotencyKeyHeader: "key-4"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

func (s *CheckoutHandlerTestSuite) TestCheckout_DomainErrors() {
	url := "/api/checkout"
	reqBody := builder.NewCheckoutBuilder().BuildRequestDTO()

	testCases := []struct {
		name       string
		err        error
		expectCode int
		expectMsg  string
	}{
		{name: "missing key", err: errs.ErrIdempotencyKeyRequired, expectCode: http.StatusBadRequest, expectMsg: "Idempotency-Key"},
		{name: "empty cart", err: errs.Wrap(errs.ErrEmptyCart, "checkout"), expectCode: http.StatusBadRequest, expectMsg: "Cart is empty"},
		{name: "invalid cart", err: errs.Mark(errs.New("duplicate line"), errs.ErrInvalidCart), expectCode: http.StatusBadRequest, expectMsg: "Cart is invalid"},
		{name: "unsupported currency", err: errs.Mark(errs.New("JPY"), errs.ErrUnsupportedCurrency), expectCode: http.StatusBadRequest, expectMsg: "Currency"},
		{name: "request still running", err: errs.ErrIdempotencyInProgress, expectCode: http.StatusConflict, expectMsg: "in progress"},
		{name: "key reused for another cart", err: errs.ErrIdempotencyKeyReused, expectCode: http.StatusConflict, expectMsg: "different request"},
		{name: "gateway declined", err: errs.Mark(errs.New("card declined"), errs.ErrGatewayRejected), expectCode: http.StatusBadGateway, expectMsg: "rejected"},
		{name: "gateway down", err: errs.Mark(errs.New("timeout"), errs.ErrGatewayUnavailable), expectCode: http.StatusServiceUnavailable, expectMsg: "unavailable"},
		{name: "storage failure", err: errs.Mark(errs.New("conn reset"), errs.ErrDatabaseOperationFailed), expectCode: http.StatusInternalServerError, expectMsg: "Checkout failed"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockCommands.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(nil, tc.err)
			rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, checkoutHeaders("key"))
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
		})
	}

	s.Run("out of stock lists the short lines", func() {
		product := uuid.New()
		short := &inventory.OutOfStockError{Lines: []inventory.ShortLine{{ProductID: product, Requested: 3, Available: 1}}}
		s.mockCommands.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(nil, errs.Wrap(short, "reserve"))

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, checkoutHeaders("key"))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Insufficient stock")
		httptest.AssertErrorCode(s.T(), rec, "out_of_stock")

		var body map[string]any
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &body)
		lines := body["detail"].(map[string]any)["lines"].([]any)
		s.Require().Len(lines, 1)
		line := lines[0].(map[string]any)
		s.Equal(product.String(), line["product_id"])
		s.EqualValues(3, line["requested"])
		s.EqualValues(1, line["available"])
	})
}
