package paymentcontroller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/shopnest/ecommerce-api/cart"
	"github.com/shopnest/ecommerce-api/gateway"
	"github.com/shopnest/ecommerce-api/middleware"
	"github.com/shopnest/ecommerce-api/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// spyGateway records calls and returns canned results.
type spyGateway struct {
	saleCalls  int
	saleAmount decimal.Decimal
	saleResult *gateway.SaleResult
	saleErr    error
}

func (g *spyGateway) ClientToken(ctx context.Context) (string, error) {
	return "spy-token", nil
}

func (g *spyGateway) Sale(ctx context.Context, amount decimal.Decimal, nonce string) (*gateway.SaleResult, error) {
	g.saleCalls++
	g.saleAmount = amount
	return g.saleResult, g.saleErr
}

// paymentRouter wires the handler behind a stub sign-in. Tests covering
// paths that must return before any persistence pass a nil database.
func paymentRouter(database *mongo.Database, gw gateway.Gateway) *gin.Engine {
	r := gin.New()
	r.POST("/braintree/payment",
		func(c *gin.Context) {
			c.Set(middleware.ContextUserID, primitive.NewObjectID().Hex())
		},
		BraintreePayment(database, gw),
	)
	return r
}

func postPayment(t *testing.T, r *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/braintree/payment", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestPaymentEmptyCartRejectedBeforeGateway(t *testing.T) {
	gw := &spyGateway{}
	r := paymentRouter(nil, gw)

	w := postPayment(t, r, gin.H{"nonce": "fake-nonce", "cart": []cart.Item{}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cart is empty")
	assert.Zero(t, gw.saleCalls, "gateway must not be called for an empty cart")
}

func TestPaymentCartWithOnlyIdlessEntriesRejected(t *testing.T) {
	gw := &spyGateway{}
	r := paymentRouter(nil, gw)

	w := postPayment(t, r, gin.H{
		"nonce": "fake-nonce",
		"cart":  []gin.H{{"name": "ghost", "price": 10}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, gw.saleCalls)
}

func TestPaymentMissingNonceRejected(t *testing.T) {
	gw := &spyGateway{}
	r := paymentRouter(nil, gw)

	w := postPayment(t, r, gin.H{"cart": []cart.Item{{ID: primitive.NewObjectID(), Price: 10}}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, gw.saleCalls)
}

func TestPaymentGatewayTransportErrorProducesNoOrder(t *testing.T) {
	gw := &spyGateway{saleErr: errors.New("connection refused")}
	r := paymentRouter(nil, gw)

	// A nil database would panic on insert; reaching 500 without a panic
	// proves no order write was attempted.
	w := postPayment(t, r, gin.H{
		"nonce": "fake-nonce",
		"cart":  []cart.Item{{ID: primitive.NewObjectID(), Name: "A", Price: 100}},
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, gw.saleCalls)
}

func TestPaymentAuthoritativeTotal(t *testing.T) {
	gw := &spyGateway{saleErr: errors.New("stop before persistence")}
	r := paymentRouter(nil, gw)

	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	postPayment(t, r, gin.H{
		"nonce": "fake-nonce",
		"cart": []cart.Item{
			{ID: a, Name: "productA", Price: 100},
			{ID: b, Name: "productB", Price: 200},
		},
	})

	assert.Equal(t, "300.00", gw.saleAmount.StringFixed(2))
}

func TestPaymentDeclineWritesExactlyOneOrder(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("declined sale still materializes an order", func(mt *mtest.T) {
		gw := &spyGateway{saleResult: &gateway.SaleResult{
			Success: false,
			Amount:  "300.00",
			Message: "processor declined",
		}}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		a := primitive.NewObjectID()
		b := primitive.NewObjectID()
		w := postPayment(mt.T, paymentRouter(mt.DB, gw), gin.H{
			"nonce": "fake-nonce",
			"cart": []cart.Item{
				{ID: a, Name: "productA", Price: 100},
				{ID: b, Name: "productB", Price: 200},
			},
		})

		require.Equal(mt, http.StatusCreated, w.Code)
		assert.Equal(mt, 1, gw.saleCalls)

		var resp struct {
			Success bool         `json:"success"`
			Order   models.Order `json:"order"`
		}
		require.NoError(mt, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(mt, resp.Success)
		assert.False(mt, resp.Order.Payment.Success)
		assert.Equal(mt, "processor declined", resp.Order.Payment.Message)
		assert.Equal(mt, models.StatusNotProcess, resp.Order.Status)
		assert.Len(mt, resp.Order.Products, 2)

		inserts := 0
		for _, evt := range mt.GetAllStartedEvents() {
			if evt.CommandName == "insert" {
				inserts++
			}
		}
		assert.Equal(mt, 1, inserts, "exactly one order document is written")
	})
}

func TestBuildOrderSuccess(t *testing.T) {
	buyer := primitive.NewObjectID()
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	lines := []cart.Line{
		{ID: a, Name: "productA", Price: 100, Quantity: 1},
		{ID: b, Name: "productB", Price: 200, Quantity: 1},
	}
	res := &gateway.SaleResult{
		Success:       true,
		TransactionID: "txn1",
		Status:        "submitted_for_settlement",
		Amount:        "300.00",
	}

	order := BuildOrder(buyer, lines, res)

	assert.Equal(t, []primitive.ObjectID{a, b}, order.Products)
	assert.Equal(t, buyer, order.Buyer)
	assert.Equal(t, models.StatusNotProcess, order.Status)
	assert.True(t, order.Payment.Success)
	assert.Equal(t, "300.00", order.Payment.Transaction.Amount)
	assert.Equal(t, "txn1", order.Payment.Transaction.ID)
}

func TestBuildOrderDeclineStillMaterializes(t *testing.T) {
	buyer := primitive.NewObjectID()
	a := primitive.NewObjectID()
	lines := []cart.Line{{ID: a, Name: "productA", Price: 100, Quantity: 2}}
	res := &gateway.SaleResult{
		Success: false,
		Amount:  "200.00",
		Message: "processor declined",
	}

	order := BuildOrder(buyer, lines, res)

	// Declines are recorded, not dropped: the order exists with
	// payment.success=false.
	assert.False(t, order.Payment.Success)
	assert.Equal(t, "processor declined", order.Payment.Message)
	assert.Equal(t, models.StatusNotProcess, order.Status)
	assert.Equal(t, []primitive.ObjectID{a, a}, order.Products)
}
