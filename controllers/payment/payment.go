// Package paymentcontroller implements the checkout flow: client token
// issuance and the server-side sale transaction.
package paymentcontroller

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shopnest/ecommerce-api/cart"
	"github.com/shopnest/ecommerce-api/db"
	"github.com/shopnest/ecommerce-api/gateway"
	"github.com/shopnest/ecommerce-api/middleware"
	"github.com/shopnest/ecommerce-api/models"
)

// GET /api/v1/product/braintree/token — a fresh client token for the
// payment widget.
func BraintreeToken(gw gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := gw.ClientToken(c.Request.Context())
		if err != nil {
			serverError(c, "Error while getting payment token", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "clientToken": token})
	}
}

type paymentInput struct {
	Nonce string      `json:"nonce" binding:"required"`
	Cart  []cart.Item `json:"cart"`
}

// BuildOrder materializes the order document for a checkout attempt. One
// order is written per attempt that reached the gateway, whether or not the
// sale succeeded; the gateway's outcome is embedded as the payment field.
// A line of quantity n contributes n product references.
func BuildOrder(buyer primitive.ObjectID, lines []cart.Line, res *gateway.SaleResult) models.Order {
	var products []primitive.ObjectID
	for _, l := range lines {
		for i := 0; i < l.Quantity; i++ {
			products = append(products, l.ID)
		}
	}

	now := time.Now()
	return models.Order{
		Products: products,
		Payment: models.Payment{
			Success: res.Success,
			Message: res.Message,
			Transaction: models.PaymentTransaction{
				ID:     res.TransactionID,
				Status: res.Status,
				Amount: res.Amount,
			},
		},
		Buyer:     buyer,
		Status:    models.StatusNotProcess,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// POST /api/v1/product/braintree/payment (signed-in)
//
// The total is computed server-side from the normalized cart; a client-sent
// total is never trusted. An empty cart is rejected before any gateway
// call. A gateway transport failure produces no order; a gateway decline
// still produces one, with payment.success=false.
func BraintreePayment(database *mongo.Database, gw gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyerID, err := primitive.ObjectIDFromHex(c.GetString(middleware.ContextUserID))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
			return
		}

		var input paymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		lines := cart.Normalize(input.Cart)
		if len(lines) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cart is empty"})
			return
		}
		total := cart.Total(lines)

		result, err := gw.Sale(c.Request.Context(), total, input.Nonce)
		if err != nil {
			serverError(c, "Payment failed", err)
			return
		}

		order := BuildOrder(buyerID, lines, result)
		res, err := database.Collection(db.OrdersCollection).InsertOne(context.Background(), order)
		if err != nil {
			serverError(c, "Error while saving order", err)
			return
		}
		order.ID = res.InsertedID.(primitive.ObjectID)

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Order created",
			"order":   order,
		})
	}
}

func serverError(c *gin.Context, message string, err error) {
	log.Printf("%s: %v", message, err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": message,
		"error":   err.Error(),
	})
}
