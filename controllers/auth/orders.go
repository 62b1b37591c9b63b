package authcontroller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopnest/ecommerce-api/db"
	"github.com/shopnest/ecommerce-api/middleware"
	"github.com/shopnest/ecommerce-api/models"
)

// orderView is an order with its product references resolved to documents
// (photo bytes excluded). BuyerName is filled for admin listings only.
type orderView struct {
	models.Order
	ProductDocs []models.Product `json:"productDetails"`
	BuyerName   string           `json:"buyerName,omitempty"`
}

func attachProducts(ctx context.Context, database *mongo.Database, orders []models.Order) ([]orderView, error) {
	idSet := make(map[primitive.ObjectID]struct{})
	for _, o := range orders {
		for _, pid := range o.Products {
			idSet[pid] = struct{}{}
		}
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for pid := range idSet {
		ids = append(ids, pid)
	}

	byID := make(map[primitive.ObjectID]models.Product, len(ids))
	if len(ids) > 0 {
		cur, err := database.Collection(db.ProductsCollection).Find(
			ctx,
			bson.M{"_id": bson.M{"$in": ids}},
			options.Find().SetProjection(bson.M{"photo": 0}),
		)
		if err != nil {
			return nil, err
		}
		var products []models.Product
		if err := cur.All(ctx, &products); err != nil {
			return nil, err
		}
		for _, p := range products {
			byID[p.ID] = p
		}
	}

	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		v := orderView{Order: o}
		for _, pid := range o.Products {
			if p, ok := byID[pid]; ok {
				v.ProductDocs = append(v.ProductDocs, p)
			}
		}
		views = append(views, v)
	}
	return views, nil
}

// attachBuyers resolves each order's buyer to their name. Only the name is
// fetched; the rest of the user document stays out of admin responses.
func attachBuyers(ctx context.Context, database *mongo.Database, views []orderView) error {
	idSet := make(map[primitive.ObjectID]struct{})
	for _, v := range views {
		if !v.Buyer.IsZero() {
			idSet[v.Buyer] = struct{}{}
		}
	}
	if len(idSet) == 0 {
		return nil
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for uid := range idSet {
		ids = append(ids, uid)
	}

	cur, err := database.Collection(db.UsersCollection).Find(
		ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"name": 1}),
	)
	if err != nil {
		return err
	}
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return err
	}

	names := make(map[primitive.ObjectID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	for i := range views {
		views[i].BuyerName = names[views[i].Buyer]
	}
	return nil
}

// GET /api/v1/auth/orders — the signed-in buyer's own orders.
func GetOrders(database *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyerID, err := primitive.ObjectIDFromHex(c.GetString(middleware.ContextUserID))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
			return
		}

		ctx := context.Background()
		cur, err := database.Collection(db.OrdersCollection).Find(
			ctx,
			bson.M{"buyer": buyerID},
			options.Find().SetSort(bson.M{"createdAt": -1}),
		)
		if err != nil {
			serverError(c, "Error while getting orders", err)
			return
		}
		var orders []models.Order
		if err := cur.All(ctx, &orders); err != nil {
			serverError(c, "Error while getting orders", err)
			return
		}

		views, err := attachProducts(ctx, database, orders)
		if err != nil {
			serverError(c, "Error while getting orders", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": views})
	}
}

// GET /api/v1/auth/all-orders — every order, newest first (admin).
func GetAllOrders(database *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		cur, err := database.Collection(db.OrdersCollection).Find(
			ctx,
			bson.M{},
			options.Find().SetSort(bson.M{"createdAt": -1}),
		)
		if err != nil {
			serverError(c, "Error while getting orders", err)
			return
		}
		var orders []models.Order
		if err := cur.All(ctx, &orders); err != nil {
			serverError(c, "Error while getting orders", err)
			return
		}

		views, err := attachProducts(ctx, database, orders)
		if err != nil {
			serverError(c, "Error while getting orders", err)
			return
		}
		if err := attachBuyers(ctx, database, views); err != nil {
			serverError(c, "Error while getting orders", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": views})
	}
}

type orderStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// PUT /api/v1/auth/order-status/:orderId — admin sets one of the fixed
// statuses. Any status may follow any other.
func OrderStatus(database *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
			return
		}

		var input orderStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Status is required"})
			return
		}
		if !models.ValidStatus(input.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status"})
			return
		}

		var order models.Order
		err = database.Collection(db.OrdersCollection).FindOneAndUpdate(
			context.Background(),
			bson.M{"_id": orderID},
			bson.M{"$set": bson.M{"status": input.Status, "updatedAt": time.Now()}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&order)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
			return
		}
		if err != nil {
			serverError(c, "Error while updating order status", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order status updated", "order": order})
	}
}
