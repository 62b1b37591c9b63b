package productcontroller

import (
	"context"
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopnest/ecommerce-api/db"
	"github.com/shopnest/ecommerce-api/models"
)

const (
	listLimit = 12 // cap for the unpaginated listing
	perPage   = 6  // fixed page size for /product-list/:page
)

var noPhoto = bson.M{"photo": 0}

func findProducts(ctx context.Context, database *mongo.Database, filter bson.M, opts *options.FindOptions) ([]models.Product, error) {
	cur, err := database.Collection(db.ProductsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GET /api/v1/product/get-product
func GetProducts(database *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := findProducts(
			context.Background(),
			database,
			bson.M{},
			options.Find().
				SetProjection(noPhoto).
				SetSort(bson.M{"createdAt": -1}).
				SetLimit(listLimit),
		)
		if err != nil {
			serverError(c, "Error while getting products", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "All products",
			"total":    len(products),
			"products": products,
		})
	}
}

// GET /api/v1/product/get-product/:slug
func GetProduct(database *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		var product models.Product
		err := database.Collection(db.ProductsCollection).FindOne(
			ctx,
			bson.M{"slug": c.Param("slug")},
			options.FindOne().SetProjection(noPhoto),
		).Decode(&product)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		if err != nil {
			serverError(c, "Error while getting single product", err)
			return
		}

		var category models.Category
		if err := database.Collection(db.CategoriesCollection).
			FindOne(ctx, bson.M{"_id": product.Category}).
			Decode(&category); err != nil && err != mongo.ErrNoDocuments {
			serverError(c, "Error while getting single product", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Single product fetched",
			"product":  product,
			"category": category,
		})
	}
}

// GET /api/v1/product/product-photo/:id — raw photo bytes with the stored
// content type.
func ProductPhoto(database *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id"})
			return
		}

		var product models.Product
		err = database.Collection(db.ProductsCollection).FindOne(
			context.Background(),
			bson.M{"_id": id},
			options.FindOne().SetProjection(bson.M{"photo": 1, "photoType": 1}),
		).Decode(&product)
		if err == mongo.ErrNoDocuments || (err == nil && len(product.Photo) == 0) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Photo not found"})
			return
		}
		if err != nil {
			serverError(c, "Error while getting photo", err)
			return
		}

		c.Data(http.StatusOK, product.PhotoType, product.Photo)
	}
}

type filtersInput struct {
	Checked []string  `json:"checked"`
	Radio   []float64 `json:"radio"`
}

// POST /api/v1/product/product-filters — category inclusion and inclusive
// price range. Both empty means no filter.
func ProductFilters(database *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input filtersInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		filter := bson.M{}
		if len(input.Checked) > 0 {
			ids := make([]primitive.ObjectID, 0, len(input.Checked))
			for _, raw := range input.Checked {
				id, err := primitive.ObjectIDFromHex(raw)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category id"})
					return
				}
				ids = append(ids, id)
			}
			filter["category"] = bson.M{"$in": ids}
		}
		if len(input.Radio) == 2 {
			filter["price"] = bson.M{"$gte": input.Radio[0], "$lte": input.Radio[1]}
		}

		products, err := findProducts(
			context.Background(),
			database,
			filter,
			options.Find().SetProjection(noPhoto),
		)
		if err != nil {
			serverError(c, "Error while filtering products", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
	}
}

// GET /api/v1/product/product-count
func ProductCount(database *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		total, err := database.Collection(db.ProductsCollection).
			CountDocuments(context.Background(), bson.M{})
		if err != nil {
			serverError(c, "Error in product count", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "total": total})
	}
}

// GET /api/v1/product/product-list/:page — fixed page size; page defaults
// to 1 when absent or non-numeric.
func ProductList(database *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := strconv.Atoi(c.Param("page"))
		if err != nil || page < 1 {
			page = 1
		}

		products, err := findProducts(
			context.Background(),
			database,
			bson.M{},
			options.Find().
				SetProjection(noPhoto).
				SetSort(bson.M{"createdAt": -1}).
				SetSkip(int64(page-1)*perPage).
				SetLimit(perPage),
		)
		if err != nil {
			serverError(c, "Error in per page product list", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
	}
}

// GET /api/v1/product/search/:keyword — case-insensitive match over name
// and description.
func SearchProducts(database *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		keyword := regexp.QuoteMeta(c.Param("keyword"))
		filter := bson.M{"$or": bson.A{
			bson.M{"name": bson.M{"$regex": keyword, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": keyword, "$options": "i"}},
		}}

		products, err := findProducts(
			context.Background(),
			database,
			filter,
			options.Find().SetProjection(noPhoto),
		)
		if err != nil {
			serverError(c, "Error in search product", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
	}
}

// GET /api/v1/product/related-product/:pid/:cid — up to 3 products from the
// same category, excluding the current one.
func RelatedProducts(database *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		pid, err := primitive.ObjectIDFromHex(c.Param("pid"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id"})
			return
		}
		cid, err := primitive.ObjectIDFromHex(c.Param("cid"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category id"})
			return
		}

		products, err := findProducts(
			context.Background(),
			database,
			bson.M{"category": cid, "_id": bson.M{"$ne": pid}},
			options.Find().SetProjection(noPhoto).SetLimit(3),
		)
		if err != nil {
			serverError(c, "Error while getting related products", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
	}
}

// GET /api/v1/product/product-category/:slug — a category and its products.
func ProductsByCategory(database *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		var category models.Category
		err := database.Collection(db.CategoriesCollection).
			FindOne(ctx, bson.M{"slug": c.Param("slug")}).
			Decode(&category)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
			return
		}
		if err != nil {
			serverError(c, "Error while getting products", err)
			return
		}

		products, err := findProducts(
			ctx,
			database,
			bson.M{"category": category.ID},
			options.Find().SetProjection(noPhoto),
		)
		if err != nil {
			serverError(c, "Error while getting products", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"category": category,
			"products": products,
		})
	}
}
