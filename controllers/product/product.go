package productcontroller

import (
	"context"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopnest/ecommerce-api/db"
	"github.com/shopnest/ecommerce-api/models"
)

// productForm holds the validated multipart fields of a product
// create/update request.
type productForm struct {
	Name        string
	Description string
	Price       float64
	Category    primitive.ObjectID
	Quantity    int
	Shipping    bool
	Photo       []byte
	PhotoType   string
}

// parseProductForm validates the multipart form. The second return value is
// a client-facing message; empty means the form is valid.
func parseProductForm(c *gin.Context) (*productForm, string) {
	form := &productForm{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
	}
	if form.Name == "" {
		return nil, "Name is required"
	}
	if form.Description == "" {
		return nil, "Description is required"
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price <= 0 {
		return nil, "Price must be a positive number"
	}
	form.Price = price

	quantity, err := strconv.Atoi(c.PostForm("quantity"))
	if err != nil || quantity < 0 {
		return nil, "Quantity must be a non-negative number"
	}
	form.Quantity = quantity

	categoryID, err := primitive.ObjectIDFromHex(c.PostForm("category"))
	if err != nil {
		return nil, "Category is required"
	}
	form.Category = categoryID

	if v := c.PostForm("shipping"); v != "" {
		shipping, err := strconv.ParseBool(v)
		if err != nil {
			return nil, "Shipping must be a boolean"
		}
		form.Shipping = shipping
	}

	file, err := c.FormFile("photo")
	if err == nil {
		if file.Size > models.MaxPhotoSize {
			return nil, "Photo should be less than 1MB"
		}
		f, err := file.Open()
		if err != nil {
			return nil, "Photo could not be read"
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, "Photo could not be read"
		}
		form.Photo = data
		form.PhotoType = file.Header.Get("Content-Type")
	}

	return form, ""
}

func categoryExists(ctx context.Context, database *mongo.Database, id primitive.ObjectID) (bool, error) {
	n, err := database.Collection(db.CategoriesCollection).CountDocuments(ctx, bson.M{"_id": id})
	return n > 0, err
}

// POST /api/v1/product/create-product (admin, multipart)
func CreateProduct(database *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, msg := parseProductForm(c)
		if msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
			return
		}

		ctx := context.Background()
		ok, err := categoryExists(ctx, database, form.Category)
		if err != nil {
			serverError(c, "Error while creating product", err)
			return
		}
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category"})
			return
		}

		now := time.Now()
		product := models.Product{
			Name:        form.Name,
			Slug:        slug.Make(form.Name),
			Description: form.Description,
			Price:       form.Price,
			Category:    form.Category,
			Quantity:    form.Quantity,
			Photo:       form.Photo,
			PhotoType:   form.PhotoType,
			Shipping:    form.Shipping,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		res, err := database.Collection(db.ProductsCollection).InsertOne(ctx, product)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Product already exists"})
				return
			}
			serverError(c, "Error while creating product", err)
			return
		}
		product.ID = res.InsertedID.(primitive.ObjectID)
		product.Photo = nil

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Product created successfully",
			"product": product,
		})
	}
}

// PUT /api/v1/product/update-product/:id (admin, multipart)
func UpdateProduct(database *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id"})
			return
		}

		form, msg := parseProductForm(c)
		if msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
			return
		}

		ctx := context.Background()
		ok, err := categoryExists(ctx, database, form.Category)
		if err != nil {
			serverError(c, "Error while updating product", err)
			return
		}
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category"})
			return
		}

		update := bson.M{
			"name":        form.Name,
			"slug":        slug.Make(form.Name),
			"description": form.Description,
			"price":       form.Price,
			"category":    form.Category,
			"quantity":    form.Quantity,
			"shipping":    form.Shipping,
			"updatedAt":   time.Now(),
		}
		if form.Photo != nil {
			update["photo"] = form.Photo
			update["photoType"] = form.PhotoType
		}

		var product models.Product
		err = database.Collection(db.ProductsCollection).FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": update},
			options.FindOneAndUpdate().
				SetReturnDocument(options.After).
				SetProjection(bson.M{"photo": 0}),
		).Decode(&product)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		if err != nil {
			serverError(c, "Error while updating product", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Product updated successfully",
			"product": product,
		})
	}
}

// DELETE /api/v1/product/delete-product/:id (admin)
func DeleteProduct(database *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id"})
			return
		}

		res, err := database.Collection(db.ProductsCollection).DeleteOne(context.Background(), bson.M{"_id": id})
		if err != nil {
			serverError(c, "Error while deleting product", err)
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully"})
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
