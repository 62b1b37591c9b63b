package categorycontroller

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopnest/ecommerce-api/db"
	"github.com/shopnest/ecommerce-api/models"
)

type categoryInput struct {
	Name string `json:"name" binding:"required"`
}

// POST /api/v1/category/create-category (admin)
func CreateCategory(database *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input categoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Name is required"})
			return
		}

		category := models.Category{
			Name: input.Name,
			Slug: slug.Make(input.Name),
		}
		res, err := database.Collection(db.CategoriesCollection).InsertOne(context.Background(), category)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Category already exists"})
				return
			}
			serverError(c, "Error in category", err)
			return
		}
		category.ID = res.InsertedID.(primitive.ObjectID)

		c.JSON(http.StatusCreated, gin.H{
			"success":  true,
			"message":  "New category created",
			"category": category,
		})
	}
}

// PUT /api/v1/category/update-category/:id (admin)
func UpdateCategory(database *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category id"})
			return
		}

		var input categoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Name is required"})
			return
		}

		var category models.Category
		err = database.Collection(db.CategoriesCollection).FindOneAndUpdate(
			context.Background(),
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"name": input.Name, "slug": slug.Make(input.Name)}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&category)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
			return
		}
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Category already exists"})
				return
			}
			serverError(c, "Error while updating category", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Category updated successfully",
			"category": category,
		})
	}
}

// DELETE /api/v1/category/delete-category/:id (admin)
func DeleteCategory(database *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category id"})
			return
		}

		res, err := database.Collection(db.CategoriesCollection).DeleteOne(context.Background(), bson.M{"_id": id})
		if err != nil {
			serverError(c, "Error while deleting category", err)
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category deleted successfully"})
	}
}

// GET /api/v1/category/get-category
func GetCategories(database *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		cur, err := database.Collection(db.CategoriesCollection).Find(context.Background(), bson.M{})
		if err != nil {
			serverError(c, "Error while getting all categories", err)
			return
		}
		var categories []models.Category
		if err := cur.All(context.Background(), &categories); err != nil {
			serverError(c, "Error while getting all categories", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "All categories list",
			"category": categories,
		})
	}
}

// GET /api/v1/category/get-one-category/:slug
func GetCategory(database *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		err := database.Collection(db.CategoriesCollection).
			FindOne(context.Background(), bson.M{"slug": c.Param("slug")}).
			Decode(&category)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
			return
		}
		if err != nil {
			serverError(c, "Error while getting category", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Get single category successfully",
			"category": category,
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
