package categorycontroller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func createRouter(database *mongo.Database) *gin.Engine {
	r := gin.New()
	r.POST("/create-category", CreateCategory(database))
	return r
}

func postCategory(t *testing.T, r *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/create-category", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateCategory(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates category with derived slug", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		w := postCategory(mt.T, createRouter(mt.DB), gin.H{"name": "Summer Sale"})

		assert.Equal(mt, http.StatusCreated, w.Code)
		assert.Contains(mt, w.Body.String(), `"slug":"summer-sale"`)
		assert.Contains(mt, w.Body.String(), "New category created")
	})

	mt.Run("duplicate name conflicts", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: ecommerce.categories index: name_1",
		}))

		w := postCategory(mt.T, createRouter(mt.DB), gin.H{"name": "Summer Sale"})

		assert.Equal(mt, http.StatusConflict, w.Code)
		assert.Contains(mt, w.Body.String(), "Category already exists")
	})
}

func TestCreateCategoryMissingName(t *testing.T) {
	w := postCategory(t, createRouter(nil), gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Name is required")
}
