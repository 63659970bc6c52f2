package resource

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"shopapi/internal/model"
)

func TestNewProduct(t *testing.T) {
	desc := "Sourced from high-altitude farms in Colombia."
	img := "products/abc.jpg"
	product := &model.Product{
		ID:          5,
		UserID:      42,
		Name:        "Organic Coffee Beans",
		Description: &desc,
		Price:       decimal.NewFromFloat(19.9),
		ImagePath:   &img,
		CreatedAt:   time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC),
	}

	res := NewProduct(product, "http://localhost:8080/storage")

	assert.Equal(t, "19.90", res.Price)
	assert.Equal(t, "http://localhost:8080/storage/products/abc.jpg", res.ImageURL)
	assert.Equal(t, uint(42), res.OwnerID)
	assert.Equal(t, "2026-08-28 10:30:00", res.CreatedAt)
}

func TestNewProduct_NeverExposesUserID(t *testing.T) {
	product := &model.Product{ID: 5, UserID: 42, Name: "Organic Coffee Beans", Price: decimal.NewFromInt(20)}

	raw, err := json.Marshal(NewProduct(product, "http://localhost:8080/storage"))
	assert.NoError(t, err)

	var payload map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &payload))
	assert.NotContains(t, payload, "user_id")
	assert.Equal(t, float64(42), payload["owner_id"])
}

func TestNewProduct_MissingImage(t *testing.T) {
	product := &model.Product{ID: 5, Name: "Organic Coffee Beans", Price: decimal.NewFromInt(20)}
	res := NewProduct(product, "http://localhost:8080/storage/")
	assert.Equal(t, "", res.ImageURL)
}

func TestNewPost_OmitsImageAndLikes(t *testing.T) {
	img := "posts/abc.jpg"
	post := &model.Post{
		ID:        3,
		ProductID: 5,
		Content:   "Check out this way to make your coffee",
		ImagePath: &img,
		Likes:     12,
		UpdatedAt: time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(NewPost(post))
	assert.NoError(t, err)

	var payload map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "2026-08-28 10:30:00", payload["updated_at"])
	assert.NotContains(t, payload, "image_path")
	assert.NotContains(t, payload, "image_url")
	assert.NotContains(t, payload, "likes")
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		perPage  int
		total    int64
		lastPage int
	}{
		{"empty collection still has one page", 1, 15, 0, 1},
		{"exact multiple", 1, 15, 30, 2},
		{"partial last page", 2, 15, 31, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NewMeta(tt.page, tt.perPage, tt.total)
			assert.Equal(t, tt.lastPage, meta.LastPage)
			assert.Equal(t, tt.page, meta.CurrentPage)
			assert.Equal(t, tt.total, meta.Total)
		})
	}
}

func TestNewProductCollection(t *testing.T) {
	products := []model.Product{
		{ID: 1, UserID: 42, Name: "A", Price: decimal.NewFromInt(1)},
		{ID: 2, UserID: 42, Name: "B", Price: decimal.NewFromInt(2)},
	}

	col := NewProductCollection(products, "http://localhost:8080/storage", NewMeta(1, 15, 2))

	assert.Len(t, col.Data, 2)
	assert.Equal(t, "1.00", col.Data[0].Price)
	assert.Equal(t, int64(2), col.Meta.Total)
}
