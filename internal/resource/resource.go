// Package resource maps store records to wire payloads. Internal columns
// like user_id never leak; derived fields are formatted here.
package resource

import (
	"strings"

	"shopapi/internal/model"
)

// dateTimeLayout is the format used for datetime fields in responses.
const dateTimeLayout = "2006-01-02 15:04:05"

// Product is the wire representation of a product.
type Product struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       string  `json:"price"`
	ImageURL    string  `json:"image_url"`
	OwnerID     uint    `json:"owner_id"`
	CreatedAt   string  `json:"created_at"`
}

// Post is the wire representation of a post. The stored image path and
// likes counter are intentionally not exposed.
type Post struct {
	ID        uint   `json:"id"`
	Content   string `json:"content"`
	ProductID uint   `json:"product_id"`
	UpdatedAt string `json:"updated_at"`
}

// Meta describes a page of a collection.
type Meta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// ProductCollection is a paginated list of products.
type ProductCollection struct {
	Data []Product `json:"data"`
	Meta Meta      `json:"meta"`
}

// PostCollection is a paginated list of posts.
type PostCollection struct {
	Data []Post `json:"data"`
	Meta Meta   `json:"meta"`
}

// NewProduct maps a product record to its wire form. baseURL is the public
// root under which stored images are served.
func NewProduct(p *model.Product, baseURL string) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		ImageURL:    imageURL(baseURL, p.ImagePath),
		OwnerID:     p.UserID,
		CreatedAt:   p.CreatedAt.Format(dateTimeLayout),
	}
}

// NewProductCollection maps a page of products.
func NewProductCollection(products []model.Product, baseURL string, meta Meta) ProductCollection {
	data := make([]Product, 0, len(products))
	for i := range products {
		data = append(data, NewProduct(&products[i], baseURL))
	}
	return ProductCollection{Data: data, Meta: meta}
}

// NewPost maps a post record to its wire form.
func NewPost(p *model.Post) Post {
	return Post{
		ID:        p.ID,
		Content:   p.Content,
		ProductID: p.ProductID,
		UpdatedAt: p.UpdatedAt.Format(dateTimeLayout),
	}
}

// NewPostCollection maps a page of posts.
func NewPostCollection(posts []model.Post, meta Meta) PostCollection {
	data := make([]Post, 0, len(posts))
	for i := range posts {
		data = append(data, NewPost(&posts[i]))
	}
	return PostCollection{Data: data, Meta: meta}
}

// NewMeta computes pagination metadata for a fixed page size.
func NewMeta(page, perPage int, total int64) Meta {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}
	return Meta{CurrentPage: page, PerPage: perPage, Total: total, LastPage: lastPage}
}

func imageURL(baseURL string, path *string) string {
	if path == nil || *path == "" {
		return ""
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + *path
}
