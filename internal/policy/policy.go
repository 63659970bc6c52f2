// Package policy holds the ownership rules gating mutation of resources.
package policy

import "shopapi/internal/model"

// CanModifyProduct reports whether the user may update or delete the product.
func CanModifyProduct(userID uint, product *model.Product) bool {
	return product.UserID == userID
}

// CanModifyPost reports whether the user may update or delete the post.
// A post carries no owner column of its own; ownership is derived from the
// parent product, which callers must have loaded.
func CanModifyPost(userID uint, post *model.Post) bool {
	return post.Product.UserID == userID
}
