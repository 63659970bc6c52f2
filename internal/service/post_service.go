package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "shopapi/internal/errors"
	"shopapi/internal/model"
	"shopapi/internal/policy"
	"shopapi/internal/repository"
	"shopapi/internal/storage"
)

// postImageDir is where post images land inside the upload store.
const postImageDir = "posts"

// CreatePostInput is the validated payload for Create.
type CreatePostInput struct {
	ProductID uint
	Content   string
	Image     *storage.Upload
}

// UpdatePostInput carries only the fields the client supplied.
type UpdatePostInput struct {
	Content *string
	Image   *storage.Upload
}

// PostService handles post use cases. Update and delete require the acting
// user to own the post's parent product.
type PostService interface {
	List(ctx context.Context, page int) ([]model.Post, int64, error)
	Create(ctx context.Context, in CreatePostInput) (*model.Post, error)
	Get(ctx context.Context, id uint) (*model.Post, error)
	Update(ctx context.Context, userID, id uint, in UpdatePostInput) (*model.Post, error)
	Delete(ctx context.Context, userID, id uint) error
}

type postService struct {
	posts    repository.PostRepository
	products repository.ProductRepository
	store    storage.Store
}

// NewPostService creates a new post service.
func NewPostService(posts repository.PostRepository, products repository.ProductRepository, store storage.Store) PostService {
	return &postService{posts: posts, products: products, store: store}
}

// List returns one page of posts plus the total count.
func (s *postService) List(ctx context.Context, page int) ([]model.Post, int64, error) {
	if page < 1 {
		page = 1
	}
	posts, total, err := s.posts.List(ctx, (page-1)*PageSize, PageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	return posts, total, nil
}

// Create inserts a post referencing an existing product. A dangling
// product_id is a field-level validation error.
func (s *postService) Create(ctx context.Context, in CreatePostInput) (*model.Post, error) {
	if _, err := s.products.FindByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewValidationError("product_id", "The selected product id is invalid.")
		}
		return nil, fmt.Errorf("find parent product: %w", err)
	}

	post := &model.Post{
		ProductID: in.ProductID,
		Content:   in.Content,
	}

	if in.Image != nil {
		path, err := s.store.Save(postImageDir, in.Image)
		if err != nil {
			return nil, fmt.Errorf("store post image: %w", err)
		}
		post.ImagePath = &path
	}

	if err := s.posts.Create(ctx, post); err != nil {
		if post.ImagePath != nil {
			_ = s.store.Remove(*post.ImagePath)
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// Get fetches a post by id with its parent product loaded.
func (s *postService) Get(ctx context.Context, id uint) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return post, nil
}

// Update applies the supplied fields. Absent rows yield not-found before
// the ownership check runs.
func (s *postService) Update(ctx context.Context, userID, id uint, in UpdatePostInput) (*model.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanModifyPost(userID, post) {
		return nil, apperrors.ErrForbidden
	}

	if in.Content != nil {
		post.Content = *in.Content
	}
	var newImagePath *string
	if in.Image != nil {
		path, err := s.store.Save(postImageDir, in.Image)
		if err != nil {
			return nil, fmt.Errorf("store post image: %w", err)
		}
		post.ImagePath = &path
		newImagePath = &path
	}

	if err := s.posts.Update(ctx, post); err != nil {
		if newImagePath != nil {
			_ = s.store.Remove(*newImagePath)
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// Delete removes a post whose parent product the acting user owns.
func (s *postService) Delete(ctx context.Context, userID, id uint) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanModifyPost(userID, post) {
		return apperrors.ErrForbidden
	}

	if err := s.posts.Delete(ctx, post); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
