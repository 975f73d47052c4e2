package service

import (
	"context"
	"errors"
	"strings"

	"fanvault/internal/cache"
	"fanvault/internal/models"
	"fanvault/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

type CreatePostInput struct {
	UserID    string
	Text      string
	MediaURL  string
	MediaType string
	IsPublic  bool
}

type ListPostsInput struct {
	Limit    int
	Offset   int
	ViewerID string
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, models.NewUnauthorizedError("Unauthorized")
	}
	if !user.IsCreator() {
		return nil, models.NewUnauthorizedError("Only the creator can publish posts")
	}

	const maxTextLen = 10000

	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(in.Text) > maxTextLen {
		return nil, models.NewValidationError("Text too long (max 10000 characters)")
	}
	if strings.TrimSpace(in.MediaURL) == "" {
		return nil, models.NewValidationError("media_url is required")
	}
	switch in.MediaType {
	case models.MediaTypeImage, models.MediaTypeVideo:
		// valid
	default:
		return nil, models.NewValidationError("media_type must be image or video")
	}

	post := &models.Post{
		UserID:    in.UserID,
		Text:      in.Text,
		MediaURL:  in.MediaURL,
		MediaType: in.MediaType,
		IsPublic:  in.IsPublic,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// DeletePost removes a post and everything hanging off it. Only the creator
// can delete, and only their own posts.
func (s *PostService) DeletePost(ctx context.Context, userID string, postID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return models.NewUnauthorizedError("Unauthorized")
	}

	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}

	if !user.IsCreator() || post.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}

	return s.postRepo.Delete(ctx, postID)
}

// ToggleLike flips the caller's like on a post. An unsubscribed member gets a
// success-shaped response reflecting the current state with nothing written;
// promoting that to an error would break clients built against the original
// contract.
func (s *PostService) ToggleLike(ctx context.Context, userID string, postID uint) (*repository.ToggleLikeResult, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return nil, models.NewUnauthorizedError("Unauthorized")
		}
		return nil, err
	}

	if !canEngage(user) {
		post, err := s.postRepo.GetByID(ctx, postID, userID)
		if err != nil {
			return nil, err
		}
		return &repository.ToggleLikeResult{Liked: post.Liked, Likes: post.Likes}, nil
	}

	return s.postRepo.ToggleLike(ctx, userID, postID)
}

func (s *PostService) GetPost(ctx context.Context, postID uint, viewerID string) (*models.Post, error) {
	viewer := s.lookupViewer(ctx, viewerID)
	post, err := s.postRepo.GetByID(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	RedactMedia(post, viewer)
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	if in.Limit <= 0 || in.Limit > 100 {
		in.Limit = 20
	}
	if in.Offset < 0 {
		in.Offset = 0
	}

	viewer := s.lookupViewer(ctx, in.ViewerID)

	var posts []*models.Post
	var err error

	// Only the anonymous first page is cacheable; liked flags are per viewer.
	if in.ViewerID == "" && in.Offset == 0 && in.Limit <= 20 {
		err = cache.Aside(ctx, cache.PostsListKey(), &posts, cache.ListTTL, func() error {
			var fetchErr error
			posts, fetchErr = s.postRepo.List(ctx, in.Limit, in.Offset, "")
			return fetchErr
		})
	} else {
		posts, err = s.postRepo.List(ctx, in.Limit, in.Offset, in.ViewerID)
	}
	if err != nil {
		return nil, err
	}

	RedactMediaAll(posts, viewer)
	return posts, nil
}

// lookupViewer resolves the viewer for access decisions. A missing or stale
// id degrades to anonymous rather than failing the read.
func (s *PostService) lookupViewer(ctx context.Context, viewerID string) *models.User {
	if viewerID == "" {
		return nil
	}
	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil
	}
	return viewer
}
