package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"social-service/internal/apperrors"
	"social-service/internal/auth"
	"social-service/internal/filestorage"
	"social-service/internal/logger"
	"social-service/internal/models"
	"social-service/internal/repositories"
	"social-service/internal/telemetry"
)

const postImageDir = "posts"

// postImageTypes lists the accepted image formats by sniffed MIME type and
// the file extensions each one may carry.
var postImageTypes = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
	"image/gif":  {".gif"},
	"image/webp": {".webp"},
}

// PostInput carries the fields of the post form. Image is nil when no file
// was uploaded.
type PostInput struct {
	Content     string
	Image       *multipart.FileHeader
	RemoveImage bool
}

type PostService interface {
	Create(ctx context.Context, actor auth.Principal, in PostInput) (models.Post, error)
	ListAll(ctx context.Context) ([]models.Post, error)
	ListOwn(ctx context.Context, actor auth.Principal) ([]models.Post, error)
	Get(ctx context.Context, actor auth.Principal, id int) (models.Post, error)
	Update(ctx context.Context, actor auth.Principal, id int, in PostInput) (models.Post, error)
	Delete(ctx context.Context, actor auth.Principal, id int) error
}

type PostSvc struct {
	posts   repositories.PostRepository
	storage filestorage.Storage
	audit   AuditEmitter
}

func NewPostService(posts repositories.PostRepository, storage filestorage.Storage, audit AuditEmitter) *PostSvc {
	return &PostSvc{posts: posts, storage: storage, audit: auditOrNoop(audit)}
}

func (s *PostSvc) Create(ctx context.Context, actor auth.Principal, in PostInput) (models.Post, error) {
	ctx, span := telemetry.StartSpan(ctx, "PostService.Create")
	defer span.End()

	if err := requirePrincipal(actor); err != nil {
		return models.Post{}, err
	}
	if isBlank(in.Content) {
		return models.Post{}, apperrors.NewValidationError("content is required")
	}

	imagePath, err := s.saveImage(in.Image)
	if err != nil {
		return models.Post{}, err
	}

	post, err := s.posts.Create(ctx, actor.ID, in.Content, imagePath)
	if err != nil {
		s.removeImage(imagePath)
		return models.Post{}, fmt.Errorf("create post: %w", err)
	}

	s.audit.Emit(ctx, telemetry.EventPostCreated, actor.ID, map[string]any{"post_id": post.ID})
	return post, nil
}

// ListAll returns every post, newest first.
func (s *PostSvc) ListAll(ctx context.Context) ([]models.Post, error) {
	return s.posts.ListAll(ctx)
}

// ListOwn returns actor's posts, newest first.
func (s *PostSvc) ListOwn(ctx context.Context, actor auth.Principal) ([]models.Post, error) {
	if err := requirePrincipal(actor); err != nil {
		return nil, err
	}
	return s.posts.ListByAuthor(ctx, actor.ID)
}

// Get loads a post for its author. Anyone else gets Forbidden.
func (s *PostSvc) Get(ctx context.Context, actor auth.Principal, id int) (models.Post, error) {
	if err := requirePrincipal(actor); err != nil {
		return models.Post{}, err
	}
	post, err := s.posts.Get(ctx, id)
	if errors.Is(err, repositories.ErrPostNotFound) {
		return models.Post{}, apperrors.NewNotFoundError("post not found")
	}
	if err != nil {
		return models.Post{}, fmt.Errorf("load post: %w", err)
	}
	if post.AuthorID != actor.ID {
		return models.Post{}, apperrors.NewForbiddenError("you can only change your own posts")
	}
	return post, nil
}

// Update rewrites the content of actor's post. A new image replaces the old
// one; RemoveImage drops it without a replacement.
func (s *PostSvc) Update(ctx context.Context, actor auth.Principal, id int, in PostInput) (models.Post, error) {
	ctx, span := telemetry.StartSpan(ctx, "PostService.Update")
	defer span.End()

	current, err := s.Get(ctx, actor, id)
	if err != nil {
		return models.Post{}, err
	}
	if isBlank(in.Content) {
		return models.Post{}, apperrors.NewValidationError("content is required")
	}

	imagePath := current.ImagePath
	if in.RemoveImage {
		imagePath = nil
	}
	if in.Image != nil {
		if imagePath, err = s.saveImage(in.Image); err != nil {
			return models.Post{}, err
		}
	}

	post, err := s.posts.Update(ctx, id, in.Content, imagePath)
	if err != nil {
		if in.Image != nil {
			s.removeImage(imagePath)
		}
		if errors.Is(err, repositories.ErrPostNotFound) {
			return models.Post{}, apperrors.NewNotFoundError("post not found")
		}
		return models.Post{}, fmt.Errorf("update post: %w", err)
	}

	if current.ImagePath != nil && (post.ImagePath == nil || *post.ImagePath != *current.ImagePath) {
		s.removeImage(current.ImagePath)
	}

	s.audit.Emit(ctx, telemetry.EventPostUpdated, actor.ID, map[string]any{"post_id": post.ID})
	return post, nil
}

// Delete removes actor's post and then its image file.
func (s *PostSvc) Delete(ctx context.Context, actor auth.Principal, id int) error {
	post, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}

	err = s.posts.Delete(ctx, id)
	if errors.Is(err, repositories.ErrPostNotFound) {
		return apperrors.NewNotFoundError("post not found")
	}
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	s.removeImage(post.ImagePath)
	s.audit.Emit(ctx, telemetry.EventPostDeleted, actor.ID, map[string]any{"post_id": id})
	return nil
}

func (s *PostSvc) saveImage(fh *multipart.FileHeader) (*string, error) {
	if fh == nil {
		return nil, nil
	}
	if err := checkImage(fh); err != nil {
		return nil, err
	}
	rel, err := s.storage.Save(fh, postImageDir)
	if err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}
	return &rel, nil
}

func (s *PostSvc) removeImage(rel *string) {
	if rel == nil {
		return
	}
	if err := s.storage.Delete(*rel); err != nil {
		logger.Warn().Err(err).Str("path", *rel).Msg("failed to remove post image")
	}
}

// checkImage sniffs the upload content and rejects anything that is not one
// of postImageTypes, or whose file extension does not match the content.
func checkImage(fh *multipart.FileHeader) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return fmt.Errorf("detect image type: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	for _, allowed := range postImageTypes[mtype.String()] {
		if ext == allowed {
			return nil
		}
	}
	logger.Warn().Str("filename", fh.Filename).Str("detected", mtype.String()).Msg("rejected post image upload")
	return apperrors.NewValidationError("image must be an image file")
}
