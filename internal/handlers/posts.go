package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"social-service/internal/filestorage"
	"social-service/internal/middleware"
	"social-service/internal/models"
	"social-service/internal/services"
)

const postListPath = "/posts"

type postResponse struct {
	models.Post
	ImageURL string `json:"image_url,omitempty"`
}

type PostHandler struct {
	posts   services.PostService
	storage filestorage.Storage
}

func NewPostHandler(posts services.PostService, storage filestorage.Storage) *PostHandler {
	return &PostHandler{posts: posts, storage: storage}
}

func (h *PostHandler) view(p models.Post) postResponse {
	resp := postResponse{Post: p}
	if p.ImagePath != nil && h.storage != nil {
		resp.ImageURL = h.storage.URL(*p.ImagePath)
	}
	return resp
}

func (h *PostHandler) views(posts []models.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, h.view(p))
	}
	return out
}

// postInput reads the multipart post form. A missing file is not an error.
func postInput(c *gin.Context) (services.PostInput, error) {
	in := services.PostInput{Content: c.PostForm("content")}
	switch c.PostForm("remove_image") {
	case "1", "true", "on":
		in.RemoveImage = true
	}

	fh, err := c.FormFile("image")
	switch {
	case err == nil:
		in.Image = fh
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		return in, err
	}
	return in, nil
}

func (h *PostHandler) NewForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": gin.H{"content": "", "image": nil}})
}

func (h *PostHandler) Create(c *gin.Context) {
	in, err := postInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid upload"})
		return
	}

	post, err := h.posts.Create(c.Request.Context(), middleware.PrincipalFrom(c), in)
	if err != nil {
		respondError(c, err, postListPath)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"post": h.view(post)})
}

// List returns every post, newest first.
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.posts.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "/")
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": h.views(posts)})
}

func (h *PostHandler) ListMine(c *gin.Context) {
	posts, err := h.posts.ListOwn(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		respondError(c, err, "/")
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": h.views(posts)})
}

// EditForm returns the current values of the caller's post.
func (h *PostHandler) EditForm(c *gin.Context) {
	id, ok := intParam(c, "id", "post id")
	if !ok {
		return
	}
	post, err := h.posts.Get(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		respondError(c, err, postListPath)
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": gin.H{"content": post.Content}, "post": h.view(post)})
}

func (h *PostHandler) Update(c *gin.Context) {
	id, ok := intParam(c, "id", "post id")
	if !ok {
		return
	}
	in, err := postInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid upload"})
		return
	}

	post, err := h.posts.Update(c.Request.Context(), middleware.PrincipalFrom(c), id, in)
	if err != nil {
		respondError(c, err, postListPath)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": h.view(post)})
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := intParam(c, "id", "post id")
	if !ok {
		return
	}
	if err := h.posts.Delete(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		respondError(c, err, postListPath)
		return
	}
	c.Status(http.StatusNoContent)
}
