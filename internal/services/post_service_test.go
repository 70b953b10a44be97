package services_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"social-service/internal/apperrors"
	"social-service/internal/filestorage"
	"social-service/internal/mocks"
	"social-service/internal/models"
	"social-service/internal/repositories"
	"social-service/internal/services"
	"social-service/internal/telemetry"
)

func strPtr(s string) *string { return &s }

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 17)...)

// upload builds a file header the way gin's c.FormFile would return it.
func upload(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/post/new", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func TestCreatePostWithImage(t *testing.T) {
	posts := new(mocks.PostRepositoryMock)
	storage := new(mocks.StorageMock)
	audit := new(mocks.AuditEmitterMock)
	svc := services.NewPostService(posts, storage, audit)

	fh := upload(t, "cat.png", pngBytes)
	storage.On("Save", fh, "posts").Return("posts/abc.png", nil).Once()
	posts.On("Create", mock.Anything, 1, "hello", strPtr("posts/abc.png")).Return(models.Post{ID: 4, AuthorID: 1, Content: "hello", ImagePath: strPtr("posts/abc.png")}, nil).Once()
	audit.On("Emit", mock.Anything, telemetry.EventPostCreated, 1, mock.Anything).Once()

	post, err := svc.Create(context.Background(), alice, services.PostInput{Content: "hello", Image: fh})

	require.NoError(t, err)
	assert.Equal(t, 4, post.ID)
	posts.AssertExpectations(t)
	storage.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestCreatePostRemovesImageWhenInsertFails(t *testing.T) {
	posts := new(mocks.PostRepositoryMock)
	storage := new(mocks.StorageMock)
	svc := services.NewPostService(posts, storage, nil)

	fh := upload(t, "cat.png", pngBytes)
	storage.On("Save", fh, "posts").Return("posts/abc.png", nil).Once()
	storage.On("Delete", "posts/abc.png").Return(nil).Once()
	posts.On("Create", mock.Anything, 1, "hello", mock.Anything).Return(nil, assert.AnError).Once()

	_, err := svc.Create(context.Background(), alice, services.PostInput{Content: "hello", Image: fh})

	assert.ErrorIs(t, err, assert.AnError)
	storage.AssertExpectations(t)
}

func TestCreatePostRequiresContent(t *testing.T) {
	posts := new(mocks.PostRepositoryMock)
	svc := services.NewPostService(posts, new(mocks.StorageMock), nil)

	_, err := svc.Create(context.Background(), alice, services.PostInput{Content: " \n"})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	posts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteOthersPostIsForbidden(t *testing.T) {
	posts := new(mocks.PostRepositoryMock)
	svc := services.NewPostService(posts, new(mocks.StorageMock), nil)

	posts.On("Get", mock.Anything, 7).Return(models.Post{ID: 7, AuthorID: alice.ID, Content: "mine"}, nil)

	err := svc.Delete(context.Background(), bob, 7)

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	posts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeletePostRemovesImage(t *testing.T) {
	posts := new(mocks.PostRepositoryMock)
	storage := new(mocks.StorageMock)
	svc := services.NewPostService(posts, storage, nil)

	posts.On("Get", mock.Anything, 7).Return(models.Post{ID: 7, AuthorID: alice.ID, ImagePath: strPtr("posts/old.png")}, nil).Once()
	posts.On("Delete", mock.Anything, 7).Return(nil).Once()
	storage.On("Delete", "posts/old.png").Return(nil).Once()

	require.NoError(t, svc.Delete(context.Background(), alice, 7))
	posts.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestUpdatePostReplacesImage(t *testing.T) {
	posts := new(mocks.PostRepositoryMock)
	storage := new(mocks.StorageMock)
	svc := services.NewPostService(posts, storage, nil)

	fh := upload(t, "new.png", pngBytes)
	posts.On("Get", mock.Anything, 7).Return(models.Post{ID: 7, AuthorID: alice.ID, ImagePath: strPtr("posts/old.png")}, nil).Once()
	storage.On("Save", fh, "posts").Return("posts/new.png", nil).Once()
	posts.On("Update", mock.Anything, 7, "edited", strPtr("posts/new.png")).Return(models.Post{ID: 7, AuthorID: alice.ID, Content: "edited", ImagePath: strPtr("posts/new.png")}, nil).Once()
	storage.On("Delete", "posts/old.png").Return(nil).Once()

	post, err := svc.Update(context.Background(), alice, 7, services.PostInput{Content: "edited", Image: fh})

	require.NoError(t, err)
	assert.Equal(t, "posts/new.png", *post.ImagePath)
	posts.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestUpdatePostKeepsImageWithoutUpload(t *testing.T) {
	posts := new(mocks.PostRepositoryMock)
	storage := new(mocks.StorageMock)
	svc := services.NewPostService(posts, storage, nil)

	posts.On("Get", mock.Anything, 7).Return(models.Post{ID: 7, AuthorID: alice.ID, ImagePath: strPtr("posts/old.png")}, nil).Once()
	posts.On("Update", mock.Anything, 7, "edited", strPtr("posts/old.png")).Return(models.Post{ID: 7, AuthorID: alice.ID, ImagePath: strPtr("posts/old.png")}, nil).Once()

	_, err := svc.Update(context.Background(), alice, 7, services.PostInput{Content: "edited"})

	require.NoError(t, err)
	storage.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestGetMissingPost(t *testing.T) {
	posts := new(mocks.PostRepositoryMock)
	svc := services.NewPostService(posts, new(mocks.StorageMock), nil)

	posts.On("Get", mock.Anything, 8).Return(nil, repositories.ErrPostNotFound).Once()

	_, err := svc.Get(context.Background(), alice, 8)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestCreatePostRejectsNonImageUpload(t *testing.T) {
	posts := new(mocks.PostRepositoryMock)
	storage := new(mocks.StorageMock)
	svc := services.NewPostService(posts, storage, nil)

	fh := upload(t, "evil.html", []byte("<html><script>alert(document.cookie)</script></html>"))

	_, err := svc.Create(context.Background(), alice, services.PostInput{Content: "hello", Image: fh})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "image must be an image file", apperrors.Message(err, ""))
	storage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	posts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePostRejectsImageWithForeignExtension(t *testing.T) {
	posts := new(mocks.PostRepositoryMock)
	storage := new(mocks.StorageMock)
	svc := services.NewPostService(posts, storage, nil)

	_, err := svc.Create(context.Background(), alice, services.PostInput{Content: "hello", Image: upload(t, "cat.html", pngBytes)})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	storage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdatePostRejectsNonImageAndKeepsOldImage(t *testing.T) {
	posts := new(mocks.PostRepositoryMock)
	storage := new(mocks.StorageMock)
	svc := services.NewPostService(posts, storage, nil)

	posts.On("Get", mock.Anything, 7).Return(models.Post{ID: 7, AuthorID: alice.ID, ImagePath: strPtr("posts/old.png")}, nil).Once()

	_, err := svc.Update(context.Background(), alice, 7, services.PostInput{Content: "edited", Image: upload(t, "notes.txt", []byte("plain text"))})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	posts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	storage.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestCreatePostStoresNothingForScriptUpload(t *testing.T) {
	root := t.TempDir()
	storage, err := filestorage.NewLocalStorage(root, "/uploads")
	require.NoError(t, err)
	svc := services.NewPostService(new(mocks.PostRepositoryMock), storage, nil)

	_, err = svc.Create(context.Background(), alice, services.PostInput{
		Content: "hello",
		Image:   upload(t, "evil.html", []byte("<script>alert(document.cookie)</script>")),
	})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	entries, _ := os.ReadDir(filepath.Join(root, "posts"))
	assert.Empty(t, entries)
}
