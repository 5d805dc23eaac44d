package upload

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/blogcraft/blogcraft/internal/errors"
	"github.com/blogcraft/blogcraft/internal/middleware"
	"github.com/blogcraft/blogcraft/internal/storage"
	"github.com/blogcraft/blogcraft/internal/util"
)

// maxUploadSize caps post images at 5 MiB.
const maxUploadSize = 5 << 20

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Handler accepts post image uploads.
type Handler struct {
	store storage.Storage
}

// NewHandler creates the upload handler.
func NewHandler(store storage.Storage) *Handler {
	return &Handler{store: store}
}

// Register mounts the upload route on the router.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/api/uploads", middleware.Auth(), h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		apperrors.HandleError(c, apperrors.Wrap(apperrors.ErrBadRequest, "missing image file", err))
		return
	}
	if header.Size > maxUploadSize {
		apperrors.HandleError(c, apperrors.New(apperrors.ErrBadRequest, "image exceeds 5MB limit"))
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !allowedTypes[contentType] {
		apperrors.HandleError(c, apperrors.New(apperrors.ErrBadRequest, "unsupported image type"))
		return
	}

	file, err := header.Open()
	if err != nil {
		apperrors.HandleError(c, apperrors.Wrap(apperrors.ErrInternal, "open upload", err))
		return
	}
	defer file.Close()

	name := util.GenerateUniqueFilename(header.Filename)
	url, err := h.store.Store(c.Request.Context(), name, contentType, file)
	if err != nil {
		apperrors.HandleError(c, apperrors.Wrap(apperrors.ErrInternal, "store upload", err))
		return
	}

	apperrors.HandleSuccess(c, http.StatusCreated, gin.H{"url": url}, "uploaded")
}
