package handlers

import (
	"net/http"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"goblog/pkg/helpers"
	"goblog/pkg/response"
)

// UploadHandler streams admin image uploads into Google Cloud Storage and
// returns the public URL for embedding in posts.
type UploadHandler struct {
	GCS    *storage.Client
	Bucket string
	Logger *logrus.Logger
}

func NewUploadHandler(gcs *storage.Client, bucket string, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{GCS: gcs, Bucket: bucket, Logger: logger}
}

var allowedImageExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

func (h *UploadHandler) Upload(c *gin.Context) {
	if h.GCS == nil || h.Bucket == "" {
		response.Error[any](c, http.StatusServiceUnavailable, "uploads not configured", nil)
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing file", nil)
		return
	}
	ext := strings.ToLower(path.Ext(fh.Filename))
	contentType, ok := allowedImageExt[ext]
	if !ok {
		response.Error[any](c, http.StatusBadRequest, "unsupported file type", map[string]string{"file": "only jpg, png, gif, webp allowed"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to read upload", nil)
		return
	}
	defer func() { _ = f.Close() }()

	objectPath := "uploads/" + helpers.NextID() + ext
	url, err := helpers.UploadObject(c.Request.Context(), h.GCS, h.Bucket, objectPath, contentType, f)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("object", objectPath).Error("gcs upload failed")
		}
		response.Error[any](c, http.StatusBadGateway, "upload failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"url": url}, "uploaded", nil)
}
