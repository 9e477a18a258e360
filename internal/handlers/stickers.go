package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/AnshRaj112/diary-backend/internal/services"
	"go.uber.org/zap"
)

// MaxStickerSize caps an uploaded sticker image at 2 MiB.
const MaxStickerSize = 2 << 20

var stickerTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadSticker serves POST /api/stickers/upload with a multipart "file" field and returns
// the URL a sticker can reference.
func (h *Handler) UploadSticker(w http.ResponseWriter, r *http.Request) {
	if h.stickers == nil {
		writeError(w, http.StatusServiceUnavailable, "Sticker uploads are not available")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxStickerSize+64<<10)
	if err := r.ParseMultipartForm(MaxStickerSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "File too large (max 2MB)")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()
	if header.Size > MaxStickerSize {
		writeError(w, http.StatusRequestEntityTooLarge, "File too large (max 2MB)")
		return
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		writeError(w, http.StatusBadRequest, "Failed to read file")
		return
	}
	head = head[:n]
	if !stickerTypes[http.DetectContentType(head)] {
		writeError(w, http.StatusUnsupportedMediaType, "Only PNG, JPEG, GIF and WebP images are allowed")
		return
	}

	url, err := h.stickers.Upload(r.Context(), io.MultiReader(bytes.NewReader(head), file))
	if errors.Is(err, services.ErrUploadsDisabled) {
		writeError(w, http.StatusServiceUnavailable, "Sticker uploads are not available")
		return
	}
	if err != nil {
		h.log.Error("sticker upload failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "Failed to upload file")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "File uploaded successfully", "url": url})
}
