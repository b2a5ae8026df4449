package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/mukujayCS/Apartment-Hunter/internal/model"
	"github.com/mukujayCS/Apartment-Hunter/internal/service"
)

// maxMultipartMemory bounds the in-memory portion of multipart parsing
const maxMultipartMemory = 32 << 20

var allowedImageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// Analyzer runs the full listing analysis pipeline
type Analyzer interface {
	Analyze(ctx context.Context, req service.AnalyzeRequest) (*model.AnalysisResult, error)
}

// AnalyzeHandler handles listing analysis endpoints
type AnalyzeHandler struct {
	analyzer  Analyzer
	maxImages int
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(analyzer Analyzer, maxImages int) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer, maxImages: maxImages}
}

// Analyze handles POST /v1/analyze
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	listingText := strings.TrimSpace(r.FormValue("listing_text"))
	if listingText == "" {
		writeError(w, http.StatusBadRequest, "missing required field: listing_text")
		return
	}

	req := service.AnalyzeRequest{
		ListingText: listingText,
		Address:     strings.TrimSpace(r.FormValue("address")),
		University:  strings.TrimSpace(r.FormValue("university")),
	}

	if r.MultipartForm != nil {
		files := r.MultipartForm.File["images"]
		if len(files) > h.maxImages {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("too many images: maximum is %d", h.maxImages))
			return
		}
		for _, fh := range files {
			ext := strings.ToLower(filepath.Ext(fh.Filename))
			mimeType, ok := allowedImageTypes[ext]
			if !ok {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported image type: %s", fh.Filename))
				return
			}

			f, err := fh.Open()
			if err != nil {
				writeError(w, http.StatusBadRequest, "failed to read uploaded image")
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				writeError(w, http.StatusBadRequest, "failed to read uploaded image")
				return
			}

			req.Images = append(req.Images, model.ImageAttachment{
				MIMEType: mimeType,
				Data:     data,
			})
		}
	}

	result, err := h.analyzer.Analyze(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadGateway, "analysis failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
