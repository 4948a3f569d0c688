package archive

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/errors"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/httpresponse"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/usecase/archive"
)

type ArchiveHandler struct {
	log       *zap.SugaredLogger
	archiveUC *archive.ArchiveUseCase
}

func NewArchiveHandler(log *zap.SugaredLogger, archiveUC *archive.ArchiveUseCase) *ArchiveHandler {
	return &ArchiveHandler{
		log:       log,
		archiveUC: archiveUC,
	}
}

func (h *ArchiveHandler) Router(r chi.Router) {
	r.Get("/matches", h.HandleList)
}

// HandleList serves GET /matches?page=N, the first page when page is absent.
func (h *ArchiveHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	pageNum := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httpresponse.WriteError(w, http.StatusBadRequest, errors.ErrOutOfRange)
			return
		}
		pageNum = n
	}

	page, err := h.archiveUC.Page(r.Context(), pageNum)
	switch {
	case err == nil:
		httpresponse.WriteResponseWithStatus(w, http.StatusOK, page)
	case stderrors.Is(err, errors.ErrOutOfRange):
		httpresponse.WriteError(w, http.StatusBadRequest, err)
	case stderrors.Is(err, errors.ErrNoArchive):
		httpresponse.WriteError(w, http.StatusServiceUnavailable, err)
	default:
		h.log.Errorw("listing matches failed", "page", pageNum, "error", err)
		httpresponse.WriteError(w, http.StatusInternalServerError, errors.ErrInternal)
	}
}
