package viewer

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/board"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/game"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/errors"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/httpresponse"
	gameuc "github.com/sadok-lajmi/TenukiGo-2025/internal/usecase/game"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/utils"
)

const sgfContentType = "application/x-go-sgf"

type ViewerHandler struct {
	log        *zap.SugaredLogger
	viewerUC   *gameuc.ViewerUseCase
	analysisUC *gameuc.AnalysisUseCase
}

func NewViewerHandler(log *zap.SugaredLogger, viewerUC *gameuc.ViewerUseCase, analysisUC *gameuc.AnalysisUseCase) *ViewerHandler {
	return &ViewerHandler{
		log:        log,
		viewerUC:   viewerUC,
		analysisUC: analysisUC,
	}
}

func (h *ViewerHandler) Router(r chi.Router) {
	r.Route("/viewers", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.HandleSnapshot)
			r.Delete("/", h.HandleDelete)
			r.Get("/board", h.HandleBoardAt)
			r.Get("/moves", h.HandleMoves)
			r.Post("/next", h.navigate(h.viewerUC.Next))
			r.Post("/prev", h.navigate(h.viewerUC.Prev))
			r.Post("/start", h.navigate(h.viewerUC.ToStart))
			r.Post("/end", h.navigate(h.viewerUC.ToEnd))
			r.Post("/seek", h.HandleSeek)
			r.Post("/play", h.HandlePlay)
			r.Post("/pass", h.navigate(h.viewerUC.Pass))
			r.Put("/record", h.HandleLoadRecord)
			r.Get("/export", h.HandleExport)
			r.Get("/diagram.pdf", h.HandleDiagram)
			r.Get("/analysis", h.HandleAnalysis)
			r.Get("/analysis/graph", h.HandleAnalysisGraph)
			r.Get("/ws", h.HandleSocket)
		})
	})
}

// statusOf maps use case errors onto HTTP statuses.
func statusOf(err error) int {
	switch {
	case stderrors.Is(err, errors.ErrViewerNotFound), stderrors.Is(err, errors.ErrRecordNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, errors.ErrOccupied):
		return http.StatusConflict
	case stderrors.Is(err, errors.ErrSuicide), stderrors.Is(err, errors.ErrKo):
		return http.StatusUnprocessableEntity
	case stderrors.Is(err, errors.ErrOutOfRange), stderrors.Is(err, errors.ErrInvalidRegion),
		stderrors.Is(err, errors.ErrMissingCoordinate):
		return http.StatusBadRequest
	case stderrors.Is(err, errors.ErrNoAnalysis):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (h *ViewerHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		h.log.Errorw("request failed", "path", r.URL.Path, "error", err)
		httpresponse.WriteError(w, status, errors.ErrInternal)
		return
	}
	h.log.Infow("request rejected", "path", r.URL.Path, "status", status, "error", err)
	httpresponse.WriteError(w, status, err)
}

func intQuery(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("query parameter %s must be an integer, got %q", key, raw)
	}
	return n, nil
}

func (h *ViewerHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req game.CreateViewerRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteError(w, http.StatusBadRequest, err)
		return
	}

	resp, err := h.viewerUC.CreateViewer(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.log.Infof("viewer %s created with %d moves", resp.ViewerID, resp.Snapshot.Total)
	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, resp)
}

func (h *ViewerHandler) writeSnapshot(w http.ResponseWriter, r *http.Request, snap game.Snapshot, err error) {
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, snap)
}

func (h *ViewerHandler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.viewerUC.Snapshot(chi.URLParam(r, "id"))
	h.writeSnapshot(w, r, snap, err)
}

func (h *ViewerHandler) navigate(op func(id string) (game.Snapshot, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := op(chi.URLParam(r, "id"))
		h.writeSnapshot(w, r, snap, err)
	}
}

func (h *ViewerHandler) HandleSeek(w http.ResponseWriter, r *http.Request) {
	n, err := intQuery(r, "cursor")
	if err != nil {
		httpresponse.WriteError(w, http.StatusBadRequest, err)
		return
	}
	snap, err := h.viewerUC.Seek(chi.URLParam(r, "id"), n)
	h.writeSnapshot(w, r, snap, err)
}

func (h *ViewerHandler) HandlePlay(w http.ResponseWriter, r *http.Request) {
	var req game.PlayRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteError(w, http.StatusBadRequest, err)
		return
	}
	x, y, err := req.Coordinates()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	snap, err := h.viewerUC.Play(chi.URLParam(r, "id"), x, y)
	h.writeSnapshot(w, r, snap, err)
}

func (h *ViewerHandler) HandleLoadRecord(w http.ResponseWriter, r *http.Request) {
	var req game.LoadRecordRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteError(w, http.StatusBadRequest, err)
		return
	}
	snap, err := h.viewerUC.LoadRecord(chi.URLParam(r, "id"), req.SGF)
	h.writeSnapshot(w, r, snap, err)
}

type boardResponse struct {
	Cursor int         `json:"cursor"`
	Board  board.Board `json:"board"`
}

func (h *ViewerHandler) HandleBoardAt(w http.ResponseWriter, r *http.Request) {
	n, err := intQuery(r, "cursor")
	if err != nil {
		httpresponse.WriteError(w, http.StatusBadRequest, err)
		return
	}
	b, cursor, err := h.viewerUC.BoardAt(chi.URLParam(r, "id"), n)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, boardResponse{Cursor: cursor, Board: b})
}

func (h *ViewerHandler) HandleMoves(w http.ResponseWriter, r *http.Request) {
	moves, err := h.viewerUC.Moves(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, game.Moves{Moves: moves})
}

func (h *ViewerHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	text, err := h.viewerUC.Export(id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", sgfContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+".sgf"))
	_, _ = io.WriteString(w, text)
}

func (h *ViewerHandler) HandleDiagram(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var buf bytes.Buffer
	if err := h.viewerUC.Diagram(id, &buf); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", id+".pdf"))
	_, _ = w.Write(buf.Bytes())
}

// regionQuery reads x1,y1,x2,y2. No parameters means no region.
func regionQuery(r *http.Request) (*domain.Region, error) {
	q := r.URL.Query()
	keys := []string{"x1", "y1", "x2", "y2"}
	present := 0
	for _, k := range keys {
		if q.Has(k) {
			present++
		}
	}
	if present == 0 {
		return nil, nil
	}
	if present != len(keys) {
		return nil, errors.ErrInvalidRegion
	}

	var values [4]int
	for i, k := range keys {
		n, err := strconv.Atoi(q.Get(k))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", errors.ErrInvalidRegion, k)
		}
		values[i] = n
	}
	region := domain.NewRegion(board.Point{X: values[0], Y: values[1]}, board.Point{X: values[2], Y: values[3]})
	return &region, nil
}

func (h *ViewerHandler) HandleAnalysis(w http.ResponseWriter, r *http.Request) {
	region, err := regionQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	eval, err := h.viewerUC.Analysis(r.Context(), h.analysisUC, chi.URLParam(r, "id"), region)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, eval)
}

func (h *ViewerHandler) HandleAnalysisGraph(w http.ResponseWriter, r *http.Request) {
	evals, err := h.viewerUC.AnalysisGraph(r.Context(), h.analysisUC, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, evals)
}

func (h *ViewerHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.viewerUC.Delete(chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, nil)
}
