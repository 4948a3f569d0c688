package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/board"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/usecase/record"
	analysisRPC "github.com/sadok-lajmi/TenukiGo-2025/microservices/proto"
)

const (
	defaultRules = "japanese"
	defaultKomi  = 6.5
)

type KatagoStore interface {
	Analyze(ctx context.Context, query domain.KatagoQuery) ([]domain.KatagoResponse, error)
}

// AnalysisUseCase serves AnalysisService by querying the engine for every
// position of the submitted moves.
type AnalysisUseCase struct {
	store     KatagoStore
	log       *zap.SugaredLogger
	maxVisits int
}

func NewAnalysisUseCase(store KatagoStore, log *zap.SugaredLogger, maxVisits int) *AnalysisUseCase {
	return &AnalysisUseCase{
		store:     store,
		log:       log,
		maxVisits: maxVisits,
	}
}

func (a *AnalysisUseCase) Analyze(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req analysisRPC.AnalyzeRequest
	if err := analysisRPC.FromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}

	query, err := a.buildQuery(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	responses, err := a.store.Analyze(ctx, query)
	if err != nil {
		a.log.Errorf("engine failed on %s: %v", req.RequestID, err)
		return nil, status.Error(codes.Unavailable, err.Error())
	}

	evaluations, err := BuildEvaluations(req.Moves, responses, req.Region)
	if err != nil {
		a.log.Errorf("incomplete engine answer for %s: %v", req.RequestID, err)
		return nil, status.Error(codes.Internal, err.Error())
	}

	return analysisRPC.ToStruct(analysisRPC.AnalyzeResponse{
		RequestID:   req.RequestID,
		Evaluations: evaluations,
	})
}

func (a *AnalysisUseCase) buildQuery(req analysisRPC.AnalyzeRequest) (domain.KatagoQuery, error) {
	query := domain.KatagoQuery{
		ID:         req.RequestID,
		Moves:      make([][2]string, 0, len(req.Moves)),
		Rules:      req.Rules,
		Komi:       req.Komi,
		BoardXSize: board.Size,
		BoardYSize: board.Size,
		MaxVisits:  a.maxVisits,
	}
	if query.Rules == "" {
		query.Rules = defaultRules
	}
	if query.Komi == 0 {
		query.Komi = defaultKomi
	}

	for i, m := range req.Moves {
		color, ok := board.ParseColor(m.Color)
		if !ok || color == board.Empty {
			return domain.KatagoQuery{}, fmt.Errorf("move %d: unknown color %q", i+1, m.Color)
		}
		if _, _, err := record.FromGTP(m.Coordinates); err != nil {
			return domain.KatagoQuery{}, fmt.Errorf("move %d: %w", i+1, err)
		}
		query.Moves = append(query.Moves, [2]string{color.String(), m.Coordinates})
	}

	query.AnalyzeTurns = make([]int, len(req.Moves)+1)
	for i := range query.AnalyzeTurns {
		query.AnalyzeTurns[i] = i
	}
	return query, nil
}

// BuildEvaluations turns per-turn engine answers into one evaluation per
// position. Suggested moves outside region are skipped. A played move is
// graded by the win rate its player lost, and the engine's own first choice
// is always best.
func BuildEvaluations(moves []analysisRPC.Move, responses []domain.KatagoResponse, region *domain.Region) ([]domain.Evaluation, error) {
	byTurn := make(map[int]domain.KatagoResponse, len(responses))
	for _, r := range responses {
		byTurn[r.TurnNumber] = r
	}

	evaluations := make([]domain.Evaluation, len(moves)+1)
	for turn := range evaluations {
		r, ok := byTurn[turn]
		if !ok {
			return nil, fmt.Errorf("no answer for turn %d", turn)
		}
		infos := ordered(r.MoveInfos)

		evaluations[turn] = domain.Evaluation{
			WinRate:        r.RootInfo.Winrate,
			ScoreLead:      r.RootInfo.ScoreLead,
			Classification: domain.Best,
			BestMove:       bestMove(infos, region),
		}
		if turn == 0 {
			continue
		}

		played := moves[turn-1]
		previous := byTurn[turn-1]
		prevInfos := ordered(previous.MoveInfos)
		if len(prevInfos) > 0 && strings.EqualFold(prevInfos[0].Move, played.Coordinates) {
			continue
		}

		drop := previous.RootInfo.Winrate - r.RootInfo.Winrate
		if color, _ := board.ParseColor(played.Color); color == board.White {
			drop = -drop
		}
		evaluations[turn].Classification = domain.Classify(drop)
	}
	return evaluations, nil
}

func ordered(infos []domain.MoveInfo) []domain.MoveInfo {
	out := append([]domain.MoveInfo(nil), infos...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func bestMove(infos []domain.MoveInfo, region *domain.Region) *board.Point {
	for _, info := range infos {
		p, pass, err := record.FromGTP(info.Move)
		if err != nil || pass {
			continue
		}
		if region != nil && !region.Contains(p) {
			continue
		}
		return &p
	}
	return nil
}
