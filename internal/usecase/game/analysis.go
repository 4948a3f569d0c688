package game

import (
	"context"
	"fmt"
	"sync"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/game"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/errors"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/usecase/record"
)

// Analyzer evaluates every position of a move sequence: the result holds
// len(moves)+1 evaluations, the first one for the empty board. A region
// restricts suggested moves to that rectangle.
type Analyzer interface {
	Analyze(ctx context.Context, moves []game.Move, region *domain.Region) ([]domain.Evaluation, error)
}

// Line is the part of a timeline analysis needs.
type Line interface {
	Moves() []game.Move
	Cursor() int
}

type frozenLine struct {
	moves  []game.Move
	cursor int
}

func (l frozenLine) Moves() []game.Move { return l.moves }
func (l frozenLine) Cursor() int        { return l.cursor }

const maxCachedAnalyses = 64

type AnalysisUseCase struct {
	analyzer Analyzer

	mu    sync.Mutex
	cache map[string][]domain.Evaluation
}

// NewAnalysisUseCase wraps analyzer, which may be nil when no engine is configured.
func NewAnalysisUseCase(analyzer Analyzer) *AnalysisUseCase {
	return &AnalysisUseCase{
		analyzer: analyzer,
		cache:    make(map[string][]domain.Evaluation),
	}
}

// Evaluations returns the analysis of every position of line.
func (a *AnalysisUseCase) Evaluations(ctx context.Context, line Line, region *domain.Region) ([]domain.Evaluation, error) {
	if a.analyzer == nil {
		return nil, errors.ErrNoAnalysis
	}
	if region != nil {
		clamped, ok := region.Clamp()
		if !ok {
			return nil, errors.ErrInvalidRegion
		}
		region = &clamped
	}

	moves := line.Moves()
	key := cacheKey(moves, region)
	a.mu.Lock()
	cached, ok := a.cache[key]
	a.mu.Unlock()
	if ok {
		return cached, nil
	}

	evaluations, err := a.analyzer.Analyze(ctx, moves, region)
	if err != nil {
		return nil, fmt.Errorf("analyze %d moves: %w", len(moves), err)
	}

	a.mu.Lock()
	if len(a.cache) >= maxCachedAnalyses {
		a.cache = make(map[string][]domain.Evaluation)
	}
	a.cache[key] = evaluations
	a.mu.Unlock()
	return evaluations, nil
}

// EvaluationAt returns the evaluation of the position at the line's cursor.
func (a *AnalysisUseCase) EvaluationAt(ctx context.Context, line Line, region *domain.Region) (domain.Evaluation, error) {
	evaluations, err := a.Evaluations(ctx, line, region)
	if err != nil {
		return domain.Evaluation{}, err
	}
	cursor := line.Cursor()
	if cursor < 0 || cursor >= len(evaluations) {
		return domain.Evaluation{}, errors.ErrNoAnalysis
	}
	return evaluations[cursor], nil
}

func cacheKey(moves []game.Move, region *domain.Region) string {
	key := record.Encode(moves, record.Header{})
	if region != nil {
		key += region.String()
	}
	return key
}

// Analysis evaluates the position at a viewer's cursor.
func (v *ViewerUseCase) Analysis(ctx context.Context, a *AnalysisUseCase, id string, region *domain.Region) (domain.Evaluation, error) {
	line, err := v.line(id)
	if err != nil {
		return domain.Evaluation{}, err
	}
	return a.EvaluationAt(ctx, line, region)
}

// AnalysisGraph evaluates every position of a viewer's moves.
func (v *ViewerUseCase) AnalysisGraph(ctx context.Context, a *AnalysisUseCase, id string) ([]domain.Evaluation, error) {
	line, err := v.line(id)
	if err != nil {
		return nil, err
	}
	return a.Evaluations(ctx, line, nil)
}
