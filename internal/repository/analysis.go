package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/domain/game"
	"github.com/sadok-lajmi/TenukiGo-2025/internal/usecase/record"
	analysisRPC "github.com/sadok-lajmi/TenukiGo-2025/microservices/proto"
)

// AnalysisClient asks the analysis service to evaluate move sequences.
type AnalysisClient struct {
	log    *zap.SugaredLogger
	client analysisRPC.AnalysisServiceClient
}

func NewAnalysisClient(log *zap.SugaredLogger, client analysisRPC.AnalysisServiceClient) *AnalysisClient {
	return &AnalysisClient{log: log, client: client}
}

func (a *AnalysisClient) Analyze(ctx context.Context, moves []game.Move, region *domain.Region) ([]domain.Evaluation, error) {
	req, err := ConvertDomainMovesToRPC(moves)
	if err != nil {
		return nil, err
	}
	req.RequestID = uuid.New().String()
	req.Region = region

	in, err := analysisRPC.ToStruct(req)
	if err != nil {
		return nil, err
	}
	out, err := a.client.Analyze(ctx, in)
	if err != nil {
		a.log.Errorf("analysis request %s failed: %v", req.RequestID, err)
		return nil, fmt.Errorf("analysis service: %w", err)
	}

	var resp analysisRPC.AnalyzeResponse
	if err := analysisRPC.FromStruct(out, &resp); err != nil {
		return nil, err
	}
	if len(resp.Evaluations) != len(moves)+1 {
		return nil, fmt.Errorf("analysis service returned %d evaluations for %d moves", len(resp.Evaluations), len(moves))
	}
	return resp.Evaluations, nil
}

func ConvertDomainMovesToRPC(moves []game.Move) (analysisRPC.AnalyzeRequest, error) {
	rpcMoves := make([]analysisRPC.Move, 0, len(moves))
	for i, m := range moves {
		coords, err := record.MoveToGTP(m)
		if err != nil {
			return analysisRPC.AnalyzeRequest{}, fmt.Errorf("move %d: %w", i+1, err)
		}
		rpcMoves = append(rpcMoves, analysisRPC.Move{
			Color:       m.Player.String(),
			Coordinates: coords,
		})
	}
	return analysisRPC.AnalyzeRequest{Moves: rpcMoves}, nil
}
