package service

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/bnema/mediaconv/internal/domain"
	"github.com/bnema/mediaconv/internal/infrastructure/logger"
	"github.com/bnema/mediaconv/internal/port"
)

// StrategyInfo is the public description of a registered strategy.
type StrategyInfo struct {
	Name         string   `json:"name"`
	SourcePrefix string   `json:"source_prefix,omitempty"`
	Targets      []string `json:"targets,omitempty"`
	CatchAll     bool     `json:"catch_all"`
}

// ConversionService is the entry point used by the transports. It runs the
// router and keeps a history record of every call.
type ConversionService struct {
	router  *Router
	history port.HistoryStore // optional
	now     func() time.Time
}

func NewConversionService(router *Router, history port.HistoryStore) *ConversionService {
	return &ConversionService{
		router:  router,
		history: history,
		now:     time.Now,
	}
}

func (s *ConversionService) Convert(ctx context.Context, req *domain.ConversionRequest) (*domain.ConvertedArtifact, error) {
	start := s.now()
	record := &domain.ConversionRecord{
		ID:        uuid.New().String(),
		CreatedAt: start.UTC(),
	}
	if req != nil {
		record.SourceMIME = req.EffectiveSourceMIME()
		record.TargetMIME = req.EffectiveTargetMIME()
		record.OriginalName = req.Filename
		record.InputSize = int64(len(req.Data))
		record.InputDigest = digest(req.Data)
	}

	strategy, artifact, err := s.router.convert(ctx, req)
	record.Duration = s.now().Sub(start)
	if strategy != nil {
		record.Strategy = strategy.Name()
	}

	if err != nil {
		record.MarkFailed(err)
		logger.Error.Printf("conversion %s failed: %s -> %s (%s): %s", record.ID,
			logger.SanitizeForLog(record.SourceMIME), logger.SanitizeForLog(record.TargetMIME),
			record.ErrorKind, logger.SanitizeForLog(logger.Tail(err.Error(), 512)))
	} else {
		record.MarkDone(artifact, digest(artifact.Data()))
		logger.Info.Printf("conversion %s done: %s -> %s via %s, %s -> %s in %s", record.ID,
			logger.SanitizeForLog(record.SourceMIME), logger.SanitizeForLog(record.TargetMIME), record.Strategy,
			humanize.Bytes(uint64(record.InputSize)), humanize.Bytes(uint64(record.OutputSize)),
			record.Duration.Round(time.Millisecond))
	}

	s.save(record)
	return artifact, err
}

// save persists the record on a context detached from the request, so a
// client disconnect still leaves a history entry. Failures are only logged.
func (s *ConversionService) save(record *domain.ConversionRecord) {
	if s.history == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.history.Save(ctx, record); err != nil {
		logger.Warn.Printf("failed to record conversion %s: %v", record.ID, err)
	}
}

func (s *ConversionService) Get(ctx context.Context, id string) (*domain.ConversionRecord, error) {
	if s.history == nil {
		return nil, domain.ErrNotFound
	}
	return s.history.Get(ctx, id)
}

func (s *ConversionService) ListRecent(ctx context.Context, limit int) ([]*domain.ConversionRecord, error) {
	if s.history == nil {
		return []*domain.ConversionRecord{}, nil
	}
	return s.history.ListRecent(ctx, limit)
}

func (s *ConversionService) Strategies() []StrategyInfo {
	strategies := s.router.Strategies()
	infos := make([]StrategyInfo, 0, len(strategies))
	for _, st := range strategies {
		caps := st.Capabilities()
		infos = append(infos, StrategyInfo{
			Name:         st.Name(),
			SourcePrefix: caps.SourcePrefix,
			Targets:      caps.TargetMIMEs(),
			CatchAll:     caps.CatchAll,
		})
	}
	return infos
}

func digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}
