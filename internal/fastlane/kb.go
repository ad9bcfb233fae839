package fastlane

import (
	"context"

	"finance-assistant/config"
	"finance-assistant/internal/knowledge"
	"finance-assistant/internal/model"
)

// KBStrategy answers general finance questions from the curated knowledge
// base by lexical similarity.
type KBStrategy struct {
	store *knowledge.Store
	cfg   config.KnowledgeConfig
}

func NewKBStrategy(store *knowledge.Store, cfg config.KnowledgeConfig) *KBStrategy {
	return &KBStrategy{store: store, cfg: cfg}
}

func (s *KBStrategy) Name() string { return "knowledge-base" }

func (s *KBStrategy) Try(_ context.Context, req *Request) (*model.ChatResponse, error) {
	results := s.store.Search(req.Message, s.cfg.TopK, s.cfg.MinSimilarity)
	if len(results) == 0 {
		return nil, nil
	}

	best := results[0]
	key := "kb:" + best.Entry.ID
	if req.Session != nil {
		if req.Session.RecentlyAnswered(key, req.Now) && frustrated(req.Message) {
			return nil, nil
		}
		req.Session.MarkAnswered(key, req.Now)
	}

	return &model.ChatResponse{
		Message:    best.Entry.Answer,
		Sources:    []model.Source{{Kind: model.SourceDB, Note: "knowledge base"}},
		Cost:       model.Cost{Model: model.TierMini, EstTokens: 0},
		Confidence: best.Score,
	}, nil
}
