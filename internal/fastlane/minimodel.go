package fastlane

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"finance-assistant/config"
	"finance-assistant/internal/knowledge"
	"finance-assistant/internal/model"
	"finance-assistant/internal/narration"
	"finance-assistant/pkg/llmprovider"
)

const miniSystemPrompt = `You are a cautious personal finance assistant. Answer the user's question in 2-4 sentences using plain language. Use the provided reference snippets when relevant. Never give specific investment directives, never promise or guarantee returns, and never give legal or medical advice. If the question needs the user's personal data, say what data would be needed.`

type cachedAnswer struct {
	Text      string
	EstTokens int
}

// MiniModelStrategy answers with the cheapest model tier, seeded with
// knowledge-base snippets. Every answer passes the critic before it is
// returned or cached; there is no grounded fact here, so the critic also
// rejects personalized claims. Accepted responses are cached by (locale,
// question, context) with a multi-hour TTL so repeated general questions
// cost nothing.
type MiniModelStrategy struct {
	manager *llmprovider.Manager
	critic  *narration.Critic
	store   *knowledge.Store
	cfg     config.KnowledgeConfig
	cache   *expirable.LRU[string, cachedAnswer]
}

func NewMiniModelStrategy(manager *llmprovider.Manager, critic *narration.Critic, store *knowledge.Store, kcfg config.KnowledgeConfig, ccfg config.CacheConfig) *MiniModelStrategy {
	return &MiniModelStrategy{
		manager: manager,
		critic:  critic,
		store:   store,
		cfg:     kcfg,
		cache:   expirable.NewLRU[string, cachedAnswer](ccfg.AnswerSize, nil, ccfg.AnswerTTL),
	}
}

func (s *MiniModelStrategy) Name() string { return "mini-model" }

func (s *MiniModelStrategy) Try(ctx context.Context, req *Request) (*model.ChatResponse, error) {
	if !req.AllowModel {
		return nil, nil
	}

	snippets := s.snippets(req.Message)
	key := cacheKey(req.Locale, req.Message, snippets)

	if hit, ok := s.cache.Get(key); ok {
		return &model.ChatResponse{
			Message: hit.Text,
			Sources: []model.Source{{Kind: model.SourceCache, Note: "cached answer"}},
			Cost:    model.Cost{Model: model.TierMini, EstTokens: 0},
		}, nil
	}

	prompt := req.Message
	if snippets != "" {
		prompt = fmt.Sprintf("Reference snippets:\n%s\n\nQuestion: %s", snippets, req.Message)
	}

	resp, err := s.manager.Generate(ctx, llmprovider.TierMini, &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  "system",
			Parts: []llmprovider.Part{{Text: miniSystemPrompt}},
		},
		Messages: []llmprovider.Message{
			{Role: "user", Parts: []llmprovider.Part{{Text: prompt}}},
		},
		Temperature: 0.4,
		MaxTokens:   300,
	})
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, nil
	}

	review := s.critic.Review(nil, text)
	if !review.OK {
		return nil, fmt.Errorf("critic rejected mini answer: %s", strings.Join(review.Issues, "; "))
	}

	tokens := 0
	if resp.Usage != nil {
		tokens = resp.Usage.TotalTokens
	}
	s.cache.Add(key, cachedAnswer{Text: review.Text, EstTokens: tokens})

	return &model.ChatResponse{
		Message: review.Text,
		Sources: []model.Source{{Kind: model.SourceGPT, Note: resp.ModelName}},
		Cost:    model.Cost{Model: model.TierMini, EstTokens: tokens},
	}, nil
}

// snippets joins the top KB matches into prompt context.
func (s *MiniModelStrategy) snippets(question string) string {
	results := s.store.Search(question, s.cfg.TopK, s.cfg.MinSimilarity)
	if len(results) == 0 {
		return ""
	}
	lines := make([]string, 0, len(results))
	for _, r := range results {
		lines = append(lines, "- "+r.Entry.Answer)
	}
	return strings.Join(lines, "\n")
}

func cacheKey(locale, question, context string) string {
	sum := sha256.Sum256([]byte(context))
	return locale + "|" + strings.ToLower(strings.TrimSpace(question)) + "|" + hex.EncodeToString(sum[:8])
}
