// Package assistant forwards shopper questions to the chat model and
// attaches catalog suggestions picked by keyword rules.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"glimmr/internal/core/llm"
	"glimmr/internal/domain"
)

type Service struct {
	llm      llm.Completer
	products domain.ProductRepository
	log      *zap.Logger
}

func NewService(c llm.Completer, products domain.ProductRepository, l *zap.Logger) *Service {
	return &Service{llm: c, products: products, log: l.Named("assistant")}
}

type ChatInput struct {
	Message string `json:"message" binding:"required"`
	UserID  string `json:"userId"`
	Context string `json:"context"`
}

type Suggestion struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
}

type ChatReply struct {
	Response          string       `json:"response"`
	SuggestedProducts []Suggestion `json:"suggestedProducts"`
	Context           string       `json:"context"`
}

// NormalizeContext maps anything but "clothing" to jewelry.
func NormalizeContext(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), ContextClothing) {
		return ContextClothing
	}
	return ContextJewelry
}

// Chat is single-turn. The model reply and the suggestions are independent;
// a model failure fails the whole call.
func (s *Service) Chat(ctx context.Context, in ChatInput) (*ChatReply, error) {
	chatCtx := NormalizeContext(in.Context)
	system := jewelryPrompt
	if chatCtx == ContextClothing {
		system = clothingPrompt
	}

	text, err := s.llm.Complete(ctx, llm.Request{
		System:      system,
		User:        in.Message,
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	out := &ChatReply{Response: text, SuggestedProducts: []Suggestion{}, Context: chatCtx}
	q, ok := SuggestionQuery(chatCtx, in.Message)
	if !ok {
		return out, nil
	}
	products, err := s.products.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}
	for i := range products {
		p := &products[i]
		out.SuggestedProducts = append(out.SuggestedProducts, Suggestion{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Image:    p.PrimaryImage(),
			Category: p.Category,
		})
	}
	s.log.Debug("chat answered",
		zap.String("context", chatCtx),
		zap.String("user_id", in.UserID),
		zap.Int("suggestions", len(out.SuggestedProducts)),
	)
	return out, nil
}

// SuggestionQuery decides from the message alone whether to suggest
// products and which catalog query to run.
func SuggestionQuery(chatCtx, message string) (domain.ProductQuery, bool) {
	lower := strings.ToLower(message)
	words := strings.FieldsFunc(lower, func(r rune) bool { return !unicode.IsLetter(r) })

	if chatCtx == ContextClothing {
		for _, w := range words {
			if clothingWords[w] {
				return domain.ProductQuery{
					InStockOnly: true,
					AnyTags:     clothingPairingTags,
					Limit:       suggestionLimit,
				}, true
			}
		}
		return domain.ProductQuery{}, false
	}

	triggered := false
	for _, t := range jewelryTriggers {
		if strings.Contains(lower, t) {
			triggered = true
			break
		}
	}
	if !triggered {
		return domain.ProductQuery{}, false
	}
	q := domain.ProductQuery{
		Category:    "earrings",
		InStockOnly: true,
		Limit:       suggestionLimit,
	}
	seen := map[string]bool{}
	for _, w := range words {
		if jewelryStyles[w] && !seen[w] {
			seen[w] = true
			q.Subcategories = append(q.Subcategories, w)
		}
	}
	return q, true
}

type StyleInput struct {
	Occasion string `json:"occasion"`
	BodyType string `json:"bodyType"`
	Style    string `json:"style"`
	Budget   string `json:"budget"`
}

type StyleReply struct {
	Recommendations string `json:"recommendations"`
	Occasion        string `json:"occasion"`
	BodyType        string `json:"bodyType"`
	Style           string `json:"style"`
	Budget          string `json:"budget"`
}

func (s *Service) ClothingRecommendations(ctx context.Context, in StyleInput) (*StyleReply, error) {
	text, err := s.llm.Complete(ctx, llm.Request{
		System:      stylistPrompt,
		User:        fmt.Sprintf(stylistRequest, in.Occasion, in.BodyType, in.Style, in.Budget),
		MaxTokens:   stylistMaxTokens,
		Temperature: stylistTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("stylist completion: %w", err)
	}
	return &StyleReply{
		Recommendations: text,
		Occasion:        in.Occasion,
		BodyType:        in.BodyType,
		Style:           in.Style,
		Budget:          in.Budget,
	}, nil
}
