package planner

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"goal-tracker/internal/config"
	"goal-tracker/internal/domain/entity"
)

const (
	temperature = 0.7
	maxTokens   = 4000
)

// Planner turns a goal description into scheduled activities.
type Planner interface {
	GeneratePlan(ctx context.Context, input *entity.PlanInput) ([]entity.PlanEntry, error)
}

type openAIPlanner struct {
	client *openai.Client
	model  string
	logger *zap.Logger
	now    func() time.Time
}

func NewPlanner(cfg *config.Config, logger *zap.Logger) Planner {
	return newPlanner(cfg.Planner, logger, time.Now)
}

func newPlanner(cfg config.PlannerConfig, logger *zap.Logger, now func() time.Time) *openAIPlanner {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &openAIPlanner{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		logger: logger,
		now:    now,
	}
}

func (p *openAIPlanner) GeneratePlan(ctx context.Context, input *entity.PlanInput) ([]entity.PlanEntry, error) {
	start := time.Now()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(input, p.now())},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w: status %d: %s", entity.ErrPlannerResponse, apiErr.HTTPStatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned", entity.ErrPlannerResponse)
	}

	entries, err := ParseEntries(resp.Choices[0].Message.Content)
	if err != nil {
		p.logger.Warn("Planner returned an unusable plan",
			zap.String("model", p.model),
			zap.Error(err),
		)
		return nil, err
	}

	p.logger.Info("Plan generated",
		zap.String("model", p.model),
		zap.Int("entries", len(entries)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
		zap.Duration("duration", time.Since(start)),
	)

	return entries, nil
}
