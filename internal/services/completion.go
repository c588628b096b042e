package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/complaintsys/backend/internal/config"
	"github.com/complaintsys/backend/pkg/logger"
	"github.com/ollama/ollama/api"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

const (
	responsePrompt = "You are a professional customer service agent. Draft a polite, empathetic, " +
		"and concise response to the customer's complaint based on the provided text " +
		"and investigation findings."
	categoryPrompt = "Classify the following complaint into one of these categories: " +
		"Credit Cards, Channels, Staff, Banking & Savings. Return only the category name."

	completionTimeout = 10 * time.Second

	draftMaxTokens    = 500
	draftTemperature  = 0.7
	classifyMaxTokens = 20
	classifyTemp      = 0.3
)

// FallbackCategory is substituted when the classifier answers outside the
// allowed set. An unrecognized label is never an error.
const FallbackCategory = "Banking & Savings"

var validCategories = []string{"Credit Cards", "Channels", "Staff", FallbackCategory}

// chatParams are the per-call knobs for one chat completion.
type chatParams struct {
	system      string
	user        string
	maxTokens   int
	temperature float32
}

// CompletionService issues chat completions against the configured deployment.
// The default provider is Azure OpenAI; OpenAI-compatible, Anthropic, Ollama
// and Gemini endpoints are also supported via the provider config field.
type CompletionService struct {
	cfg *config.CompletionConfig
	oai *openai.Client // shared client for the azure/openai providers
}

func NewCompletionService(cfg *config.CompletionConfig) *CompletionService {
	s := &CompletionService{cfg: cfg}

	switch cfg.Provider {
	case "anthropic", "ollama", "gemini":
		// these SDK clients are stateless and built per call
	case "openai":
		clientConfig := openai.DefaultConfig(cfg.APIKey)
		if cfg.Endpoint != "" {
			clientConfig.BaseURL = cfg.Endpoint
		}
		s.oai = openai.NewClientWithConfig(clientConfig)
	default:
		clientConfig := openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
		if cfg.APIVersion != "" {
			clientConfig.APIVersion = cfg.APIVersion
		}
		s.oai = openai.NewClientWithConfig(clientConfig)
	}

	return s
}

// GenerateResponse drafts a reply to the complaint. Returns the trimmed text
// of the single best completion.
func (s *CompletionService) GenerateResponse(ctx context.Context, complaint, findings string) (string, error) {
	text, err := s.complete(ctx, chatParams{
		system:      responsePrompt,
		user:        userContent(complaint, findings),
		maxTokens:   draftMaxTokens,
		temperature: draftTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("generate response: %w", err)
	}

	logger.Infof("[completion] generated response length: %d chars", len(text))
	return text, nil
}

// ClassifyComplaint assigns one of the four allowed category labels. Any
// out-of-set answer from the model is replaced by the fallback category.
func (s *CompletionService) ClassifyComplaint(ctx context.Context, complaint, findings string) (string, error) {
	text, err := s.complete(ctx, chatParams{
		system:      categoryPrompt,
		user:        userContent(complaint, findings),
		maxTokens:   classifyMaxTokens,
		temperature: classifyTemp,
	})
	if err != nil {
		return "", fmt.Errorf("classify complaint: %w", err)
	}

	return NormalizeCategory(text), nil
}

func userContent(complaint, findings string) string {
	return fmt.Sprintf("Complaint: %s\nFindings: %s", complaint, findings)
}

// NormalizeCategory trims the model output and maps anything outside the
// closed label set to the fallback category.
func NormalizeCategory(raw string) string {
	category := strings.TrimSpace(raw)
	for _, valid := range validCategories {
		if category == valid {
			return category
		}
	}
	return FallbackCategory
}

func (s *CompletionService) complete(ctx context.Context, p chatParams) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	switch s.cfg.Provider {
	case "anthropic":
		return s.completeAnthropic(ctx, p)
	case "ollama":
		return s.completeOllama(ctx, p)
	case "gemini":
		return s.completeGemini(ctx, p)
	default:
		return s.completeOpenAI(ctx, p)
	}
}

// completeOpenAI serves both the Azure deployment (default) and plain
// OpenAI-compatible endpoints; for Azure the deployment name is the model.
func (s *CompletionService) completeOpenAI(ctx context.Context, p chatParams) (string, error) {
	resp, err := s.oai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.cfg.Deployment,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.system},
			{Role: openai.ChatMessageRoleUser, Content: p.user},
		},
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("completion API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion API returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (s *CompletionService) completeAnthropic(ctx context.Context, p chatParams) (string, error) {
	client := anthropic.NewClient(
		option.WithAPIKey(s.cfg.APIKey),
	)

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(s.cfg.Deployment),
		MaxTokens:   int64(p.maxTokens),
		Temperature: anthropic.Float(float64(p.temperature)),
		System: []anthropic.TextBlockParam{
			{Text: p.system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(p.user)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	var content strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}

	return strings.TrimSpace(content.String()), nil
}

func (s *CompletionService) completeOllama(ctx context.Context, p chatParams) (string, error) {
	u, err := url.Parse(s.cfg.Endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid ollama endpoint: %w", err)
	}
	client := api.NewClient(u, http.DefaultClient)

	var content strings.Builder
	err = client.Chat(ctx, &api.ChatRequest{
		Model: s.cfg.Deployment,
		Messages: []api.Message{
			{Role: "system", Content: p.system},
			{Role: "user", Content: p.user},
		},
		Options: map[string]interface{}{
			"temperature": p.temperature,
			"num_predict": p.maxTokens,
		},
	}, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama API error: %w", err)
	}

	return strings.TrimSpace(content.String()), nil
}

func (s *CompletionService) completeGemini(ctx context.Context, p chatParams) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: s.cfg.APIKey,
	})
	if err != nil {
		return "", fmt.Errorf("gemini client error: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, s.cfg.Deployment, genai.Text(p.user), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(p.system, genai.RoleUser),
		Temperature:       genai.Ptr(p.temperature),
		MaxOutputTokens:   int32(p.maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}

	return strings.TrimSpace(resp.Text()), nil
}
