package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/umputun/eventscope/pkg/config"
	"github.com/umputun/eventscope/pkg/domain"
)

// Classifier asks an LLM to pick an event category when the rule table has no match
type Classifier struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
}

// NewClassifier creates a new LLM classifier
func NewClassifier(cfg config.LLMConfig) *Classifier {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	// use custom system prompt if provided, otherwise use default
	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}

	return &Classifier{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemMsg,
	}
}

// default system prompt for event categorization
const defaultSystemPrompt = `You sort German cultural event listings into categories.
You get the title and the description of one event and a list of allowed category codes.
Answer with exactly one code from the list and nothing else. If nothing fits, answer SONSTIGES.`

// descriptions are cut to keep requests small
const maxDescriptionLen = 600

// SuggestCategory returns the category the LLM picks for the event.
// Answers outside the known categories are reported as errors.
func (c *Classifier) SuggestCategory(ctx context.Context, title, description string) (domain.Category, error) {
	if strings.TrimSpace(title) == "" {
		return "", fmt.Errorf("empty title")
	}

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model:       c.config.Model,
		Temperature: float32(c.config.Temperature),
		MaxTokens:   c.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.systemMsg},
			{Role: openai.ChatMessageRoleUser, Content: c.buildPrompt(title, description)},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from llm")
	}

	return parseCategory(resp.Choices[0].Message.Content)
}

// buildPrompt creates the user message with the allowed codes and the event text
func (c *Classifier) buildPrompt(title, description string) string {
	codes := make([]string, 0, len(domain.Categories))
	for _, cat := range domain.Categories {
		codes = append(codes, string(cat))
	}

	var sb strings.Builder
	sb.WriteString("Allowed categories: ")
	sb.WriteString(strings.Join(codes, ", "))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Title: %s\n", title))
	if description = strings.TrimSpace(description); description != "" {
		if r := []rune(description); len(r) > maxDescriptionLen {
			description = string(r[:maxDescriptionLen]) + "..."
		}
		sb.WriteString(fmt.Sprintf("Description: %s\n", description))
	}
	return sb.String()
}

// parseCategory extracts a known category code from the answer, tolerating quotes and punctuation
func parseCategory(content string) (domain.Category, error) {
	answer := strings.ToUpper(strings.TrimSpace(content))
	answer = strings.Trim(answer, "\"'`.:! \n")
	if cat := domain.Category(answer); cat.Valid() {
		return cat, nil
	}

	// models sometimes wrap the code in a sentence, accept a single known word
	var found domain.Category
	for _, word := range strings.FieldsFunc(answer, func(r rune) bool { return !isCodeRune(r) }) {
		if cat := domain.Category(word); cat.Valid() {
			if found != "" && found != cat {
				return "", fmt.Errorf("ambiguous llm answer %q", content)
			}
			found = cat
		}
	}
	if found == "" {
		return "", fmt.Errorf("unknown category in llm answer %q", content)
	}
	return found, nil
}

func isCodeRune(r rune) bool {
	return r >= 'A' && r <= 'Z'
}
