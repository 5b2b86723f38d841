package skillner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
)

// OpenAIRecognizer extracts skill mentions with a chat completion model.
type OpenAIRecognizer struct {
	client *openai.Client
	model  string
}

var _ Recognizer = (*OpenAIRecognizer)(nil)

func NewOpenAIRecognizer(apiKey string) *OpenAIRecognizer {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &OpenAIRecognizer{
		client: &client,
		model:  "gpt-4o-mini",
	}
}

const systemPrompt = `You are a skill extraction engine. Given resume text, list every technical and professional skill mentioned, exactly as written in the text. Return ONLY valid JSON.`

const userPromptTemplate = `Extract all skills from this resume text. Return JSON in the form:

{"skills": string[]}

Each entry must be the skill exactly as it appears in the text (same casing and punctuation). Return ONLY the JSON.

Text:
%s`

// FindSkillSpans asks the model for skill strings and locates each one in
// the text. Mentions the model invents that do not occur in the text are
// dropped.
func (r *OpenAIRecognizer) FindSkillSpans(ctx context.Context, text string) ([]Span, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	completion, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(fmt.Sprintf(userPromptTemplate, text)),
		},
		Model: r.model,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		},
		Temperature: openai.Float(0.1),
		MaxTokens:   openai.Int(1500),
	})
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("no response from openai")
	}

	var payload struct {
		Skills []string `json:"skills"`
	}
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse skill JSON: %w", err)
	}

	lower := strings.ToLower(text)
	var spans []Span
	for _, skill := range payload.Skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		idx := strings.Index(lower, strings.ToLower(skill))
		if idx < 0 {
			continue
		}
		spans = append(spans, Span{Start: idx, End: idx + len(skill)})
	}
	return spans, nil
}
