package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	awssession "github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/bedrockruntime"
)

// Completer produces a completion for a user prompt. Implemented by the
// Bedrock client; faked in tests.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type claudeRequest struct {
	Prompt            string  `json:"prompt"`
	MaxTokensToSample int     `json:"max_tokens_to_sample"`
	Temperature       float64 `json:"temperature"`
}

type claudeResponse struct {
	Completion string `json:"completion"`
}

// BedrockCompleter calls an Anthropic model through AWS Bedrock.
type BedrockCompleter struct {
	client  *bedrockruntime.BedrockRuntime
	modelID string
}

func NewBedrockCompleter(region, modelID string) (*BedrockCompleter, error) {
	sess, err := awssession.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return &BedrockCompleter{
		client:  bedrockruntime.New(sess),
		modelID: modelID,
	}, nil
}

// Complete invokes the model and returns its completion. Errors are
// returned as-is; converting them to the user-facing fallback string is
// the caller's job.
func (b *BedrockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(claudeRequest{
		Prompt:            prompt,
		MaxTokensToSample: 1000,
		Temperature:       0.9,
	})
	if err != nil {
		return "", err
	}

	out, err := b.client.InvokeModelWithContext(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("bedrock invoke failed: %w", err)
	}

	var resp claudeResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("bedrock response decode failed: %w", err)
	}
	if resp.Completion == "" {
		return "No response received.", nil
	}
	return resp.Completion, nil
}
