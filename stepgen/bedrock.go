package stepgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// bedrockCallTimeout bounds a single model invocation; the remote capability
// imposes no limit of its own.
const bedrockCallTimeout = 60 * time.Second

// BedrockGenerator implements TextGenerator using AWS Bedrock.
type BedrockGenerator struct {
	client  *bedrockruntime.Client
	modelID string
}

// NewBedrockGenerator creates a Bedrock-backed text generator. Static keys
// take precedence when provided; otherwise the default AWS credential chain
// applies.
func NewBedrockGenerator(ctx context.Context, region, modelID, accessKey, secretKey string) (*BedrockGenerator, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &BedrockGenerator{
		client:  bedrockruntime.NewFromConfig(cfg),
		modelID: modelID,
	}, nil
}

// GenerateText invokes the model with the given contract, payload, and
// sampling parameters and returns the raw text of the first content block.
func (g *BedrockGenerator) GenerateText(ctx context.Context, system, user string, params SampleParams) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, bedrockCallTimeout)
	defer cancel()

	requestBody := map[string]interface{}{
		"anthropic_version": "bedrock-2023-05-31",
		"max_tokens":        params.MaxTokens,
		"system":            system,
		"temperature":       params.Temperature,
		"top_p":             params.TopP,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{"type": "text", "text": user},
				},
			},
		},
	}

	payloadBytes, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	output, err := g.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(g.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        payloadBytes,
	})
	if err != nil {
		return "", fmt.Errorf("failed to invoke model: %w", err)
	}

	var response struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		StopReason string `json:"stop_reason"`
	}
	if err := json.Unmarshal(output.Body, &response); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(response.Content) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	return strings.TrimSpace(response.Content[0].Text), nil
}
