package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/stylelens/backend/internal/domain"
)

const maxErrorBodyBytes = 8 * 1024

// Client talks to an OpenAI-compatible chat-completions endpoint with
// multimodal (image) support. It is stateless and safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	debug      bool
}

// Config configures the oracle client
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewClient creates a new oracle client
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 45 * time.Second
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetDebug enables verbose oracle logging
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

// Wire types for the chat-completions API

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const classifyPrompt = `Look at this photo and classify it. Reply with exactly one word:
"outfit" if it shows a person wearing clothes or a full outfit,
"single_item" if it shows one clothing item or accessory on its own,
"not_fashion" if it contains no clothing or fashion accessories.`

const extractPrompt = `Identify every distinct clothing item and fashion accessory visible in this photo.
Reply with a JSON array only, no prose. Each element must have these fields:
"name" (short item name), "description" (color, material, style details),
"query" (a Google Shopping search phrase for finding this exact item),
"category" (e.g. "top", "bottom", "shoes", "accessory"),
"significance" (integer 1-10 for how prominent the item is in the photo).`

const similarityPromptFmt = `You are judging visual similarity for a shopping assistant.
Reference: the attached photo.
Candidate product: %s
On a scale of 1 to 10, how likely is this product to be the same item (or a very close match) as what appears in the photo? Reply with a single integer only.`

// ClassifyImage asks the model what kind of photo was uploaded
func (c *Client) ClassifyImage(ctx context.Context, img domain.ImagePayload) (domain.ImageLabel, error) {
	reply, err := c.complete(ctx, classifyPrompt, &img, 10)
	if err != nil {
		return "", err
	}

	switch {
	case strings.Contains(strings.ToLower(reply), "outfit"):
		return domain.LabelOutfit, nil
	case strings.Contains(strings.ToLower(reply), "single_item"):
		return domain.LabelSingleItem, nil
	case strings.Contains(strings.ToLower(reply), "not_fashion"):
		return domain.LabelNotFashion, nil
	}
	return "", fmt.Errorf("%w: unrecognized classification %q", domain.ErrOracleFailure, reply)
}

// ExtractItems asks the model for the fashion items visible in the photo.
// A reply that does not parse as the expected JSON is a hard error.
func (c *Client) ExtractItems(ctx context.Context, img domain.ImagePayload) ([]domain.ClothingItem, error) {
	reply, err := c.complete(ctx, extractPrompt, &img, 1200)
	if err != nil {
		return nil, err
	}

	var items []domain.ClothingItem
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &items); err != nil {
		return nil, fmt.Errorf("%w: malformed item list: %v", domain.ErrOracleFailure, err)
	}
	return items, nil
}

// ScoreSimilarity asks the model to judge how well a candidate's text matches
// the reference image, returning a score normalized to [0, 1].
func (c *Client) ScoreSimilarity(ctx context.Context, img domain.ImagePayload, itemText string) (float64, error) {
	prompt := fmt.Sprintf(similarityPromptFmt, itemText)
	reply, err := c.complete(ctx, prompt, &img, 10)
	if err != nil {
		return 0, err
	}

	raw, ok := firstNumber(reply)
	if !ok {
		return 0, fmt.Errorf("%w: non-numeric similarity reply %q", domain.ErrOracleFailure, reply)
	}

	// The judge is prompted for 1-10; normalize and clamp.
	score := raw / 10
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score, nil
}

// complete sends one chat-completions request and returns the reply text
func (c *Client) complete(ctx context.Context, prompt string, img *domain.ImagePayload, maxTokens int) (string, error) {
	parts := []contentPart{{Type: "text", Text: prompt}}
	if img != nil {
		parts = append(parts, contentPart{
			Type:     "image_url",
			ImageURL: &imageURL{URL: dataURL(*img)},
		})
	}

	reqBody := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: parts}},
		MaxTokens:   maxTokens,
		Temperature: 0,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal oracle request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create oracle request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrOracleFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body := make([]byte, maxErrorBodyBytes)
		n, _ := resp.Body.Read(body)
		if c.debug {
			log.Printf("[ORACLE] API error - Status: %d, Body: %s", resp.StatusCode, strings.TrimSpace(string(body[:n])))
		}
		return "", fmt.Errorf("%w: status %d", domain.ErrOracleFailure, resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", domain.ErrOracleFailure, err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrOracleFailure, chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", domain.ErrOracleFailure)
	}

	reply := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if c.debug {
		log.Printf("[ORACLE] reply: %q", reply)
	}
	return reply, nil
}

// dataURL encodes the image payload as a data URL for the API
func dataURL(img domain.ImagePayload) string {
	return fmt.Sprintf("data:%s;base64,%s", img.MIME, img.Base64)
}

var codeFenceRegex = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// stripCodeFence removes a surrounding markdown code fence, if present.
// Models frequently wrap JSON replies in fences despite instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if m := codeFenceRegex.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

var numberRegex = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// firstNumber extracts the first numeric token from a reply
func firstNumber(s string) (float64, bool) {
	m := numberRegex.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
