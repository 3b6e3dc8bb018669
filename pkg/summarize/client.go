package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tableflip.dev/tend/pkg/insight"
)

const (
	// DefaultTimeout bounds every summarizer call. The upstream service has
	// no contract of its own; waiting forever would stall the caller's UI.
	DefaultTimeout = 30 * time.Second

	defaultModel = "gpt-4o-mini"
)

var ErrNoChoices = errors.New("summarize: empty completion response")

// ClientConfig configures the HTTP summarizer.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client is a minimal chat-completions client. It is only constructed when an
// API key is configured; otherwise callers use Fallback directly.
type Client struct {
	cfg  ClientConfig
	http *http.Client
}

var _ Summarizer = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}
}

func (c *Client) Categorize(ctx context.Context, activity string) (Category, error) {
	prompt := fmt.Sprintf(
		"Classify this tracked activity into one short category word "+
			"(e.g. Work, Exercise, Rest, Social, Chores, Learning). "+
			"Respond with JSON {\"category\": string, \"confidence\": number}. "+
			"Activity: %q", activity)

	raw, err := c.complete(ctx, prompt)
	if err != nil {
		return Category{}, err
	}
	var cat Category
	if err := json.Unmarshal([]byte(raw), &cat); err != nil {
		return Category{}, fmt.Errorf("summarize: decode category: %w", err)
	}
	if strings.TrimSpace(cat.Name) == "" {
		return Category{}, errors.New("summarize: blank category")
	}
	return cat, nil
}

func (c *Client) GenerateInsights(ctx context.Context, snap Snapshot) ([]insight.Insight, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Given this %s of wellbeing data, produce 3-5 insights as a JSON array of "+
		"{\"content\": string, \"type\": one of trend|pattern|correlation|habit|energy|productivity}.\n",
		snap.Kind)
	for _, ci := range snap.CheckIns {
		fmt.Fprintf(&sb, "checkin %s energy=%d positivity=%d emotions=%s goal=%q\n",
			ci.Date, ci.EnergyLevel, ci.PositivityLevel,
			strings.Join(ci.Emotions, ","), ci.MainGoal)
	}
	for _, a := range snap.Activities {
		fmt.Fprintf(&sb, "activity %s %q category=%s minutes=%d mood=%d\n",
			a.Date, a.Activity, a.Category, a.DurationMinutes, a.MoodRating)
	}
	if len(snap.Goals) > 0 {
		fmt.Fprintf(&sb, "goals: %s\n", strings.Join(snap.Goals, "; "))
	}

	raw, err := c.complete(ctx, sb.String())
	if err != nil {
		return nil, err
	}

	var decoded []struct {
		Content string `json:"content"`
		Type    string `json:"type"`
	}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("summarize: decode insights: %w", err)
	}

	out := make([]insight.Insight, 0, len(decoded))
	for _, d := range decoded {
		if strings.TrimSpace(d.Content) == "" {
			continue
		}
		out = append(out, insight.Insight{
			Content:     d.Content,
			Type:        insight.Type(d.Type),
			Period:      snap.Kind,
			PeriodStart: snap.PeriodStart,
			PeriodEnd:   snap.PeriodEnd,
			DataVersion: insight.DataVersion,
		})
	}
	if len(out) == 0 {
		return nil, ErrNoChoices
	}
	return out, nil
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.cfg.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("summarize: completion status %d", resp.StatusCode)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if len(decoded.Choices) == 0 {
		return "", ErrNoChoices
	}
	return decoded.Choices[0].Message.Content, nil
}
