// Package insights produces an optional model-written commentary paragraph
// on the resolved statement series. Failures never block the report; the
// caller simply omits the commentary.
package insights

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"jwyoo/krx-report/internal/config"
	"jwyoo/krx-report/internal/models"
)

var log = config.Logger

// SetLogger allows setting a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Generator writes a short commentary on a company's statement history.
type Generator struct {
	apiKey string
	model  string

	client *genai.Client
	gm     *genai.GenerativeModel
}

// NewGenerator creates a Generator. The client is initialized lazily on the
// first Summarize call so construction never needs the network.
func NewGenerator(apiKey, model string) *Generator {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &Generator{apiKey: apiKey, model: model}
}

// ensureClient initializes the Gemini client once.
func (g *Generator) ensureClient(ctx context.Context) error {
	if g.gm != nil {
		return nil
	}
	if g.apiKey == "" {
		return fmt.Errorf("insights: GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return fmt.Errorf("insights: failed to create Gemini client: %w", err)
	}
	g.client = client
	g.gm = client.GenerativeModel(g.model)
	return nil
}

// Close releases the underlying client.
func (g *Generator) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// Summarize asks the model for a short plain-text commentary on the resolved
// statement series.
func (g *Generator) Summarize(ctx context.Context, companyName string, results []models.YearResult) (string, error) {
	if err := g.ensureClient(ctx); err != nil {
		return "", err
	}

	prompt := buildPrompt(companyName, results)
	resp, err := g.gm.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("insights: generation failed: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", fmt.Errorf("insights: model returned no text")
	}

	log.WithField("company", companyName).Debug("Generated statement commentary")
	return text, nil
}

// buildPrompt condenses the resolved series into a compact table the model
// can comment on. Only the headline accounts are included to keep the prompt
// small.
func buildPrompt(companyName string, results []models.YearResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "다음은 %s의 연도별 재무제표 주요 항목(단위: 원)입니다.\n", companyName)
	headline := map[string]struct{}{
		"자산총계": {}, "부채총계": {}, "자본총계": {},
		"매출액": {}, "영업이익": {}, "당기순이익": {},
	}
	for _, res := range results {
		if !res.Resolved {
			fmt.Fprintf(&b, "%d: 데이터 없음\n", res.Year)
			continue
		}
		fmt.Fprintf(&b, "%d (%s/%s):", res.Year, res.Scope, res.ReportType.Label())
		for _, row := range res.Rows {
			if _, ok := headline[row.AccountName]; ok {
				fmt.Fprintf(&b, " %s=%s", row.AccountName, row.Amount)
			}
		}
		b.WriteByte('\n')
	}
	b.WriteString("이 추이를 3~4문장으로 요약해 주세요. 투자 조언은 하지 마세요.")
	return b.String()
}

// extractText flattens the first candidate's text parts.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String())
}
