package insights

import (
	"context"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jwyoo/krx-report/internal/models"
)

func TestSummarizeWithoutKey(t *testing.T) {
	g := NewGenerator("", "")
	_, err := g.Summarize(context.Background(), "삼성전자", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	assert.NoError(t, g.Close())
}

func TestBuildPrompt(t *testing.T) {
	results := []models.YearResult{
		{
			Year:       2022,
			Resolved:   true,
			Scope:      models.ScopeConsolidated,
			ReportType: models.ReportAnnual,
			Rows: []models.StatementRow{
				{AccountName: "자산총계", Amount: "448424507000000"},
				{AccountName: "기타포괄손익", Amount: "123"}, // not a headline account
				{AccountName: "매출액", Amount: "302231360000000"},
			},
		},
		{Year: 2023},
	}

	prompt := buildPrompt("삼성전자", results)

	assert.Contains(t, prompt, "삼성전자")
	assert.Contains(t, prompt, "2022 (CFS/Annual):")
	assert.Contains(t, prompt, "자산총계=448424507000000")
	assert.Contains(t, prompt, "매출액=302231360000000")
	assert.NotContains(t, prompt, "기타포괄손익")
	assert.Contains(t, prompt, "2023: 데이터 없음")
	assert.True(t, strings.Contains(prompt, "투자 조언은 하지 마세요"))
}

func TestExtractText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []genai.Part{genai.Text("첫 문장. "), genai.Text("둘째 문장.")},
				},
			},
		},
	}
	assert.Equal(t, "첫 문장. 둘째 문장.", extractText(resp))

	assert.Empty(t, extractText(nil))
	assert.Empty(t, extractText(&genai.GenerateContentResponse{}))
	assert.Empty(t, extractText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}))
}
