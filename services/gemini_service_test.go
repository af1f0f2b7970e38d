package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/OrangeSorbet/annavistara/models"

	"github.com/stretchr/testify/require"
)

func TestExtractJSONBlock(t *testing.T) {
	block, ok := ExtractJSONBlock("```json\n{\"name\": \"dal\"}\n```")
	require.True(t, ok)
	require.Equal(t, `{"name": "dal"}`, block)

	block, ok = ExtractJSONBlock(`Here you go: {"a": {"b": 1}} hope that helps`)
	require.True(t, ok)
	require.Equal(t, `{"a": {"b": 1}}`, block)

	_, ok = ExtractJSONBlock("no json here")
	require.False(t, ok)

	_, ok = ExtractJSONBlock("}{")
	require.False(t, ok)
}

func fakeGemini(t *testing.T, handler http.HandlerFunc) *GeminiService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &GeminiService{
		apiKey:  "test-key",
		model:   "test-model",
		baseURL: srv.URL,
		client:  &http.Client{Timeout: 5 * time.Second},
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func geminiReply(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	})
	return string(b)
}

func TestAnalyzeMealText(t *testing.T) {
	svc := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		fmt.Fprint(w, geminiReply("Sure! ```json\n"+
			`{"name": "Dal and rice", "items": ["dal", "rice"], "nutrition": {"Energy": {"amount": 450, "unit": "kcal"}, "Protein": "18 g"}}`+
			"\n```"))
	})

	item, err := svc.AnalyzeMealText(context.Background(), nil, "dal and rice")
	require.NoError(t, err)
	require.Equal(t, "Dal and rice", item.Name)
	require.Equal(t, []string{"dal", "rice"}, []string(item.Items))
	require.Equal(t, float64(450), item.Nutrition["Energy"].Amount)
	// "18 g" string quantities parse into amount and unit
	require.Equal(t, float64(18), item.Nutrition["Protein"].Amount)
	require.Equal(t, "g", item.Nutrition["Protein"].Unit)
}

func TestAnalyzeSupplementFillsName(t *testing.T) {
	svc := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geminiReply(`{"dose": "1 tablet", "nutrition": {"Vitamin C": 500}}`))
	})

	item, err := svc.AnalyzeSupplement(context.Background(), nil, "vitamin C 500mg")
	require.NoError(t, err)
	// a reply without a name falls back to the query
	require.Equal(t, "vitamin C 500mg", item.Name)
	require.Equal(t, "1 tablet", item.Dose)
	require.Equal(t, float64(500), item.Nutrition["Vitamin C"].Amount)
}

func TestAnalyzeFailsOnAPIError(t *testing.T) {
	svc := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := svc.AnalyzeMealText(context.Background(), nil, "anything")
	require.ErrorIs(t, err, ErrAnalysisFailed)
}

func TestAnalyzeFailsOnProseResponse(t *testing.T) {
	svc := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geminiReply("I cannot analyze that meal."))
	})

	_, err := svc.AnalyzeMealText(context.Background(), nil, "anything")
	require.ErrorIs(t, err, ErrAnalysisFailed)
}

func TestAnalyzePromptCarriesProfile(t *testing.T) {
	var prompt string
	svc := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		prompt = string(body)
		fmt.Fprint(w, geminiReply(`{"name": "Dal", "nutrition": {}}`))
	})

	profile := completeProfile()
	_, err := svc.AnalyzeMealText(context.Background(), &profile, "dal")
	require.NoError(t, err)
	require.Contains(t, prompt, "30-year-old person (180 cm, 80 kg)")

	// an incomplete profile contributes nothing
	_, err = svc.AnalyzeMealText(context.Background(), &models.Profile{Age: 30}, "dal")
	require.NoError(t, err)
	require.NotContains(t, prompt, "30-year-old")
}

func TestGenerateFromImage(t *testing.T) {
	imageData := []byte("menu bytes")
	svc := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Contents []struct {
				Parts []struct {
					Text       string `json:"text"`
					InlineData *struct {
						MimeType string `json:"mime_type"`
						Data     string `json:"data"`
					} `json:"inline_data"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 2)
		require.Equal(t, "pick dishes", req.Contents[0].Parts[0].Text)
		require.NotNil(t, req.Contents[0].Parts[1].InlineData)
		require.Equal(t, "image/png", req.Contents[0].Parts[1].InlineData.MimeType)
		decoded, err := base64.StdEncoding.DecodeString(req.Contents[0].Parts[1].InlineData.Data)
		require.NoError(t, err)
		require.Equal(t, imageData, decoded)
		fmt.Fprint(w, geminiReply("- grilled paneer\n- dal tadka\n"))
	})

	text, err := svc.GenerateFromImage(context.Background(), "pick dishes", imageData, "image/png")
	require.NoError(t, err)
	require.Equal(t, "- grilled paneer\n- dal tadka", text)
}

func TestGenerateText(t *testing.T) {
	svc := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geminiReply("- eat more lentils\n- add a citrus fruit\n"))
	})

	text, err := svc.GenerateText(context.Background(), "suggest meals")
	require.NoError(t, err)
	require.Equal(t, "- eat more lentils\n- add a citrus fruit", text)
}
