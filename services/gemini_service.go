package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/OrangeSorbet/annavistara/models"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// GeminiService calls the Gemini generateContent endpoint to turn a meal
// description, a meal photo, or a supplement name into a structured
// nutrition estimate. It is the only AI collaborator; every analysis
// failure surfaces as ErrAnalysisFailed so callers can fall back to a
// manual entry without losing the user's input.
type GeminiService struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	log     *slog.Logger
}

func NewGeminiService(logger *slog.Logger) *GeminiService {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiService{
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		model:   model,
		baseURL: defaultGeminiBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		log:     logger,
	}
}

// AnalyzedItem is the normalized result of one analysis call. Items is
// populated for meals, Dose for supplements.
type AnalyzedItem struct {
	Name      string             `json:"name"`
	Items     models.StringList  `json:"items,omitempty"`
	Dose      string             `json:"dose,omitempty"`
	Nutrition models.NutrientMap `json:"nutrition"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiRequest struct {
	Contents []struct {
		Parts []geminiPart `json:"parts"`
	} `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// profileClause grounds an analysis prompt in the eater's build so portion
// estimates fit the person, not a generic adult. An incomplete profile
// contributes nothing.
func profileClause(p *models.Profile) string {
	if p == nil || !p.Complete() {
		return ""
	}
	return fmt.Sprintf("This is for a %d-year-old person (%.0f cm, %.0f kg); size the portion estimate accordingly. ",
		p.Age, p.HeightCm, p.WeightKg)
}

// AnalyzeMealText estimates nutrition for a described meal, sized for the
// given profile when one is complete.
func (s *GeminiService) AnalyzeMealText(ctx context.Context, profile *models.Profile, description string) (*AnalyzedItem, error) {
	prompt := fmt.Sprintf(
		`Analyze this meal: "%s". `+profileClause(profile)+
			`Estimate the nutritional content for the full portion described. `+
			`Respond with ONLY a JSON object of the shape `+
			`{"name": "short meal name", "items": ["component 1", "component 2"], "nutrition": {"%s": {"amount": 0, "unit": ""}}} `+
			`where nutrition has one entry per nutrient you can estimate, using the nutrient names given. No other text.`,
		description, strings.Join(models.CatalogNames(), `": {"amount": 0, "unit": ""}, "`),
	)
	item, err := s.generate(ctx, []geminiPart{{Text: prompt}})
	if err != nil {
		return nil, err
	}
	if item.Name == "" {
		item.Name = description
	}
	return item, nil
}

// AnalyzeMealImage estimates nutrition from a photo. imageData is the raw
// bytes, mimeType e.g. "image/jpeg".
func (s *GeminiService) AnalyzeMealImage(ctx context.Context, profile *models.Profile, imageData []byte, mimeType string) (*AnalyzedItem, error) {
	prompt := `Identify the meal in this photo and estimate its nutritional content for the portion shown. ` +
		profileClause(profile) +
		`Respond with ONLY a JSON object of the shape ` +
		`{"name": "short meal name", "items": ["component 1", "component 2"], "nutrition": {"Energy": {"amount": 0, "unit": "kcal"}}} ` +
		`where nutrition has one entry per nutrient you can estimate. No other text.`
	parts := []geminiPart{
		{Text: prompt},
		{InlineData: &geminiInlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(imageData),
		}},
	}
	return s.generate(ctx, parts)
}

// AnalyzeSupplement estimates the nutrient content of one dose of a named
// supplement.
func (s *GeminiService) AnalyzeSupplement(ctx context.Context, profile *models.Profile, name string) (*AnalyzedItem, error) {
	prompt := fmt.Sprintf(
		`Analyze this supplement: "%s". `+profileClause(profile)+
			`Estimate the nutrient content of one typical dose. `+
			`Respond with ONLY a JSON object of the shape `+
			`{"name": "supplement name", "dose": "e.g. 1 tablet", "nutrition": {"Vitamin C": {"amount": 0, "unit": "mg"}}} `+
			`where nutrition has one entry per nutrient the supplement provides. No other text.`,
		name,
	)
	item, err := s.generate(ctx, []geminiPart{{Text: prompt}})
	if err != nil {
		return nil, err
	}
	if item.Name == "" {
		item.Name = name
	}
	return item, nil
}

// GenerateText runs a free-form prompt and returns the raw model text. Used
// by the advisor, which wants prose rather than structured nutrition.
func (s *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	text, err := s.call(ctx, []geminiPart{{Text: prompt}})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// GenerateFromImage runs a free-form prompt against an attached image and
// returns the raw model text. Used by the advisor to read menu photos.
func (s *GeminiService) GenerateFromImage(ctx context.Context, prompt string, imageData []byte, mimeType string) (string, error) {
	parts := []geminiPart{
		{Text: prompt},
		{InlineData: &geminiInlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(imageData),
		}},
	}
	text, err := s.call(ctx, parts)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (s *GeminiService) generate(ctx context.Context, parts []geminiPart) (*AnalyzedItem, error) {
	text, err := s.call(ctx, parts)
	if err != nil {
		return nil, err
	}
	block, ok := ExtractJSONBlock(text)
	if !ok {
		s.log.Warn("gemini response contained no JSON object", "response_len", len(text))
		return nil, fmt.Errorf("%w: no JSON object in model response", ErrAnalysisFailed)
	}
	var item AnalyzedItem
	if err := json.Unmarshal([]byte(block), &item); err != nil {
		s.log.Warn("gemini JSON block failed to parse", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
	if item.Nutrition == nil {
		item.Nutrition = models.NutrientMap{}
	}
	return &item, nil
}

func (s *GeminiService) call(ctx context.Context, parts []geminiPart) (string, error) {
	var reqBody geminiRequest
	reqBody.Contents = append(reqBody.Contents, struct {
		Parts []geminiPart `json:"parts"`
	}{Parts: parts})

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal gemini payload: %w", err)
	}

	u := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn("gemini request failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrAnalysisFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		s.log.Warn("gemini API error", "status", resp.StatusCode)
		return "", fmt.Errorf("%w: API status %d", ErrAnalysisFailed, resp.StatusCode)
	}

	var gr geminiResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", fmt.Errorf("%w: parsing response: %v", ErrAnalysisFailed, err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty candidate list", ErrAnalysisFailed)
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}

// ExtractJSONBlock pulls the first top-level {...} span out of model output,
// tolerating markdown fences and prose around it.
func ExtractJSONBlock(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}
