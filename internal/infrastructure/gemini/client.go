package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/yourusername/pc-build-assistant/internal/domain/constants"
	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
	"github.com/yourusername/pc-build-assistant/internal/domain/repository"
)

// errSafetyBlocked javob xavfsizlik filtri tomonidan bloklangan
var errSafetyBlocked = errors.New("response blocked by safety filter")

type geminiClient struct {
	client  *genai.Client
	chat    *genai.GenerativeModel
	intent  *genai.GenerativeModel
	suggest *genai.GenerativeModel
}

// NewGeminiClient yangi Gemini AI client yaratish. modelName bo'sh
// bo'lsa standart model olinadi.
func NewGeminiClient(apiKey, modelName string) (repository.AIRepository, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if modelName == "" {
		modelName = constants.GeminiModelName
	}

	return &geminiClient{
		client:  client,
		chat:    newModel(client, modelName, ChatInstruction),
		intent:  newModel(client, modelName, IntentInstruction),
		suggest: newModel(client, modelName, SuggestInstruction),
	}, nil
}

func newModel(client *genai.Client, name, instruction string) *genai.GenerativeModel {
	model := client.GenerativeModel(name)

	// Model konfiguratsiyasi - aniq javoblar uchun
	model.SetTemperature(constants.AITemperature)
	model.SetTopK(constants.AITopK)
	model.SetTopP(constants.AITopP)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(instruction)},
	}
	return model
}

// ClassifyIntent xabarni tahlil qilib tuzilgan natija qaytaradi
func (g *geminiClient) ClassifyIntent(ctx context.Context, message string, history []entity.Message) (entity.IntentResult, error) {
	parts := append(historyParts(history), genai.Text(message))

	raw, err := g.generate(ctx, g.intent, parts)
	if err != nil {
		return entity.IntentResult{}, err
	}

	var parsed struct {
		Intent       string  `json:"intent"`
		Category     string  `json:"category"`
		SearchQuery  string  `json:"search_query"`
		Budget       float64 `json:"budget"`
		Requirements string  `json:"requirements"`
		Tier         string  `json:"build_tier"`
		Purpose      string  `json:"purpose"`
	}
	if err := json.Unmarshal([]byte(stripJSONFences(raw)), &parsed); err != nil {
		return entity.IntentResult{}, fmt.Errorf("intent response is not valid json: %w", err)
	}

	result := entity.IntentResult{
		Intent:       entity.ParseMessageIntent(parsed.Intent),
		SearchQuery:  strings.TrimSpace(parsed.SearchQuery),
		Budget:       parsed.Budget,
		Requirements: strings.TrimSpace(parsed.Requirements),
	}
	if result.Budget < 0 {
		result.Budget = 0
	}
	if cat, ok := entity.ParseCategory(parsed.Category); ok {
		result.Category = cat
	}
	if tier, ok := entity.ParseTier(parsed.Tier); ok {
		result.Tier = tier
	}
	switch entity.BuildPurpose(strings.ToLower(strings.TrimSpace(parsed.Purpose))) {
	case entity.PurposeWork:
		result.Purpose = entity.PurposeWork
	case entity.PurposeGaming:
		result.Purpose = entity.PurposeGaming
	}
	return result, nil
}

// SuggestBuild kandidatlardan toifa -> SKU taklifini oladi. Model
// chiqishi bu yerda faqat shaklan tekshiriladi, mazmunan tekshirish
// (SKU mavjudligi, ombor, moslik) chaqiruvchining ishi.
func (g *geminiClient) SuggestBuild(ctx context.Context, req entity.BuildRequest, candidates map[entity.Category][]entity.Product) (map[entity.Category]string, error) {
	prompt, err := buildSuggestPrompt(req, candidates)
	if err != nil {
		return nil, err
	}

	raw, err := g.generate(ctx, g.suggest, []genai.Part{genai.Text(prompt)})
	if err != nil {
		return nil, err
	}

	var parsed map[string]string
	if err := json.Unmarshal([]byte(stripJSONFences(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("suggestion is not valid json: %w", err)
	}

	out := make(map[entity.Category]string, len(parsed))
	for key, sku := range parsed {
		cat, ok := entity.ParseCategory(key)
		if !ok {
			continue
		}
		out[cat] = strings.TrimSpace(sku)
	}
	return out, nil
}

// GenerateReply oddiy suhbat javobi
func (g *geminiClient) GenerateReply(ctx context.Context, message string, history []entity.Message) (string, error) {
	parts := append(historyParts(history), genai.Text(message))

	text, err := g.generate(ctx, g.chat, parts)
	if errors.Is(err, errSafetyBlocked) {
		return "Kechirasiz, javob berish imkoni bo'lmadi. Iltimos, boshqa so'rov bilan qaytadan urinib ko'ring.", nil
	}
	return text, err
}

// Close client ni yopish
func (g *geminiClient) Close() error {
	return g.client.Close()
}

// generate bitta so'rovni retry bilan yuboradi
func (g *geminiClient) generate(ctx context.Context, model *genai.GenerativeModel, parts []genai.Part) (string, error) {
	maxRetries := constants.MaxRetries
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("🔄 Gemini API ga so'rov yuborish (urinish %d/%d)...", attempt, maxRetries)

		resp, err := model.GenerateContent(ctx, parts...)
		if err != nil {
			lastErr = err
			log.Printf("❌ Urinish %d xato: %v", attempt, err)
			if attempt < maxRetries {
				if err := waitRetry(ctx); err != nil {
					return "", err
				}
			}
			continue
		}

		if len(resp.Candidates) == 0 {
			lastErr = fmt.Errorf("no response candidates")
			log.Printf("⚠️ Urinish %d: Javob kandidatlari yo'q", attempt)
			if attempt < maxRetries {
				if err := waitRetry(ctx); err != nil {
					return "", err
				}
			}
			continue
		}

		if resp.Candidates[0].FinishReason != 0 {
			log.Printf("⚠️ Gemini FinishReason: %v", resp.Candidates[0].FinishReason)
			if resp.Candidates[0].FinishReason == 3 { // SAFETY
				log.Printf("🚫 Response blocked by safety filter!")
				return "", errSafetyBlocked
			}
		}

		responseText := extractText(resp)
		if strings.TrimSpace(responseText) == "" {
			lastErr = fmt.Errorf("empty response")
			log.Printf("⚠️ Urinish %d: Bo'sh javob qaytdi", attempt)
			if attempt < maxRetries {
				if err := waitRetry(ctx); err != nil {
					return "", err
				}
			}
			continue
		}

		log.Printf("✅ Javob muvaffaqiyatli olindi (urinish %d)", attempt)
		return responseText, nil
	}

	log.Printf("❌ Barcha %d urinish muvaffaqiyatsiz tugadi", maxRetries)
	if lastErr != nil {
		return "", fmt.Errorf("gemini request failed after %d attempts: %w", maxRetries, lastErr)
	}
	return "", fmt.Errorf("gemini returned no usable response after %d attempts", maxRetries)
}

// waitRetry keyingi urinishdan oldin kutish
func waitRetry(ctx context.Context) error {
	waitDuration := constants.RetryDelay * time.Second
	log.Printf("⏳ %v kutib qayta urinish...", waitDuration)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(waitDuration):
		return nil
	}
}

// historyParts chat tarixini prompt qismlariga aylantirish
func historyParts(history []entity.Message) []genai.Part {
	var parts []genai.Part
	for _, msg := range history {
		if msg.Content == "" {
			continue
		}
		if msg.Role == "assistant" {
			parts = append(parts, genai.Text(fmt.Sprintf("Siz: %s", msg.Content)))
			continue
		}
		parts = append(parts, genai.Text(fmt.Sprintf("Foydalanuvchi: %s", msg.Content)))
	}
	return parts
}

// buildSuggestPrompt byudjet, maqsad va kandidatlar ro'yxatini bitta
// promptga yig'adi. Kandidatlar JSON da: model SKU ni aniq ko'rsin.
func buildSuggestPrompt(req entity.BuildRequest, candidates map[entity.Category][]entity.Product) (string, error) {
	type item struct {
		SKU   string  `json:"sku"`
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	lists := make(map[string][]item, len(candidates))
	for cat, products := range candidates {
		items := make([]item, 0, len(products))
		for _, p := range products {
			items = append(items, item{SKU: p.SKU, Name: p.Name, Price: p.EffectivePrice()})
		}
		lists[string(cat)] = items
	}
	blob, err := json.Marshal(lists)
	if err != nil {
		return "", fmt.Errorf("marshal candidates: %w", err)
	}

	var sb strings.Builder
	if req.Budget > 0 {
		fmt.Fprintf(&sb, "Byudjet: %.0f tenge\n", req.Budget)
	} else if req.Tier != "" {
		fmt.Fprintf(&sb, "Segment: %s\n", req.Tier)
	}
	fmt.Fprintf(&sb, "Maqsad: %s\n", req.Purpose)
	if req.Requirements != "" {
		fmt.Fprintf(&sb, "Talablar: %s\n", req.Requirements)
	}
	sb.WriteString("Kandidatlar:\n")
	sb.Write(blob)
	return sb.String(), nil
}

// stripJSONFences model javobidagi markdown o'rashlarini olib tashlash
func stripJSONFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// extractText javobdan textni ajratib olish
func extractText(resp *genai.GenerateContentResponse) string {
	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				result.WriteString(fmt.Sprintf("%v", part))
			}
		}
	}
	return result.String()
}
