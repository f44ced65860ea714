package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ChatCompleter is the minimal transport needed to call a chat model. It
// mirrors the single method used from go-openai so tests and local stubs
// can stand in for the real backend.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// maxPromptRunes bounds how much content is sent to the model. Longer
// emails are classified on their first maxPromptRunes characters only; a
// deliberate cost and latency bound.
const maxPromptRunes = 6000

// DefaultModel is used when no model id is configured.
const DefaultModel = "gpt-4.1-mini"

// DefaultTimeout bounds a single inference call. Anything slower is treated
// as a failure and routed to the fallback by the orchestrator.
const DefaultTimeout = 20 * time.Second

const systemPrompt = `Você é um classificador de emails corporativos em pt-BR.

Definições:
- PRODUTIVO: requer ação, decisão, resposta específica ou acompanhamento.
- IMPRODUTIVO: não requer ação imediata (agradecimento, felicitação, aviso sem demanda).

Regras:
- Baseie-se apenas no conteúdo fornecido.
- Não invente dados (nomes, prazos, protocolos).
- Seja objetivo.
- A resposta sugerida deve ser educada, curta e útil.
- Retorne APENAS um JSON válido conforme o schema.`

// responseSchema constrains the model output to the classification
// contract: the exact category enum, a bounded confidence, and non-empty
// reason and reply strings.
var responseSchema = json.RawMessage(`{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "category": {"type": "string", "enum": ["PRODUTIVO", "IMPRODUTIVO"]},
    "confidence": {"type": "number", "minimum": 0, "maximum": 1},
    "reason": {"type": "string", "minLength": 1},
    "suggested_reply": {"type": "string", "minLength": 1}
  },
  "required": ["category", "confidence", "reason", "suggested_reply"]
}`)

// LLM classifies through an OpenAI-compatible chat endpoint with a strict
// JSON schema response contract. A single attempt per call, no retry: any
// failure is returned to the caller, which is expected to fall back.
type LLM struct {
	client  ChatCompleter
	model   string
	timeout time.Duration
}

// NewLLM builds the primary classifier. A missing API key is a
// construction-time error so the absence of credentials surfaces once at
// startup instead of on every request. baseURL is optional and points the
// client at a compatible local backend when set.
func NewLLM(apiKey, baseURL, model string, timeout time.Duration) (*LLM, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("chave de API do LLM não configurada")
	}
	cfg := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = baseURL
	}
	return NewLLMWithClient(openai.NewClientWithConfig(cfg), model, timeout), nil
}

// NewLLMWithClient wires an existing transport; used by tests.
func NewLLMWithClient(client ChatCompleter, model string, timeout time.Duration) *LLM {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &LLM{client: client, model: model, timeout: timeout}
}

type llmPayload struct {
	Category       string  `json:"category"`
	Confidence     float64 `json:"confidence"`
	Reason         string  `json:"reason"`
	SuggestedReply string  `json:"suggested_reply"`
}

// Classify sends truncated content to the model and parses the structured
// answer. Schema violations are errors: the orchestrator never sees a
// partially filled Result.
func (c *LLM) Classify(ctx context.Context, content string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(truncateRunes(content, maxPromptRunes))},
		},
		Temperature: 0.2,
		N:           1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "email_analysis",
				Schema: responseSchema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("chamada ao LLM: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Result{}, errors.New("resposta do LLM sem escolhas")
	}

	var payload llmPayload
	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return Result{}, fmt.Errorf("resposta do LLM fora do contrato: %w", err)
	}
	return payload.toResult()
}

func (p llmPayload) toResult() (Result, error) {
	category := Category(p.Category)
	if category != ActionRequired && category != Informational {
		return Result{}, fmt.Errorf("categoria inválida %q", p.Category)
	}
	if p.Confidence < 0 || p.Confidence > 1 {
		return Result{}, fmt.Errorf("confiança fora do intervalo: %v", p.Confidence)
	}
	if strings.TrimSpace(p.SuggestedReply) == "" {
		return Result{}, errors.New("resposta sugerida vazia")
	}
	if strings.TrimSpace(p.Reason) == "" {
		return Result{}, errors.New("justificativa vazia")
	}
	return Result{
		Category:       category,
		SuggestedReply: p.SuggestedReply,
		Confidence:     math.Round(p.Confidence*100) / 100,
		Reason:         p.Reason,
	}, nil
}

func buildUserPrompt(content string) string {
	var sb strings.Builder
	sb.WriteString("Classifique o email e gere uma resposta automática adequada.\n\nEmail:\n\"\"\"")
	sb.WriteString(content)
	sb.WriteString("\"\"\"\n\nCritérios:\n")
	sb.WriteString("- Se houver pedido, dúvida, problema, cobrança, solicitação de status/acesso: PRODUTIVO.\n")
	sb.WriteString("- Se for apenas agradecimento/felicitação/aviso sem demanda: IMPRODUTIVO.\n\n")
	sb.WriteString("Retorne os campos do schema.")
	return sb.String()
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
