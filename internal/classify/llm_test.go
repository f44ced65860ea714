package classify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// fakeCompleter returns canned responses and records the last request.
type fakeCompleter struct {
	content string
	err     error
	lastReq openai.ChatCompletionRequest
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.content}},
		},
	}, nil
}

func TestNewLLM_MissingKeyFailsAtConstruction(t *testing.T) {
	if _, err := NewLLM("", "", DefaultModel, 0); err == nil {
		t.Fatal("expected error for missing API key")
	}
	if _, err := NewLLM("   ", "", DefaultModel, 0); err == nil {
		t.Fatal("expected error for blank API key")
	}
}

func TestLLM_ParsesContractResponse(t *testing.T) {
	fake := &fakeCompleter{content: `{"category":"PRODUTIVO","confidence":0.876,"reason":"pedido de suporte","suggested_reply":"Olá! Vamos verificar."}`}
	c := NewLLMWithClient(fake, "test-model", time.Second)

	res, err := c.Classify(context.Background(), "preciso suporte urgente")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Category != ActionRequired {
		t.Fatalf("expected PRODUTIVO, got %s", res.Category)
	}
	if res.Confidence != 0.88 {
		t.Fatalf("expected confidence rounded to 0.88, got %v", res.Confidence)
	}
	if res.SuggestedReply != "Olá! Vamos verificar." || res.Reason != "pedido de suporte" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestLLM_RequestCarriesSchemaContract(t *testing.T) {
	fake := &fakeCompleter{content: `{"category":"IMPRODUTIVO","confidence":0.9,"reason":"x","suggested_reply":"y"}`}
	c := NewLLMWithClient(fake, "test-model", time.Second)

	if _, err := c.Classify(context.Background(), "obrigado"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req := fake.lastReq
	if req.ResponseFormat == nil || req.ResponseFormat.Type != openai.ChatCompletionResponseFormatTypeJSONSchema {
		t.Fatal("expected a JSON schema response format")
	}
	if req.ResponseFormat.JSONSchema == nil || req.ResponseFormat.JSONSchema.Name != "email_analysis" {
		t.Fatal("expected the email_analysis schema")
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Fatalf("unexpected message layout: %+v", req.Messages)
	}
}

func TestLLM_TruncatesLongContent(t *testing.T) {
	fake := &fakeCompleter{content: `{"category":"PRODUTIVO","confidence":0.8,"reason":"x","suggested_reply":"y"}`}
	c := NewLLMWithClient(fake, "test-model", time.Second)

	long := strings.Repeat("ação ", 3000) // 15000 runes
	if _, err := c.Classify(context.Background(), long); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	user := fake.lastReq.Messages[1].Content
	if got := len([]rune(user)); got > maxPromptRunes+500 {
		t.Fatalf("user prompt not truncated: %d runes", got)
	}
	if !strings.Contains(user, "ação") {
		t.Fatal("user prompt lost the content")
	}
}

func TestLLM_TransportErrorPropagates(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("dial timeout")}
	c := NewLLMWithClient(fake, "test-model", time.Second)

	if _, err := c.Classify(context.Background(), "qualquer conteúdo"); err == nil {
		t.Fatal("expected transport error to propagate to the orchestrator")
	}
}

func TestLLM_SchemaViolationsAreErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"not json", "desculpe, não posso ajudar"},
		{"unknown category", `{"category":"TALVEZ","confidence":0.5,"reason":"x","suggested_reply":"y"}`},
		{"confidence above one", `{"category":"PRODUTIVO","confidence":1.2,"reason":"x","suggested_reply":"y"}`},
		{"negative confidence", `{"category":"PRODUTIVO","confidence":-0.1,"reason":"x","suggested_reply":"y"}`},
		{"empty reply", `{"category":"PRODUTIVO","confidence":0.5,"reason":"x","suggested_reply":"  "}`},
		{"empty reason", `{"category":"PRODUTIVO","confidence":0.5,"reason":"","suggested_reply":"y"}`},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCompleter{content: tt.content}
			c := NewLLMWithClient(fake, "test-model", time.Second)
			if _, err := c.Classify(context.Background(), "conteúdo de teste"); err == nil {
				t.Fatal("expected schema violation error")
			}
		})
	}
}

func TestLLM_EmptyChoicesIsError(t *testing.T) {
	c := NewLLMWithClient(noChoices{}, "test-model", time.Second)
	if _, err := c.Classify(context.Background(), "conteúdo"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

type noChoices struct{}

func (noChoices) CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return openai.ChatCompletionResponse{}, nil
}
