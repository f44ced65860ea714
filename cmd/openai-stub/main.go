// Command openai-stub is a minimal OpenAI-compatible server for local
// development and integration testing. It answers the email classification
// prompt with schema-valid JSON, deciding the category by a crude keyword
// scan so demos behave plausibly without a real backend.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func main() {
	model := os.Getenv("MODEL_ID")
	if strings.TrimSpace(model) == "" {
		model = "test-model"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"id": model, "object": "model"}},
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		user := ""
		if len(req.Messages) >= 2 {
			user = strings.ToLower(req.Messages[1].Content)
		}

		answer := map[string]any{
			"category":        "IMPRODUTIVO",
			"confidence":      0.8,
			"reason":          "stub: nenhum pedido identificado",
			"suggested_reply": "Olá! Obrigado pela mensagem.",
		}
		for _, kw := range []string{"problema", "erro", "suporte", "solicito", "prazo", "dúvida", "acesso"} {
			if strings.Contains(user, kw) {
				answer = map[string]any{
					"category":        "PRODUTIVO",
					"confidence":      0.9,
					"reason":          "stub: pedido identificado por palavra-chave",
					"suggested_reply": "Olá! Recebemos sua solicitação e vamos analisá-la.",
				}
				break
			}
		}

		content, _ := json.Marshal(answer)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-stub",
			"object": "chat.completion",
			"model":  model,
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": string(content),
				},
			}},
		})
	})

	log.Printf("openai-stub listening on %s (model %s)", addr, model)
	log.Fatal(http.ListenAndServe(addr, mux))
}
