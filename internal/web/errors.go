package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
)

// errBadRequest marks malformed requests rejected before the pipeline runs.
var errBadRequest = errors.New("requisição inválida")

// errInternal is the opaque detail for unexpected faults; the real cause is
// only logged.
var errInternal = errors.New("erro interno do servidor")

// errorBody is the standardized error payload.
type errorBody struct {
	Error      bool   `json:"error"`
	StatusCode int    `json:"status_code"`
	Detail     string `json:"detail"`
	Message    string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("falha ao serializar resposta")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{
		Error:      true,
		StatusCode: status,
		Detail:     err.Error(),
		Message:    friendlyMessage(status),
	})
}

// friendlyMessage maps status codes to user-facing guidance, keeping
// internal detail out of 500 responses.
func friendlyMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Requisição inválida. Verifique os parâmetros enviados."
	case http.StatusRequestEntityTooLarge:
		return "Arquivo muito grande. Envie um arquivo menor."
	case http.StatusInternalServerError:
		return "Erro interno do servidor. Tente novamente mais tarde."
	case http.StatusServiceUnavailable:
		return "Serviço indisponível. Tente novamente em alguns momentos."
	default:
		return "Ocorreu um erro. Tente novamente."
	}
}
