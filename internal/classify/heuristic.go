package classify

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Keyword tables for the offline classifier. Terms are matched by substring
// containment against normalized (lowercased, stopword-free) content, so
// multi-word phrases must not contain stopwords. Initialized once, never
// mutated.
var (
	actionKeywords = []string{
		"erro", "problema", "suporte", "status", "atualização", "prazo",
		"solicito", "solicitação", "chamado", "dúvida", "acesso",
		"urgente", "pendente", "preciso", "falha", "bloqueado", "bloqueio",
		"reembolso", "cobrança", "cancelamento", "senha", "fatura",
		"não consigo", "não funciona", "aguardo retorno", "favor verificar",
	}

	nonActionKeywords = []string{
		"obrigado", "obrigada", "agradec", "grato", "grata", "gratidão",
		"parabéns", "parabeniz", "felicita", "feliz natal", "feliz ano",
		"boas festas", "sucesso", "resolvido", "resolveu", "excelente",
		"ótimo atendimento", "bom trabalho", "aviso", "comunicado",
		"informamos", "informativo", "lembrete", "divulgação",
	}

	gratitudeKeywords = []string{"obrigado", "obrigada", "agradec", "grato", "grata", "gratidão"}
	congratsKeywords  = []string{"parabéns", "parabeniz", "felicita", "feliz natal", "feliz ano", "boas festas"}
	noticeKeywords    = []string{"aviso", "comunicado", "informamos", "informativo", "lembrete", "divulgação"}
)

// Canned replies, one per decision branch.
const (
	replyAction = "Olá! Recebemos sua mensagem e vamos analisar sua solicitação. Retornaremos em breve com uma resposta."

	replyGratitude = "Olá! Ficamos felizes em ajudar. Agradecemos o retorno e seguimos à disposição."
	replyCongrats  = "Olá! Muito obrigado pela mensagem. Seguiremos trabalhando para manter a qualidade do atendimento."
	replyNotice    = "Olá! Obrigado pelo comunicado. A informação foi registrada."
	replyGeneric   = "Olá! Obrigado pelo contato. Esta mensagem não requer ação imediata da nossa parte."

	replyTooShort = "Olá! Sua mensagem parece estar incompleta. Pode nos enviar mais detalhes?"
	replyNoSignal = "Olá! Não identificamos uma solicitação clara na mensagem. Se precisar de algo, é só responder."
)

// minClassifiableRunes is the floor below which content is treated as too
// short to carry a request.
const minClassifiableRunes = 10

// Heuristic is the fallback classifier: fully offline, deterministic, and
// bounded by the input length. It never returns an error.
type Heuristic struct{}

// Classify counts keyword occurrences in each table and decides by which
// side dominates. Confidence starts at 0.3 (no signal) and grows with how
// lopsided the counts are, capped at 0.95. Ties, including zero matches on
// both sides, classify as Informational: when no directional signal exists
// the conservative reading is that no action is demanded.
func (Heuristic) Classify(_ context.Context, content string) (Result, error) {
	trimmed := strings.TrimSpace(content)
	if utf8.RuneCountInString(trimmed) < minClassifiableRunes {
		return Result{
			Category:       Informational,
			SuggestedReply: replyTooShort,
			Confidence:     0.5,
			Reason:         "heurística: conteúdo muito curto para indicar uma solicitação",
		}, nil
	}

	text := strings.ToLower(trimmed)
	action := countMatches(text, actionKeywords)
	nonAction := countMatches(text, nonActionKeywords)

	res := Result{
		Confidence: confidence(action, nonAction),
		Reason: fmt.Sprintf("heurística: %d termos de ação, %d termos informativos",
			action, nonAction),
	}
	switch {
	case nonAction > action:
		res.Category = Informational
		res.SuggestedReply = informationalReply(text)
	case action > nonAction:
		res.Category = ActionRequired
		res.SuggestedReply = replyAction
	default:
		res.Category = Informational
		res.SuggestedReply = replyNoSignal
	}
	return res, nil
}

// countMatches sums substring occurrences of every keyword. A keyword that
// appears several times counts several times; this is containment counting,
// not token-exact matching.
func countMatches(text string, keywords []string) int {
	total := 0
	for _, kw := range keywords {
		total += strings.Count(text, kw)
	}
	return total
}

// confidence maps match counts to [0.3, 0.95]. With no matches at all there
// is no signal and 0.3 is returned directly.
func confidence(action, nonAction int) float64 {
	total := action + nonAction
	if total == 0 {
		return 0.3
	}
	diff := action - nonAction
	if diff < 0 {
		diff = -diff
	}
	c := 0.3 + float64(diff)/float64(total)*0.65
	if c > 0.95 {
		c = 0.95
	}
	return c
}

// informationalReply picks a reply matching the dominant informational
// flavor: gratitude, congratulations, plain notice, or a generic thanks.
func informationalReply(text string) string {
	switch {
	case containsAny(text, gratitudeKeywords):
		return replyGratitude
	case containsAny(text, congratsKeywords):
		return replyCongrats
	case containsAny(text, noticeKeywords):
		return replyNotice
	default:
		return replyGeneric
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
