package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Sentinel errors for the extraction contract. Callers map these to
// caller-facing failures; anything else is an internal fault.
var (
	// ErrUnsupportedFormat indicates the upload's extension is not handled.
	ErrUnsupportedFormat = errors.New("formato inválido. Envie no formato .txt ou .pdf")
	// ErrContentEmpty indicates the upload decoded to no usable text.
	ErrContentEmpty = errors.New("conteúdo do email está vazio")
	// ErrUnreadableDocument indicates the byte stream could not be parsed.
	ErrUnreadableDocument = errors.New("não foi possível ler o documento")
)

// Upload is a raw file submission: a declared name plus its bytes.
type Upload struct {
	Filename string
	Data     []byte
}

// Text extracts UTF-8 text from an upload. Handling is decided by the
// case-insensitive filename suffix, not by MIME sniffing: .txt is decoded
// losslessly where possible (invalid byte sequences are dropped, never
// fatal), .pdf is parsed in-process with page texts joined by single
// newlines in document order. The result is trimmed and never empty; empty
// output is reported as ErrContentEmpty instead. No disk, exec or network
// side effects.
func Text(up Upload) (string, error) {
	name := strings.ToLower(strings.TrimSpace(up.Filename))
	switch {
	case strings.HasSuffix(name, ".txt"):
		return textFromPlain(up.Data)
	case strings.HasSuffix(name, ".pdf"):
		return textFromPDF(up.Data)
	default:
		return "", ErrUnsupportedFormat
	}
}

func textFromPlain(data []byte) (string, error) {
	text := strings.TrimSpace(strings.ToValidUTF8(string(data), ""))
	if text == "" {
		return "", fmt.Errorf("arquivo .txt vazio: %w", ErrContentEmpty)
	}
	return text, nil
}

func textFromPDF(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("arquivo .pdf vazio: %w", ErrUnreadableDocument)
	}
	text, err := pdfPages(data)
	if err != nil {
		return "", fmt.Errorf("falha ao ler o PDF: %v: %w", err, ErrUnreadableDocument)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("não foi possível extrair o texto do PDF (pode ser imagem/escaneado): %w", ErrContentEmpty)
	}
	return text, nil
}

// pdfPages concatenates the plain text of every page, separated by a single
// newline. Parser panics are converted to errors: the library can panic on
// malformed cross-reference tables, and a corrupt upload must surface as
// ErrUnreadableDocument rather than take down the request.
func pdfPages(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parse panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not discard the rest of the
			// document; it contributes no text.
			content = ""
		}
		pages = append(pages, content)
	}
	return strings.Join(pages, "\n"), nil
}
