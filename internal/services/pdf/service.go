package pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/valuelens/internal/models"
	"github.com/ternarybob/valuelens/internal/services/report"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Service renders evaluation reports to PDF
type Service struct {
	logger arbor.ILogger
}

// NewService creates a new PDF service
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		logger: logger,
	}
}

// RenderEvaluation renders a full evaluation report to PDF bytes
func (s *Service) RenderEvaluation(r *models.EvaluationReport) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("evaluation report is nil")
	}
	return s.ConvertMarkdownToPDF(report.Markdown(r), report.Title(r))
}

// WriteEvaluation renders r and writes it to path, creating parent directories
func (s *Service) WriteEvaluation(r *models.EvaluationReport, path string) error {
	content, err := s.RenderEvaluation(r)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	s.logger.Info().Str("path", path).Int("bytes", len(content)).Msg("Evaluation PDF written")
	return nil
}

// ConvertMarkdownToPDF converts markdown content to a PDF byte slice.
// The title is stored in the document properties and printed in the footer.
func (s *Service) ConvertMarkdownToPDF(markdown, title string) ([]byte, error) {
	s.logger.Debug().
		Int("markdown_len", len(markdown)).
		Str("title", title).
		Msg("Converting markdown to PDF")

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(15, 15, 15)
	doc.SetAutoPageBreak(true, 15)
	doc.SetTitle(title, true)
	doc.SetCreator("ValueLens", true)

	// Core fonts are cp1252; translate UTF-8 input
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFooterFunc(func() {
		doc.SetY(-12)
		doc.SetFont("Arial", "I", 7)
		doc.SetTextColor(120, 120, 120)
		doc.CellFormat(0, 5, tr(title), "", 0, "L", false, 0, "")
		doc.CellFormat(0, 5, fmt.Sprintf("Page %d", doc.PageNo()), "", 0, "R", false, 0, "")
		doc.SetTextColor(0, 0, 0)
	})
	doc.AddPage()
	doc.SetFont("Arial", "", 10)

	md := goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough))
	source := []byte(markdown)
	root := md.Parser().Parse(text.NewReader(source))

	r := &renderer{pdf: doc, source: source, tr: tr, size: 10}
	if err := r.render(root); err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate PDF")
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate PDF output")
		return nil, fmt.Errorf("failed to generate PDF output: %w", err)
	}

	s.logger.Debug().Int("pdf_size", buf.Len()).Msg("PDF generated successfully")
	return buf.Bytes(), nil
}
