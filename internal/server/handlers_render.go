package server

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/resumeforge/resume-maker/internal/render"
)

// TemplateInfo describes one built-in resume template.
type TemplateInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var templateCatalog = []TemplateInfo{
	{ID: "classic", Name: "Classic", Description: "Serif single-column layout with centered contact block"},
	{ID: "modern", Name: "Modern", Description: "Sans-serif layout with an accent color and bold headings"},
	{ID: "minimal", Name: "Minimal", Description: "Sparse monochrome layout with generous whitespace"},
	{ID: "compact", Name: "Compact", Description: "Dense small-type layout that fits more on one page"},
}

// handleListTemplates lists the built-in templates.
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"templates": templateCatalog,
		"default":   render.DefaultTemplateID,
	})
}

// templateForRequest picks the template: the ?template= override wins,
// then the resume's stored choice, then the default.
func templateForRequest(r *http.Request, stored string) string {
	if t := r.URL.Query().Get("template"); t != "" {
		return t
	}
	if stored != "" {
		return stored
	}
	return render.DefaultTemplateID
}

// handlePreview renders the resume as HTML.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	res, err := s.ownedResume(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	html, err := s.renderer.Render(res, templateForRequest(r, res.TemplateID))
	if err != nil {
		s.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := fmt.Fprint(w, html); err != nil {
		log.Printf("Failed to write preview response: %v", err)
	}
}

// handleExport renders the resume to PDF. The PDF is fully buffered before
// any byte is written, so clients never receive a truncated document.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	res, err := s.ownedResume(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	pdf, err := s.exporter.ExportPDF(r.Context(), res, templateForRequest(r, res.TemplateID))
	if err != nil {
		s.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("resume-%s.pdf", res.ID)))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	if _, err := w.Write(pdf); err != nil {
		log.Printf("Failed to write PDF response: %v", err)
	}
}
