package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"eventeditor/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// templateRenderer implements domain.EmailTemplateRenderer using the embedded templates folder.
// A template named "x" consists of x_subject.txt, x.html and x.txt.
type templateRenderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewTemplateRenderer parses the embedded templates once and returns a renderer for them.
func NewTemplateRenderer() (domain.EmailTemplateRenderer, error) {
	html, err := htmltemplate.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}
	text, err := texttemplate.ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("parse text templates: %w", err)
	}
	return &templateRenderer{html: html, text: text}, nil
}

// Render executes the named template (e.g. "notification") with data and returns subject, html, and text bodies.
func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	var buf bytes.Buffer
	if err := r.text.ExecuteTemplate(&buf, templateName+"_subject.txt", data); err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	subject = strings.TrimSpace(buf.String())

	buf.Reset()
	if err := r.html.ExecuteTemplate(&buf, templateName+".html", data); err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	htmlBody = buf.String()

	buf.Reset()
	if err := r.text.ExecuteTemplate(&buf, templateName+".txt", data); err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	textBody = buf.String()
	return subject, htmlBody, textBody, nil
}
