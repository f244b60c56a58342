package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"

	frontend_domain "github.com/admissible-dev/admissible-demo/frontend/internal/domain"
	"github.com/admissible-dev/admissible-demo/frontend/internal/middleware"
	"github.com/admissible-dev/admissible-demo/shared/logger"
)

const baseTemplate = "base.html"

// TemplateData wraps page-specific data with common template data.
// Templates access page data via .Data and common data via .Common.
type TemplateData struct {
	Data   any
	Common frontend_domain.CommonTemplateData
}

// LoadTemplates parses every page in dir of fsys together with the base layout.
func LoadTemplates(fsys fs.FS, dir string) (map[string]*template.Template, error) {
	pages, err := fs.Glob(fsys, path.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		name := path.Base(page)
		if name == baseTemplate {
			continue
		}
		tmpl, err := template.New(baseTemplate).ParseFS(fsys, path.Join(dir, baseTemplate), page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		templates[name] = tmpl
	}
	return templates, nil
}

func (h *Handler) initCommonTemplateData(r *http.Request) frontend_domain.CommonTemplateData {
	return frontend_domain.CommonTemplateData{
		CSRFToken: middleware.GetCSRFTokenFromContext(r),
	}
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	h.renderTemplateWithError(w, r, name, data, "")
}

func (h *Handler) renderTemplateWithError(w http.ResponseWriter, r *http.Request, name string, data any, errMsg string) {
	tmpl, ok := h.Templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	common := h.initCommonTemplateData(r)
	common.Error = errMsg

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, TemplateData{Data: data, Common: common}); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}
