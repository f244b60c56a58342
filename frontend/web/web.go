// Package web holds the frontend's templates, static assets and page content.
package web

import "embed"

//go:embed templates/*.html static content/*.md
var FS embed.FS
