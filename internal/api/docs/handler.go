package docs

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Mount registers handler on r and records route in b.
// Middlewares wrap only this route.
func Mount(r chi.Router, b *Builder, route Route, handler http.Handler, middlewares ...func(http.Handler) http.Handler) {
	if err := b.Add(route); err != nil {
		// ALLOW-PANIC: route tables are static, a bad annotation is a programming error
		panic(err)
	}
	r.With(middlewares...).Method(route.Method, route.Path, handler)
}

// SpecHandler serves the document as JSON.
func SpecHandler(b *Builder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := b.JSON()
		if err != nil {
			slog.Error("failed to serialize OpenAPI document", "error", err)
			http.Error(w, "failed to render API documentation", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}

var swaggerTemplate = template.Must(template.New("swagger").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <title>{{.Title}}</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
        window.onload = () => {
            window.ui = SwaggerUIBundle({
                url: {{.SpecURL}},
                dom_id: '#swagger-ui',
            });
        };
    </script>
</body>
</html>
`))

// SwaggerUI serves the interactive viewer loading the document at specURL.
func SwaggerUI(title, specURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := swaggerTemplate.Execute(w, struct{ Title, SpecURL string }{title, specURL}); err != nil {
			slog.Error("failed to render swagger ui", "error", fmt.Errorf("swagger template: %w", err))
		}
	}
}
