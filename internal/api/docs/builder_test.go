package docs

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder() *Builder {
	return NewBuilder(Info{Title: "Test API", Version: "1.0.0"}, Server{URL: "http://localhost:3000"})
}

func TestBuilder_Add(t *testing.T) {
	b := newTestBuilder()

	require.NoError(t, b.Add(Route{
		Method:  http.MethodGet,
		Path:    "/users/{id}",
		Summary: "Get user",
		Tags:    []string{"users"},
		Params:  []Param{{Name: "id", Description: "User id", Example: "abc"}},
		Outcomes: []Outcome{
			{Status: http.StatusOK, Description: "found", Body: sampleUser{ID: "abc", Name: "Mona", Age: 20}},
			{Status: http.StatusNotFound},
		},
	}))
	require.NoError(t, b.Add(Route{
		Method:   http.MethodPost,
		Path:     "/users",
		Request:  sampleRequest{Name: "Mona", Email: "mona@gmail.com", Age: 20},
		Outcomes: []Outcome{{Status: http.StatusCreated, Body: sampleUser{}}},
	}))

	doc := b.Document()
	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Equal(t, []string{"/users", "/users/{id}"}, b.Paths())

	get := doc.Paths["/users/{id}"].Get
	require.NotNil(t, get)
	assert.Equal(t, "getUsersById", get.OperationID)
	require.Len(t, get.Parameters, 1)
	assert.Equal(t, "path", get.Parameters[0].In)
	assert.True(t, get.Parameters[0].Required)
	assert.Equal(t, "User id", get.Parameters[0].Description)
	assert.Equal(t, "Not Found", get.Responses["404"].Description)
	assert.Equal(t, "#/components/schemas/sampleUser", get.Responses["200"].Content["application/json"].Schema.Ref)

	post := doc.Paths["/users"].Post
	require.NotNil(t, post)
	require.NotNil(t, post.RequestBody)
	assert.Equal(t, "#/components/schemas/sampleRequest", post.RequestBody.Content["application/json"].Schema.Ref)

	assert.Contains(t, doc.Components.Schemas, "sampleUser")
	assert.Contains(t, doc.Components.Schemas, "sampleRequest")
}

func TestBuilder_ChiRegexParams(t *testing.T) {
	b := newTestBuilder()
	require.NoError(t, b.Add(Route{Method: http.MethodDelete, Path: "/items/{id:[0-9]+}"}))

	item := b.Document().Paths["/items/{id}"]
	require.NotNil(t, item)
	require.NotNil(t, item.Delete)
	assert.Equal(t, "id", item.Delete.Parameters[0].Name)
	assert.Contains(t, item.Delete.Responses, "default")
}

func TestBuilder_UnsupportedMethod(t *testing.T) {
	assert.Error(t, newTestBuilder().Add(Route{Method: "TRACE", Path: "/x"}))
}

func TestBuilder_JSON(t *testing.T) {
	b := newTestBuilder()
	b.AddTag("users", "User management")
	require.NoError(t, b.Add(Route{Method: http.MethodGet, Path: "/users", Outcomes: []Outcome{{Status: 200, Body: []sampleUser{}}}}))

	raw, err := b.JSON()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, jsoniter.Unmarshal(raw, &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])
	assert.Contains(t, doc["paths"], "/users")
	info := doc["info"].(map[string]any)
	assert.Equal(t, "Test API", info["title"])
}

func TestMountAndHandlers(t *testing.T) {
	b := newTestBuilder()
	r := chi.NewRouter()

	var middlewareRan bool
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			middlewareRan = true
			next.ServeHTTP(w, r)
		})
	}

	Mount(r, b, Route{Method: http.MethodGet, Path: "/ping"}, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}), mw)
	r.Get("/docs/openapi.json", SpecHandler(b))
	r.Get("/docs/", SwaggerUI("Test API", "/docs/openapi.json"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.True(t, middlewareRan)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/openapi.json", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"/ping"`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "SwaggerUIBundle")
	assert.Contains(t, rec.Body.String(), "<title>Test API</title>")
}

func TestMount_PanicsOnBadRoute(t *testing.T) {
	assert.Panics(t, func() {
		Mount(chi.NewRouter(), newTestBuilder(), Route{Method: "TRACE", Path: "/x"}, http.NotFoundHandler())
	})
}
