package docs

import (
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

var pathParamRegex = regexp.MustCompile(`\{([^}:]+)(?::[^}]*)?\}`)

// Param annotates a path parameter.
type Param struct {
	Name        string
	Description string
	Example     any
}

// Outcome annotates one response of a route. Body is an example value; its
// type provides the schema.
type Outcome struct {
	Status      int
	Description string
	Body        any
}

// Route is the annotation carried by each route registration.
type Route struct {
	Method      string
	Path        string
	Summary     string
	Description string
	Tags        []string
	Params      []Param
	// Request is an example request body; nil when the route takes none.
	Request  any
	Outcomes []Outcome
}

// Builder accumulates route annotations into a Document.
type Builder struct {
	mu  sync.RWMutex
	doc *Document
	rf  reflector
}

// NewBuilder creates a builder for an API described by info.
func NewBuilder(info Info, servers ...Server) *Builder {
	components := make(map[string]*Schema)
	return &Builder{
		doc: &Document{
			OpenAPI:    "3.0.3",
			Info:       info,
			Servers:    servers,
			Paths:      make(map[string]*PathItem),
			Components: Components{Schemas: components},
		},
		rf: reflector{components: components},
	}
}

// AddTag describes a tag used by routes.
func (b *Builder) AddTag(name, description string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.doc.Tags = append(b.doc.Tags, Tag{Name: name, Description: description})
}

// Add records a route. chi-style patterns such as {id} or {id:[0-9]+} are
// accepted; regex constraints are dropped from the documented path.
func (b *Builder) Add(route Route) error {
	path := pathParamRegex.ReplaceAllString(route.Path, "{$1}")

	b.mu.Lock()
	defer b.mu.Unlock()

	item, ok := b.doc.Paths[path]
	if !ok {
		item = &PathItem{}
		b.doc.Paths[path] = item
	}

	op := b.operation(route, path)
	switch strings.ToUpper(route.Method) {
	case http.MethodGet:
		item.Get = op
	case http.MethodPost:
		item.Post = op
	case http.MethodPut:
		item.Put = op
	case http.MethodDelete:
		item.Delete = op
	case http.MethodPatch:
		item.Patch = op
	default:
		return fmt.Errorf("unsupported method %q for %s", route.Method, route.Path)
	}
	return nil
}

func (b *Builder) operation(route Route, path string) *Operation {
	op := &Operation{
		Summary:     route.Summary,
		Description: route.Description,
		Tags:        route.Tags,
		OperationID: operationID(route.Method, path),
		Responses:   make(map[string]*Response),
	}

	annotated := make(map[string]Param, len(route.Params))
	for _, p := range route.Params {
		annotated[p.Name] = p
	}
	for _, m := range pathParamRegex.FindAllStringSubmatch(path, -1) {
		p := annotated[m[1]]
		op.Parameters = append(op.Parameters, Parameter{
			Name:        m[1],
			In:          "path",
			Description: p.Description,
			Required:    true,
			Schema:      &Schema{Type: "string"},
			Example:     p.Example,
		})
	}

	if route.Request != nil {
		op.RequestBody = &RequestBody{
			Required: true,
			Content: map[string]MediaType{
				"application/json": {Schema: b.rf.schemaFor(route.Request), Example: route.Request},
			},
		}
	}

	for _, o := range route.Outcomes {
		resp := &Response{Description: o.Description}
		if resp.Description == "" {
			resp.Description = http.StatusText(o.Status)
		}
		if o.Body != nil {
			resp.Content = map[string]MediaType{
				"application/json": {Schema: b.rf.schemaFor(o.Body), Example: o.Body},
			}
		}
		op.Responses[strconv.Itoa(o.Status)] = resp
	}
	if len(op.Responses) == 0 {
		op.Responses["default"] = &Response{Description: "Response"}
	}

	return op
}

// operationID derives a stable id such as "getUsersById".
func operationID(method, path string) string {
	var sb strings.Builder
	sb.WriteString(strings.ToLower(method))
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		if m := pathParamRegex.FindStringSubmatch(seg); m != nil {
			sb.WriteString("By")
			seg = m[1]
		}
		sb.WriteString(strings.ToUpper(seg[:1]) + seg[1:])
	}
	return sb.String()
}

// Document returns the document built so far.
func (b *Builder) Document() *Document {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.doc
}

// Paths lists documented paths in sorted order.
func (b *Builder) Paths() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	paths := make([]string, 0, len(b.doc.Paths))
	for p := range b.doc.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// JSON serializes the document.
func (b *Builder) JSON() ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(b.doc, "", "  ")
}
