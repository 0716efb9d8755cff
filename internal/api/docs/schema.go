package docs

import (
	"reflect"
	"strconv"
	"strings"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// SchemaFor reflects a JSON schema from v's struct tags.
//
//	json      property name; "-" skips the field, omitempty makes it optional
//	validate  "required" marks the field required, gt=N / gte=N / min=N set bounds
//	example   example value, converted to the field's JSON type
//	format    schema format (uuid, email, date-time, ...)
//
// Nested structs are inlined.
func SchemaFor(v any) *Schema {
	return reflector{}.schemaFor(v)
}

// reflector turns Go types into schemas. When components is non-nil, named
// struct types are stored there and referenced with $ref.
type reflector struct {
	components map[string]*Schema
}

func (rf reflector) schemaFor(v any) *Schema {
	t := reflect.TypeOf(v)
	if t == nil {
		return &Schema{}
	}
	return rf.schemaForType(t)
}

func (rf reflector) schemaForType(t reflect.Type) *Schema {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch {
	case t == timeType:
		return &Schema{Type: "string", Format: "date-time"}
	case t.Kind() == reflect.Struct:
		if rf.components == nil || t.Name() == "" {
			return rf.structSchema(t)
		}
		if _, ok := rf.components[t.Name()]; !ok {
			// Reserve the name first so recursive types terminate.
			rf.components[t.Name()] = &Schema{}
			*rf.components[t.Name()] = *rf.structSchema(t)
		}
		return &Schema{Ref: "#/components/schemas/" + t.Name()}
	case t.Kind() == reflect.Slice || t.Kind() == reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return &Schema{}
		}
		return &Schema{Type: "array", Items: rf.schemaForType(t.Elem())}
	case t.Kind() == reflect.Map:
		return &Schema{Type: "object"}
	case t.Kind() == reflect.Interface:
		return &Schema{}
	default:
		return &Schema{Type: jsonType(t)}
	}
}

func (rf reflector) structSchema(t reflect.Type) *Schema {
	schema := &Schema{Type: "object", Properties: make(map[string]*Schema)}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, omitEmpty, skip := jsonName(field)
		if skip {
			continue
		}

		fieldSchema := rf.schemaForType(field.Type)
		if fieldSchema.Ref != "" {
			schema.Properties[name] = fieldSchema
			if !omitEmpty {
				schema.Required = append(schema.Required, name)
			}
			continue
		}
		if format := field.Tag.Get("format"); format != "" {
			fieldSchema.Format = format
		}
		if example, ok := field.Tag.Lookup("example"); ok {
			fieldSchema.Example = parseExample(example, fieldSchema.Type)
		}

		required := applyValidateTag(fieldSchema, field.Tag.Get("validate"))
		if required || (!omitEmpty && field.Tag.Get("validate") == "" && field.Type.Kind() != reflect.Ptr) {
			schema.Required = append(schema.Required, name)
		}

		schema.Properties[name] = fieldSchema
	}

	return schema
}

func jsonName(field reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = field.Name
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

// applyValidateTag copies the rules the viewer can display and reports
// whether the field is required.
func applyValidateTag(s *Schema, tag string) bool {
	required := false
	for _, rule := range strings.Split(tag, ",") {
		key, value, _ := strings.Cut(rule, "=")
		switch key {
		case "required":
			required = true
		case "gt", "gte":
			n, err := strconv.ParseFloat(value, 64)
			if err != nil {
				continue
			}
			s.Minimum = &n
			s.ExclusiveMinimum = key == "gt"
		case "min":
			n, err := strconv.Atoi(value)
			if err != nil {
				continue
			}
			if s.Type == "string" {
				s.MinLength = &n
			} else {
				f := float64(n)
				s.Minimum = &f
			}
		case "email":
			s.Format = "email"
		case "uuid", "uuid4":
			s.Format = "uuid"
		}
	}
	return required
}

func parseExample(raw, typ string) any {
	switch typ {
	case "integer":
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
	case "number":
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case "boolean":
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	}
	return raw
}

func jsonType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	default:
		return "object"
	}
}
