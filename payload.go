package langfuse

import (
	"fmt"
	"reflect"
	"sync"
)

type payloadField struct {
	index int
	tag   string
}

type payloadSchema struct {
	fields []payloadField
}

var payloadCache sync.Map // reflect.Type -> *payloadSchema

// VariablesFrom builds Variables from a struct whose fields carry `prompt:"name"` tags.
// String fields are used as-is, fmt.Stringer via String, everything else via fmt.Sprint.
// Nil pointer fields are skipped, so their placeholders count as missing.
// Returns ErrInvalidPayload if payload is not a struct (or pointer to one) with at least one tag.
func VariablesFrom(payload any) (Variables, error) {
	if payload == nil {
		return nil, ErrInvalidPayload
	}
	v := reflect.ValueOf(payload)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, ErrInvalidPayload
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: got %T", ErrInvalidPayload, payload)
	}
	schema, err := schemaFor(v.Type())
	if err != nil {
		return nil, err
	}
	vars := make(Variables, len(schema.fields))
	for _, fi := range schema.fields {
		val := v.Field(fi.index)
		if !val.CanInterface() {
			continue
		}
		if val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface {
			if val.IsNil() {
				continue
			}
		}
		vars[fi.tag] = stringify(val.Interface())
	}
	return vars, nil
}

func schemaFor(typ reflect.Type) (*payloadSchema, error) {
	if cached, ok := payloadCache.Load(typ); ok {
		return cached.(*payloadSchema), nil
	}
	schema := &payloadSchema{}
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("prompt")
		if tag == "" || tag == "-" {
			continue
		}
		schema.fields = append(schema.fields, payloadField{index: i, tag: tag})
	}
	if len(schema.fields) == 0 {
		return nil, fmt.Errorf("%w: %s has no prompt tags", ErrInvalidPayload, typ)
	}
	payloadCache.Store(typ, schema)
	return schema, nil
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case *string:
		return *x
	case fmt.Stringer:
		return x.String()
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer {
			return fmt.Sprint(rv.Elem().Interface())
		}
		return fmt.Sprint(v)
	}
}

// CompileStruct is Compile with variables taken from a tagged struct (see VariablesFrom).
func (p *Prompt) CompileStruct(payload any) (string, error) {
	vars, err := VariablesFrom(payload)
	if err != nil {
		return "", err
	}
	return p.Compile(vars)
}
