// Package form flattens nested field structures into x-www-form-urlencoded
// bodies, the request format the payment processor's REST API expects.
package form

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// maxDepth bounds traversal so cyclic or absurdly deep input fails fast
// instead of exhausting the stack.
const maxDepth = 32

// Dict is an ordered field list. Go maps would scramble field order, and the
// processor treats order as significant for indexed array fields.
type Dict []Field

type Field struct {
	Key   string
	Value any
}

// Pair is a single flattened key-path/value field.
type Pair struct {
	Key   string
	Value string
}

// Encode flattens d and renders it as a form-encoded request body, keeping
// the fields in insertion order.
func Encode(d Dict) (string, error) {
	pairs, err := Flatten(d)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String(), nil
}

// Flatten turns nested dicts and slices into flat key paths: nested dict keys
// become parent[child], slice elements parent[0], parent[1], and so on.
// Nil values are dropped entirely rather than sent as empty fields.
func Flatten(d Dict) ([]Pair, error) {
	var out []Pair
	for _, f := range d {
		if err := flatten(f.Key, f.Value, 1, &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func flatten(key string, value any, depth int, out *[]Pair) error {
	if depth > maxDepth {
		return fmt.Errorf("form: field %q nested deeper than %d levels", key, maxDepth)
	}

	switch v := value.(type) {
	case nil:
		return nil
	case Dict:
		for _, f := range v {
			if err := flatten(key+"["+f.Key+"]", f.Value, depth+1, out); err != nil {
				return err
			}
		}
	case []any:
		for i, elem := range v {
			if err := flatten(key+"["+strconv.Itoa(i)+"]", elem, depth+1, out); err != nil {
				return err
			}
		}
	case string:
		*out = append(*out, Pair{Key: key, Value: v})
	case bool:
		*out = append(*out, Pair{Key: key, Value: strconv.FormatBool(v)})
	case int:
		*out = append(*out, Pair{Key: key, Value: strconv.Itoa(v)})
	case int64:
		*out = append(*out, Pair{Key: key, Value: strconv.FormatInt(v, 10)})
	case float64:
		*out = append(*out, Pair{Key: key, Value: strconv.FormatFloat(v, 'f', -1, 64)})
	default:
		return fmt.Errorf("form: unsupported value type %T for field %q", value, key)
	}
	return nil
}
