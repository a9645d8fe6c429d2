package docstore

import (
	"encoding/json"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrNotFound        = errors.New("document not found")
	ErrConflict        = errors.New("document conflicts with an existing one")
	ErrUnknownResource = errors.New("unknown resource")
)

// Resources served by the document service.
var Resources = []string{"users", "courses", "bookings", "services"}

// Document is one schemaless JSON record. The "id" key is owned by the store.
type Document map[string]any

func (d Document) ID() (int64, bool) {
	return toInt64(d["id"])
}

// body returns a copy of d without the id key.
func (d Document) body() Document {
	out := make(Document, len(d))
	for k, v := range d {
		if k != "id" {
			out[k] = v
		}
	}
	return out
}

func (d Document) withID(id int64) Document {
	out := d.body()
	out["id"] = id
	return out
}

// Filter is an equality constraint on a top-level field.
type Filter struct {
	Field string
	Value string
}

type Query struct {
	Filters []Filter
	Search  string
}

// ParseQuery turns json-server style query parameters into a Query. Keys
// starting with an underscore are reserved and ignored here; "q" is the
// free-text search token.
func ParseQuery(values url.Values) Query {
	var q Query
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := values.Get(k)
		switch {
		case k == "q":
			q.Search = v
		case strings.HasPrefix(k, "_"):
		default:
			q.Filters = append(q.Filters, Filter{Field: k, Value: v})
		}
	}
	return q
}

// UniqueKey declares a set of fields whose combined values may appear at most
// once in a resource.
type UniqueKey struct {
	Resource string
	Fields   []string
	Fold     bool
}

// DefaultUniqueKeys are the constraints the Postgres migrations create as
// unique indexes.
var DefaultUniqueKeys = []UniqueKey{
	{Resource: "bookings", Fields: []string{"userId", "courseId", "bookingDate", "bookingTime"}},
	{Resource: "users", Fields: []string{"email"}, Fold: true},
}

func (k UniqueKey) value(d Document) (string, bool) {
	parts := make([]string, 0, len(k.Fields))
	for _, f := range k.Fields {
		v, ok := d[f]
		if !ok || v == nil {
			return "", false
		}
		s := fieldString(v)
		if k.Fold {
			s = strings.ToLower(s)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "\x00"), true
}

// fieldString renders a decoded JSON value the way Postgres ->> does.
func fieldString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case float64:
		return int64(t), t == float64(int64(t))
	case json.Number:
		n, err := t.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func isResource(name string) bool {
	for _, r := range Resources {
		if r == name {
			return true
		}
	}
	return false
}
