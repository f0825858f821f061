package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Settings is the bot's configuration document. Its schema belongs to the
// bot; duskboard only reads and writes known key paths and keeps everything
// else untouched.
type Settings map[string]any

// PatchOp sets one dotted key path.
type PatchOp struct {
	Path  string
	Value any
}

// Patch is the partial state produced by parsing a settings form.
type Patch []PatchOp

// ParseSettings decodes a JSON object into Settings. Anything other than an
// object is rejected. Numbers are kept as json.Number so snowflake ids
// survive a round trip.
func ParseSettings(data []byte) (Settings, error) {
	var doc map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, ErrInvalidImport
	}
	if doc == nil {
		return nil, ErrInvalidImport
	}
	return Settings(doc), nil
}

// Get walks a dotted path. Missing or non-object intermediate keys yield
// (nil, false).
func (s Settings) Get(path string) (any, bool) {
	var cur any = map[string]any(s)
	for _, key := range strings.Split(path, ".") {
		obj, ok := asObject(cur)
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Has reports whether path resolves to a non-null value.
func (s Settings) Has(path string) bool {
	v, ok := s.Get(path)
	return ok && v != nil
}

func (s Settings) Bool(path string) bool {
	v, _ := s.Get(path)
	b, _ := v.(bool)
	return b
}

func (s Settings) Text(path string) string {
	v, ok := s.Get(path)
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func (s Settings) Float(path string) float64 {
	v, _ := s.Get(path)
	f, _ := toFloat(v)
	return f
}

func (s Settings) Int(path string) int64 {
	v, _ := s.Get(path)
	switch t := v.(type) {
	case int64:
		return t
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
	}
	return int64(math.Trunc(s.Float(path)))
}

// Slice returns the array at path, or nil.
func (s Settings) Slice(path string) []any {
	v, _ := s.Get(path)
	switch t := v.(type) {
	case []any:
		return t
	case []int64:
		out := make([]any, len(t))
		for i, n := range t {
			out[i] = n
		}
		return out
	case []float64:
		out := make([]any, len(t))
		for i, n := range t {
			out[i] = n
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, n := range t {
			out[i] = n
		}
		return out
	}
	return nil
}

// Set assigns v at path, creating (or replacing non-object) intermediate
// objects as needed.
func (s Settings) Set(path string, v any) {
	keys := strings.Split(path, ".")
	cur := map[string]any(s)
	for _, key := range keys[:len(keys)-1] {
		next, ok := asObject(cur[key])
		if !ok {
			next = map[string]any{}
			cur[key] = next
		}
		cur = next
	}
	cur[keys[len(keys)-1]] = v
}

// SetDefault assigns v only when path is missing or null.
func (s Settings) SetDefault(path string, v any) {
	if !s.Has(path) {
		s.Set(path, v)
	}
}

func (s Settings) Apply(p Patch) {
	for _, op := range p {
		s.Set(op.Path, op.Value)
	}
}

// Clone returns a deep copy.
func (s Settings) Clone() Settings {
	if s == nil {
		return nil
	}
	return Settings(deepCopy(map[string]any(s)).(map[string]any))
}

// MissingPaths returns the subset of paths that do not resolve.
func (s Settings) MissingPaths(paths []string) []string {
	var missing []string
	for _, p := range paths {
		if !s.Has(p) {
			missing = append(missing, p)
		}
	}
	return missing
}

// Merge deep-merges override onto base. Objects merge recursively; arrays and
// scalars from override replace those in base. Neither input is modified.
func Merge(base, override Settings) Settings {
	out := base.Clone()
	if out == nil {
		out = Settings{}
	}
	mergeInto(map[string]any(out), map[string]any(override.Clone()))
	return out
}

func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		srcObj, srcIsObj := asObject(v)
		dstObj, dstIsObj := asObject(dst[k])
		if srcIsObj && dstIsObj {
			mergeInto(dstObj, srcObj)
			continue
		}
		dst[k] = v
	}
}

func asObject(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case Settings:
		return map[string]any(t), true
	}
	return nil, false
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = deepCopy(val)
		}
		return out
	case Settings:
		return deepCopy(map[string]any(t))
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = deepCopy(val)
		}
		return out
	case []int64:
		return append([]int64(nil), t...)
	case []float64:
		return append([]float64(nil), t...)
	case []string:
		return append([]string(nil), t...)
	}
	return v
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}
