package settings

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/lcalzada-xor/duskboard/internal/core/domain"
)

// FieldKind selects how a field is rendered and parsed.
type FieldKind string

const (
	FieldToggle     FieldKind = "toggle"
	FieldInt        FieldKind = "int"
	FieldFloat      FieldKind = "float"
	FieldText       FieldKind = "text"
	FieldPassword   FieldKind = "password"
	FieldColor      FieldKind = "color"
	FieldSelect     FieldKind = "select"
	FieldIntRange   FieldKind = "intRange"
	FieldFloatRange FieldKind = "floatRange"
	FieldIntList    FieldKind = "intList"
	FieldStringList FieldKind = "stringList"
)

// Field binds one form control to a settings key path. The form name is the
// key path; range fields submit "{path}_min" and "{path}_max".
type Field struct {
	Path    string
	Label   string
	Kind    FieldKind
	Hint    string
	Options []string

	// Default is used when a numeric value fails to parse. Ranges take a
	// two-element slice of the matching type.
	Default any

	// Validate is an extra check for text fields.
	Validate func(string) bool
}

func (f Field) minName() string { return f.Path + "_min" }
func (f Field) maxName() string { return f.Path + "_max" }

// parse turns submitted values into a patch op. ok is false when the form did
// not carry the field at all.
func (f Field) parse(form map[string][]string) (op domain.PatchOp, ok bool, err error) {
	get := func(name string) (string, bool) {
		vals, present := form[name]
		if !present || len(vals) == 0 {
			return "", false
		}
		return vals[0], true
	}

	op.Path = f.Path
	switch f.Kind {
	case FieldToggle:
		// unchecked boxes are not submitted
		raw, present := get(f.Path)
		op.Value = present && raw != "false" && raw != "off" && raw != "0"
		return op, true, nil

	case FieldIntRange, FieldFloatRange:
		lo, hasLo := get(f.minName())
		hi, hasHi := get(f.maxName())
		if !hasLo && !hasHi {
			return op, false, nil
		}
		pair := make([]any, 2)
		for i, raw := range []string{lo, hi} {
			v, err := f.parseNumber(raw, i)
			if err != nil {
				return op, false, err
			}
			pair[i] = v
		}
		op.Value = pair
		return op, true, nil
	}

	raw, present := get(f.Path)
	if !present {
		return op, false, nil
	}

	switch f.Kind {
	case FieldInt, FieldFloat:
		v, err := f.parseNumber(raw, -1)
		if err != nil {
			return op, false, err
		}
		op.Value = v
	case FieldIntList:
		op.Value = toAnySlice(domain.ParseIDList(raw))
	case FieldStringList:
		op.Value = toAnySlice(domain.ParseStringList(raw))
	case FieldColor:
		if !domain.IsValidHexColor(raw) {
			return op, false, f.invalid(raw)
		}
		op.Value = raw
	case FieldSelect:
		if !contains(f.Options, raw) {
			return op, false, f.invalid(raw)
		}
		op.Value = raw
	default:
		if f.Kind == FieldText {
			raw = strings.TrimSpace(raw)
		}
		if f.Validate != nil && !f.Validate(raw) {
			return op, false, f.invalid(raw)
		}
		op.Value = raw
	}
	return op, true, nil
}

// parseNumber parses raw as the field's number type. idx selects the range
// element of Default, or -1 for scalar fields.
func (f Field) parseNumber(raw string, idx int) (any, error) {
	raw = strings.TrimSpace(raw)
	isInt := f.Kind == FieldInt || f.Kind == FieldIntRange

	if isInt {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return v, nil
		}
		// "12.0" and the like truncate the way the browser's parseInt does
		if fv, err := strconv.ParseFloat(raw, 64); err == nil {
			return int64(fv), nil
		}
	} else if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v, nil
	}

	if def, ok := f.defaultAt(idx); ok {
		return def, nil
	}
	return nil, f.invalid(raw)
}

func (f Field) defaultAt(idx int) (any, bool) {
	if f.Default == nil {
		return nil, false
	}
	if idx < 0 {
		return f.Default, true
	}
	switch d := f.Default.(type) {
	case []int64:
		if idx < len(d) {
			return d[idx], true
		}
	case []float64:
		if idx < len(d) {
			return d[idx], true
		}
	}
	return nil, false
}

func (f Field) invalid(raw string) error {
	return fmt.Errorf("%w: %s=%q", domain.ErrInvalidField, f.Path, raw)
}

// fieldView is what the template sees.
type fieldView struct {
	Name     string
	Label    string
	Kind     string
	Hint     string
	Value    string
	Checked  bool
	MinName  string
	MaxName  string
	MinValue string
	MaxValue string
	Options  []optionView
}

type optionView struct {
	Value    string
	Label    string
	Selected bool
}

// view reads the field's current value. Missing keys render empty (or the
// declared default); they never fail.
func (f Field) view(s domain.Settings) fieldView {
	v := fieldView{
		Name:  f.Path,
		Label: f.Label,
		Kind:  string(f.Kind),
		Hint:  f.Hint,
	}
	switch f.Kind {
	case FieldToggle:
		v.Checked = s.Bool(f.Path)
	case FieldIntRange, FieldFloatRange:
		v.MinName, v.MaxName = f.minName(), f.maxName()
		pair := s.Slice(f.Path)
		v.MinValue = f.rangeText(pair, 0)
		v.MaxValue = f.rangeText(pair, 1)
	case FieldIntList, FieldStringList:
		parts := make([]string, 0)
		for _, item := range s.Slice(f.Path) {
			parts = append(parts, scalarText(item))
		}
		v.Value = strings.Join(parts, ", ")
	case FieldSelect:
		cur := s.Text(f.Path)
		for _, o := range f.Options {
			v.Options = append(v.Options, optionView{Value: o, Label: titleCase(o), Selected: o == cur})
		}
	default:
		v.Value = s.Text(f.Path)
		if !s.Has(f.Path) && f.Default != nil {
			v.Value = scalarText(f.Default)
		}
	}
	return v
}

func (f Field) rangeText(pair []any, idx int) string {
	if idx < len(pair) {
		return scalarText(pair[idx])
	}
	if def, ok := f.defaultAt(idx); ok {
		return scalarText(def)
	}
	return ""
}

func scalarText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
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
	return fmt.Sprint(v)
}

func toAnySlice[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
