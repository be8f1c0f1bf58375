package table

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is the sort direction of a SortSpec.
type Direction string

// Sort directions. DirectionNone means the collection is shown in its original order.
const (
	DirectionNone Direction = ""
	DirectionAsc  Direction = "asc"
	DirectionDesc Direction = "desc"
)

// String returns the direction name, or "none" for DirectionNone.
func (d Direction) String() string {
	if d == DirectionNone {
		return "none"
	}
	return string(d)
}

// Indicator returns the arrow renderers place next to the sorted column header.
func (d Direction) Indicator() string {
	switch d {
	case DirectionAsc:
		return "▲"
	case DirectionDesc:
		return "▼"
	case DirectionNone:
		return ""
	default:
		return ""
	}
}

// SortSpec is the active sort key and direction.
// A key may be set while the direction is DirectionNone; that still means "no active sort".
type SortSpec struct {
	Key       string    `json:"key,omitempty"       yaml:"key,omitempty"`
	Direction Direction `json:"direction,omitempty" yaml:"direction,omitempty"`
}

// Active reports whether s reorders records.
func (s SortSpec) Active() bool {
	return s.Key != "" && s.Direction != DirectionNone
}

// Toggle returns the sort that results from activating key.
//
// Selecting a different key starts an ascending sort on it. Selecting the current key cycles
// asc -> desc -> unsorted -> asc.
func (s SortSpec) Toggle(key string) SortSpec {
	if key != s.Key {
		return SortSpec{Key: key, Direction: DirectionAsc}
	}

	switch s.Direction {
	case DirectionAsc:
		return SortSpec{Key: key, Direction: DirectionDesc}
	case DirectionDesc:
		return SortSpec{}
	case DirectionNone:
		return SortSpec{Key: key, Direction: DirectionAsc}
	default:
		return SortSpec{Key: key, Direction: DirectionAsc}
	}
}

// FieldFunc extracts the sortable value of one attribute from a record.
// Returning nil (or a nil pointer) marks the value as missing.
type FieldFunc[T any] func(T) any

// Fields maps field keys to their extractors.
type Fields[T any] map[string]FieldFunc[T]

// Has reports whether key names a known field.
func (f Fields[T]) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// Keys returns the field keys in sorted order.
func (f Fields[T]) Keys() []string {
	keys := make([]string, 0, len(f))
	for key := range f {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Sort returns a sorted copy of data. The input slice is never modified.
//
// When the sort is inactive, or its key is not in fields, the copy keeps the input order.
// Strings are compared with a collator for the given locale, numbers numerically
// (integers of the same signedness exactly) and time.Time values chronologically; anything else is compared by its printed form.
// Records whose value is missing are placed after all records that have one, in both
// directions. The sort is stable.
func Sort[T any](data []T, fields Fields[T], spec SortSpec, locale language.Tag) []T {
	sorted := make([]T, len(data))
	copy(sorted, data)

	if !spec.Active() {
		return sorted
	}
	extract, ok := fields[spec.Key]
	if !ok {
		return sorted
	}

	collator := collate.New(locale)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return compareValues(collator, extract(a), extract(b), spec.Direction)
	})

	return sorted
}

// compareValues orders two field values. Missing values short-circuit before the
// direction is applied so they stay at the tail of descending sorts too.
func compareValues(collator *collate.Collator, a, b any, direction Direction) int {
	a, aOK := deref(a)
	b, bOK := deref(b)
	if !aOK {
		return 1
	}
	if !bOK {
		return -1
	}

	comparison := compareDefined(collator, a, b)
	if direction == DirectionDesc {
		return -comparison
	}
	return comparison
}

// compareDefined compares two non-missing values by kind.
func compareDefined(collator *collate.Collator, a, b any) int {
	if as, ok := asString(a); ok {
		if bs, bIsString := asString(b); bIsString {
			return collator.CompareString(as, bs)
		}
	}

	if ai, ok := asInt(a); ok {
		if bi, bIsInt := asInt(b); bIsInt {
			return cmp.Compare(ai, bi)
		}
	}
	if au, ok := asUint(a); ok {
		if bu, bIsUint := asUint(b); bIsUint {
			return cmp.Compare(au, bu)
		}
	}

	if an, ok := asNumber(a); ok {
		if bn, bIsNumber := asNumber(b); bIsNumber {
			return cmp.Compare(an, bn)
		}
	}

	if at, ok := a.(time.Time); ok {
		if bt, bIsTime := b.(time.Time); bIsTime {
			return at.Compare(bt)
		}
	}

	return collator.CompareString(fmt.Sprint(a), fmt.Sprint(b))
}

// deref unwraps pointers. The second result is false for nil values and nil pointers.
func deref(v any) (any, bool) {
	if v == nil {
		return nil, false
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	return rv.Interface(), true
}

// asString accepts string and any named string type.
func asString(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

// asInt accepts every signed integer kind.
//
//nolint:exhaustive // Other kinds are not signed integers.
func asInt(v any) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	default:
		return 0, false
	}
}

// asUint accepts every unsigned integer kind.
//
//nolint:exhaustive // Other kinds are not unsigned integers.
func asUint(v any) (uint64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), true
	default:
		return 0, false
	}
}

// asNumber widens every integer and float kind to float64. Integers of the same
// signedness are compared exactly before this is reached; mixed kinds lose
// precision above 2^53.
//
//nolint:exhaustive // Non-numeric kinds all fall through to the default branch.
func asNumber(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}
