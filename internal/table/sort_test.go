package table

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type statusLabel string

type record struct {
	ID    int
	Name  *string
	Score float64
	Seen  time.Time
	Tag   any
}

func strPtr(s string) *string { return &s }

func recordFields() Fields[record] {
	return Fields[record]{
		"id":    func(r record) any { return r.ID },
		"name":  func(r record) any { return r.Name },
		"score": func(r record) any { return r.Score },
		"seen":  func(r record) any { return r.Seen },
		"tag":   func(r record) any { return r.Tag },
	}
}

func names(rows []record) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		if r.Name == nil {
			out[i] = "<nil>"
			continue
		}
		out[i] = *r.Name
	}
	return out
}

func TestSortSpec_Toggle(t *testing.T) {
	tests := []struct {
		name  string
		start SortSpec
		key   string
		want  SortSpec
	}{
		{
			name:  "new key starts ascending",
			start: SortSpec{},
			key:   "name",
			want:  SortSpec{Key: "name", Direction: DirectionAsc},
		},
		{
			name:  "different key resets to ascending",
			start: SortSpec{Key: "id", Direction: DirectionDesc},
			key:   "name",
			want:  SortSpec{Key: "name", Direction: DirectionAsc},
		},
		{
			name:  "same key asc goes desc",
			start: SortSpec{Key: "name", Direction: DirectionAsc},
			key:   "name",
			want:  SortSpec{Key: "name", Direction: DirectionDesc},
		},
		{
			name:  "same key desc clears sort",
			start: SortSpec{Key: "name", Direction: DirectionDesc},
			key:   "name",
			want:  SortSpec{},
		},
		{
			name:  "same key with no direction goes asc",
			start: SortSpec{Key: "name", Direction: DirectionNone},
			key:   "name",
			want:  SortSpec{Key: "name", Direction: DirectionAsc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.start.Toggle(tt.key))
		})
	}
}

func TestSortSpec_ToggleCycle(t *testing.T) {
	for _, key := range []string{"id", "name", "score"} {
		spec := SortSpec{}
		spec = spec.Toggle(key).Toggle(key).Toggle(key)
		assert.Equal(t, SortSpec{}, spec, "three toggles of %q should clear the sort", key)
		assert.False(t, spec.Active())

		spec = spec.Toggle(key)
		assert.Equal(t, SortSpec{Key: key, Direction: DirectionAsc}, spec)
	}
}

func TestSort_InactivePreservesOrder(t *testing.T) {
	data := []record{
		{ID: 3, Name: strPtr("c")},
		{ID: 1, Name: strPtr("a")},
		{ID: 2, Name: strPtr("b")},
	}

	specs := []SortSpec{
		{},
		{Key: "name", Direction: DirectionNone},
		{Key: "unknown", Direction: DirectionAsc},
	}
	for _, spec := range specs {
		sorted := Sort(data, recordFields(), spec, language.English)
		assert.Equal(t, data, sorted)
	}
}

func TestSort_DoesNotModifyInput(t *testing.T) {
	data := []record{{ID: 3}, {ID: 1}, {ID: 2}}

	sorted := Sort(data, recordFields(), SortSpec{Key: "id", Direction: DirectionAsc}, language.English)

	assert.Equal(t, []int{3, 1, 2}, []int{data[0].ID, data[1].ID, data[2].ID})
	assert.Equal(t, []int{1, 2, 3}, []int{sorted[0].ID, sorted[1].ID, sorted[2].ID})
}

func TestSort_NilValuesStayLast(t *testing.T) {
	data := []record{
		{ID: 1, Name: nil},
		{ID: 2, Name: strPtr("b")},
		{ID: 3, Name: strPtr("a")},
	}

	asc := Sort(data, recordFields(), SortSpec{Key: "name", Direction: DirectionAsc}, language.English)
	assert.Equal(t, []string{"a", "b", "<nil>"}, names(asc))

	desc := Sort(data, recordFields(), SortSpec{Key: "name", Direction: DirectionDesc}, language.English)
	assert.Equal(t, []string{"b", "a", "<nil>"}, names(desc))
}

func TestSort_MultipleNilsKeepInputOrder(t *testing.T) {
	data := []record{
		{ID: 1},
		{ID: 2, Name: strPtr("z")},
		{ID: 3},
		{ID: 4, Name: strPtr("m")},
	}

	sorted := Sort(data, recordFields(), SortSpec{Key: "name", Direction: DirectionAsc}, language.English)

	ids := []int{sorted[0].ID, sorted[1].ID, sorted[2].ID, sorted[3].ID}
	assert.Equal(t, []int{4, 2, 1, 3}, ids)
}

func TestSort_StableForTies(t *testing.T) {
	data := []record{
		{ID: 1, Score: 5},
		{ID: 2, Score: 1},
		{ID: 3, Score: 5},
		{ID: 4, Score: 1},
	}

	asc := Sort(data, recordFields(), SortSpec{Key: "score", Direction: DirectionAsc}, language.English)
	assert.Equal(t, []int{2, 4, 1, 3}, []int{asc[0].ID, asc[1].ID, asc[2].ID, asc[3].ID})

	desc := Sort(data, recordFields(), SortSpec{Key: "score", Direction: DirectionDesc}, language.English)
	assert.Equal(t, []int{1, 3, 2, 4}, []int{desc[0].ID, desc[1].ID, desc[2].ID, desc[3].ID})
}

func TestSort_Times(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	data := []record{
		{ID: 1, Seen: base.Add(2 * time.Hour)},
		{ID: 2, Seen: base},
		{ID: 3, Seen: base.Add(time.Hour)},
	}

	sorted := Sort(data, recordFields(), SortSpec{Key: "seen", Direction: DirectionAsc}, language.English)
	assert.Equal(t, []int{2, 3, 1}, []int{sorted[0].ID, sorted[1].ID, sorted[2].ID})
}

func TestCompareValues(t *testing.T) {
	collator := collate.New(language.English)

	tests := []struct {
		name      string
		a, b      any
		direction Direction
		want      int
	}{
		{name: "nil left", a: nil, b: "x", direction: DirectionAsc, want: 1},
		{name: "nil right", a: "x", b: nil, direction: DirectionAsc, want: -1},
		{name: "nil left desc is not flipped", a: nil, b: "x", direction: DirectionDesc, want: 1},
		{name: "nil pointer counts as nil", a: (*string)(nil), b: "x", direction: DirectionAsc, want: 1},
		{name: "strings locale order ignores case first", a: "apple", b: "Banana", direction: DirectionAsc, want: -1},
		{name: "named string type", a: statusLabel("failed"), b: "running", direction: DirectionAsc, want: -1},
		{name: "ints", a: 10, b: 9, direction: DirectionAsc, want: 1},
		{name: "int vs float", a: 2, b: 2.5, direction: DirectionAsc, want: -1},
		{name: "desc flips", a: 1, b: 2, direction: DirectionDesc, want: 1},
		{name: "equal numbers", a: int64(4), b: uint8(4), direction: DirectionAsc, want: 0},
		{name: "large int64 above float precision", a: int64(1<<53 + 1), b: int64(1 << 53), direction: DirectionAsc, want: 1},
		{name: "large int64 equal", a: int64(1<<53 + 1), b: int64(1<<53 + 1), direction: DirectionAsc, want: 0},
		{name: "large uint64 near max", a: uint64(math.MaxUint64 - 1), b: uint64(math.MaxUint64), direction: DirectionAsc, want: -1},
		{name: "large uint64 desc", a: uint64(math.MaxUint64 - 1), b: uint64(math.MaxUint64), direction: DirectionDesc, want: 1},
		{name: "mixed kinds fall back to text", a: 10, b: "9", direction: DirectionAsc, want: -1},
		{name: "bools fall back to text", a: false, b: true, direction: DirectionAsc, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compareValues(collator, tt.a, tt.b, tt.direction)
			assert.Equal(t, tt.want, sign(got))
		})
	}
}

func TestFields_Keys(t *testing.T) {
	fields := recordFields()
	assert.Equal(t, []string{"id", "name", "score", "seen", "tag"}, fields.Keys())
	assert.True(t, fields.Has("name"))
	assert.False(t, fields.Has("missing"))
}

func TestDirection_Indicator(t *testing.T) {
	assert.Equal(t, "▲", DirectionAsc.Indicator())
	assert.Equal(t, "▼", DirectionDesc.Indicator())
	assert.Empty(t, DirectionNone.Indicator())
	assert.Equal(t, "none", DirectionNone.String())
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
