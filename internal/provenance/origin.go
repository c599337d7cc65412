// internal/provenance/origin.go
package provenance

import (
	"strconv"
	"strings"

	"github.com/norruva/dpp-backend/internal/models"
)

// Value is the textual form of a field value. The zero Value is absent,
// which is distinct from a present empty string.
type Value struct {
	text    string
	present bool
}

func Text(s string) Value {
	return Value{text: s, present: true}
}

func Number(f *float64) Value {
	if f == nil {
		return Value{}
	}
	return Value{text: strconv.FormatFloat(*f, 'f', -1, 64), present: true}
}

func Absent() Value {
	return Value{}
}

func (v Value) String() string {
	return v.text
}

func (v Value) IsAbsent() bool {
	return !v.present
}

// empty reports whether the value is absent or the empty string.
func (v Value) empty() bool {
	return !v.present || v.text == ""
}

// blank reports whether the value is absent or only whitespace.
func (v Value) blank() bool {
	return !v.present || strings.TrimSpace(v.text) == ""
}

// Reconcile returns the origin a field carries after an edit from prev to
// next. Unchanged values keep their origin. Clearing a non-blank value or
// entering any non-empty value makes the field manual.
func Reconcile(next, prev Value, prevOrigin models.Origin) models.Origin {
	if next == prev {
		return prevOrigin
	}
	if !prev.blank() && next.empty() {
		return models.OriginManual
	}
	if !next.empty() {
		return models.OriginManual
	}
	return prevOrigin
}
