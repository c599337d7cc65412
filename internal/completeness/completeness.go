// internal/completeness/completeness.go
package completeness

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/norruva/dpp-backend/internal/models"
)

const notAvailable = "N/A"

type SectionResult struct {
	SectionName            Section  `json:"sectionName" yaml:"sectionName"`
	Score                  int      `json:"score" yaml:"score"`
	FilledFields           int      `json:"filledFields" yaml:"filledFields"`
	TotalFields            int      `json:"totalFields" yaml:"totalFields"`
	MissingFieldsInSection []string `json:"missingFieldsInSection" yaml:"missingFieldsInSection"`
}

type Result struct {
	OverallScore        int             `json:"overallScore" yaml:"overallScore"`
	OverallFilledFields int             `json:"overallFilledFields" yaml:"overallFilledFields"`
	OverallTotalFields  int             `json:"overallTotalFields" yaml:"overallTotalFields"`
	Sections            []SectionResult `json:"sections" yaml:"sections"`
}

// Calculate scores p against the field table. Sections without an
// applicable field are left out of the result.
func Calculate(p *models.Product) Result {
	return calculate(p, essentialFields)
}

func calculate(p *models.Product, fields []Field) Result {
	bySection := make(map[Section]*SectionResult, len(Sections))
	var order []Section
	var filled, total int

	for _, f := range fields {
		if !applicable(f, p) {
			continue
		}
		sec, ok := bySection[f.Section]
		if !ok {
			sec = &SectionResult{SectionName: f.Section, MissingFieldsInSection: []string{}}
			bySection[f.Section] = sec
			order = append(order, f.Section)
		}
		sec.TotalFields++
		total++
		if isFilled(f, p) {
			sec.FilledFields++
			filled++
		} else {
			sec.MissingFieldsInSection = append(sec.MissingFieldsInSection, f.Label)
		}
	}

	res := Result{
		OverallScore:        percent(filled, total),
		OverallFilledFields: filled,
		OverallTotalFields:  total,
		Sections:            make([]SectionResult, 0, len(order)),
	}
	for _, s := range order {
		sec := bySection[s]
		sec.Score = percent(sec.FilledFields, sec.TotalFields)
		res.Sections = append(res.Sections, *sec)
	}
	return res
}

// Section returns the breakdown for one section, if present.
func (r Result) Section(name Section) (SectionResult, bool) {
	for _, s := range r.Sections {
		if s.SectionName == name {
			return s, true
		}
	}
	return SectionResult{}, false
}

func percent(filled, total int) int {
	if total == 0 {
		return 100
	}
	return int(math.Round(float64(filled) / float64(total) * 100))
}

func isFilled(f Field, p *models.Product) bool {
	if f.Check != nil {
		return f.Check(p)
	}
	v, err := p.FieldValue(f.Key)
	if err != nil {
		return false
	}
	return present(v)
}

// present is the default test: collections need an entry, everything else
// needs a textual form that is neither blank nor "N/A".
func present(v interface{}) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() > 0
	}
	text := strings.TrimSpace(fmt.Sprint(rv.Interface()))
	return text != "" && text != notAvailable
}
