package anthro

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"nutrition-app-server/internal/models"
)

// GroupComparison summarizes one measurement group across two records.
type GroupComparison struct {
	Group          string       `json:"group"`
	CurrentFilled  int          `json:"currentFilled"`
	PreviousFilled int          `json:"previousFilled"`
	Deltas         []FieldDelta `json:"deltas"`
}

// ComparisonReport is the exportable comparison of two records: scalar
// deltas, per-group diffs and optionally the clinical indicator. Consumers
// (on-screen rendering, document export) read this report; building it
// performs no I/O.
type ComparisonReport struct {
	CurrentID    string    `json:"currentId"`
	PreviousID   string    `json:"previousId"`
	CurrentDate  time.Time `json:"currentDate"`
	PreviousDate time.Time `json:"previousDate"`

	WeightDelta     *float64 `json:"weightDelta"` // kg
	HeightDelta     *float64 `json:"heightDelta"` // cm
	BMIDelta        *float64 `json:"bmiDelta"`
	PhotoCountDelta int      `json:"photoCountDelta"`

	Groups    []GroupComparison  `json:"groups"`
	Indicator *ClinicalIndicator `json:"indicator,omitempty"`
}

// BuildComparison composes the classifier, differ and scalar deltas into a
// single report. Returns nil when either record is missing: no comparison is
// possible and callers must guard accordingly. All scalar deltas are rounded
// to 2 decimals.
func BuildComparison(current, previous *models.AnthropometricRecord) *ComparisonReport {
	if current == nil || previous == nil {
		return nil
	}

	return &ComparisonReport{
		CurrentID:       current.ID,
		PreviousID:      previous.ID,
		CurrentDate:     current.RecordDate,
		PreviousDate:    previous.RecordDate,
		WeightDelta:     roundPtr(ptrDelta(current.Weight, previous.Weight)),
		HeightDelta:     roundPtr(ptrDelta(current.Height, previous.Height)),
		BMIDelta:        roundPtr(ptrDelta(BMI(current), BMI(previous))),
		PhotoCountDelta: len(current.Photos) - len(previous.Photos),
		Groups: []GroupComparison{
			groupComparison("circumferences", current.Circumferences, previous.Circumferences),
			groupComparison("skinfolds", current.Skinfolds, previous.Skinfolds),
			groupComparison("boneDiameters", current.BoneDiameters, previous.BoneDiameters),
			groupComparison("bioimpedance", current.Bioimpedance, previous.Bioimpedance),
		},
	}
}

// BuildComparisonWithIndicator builds the comparison report and attaches the
// clinical indicator scored under the given objective.
func BuildComparisonWithIndicator(current, previous *models.AnthropometricRecord, objective models.GoalType) *ComparisonReport {
	report := BuildComparison(current, previous)
	if report == nil {
		return nil
	}
	report.Indicator = Score(current, previous, objective)
	return report
}

func groupComparison(name string, current, previous models.MeasurementGroup) GroupComparison {
	return GroupComparison{
		Group:          name,
		CurrentFilled:  FilledCount(current),
		PreviousFilled: FilledCount(previous),
		Deltas:         DiffGroup(current, previous),
	}
}

// ExportLine is one label/value pair of the flat export representation
// consumed by the document export sink.
type ExportLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ExportLines flattens the report into the ordered line list the export sink
// renders. Missing deltas are rendered as a dash rather than omitted, so the
// exported document keeps a fixed layout.
func (r *ComparisonReport) ExportLines() []ExportLine {
	lines := []ExportLine{
		{Label: "Previous record", Value: r.PreviousDate.Format("2006-01-02")},
		{Label: "Current record", Value: r.CurrentDate.Format("2006-01-02")},
		{Label: "Weight change (kg)", Value: formatDelta(r.WeightDelta)},
		{Label: "Height change (cm)", Value: formatDelta(r.HeightDelta)},
		{Label: "BMI change", Value: formatDelta(r.BMIDelta)},
		{Label: "Photos", Value: strconv.Itoa(r.PhotoCountDelta)},
	}

	for _, g := range r.Groups {
		lines = append(lines, ExportLine{
			Label: fmt.Sprintf("%s measured", g.Group),
			Value: fmt.Sprintf("%d (was %d)", g.CurrentFilled, g.PreviousFilled),
		})
		for _, d := range g.Deltas {
			lines = append(lines, ExportLine{
				Label: fmt.Sprintf("%s: %s", g.Group, d.Key),
				Value: formatDelta(d.Delta),
			})
		}
	}

	if r.Indicator != nil {
		lines = append(lines, ExportLine{Label: "Assessment", Value: string(r.Indicator.Status)})
		if len(r.Indicator.Reasons) > 0 {
			lines = append(lines, ExportLine{Label: "Notes", Value: strings.Join(r.Indicator.Reasons, "; ")})
		}
	}
	return lines
}

// SuggestedFilename names the exported document after the compared dates.
func (r *ComparisonReport) SuggestedFilename() string {
	return fmt.Sprintf("anthropometry-comparison-%s-vs-%s.pdf",
		r.PreviousDate.Format("2006-01-02"), r.CurrentDate.Format("2006-01-02"))
}

func formatDelta(f *float64) string {
	if f == nil {
		return "-"
	}
	return strconv.FormatFloat(*f, 'f', 2, 64)
}
