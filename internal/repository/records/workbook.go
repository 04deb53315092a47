package records

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/oshokin/delivery-flow/internal/domain/flow"
	"github.com/oshokin/delivery-flow/internal/logger"
	"github.com/oshokin/delivery-flow/internal/pipeline"
)

// Sheet names of the workbook layout.
const (
	UnitSheet       = "Unit Breakdown"
	NurseCallSheet  = "Nurse Call"
	ClinicalSheet   = "Patient Monitoring"
	OrdersSheet     = "Orders"
)

// requiredMarker prefixes required column headers in the workbook template.
const requiredMarker = "*"

// Column headers, compared after normalization.
const (
	headerFacility         = "facility"
	headerUnitName         = "common unit name"
	headerNoCaregiverGroup = "no caregiver group"
	headerConfigGroup      = "configuration group"
	headerAlarmName        = "common alert or alarm name"
	headerSendingName      = "sending system alert name"
	headerPriority         = "priority"
	headerDeviceA          = "device - a"
	headerDeviceB          = "device - b"
	headerRingtone         = "ringtone device - a"
	headerResponseOptions  = "response options"
	headerCompliance       = "emdan compliant? (y/n)"
	headerInScope          = "in scope"
)

// categorySheets maps categories to their sheet and unit-breakdown column.
//
//nolint:gochecknoglobals // Immutable layout table.
var categorySheets = []struct {
	category    flow.Category
	sheet       string
	groupHeader string
}{
	{flow.NurseCalls, NurseCallSheet, "nurse call configuration group"},
	{flow.Clinicals, ClinicalSheet, "patient monitoring configuration group"},
	{flow.Orders, OrdersSheet, "orders configuration group"},
}

//nolint:gochecknoglobals // Immutable lookup table.
var ordinals = [flow.MaxHops]string{"1st", "2nd", "3rd", "4th", "5th"}

// WorkbookSource reads records and units from an .xlsx workbook.
type WorkbookSource struct {
	path string
}

// NewWorkbookSource creates a source reading the workbook at path.
func NewWorkbookSource(path string) *WorkbookSource {
	return &WorkbookSource{path: filepath.Clean(path)}
}

// Load reads the unit breakdown and every category sheet.
// A missing category sheet yields no records for that category.
func (s *WorkbookSource) Load(ctx context.Context) (*pipeline.Input, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}

	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	input := new(pipeline.Input)

	if !slices.Contains(sheets, UnitSheet) {
		return nil, fmt.Errorf("sheet %q: %w", UnitSheet, ErrMissingSheet)
	}

	if input.Units, err = readUnits(f); err != nil {
		return nil, err
	}

	for _, cs := range categorySheets {
		if !slices.Contains(sheets, cs.sheet) {
			logger.DebugKV(ctx, "Category sheet not found", "sheet", cs.sheet)

			continue
		}

		records, err := readRecords(f, cs.sheet, cs.category)
		if err != nil {
			return nil, err
		}

		input.Records = append(input.Records, records...)
	}

	return input, nil
}

func readUnits(f *excelize.File) ([]flow.UnitEntry, error) {
	rows, err := f.GetRows(UnitSheet)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", UnitSheet, err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	columns := newHeader(rows[0])
	if err := columns.require(UnitSheet, headerFacility, headerUnitName); err != nil {
		return nil, err
	}

	units := make([]flow.UnitEntry, 0, len(rows)-1)

	for _, row := range rows[1:] {
		entry := flow.UnitEntry{
			Facility:         columns.value(row, headerFacility),
			Unit:             columns.value(row, headerUnitName),
			NoCaregiverGroup: columns.value(row, headerNoCaregiverGroup),
			ConfigGroups:     make(map[flow.Category]string, len(categorySheets)),
		}

		for _, cs := range categorySheets {
			if group := columns.value(row, cs.groupHeader); group != "" {
				entry.ConfigGroups[cs.category] = group
			}
		}

		if entry.Facility == "" && entry.Unit == "" && len(entry.ConfigGroups) == 0 {
			continue
		}

		units = append(units, entry)
	}

	return units, nil
}

func readRecords(f *excelize.File, sheet string, category flow.Category) ([]*flow.InputRecord, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", sheet, err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	columns := newHeader(rows[0])
	if err := columns.require(sheet, headerConfigGroup, headerAlarmName); err != nil {
		return nil, err
	}

	records := make([]*flow.InputRecord, 0, len(rows)-1)

	for _, row := range rows[1:] {
		record := &flow.InputRecord{
			Category:         category,
			ConfigGroup:      columns.value(row, headerConfigGroup),
			AlarmName:        columns.value(row, headerAlarmName),
			SendingName:      columns.value(row, headerSendingName),
			Priority:         columns.value(row, headerPriority),
			DeviceA:          columns.value(row, headerDeviceA),
			DeviceB:          columns.value(row, headerDeviceB),
			Ringtone:         columns.value(row, headerRingtone),
			ResponseOptions:  columns.value(row, headerResponseOptions),
			ComplianceFlag:   columns.value(row, headerCompliance),
			NoCaregiverGroup: columns.value(row, headerNoCaregiverGroup),
			InScope:          true,
		}

		if columns.has(headerInScope) {
			record.InScope = parseInScope(columns.value(row, headerInScope))
		}

		for i, ordinal := range ordinals {
			record.Hops[i] = flow.Hop{
				Delay:     columns.value(row, "time to "+ordinal+" recipient"),
				Recipient: columns.value(row, ordinal+" recipient"),
			}
		}

		if record.ConfigGroup == "" && record.AlarmName == "" {
			continue
		}

		records = append(records, record)
	}

	return records, nil
}

// header indexes normalized column names.
type header map[string]int

func newHeader(row []string) header {
	h := make(header, len(row))
	for i, name := range row {
		key := normalizeHeader(name)
		if _, ok := h[key]; !ok && key != "" {
			h[key] = i
		}
	}

	return h
}

func (h header) has(name string) bool {
	_, ok := h[name]

	return ok
}

func (h header) require(sheet string, names ...string) error {
	for _, name := range names {
		if !h.has(name) {
			return fmt.Errorf("sheet %q column %q: %w", sheet, name, ErrMissingHeader)
		}
	}

	return nil
}

// value returns the trimmed cell of the column; ragged rows read as empty.
func (h header) value(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[i])
}

// normalizeHeader lower-cases, drops the required-column marker and collapses blanks.
func normalizeHeader(s string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), requiredMarker)

	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func parseInScope(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "x", "1":
		return true
	default:
		return false
	}
}
