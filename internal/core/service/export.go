package service

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/officedesk/office-console/internal/core/domain"
	"github.com/officedesk/office-console/internal/core/ports"
)

const (
	exportSheet      = "Work Log Report"
	exportDateLayout = "2006-01-02"

	// NoTasksLabel is the placeholder task row emitted for a module with no
	// tasks, so empty branches stay visible in the artifact.
	NoTasksLabel = "No Tasks"
)

var exportHeader = []string{"Project", "Module", "Task", "Type", "Hours", "Duration", "Logs", "First Entry", "Last Entry"}

// Exporter flattens a report tree into a styled xlsx workbook. The workbook
// is built entirely in memory; on any failure no artifact is produced.
type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

// BuildWorkbook renders the three-level tree as an indented outline: one row
// per node with only that level's label column populated. Project and module
// rows are shaded so they stand apart from task rows.
func (e *Exporter) BuildWorkbook(tree []ports.ProjectRollup, req ports.ReportRequest) (artifact []byte, err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("export: close workbook: %w", closeErr)
		}
	}()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	headerStyle, projectStyle, moduleStyle, err := exportStyles(f)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(exportSheet, cell, title); err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
	}
	if err := styleRow(f, 1, headerStyle); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	row := 2
	for _, project := range tree {
		if err := writeRow(f, row, rowValues{label: project.Name, labelCol: 0, totals: project.RollupTotals}); err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		if err := styleRow(f, row, projectStyle); err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		row++

		for _, module := range project.Modules {
			if err := writeRow(f, row, rowValues{label: module.Name, labelCol: 1, totals: module.RollupTotals}); err != nil {
				return nil, fmt.Errorf("export: %w", err)
			}
			if err := styleRow(f, row, moduleStyle); err != nil {
				return nil, fmt.Errorf("export: %w", err)
			}
			row++

			if len(module.Tasks) == 0 {
				if err := writeRow(f, row, rowValues{label: NoTasksLabel, labelCol: 2}); err != nil {
					return nil, fmt.Errorf("export: %w", err)
				}
				row++
				continue
			}
			for _, task := range module.Tasks {
				if err := writeRow(f, row, rowValues{label: task.Title, labelCol: 2, taskType: task.Type, totals: task.RollupTotals}); err != nil {
					return nil, fmt.Errorf("export: %w", err)
				}
				row++
			}
		}
	}

	for col, width := range []float64{32, 28, 36, 14, 10, 12, 8, 14, 14} {
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(exportSheet, name, name, width); err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return buf.Bytes(), nil
}

type rowValues struct {
	label    string
	labelCol int // 0 = project, 1 = module, 2 = task
	taskType string
	totals   ports.RollupTotals
}

func writeRow(f *excelize.File, row int, v rowValues) error {
	set := func(col int, value any) error {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		return f.SetCellValue(exportSheet, cell, value)
	}

	if err := set(v.labelCol, v.label); err != nil {
		return err
	}
	if v.taskType != "" {
		if err := set(3, v.taskType); err != nil {
			return err
		}
	}
	// Hours stays numeric for spreadsheet formulas; Duration carries the
	// human format.
	if err := set(4, v.totals.TotalMinutes/60); err != nil {
		return err
	}
	if err := set(5, domain.FormatDurationMin(v.totals.TotalMinutes)); err != nil {
		return err
	}
	if err := set(6, v.totals.LogCount); err != nil {
		return err
	}
	if err := set(7, formatEntryDate(v.totals.FirstEntry)); err != nil {
		return err
	}
	return set(8, formatEntryDate(v.totals.LastEntry))
}

func styleRow(f *excelize.File, row, styleID int) error {
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(exportHeader), row)
	return f.SetCellStyle(exportSheet, first, last, styleID)
}

func exportStyles(f *excelize.File) (header, project, module int, err error) {
	header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return 0, 0, 0, err
	}
	project, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		return 0, 0, 0, err
	}
	module, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"F2F2F2"}, Pattern: 1},
	})
	if err != nil {
		return 0, 0, 0, err
	}
	return header, project, module, nil
}

func formatEntryDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(exportDateLayout)
}
