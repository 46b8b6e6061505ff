// Package export genera el libro Excel (.xlsx) de tareas.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Turnos-api/internal/application/task"
)

var _ task.Exporter = (*TaskWorkbook)(nil)

const sheetName = "Tareas"

var headers = []string{
	"Título", "Descripción", "Puesto", "Turno", "Fecha límite", "Estado", "Completada por", "Completada tarde",
}

var statusLabels = map[string]string{
	"PENDING":   "Pendiente",
	"OVERDUE":   "Vencida",
	"COMPLETED": "Completada",
}

var shiftLabels = map[string]string{
	"MORNING":   "Mañana",
	"AFTERNOON": "Tarde",
	"NIGHT":     "Noche",
}

// TaskWorkbook exporta tareas con excelize: una hoja, cabecera fija y autofiltro.
type TaskWorkbook struct{}

// NewTaskWorkbook construye el exportador.
func NewTaskWorkbook() *TaskWorkbook { return &TaskWorkbook{} }

// ExportTasks escribe una fila por tarea. Las fechas se muestran en loc.
func (w *TaskWorkbook) ExportTasks(rows []task.ExportRow, loc *time.Location) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("export: crear hoja: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("export: borrar hoja por defecto: %w", err)
	}

	widths := []float64{32, 48, 16, 12, 18, 14, 22, 16}
	for i, wd := range widths {
		if err := f.SetColWidth(sheetName, colName(i), colName(i), wd); err != nil {
			return nil, fmt.Errorf("export: ancho de columna: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#00467F"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("export: estilo cabecera: %w", err)
	}
	overdueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#B00020"},
	})
	if err != nil {
		return nil, fmt.Errorf("export: estilo vencida: %w", err)
	}

	for i, h := range headers {
		if err := f.SetCellValue(sheetName, cell(i, 1), h); err != nil {
			return nil, fmt.Errorf("export: cabecera: %w", err)
		}
	}
	last := cell(len(headers)-1, 1)
	if err := f.SetCellStyle(sheetName, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("export: estilo cabecera: %w", err)
	}

	for i, r := range rows {
		n := i + 2
		values := []any{
			r.Title,
			r.Description,
			r.Position,
			label(shiftLabels, r.Shift),
			r.DueDate.In(loc).Format("02/01/2006 15:04"),
			label(statusLabels, r.Status),
			r.CompletedBy,
			yesNo(r.Status == "COMPLETED", r.CompletedLate),
		}
		for c, v := range values {
			if err := f.SetCellValue(sheetName, cell(c, n), v); err != nil {
				return nil, fmt.Errorf("export: fila %d: %w", n, err)
			}
		}
		if r.Status == "OVERDUE" {
			if err := f.SetCellStyle(sheetName, cell(5, n), cell(5, n), overdueStyle); err != nil {
				return nil, fmt.Errorf("export: estilo fila %d: %w", n, err)
			}
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("export: fijar cabecera: %w", err)
	}
	if err := f.AutoFilter(sheetName, "A1:"+cell(len(headers)-1, len(rows)+1), nil); err != nil {
		return nil, fmt.Errorf("export: autofiltro: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("export: escribir libro: %w", err)
	}
	return buf, nil
}

// ── helpers ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(colIdx, row int) string {
	return fmt.Sprintf("%s%d", colName(colIdx), row)
}

func label(m map[string]string, key string) string {
	if l, ok := m[key]; ok {
		return l
	}
	return key
}

func yesNo(completed, late bool) string {
	switch {
	case !completed:
		return ""
	case late:
		return "Sí"
	default:
		return "No"
	}
}
