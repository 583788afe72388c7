package ui

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"bmireport/app"
	"bmireport/domain/bmi"
	"bmireport/domain/core"
	"bmireport/internal/errors"
)

// buildReport loads the dataset and computes a fresh report for this request
func (a *App) buildReport(ctx context.Context, opts app.Options) (*app.Report, error) {
	ds, err := a.source.Dataset(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load dataset")
	}
	if ds == nil {
		return nil, errors.InternalError("dataset source returned no dataset")
	}
	return a.service.BuildReport(ctx, ds, opts)
}

// indexPage is the view model of the report page
type indexPage struct {
	Report     *app.Report
	Narrative  map[string]template.HTML
	Thresholds []bmi.Threshold
}

// handleIndex renders the report page
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	opts := a.options
	opts.SkipGrid = true // the page pulls the grid through /api/charts/mapping

	report, err := a.buildReport(r.Context(), opts)
	if err != nil {
		a.logger.Error("[handleIndex] %v", err)
		http.Error(w, "Failed to build report: "+err.Error(), statusFor(err))
		return
	}

	a.renderTemplate(w, "index.html", indexPage{
		Report:     report,
		Narrative:  narrativeSections(report),
		Thresholds: report.Thresholds,
	})
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

// handleReport returns the report summary without the full row and grid tables
func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	opts := a.options
	opts.SkipGrid = r.URL.Query().Get("grid") == "false"

	report, err := a.buildReport(r.Context(), opts)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	render.JSON(w, r, report)
}

// handleData returns annotated rows; ?limit=n caps the count, ?flag= filters
func (a *App) handleData(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		a.writeError(w, r, errors.InvalidInput(err.Error()))
		return
	}

	flag := r.URL.Query().Get("flag")
	if err := validateFlag(flag); err != nil {
		a.writeError(w, r, err)
		return
	}

	opts := a.options
	opts.SkipGrid = true
	report, err := a.buildReport(r.Context(), opts)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	rows := report.Rows
	if flag != "" {
		filtered := make([]bmi.AnnotatedRecord, 0, len(rows))
		for _, row := range rows {
			if string(row.Flag) == flag {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	render.JSON(w, r, map[string]interface{}{
		"total": len(report.Rows),
		"rows":  rows,
	})
}

// handleGrid returns the mapping grid for the configured range
func (a *App) handleGrid(w http.ResponseWriter, r *http.Request) {
	grid, err := a.service.BuildGrid(a.options.Grid)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"range":  a.options.Grid,
		"counts": bmi.CategoryCounts(grid),
		"cells":  grid,
	})
}

func (a *App) handleThresholds(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, bmi.Thresholds())
}

// handleChart returns a Vega-Lite specification with inline data
func (a *App) handleChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := chartBuilders[name]; !ok {
		a.writeError(w, r, errors.NotFound(fmt.Sprintf("chart %q", name)))
		return
	}

	opts := a.options
	opts.SkipGrid = name != ChartMapping
	report, err := a.buildReport(r.Context(), opts)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	spec, err := BuildChart(name, report)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	render.JSON(w, r, spec)
}

// handleExport streams the report as an XLSX workbook
func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	report, err := a.buildReport(r.Context(), a.options)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="bmi-report-%s.xlsx"`, report.ID))
	if err := a.writer.Write(w, report); err != nil {
		a.logger.Error("[handleExport] %v", err)
	}
}

// writeError renders an error as JSON with a status derived from its code
func (a *App) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		a.logger.Error("[%s] %v", r.URL.Path, err)
	} else {
		a.logger.Debug("[%s] %v", r.URL.Path, err)
	}
	render.Status(r, status)
	render.JSON(w, r, map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}

func statusFor(err error) int {
	if !errors.IsAppError(err) {
		if core.IsInputError(err) {
			return http.StatusUnprocessableEntity
		}
		return http.StatusInternalServerError
	}
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput, errors.CodeValidationError, errors.CodeEmptyInput,
		errors.CodeDimensionMismatch, errors.CodeDegenerateInput:
		return http.StatusUnprocessableEntity
	case errors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func validateFlag(flag string) error {
	switch bmi.Flag(flag) {
	case "", bmi.FlagIncluded, bmi.FlagExcluded, bmi.FlagInvalid:
		return nil
	}
	return errors.ValidationError(fmt.Sprintf("flag must be one of %s, %s or %s, got %q",
		bmi.FlagIncluded, bmi.FlagExcluded, bmi.FlagInvalid, flag))
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("limit must be a non-negative integer, got %q", raw)
	}
	return n, nil
}
