package ui

import (
	"fmt"
	"sort"

	"bmireport/app"
	"bmireport/domain/bmi"
	"bmireport/domain/core"
)

// Chart names served under /api/charts/{name}
const (
	ChartBMIIndex     = "bmi-index"
	ChartBMIIndexFlag = "bmi-index-flag"
	ChartMapping      = "mapping"
)

const vegaLiteSchema = "https://vega.github.io/schema/vega-lite/v5.json"

// Spec is a Vega-Lite specification
type Spec map[string]interface{}

var chartBuilders = map[string]func(*app.Report) Spec{
	ChartBMIIndex:     bmiIndexChart,
	ChartBMIIndexFlag: bmiIndexFlagChart,
	ChartMapping:      mappingChart,
}

// ChartNames lists the available charts
func ChartNames() []string {
	names := make([]string, 0, len(chartBuilders))
	for name := range chartBuilders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildChart renders the named chart for a report
func BuildChart(name string, report *app.Report) (Spec, error) {
	build, ok := chartBuilders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownChart, name)
	}
	return build(report), nil
}

// scatterPoints keeps rows with a defined BMI; invalid rows cannot be placed
func scatterPoints(rows []bmi.AnnotatedRecord) []map[string]interface{} {
	points := make([]map[string]interface{}, 0, len(rows))
	for _, r := range rows {
		if !r.Valid {
			continue
		}
		points = append(points, map[string]interface{}{
			string(core.VarBMI):    r.BMI,
			string(core.VarIndex):  r.Index,
			string(core.VarGender): r.Gender,
			string(core.VarFlag):   string(r.Flag),
		})
	}
	return points
}

func scatter(title string, points interface{}, color Spec) Spec {
	return Spec{
		"$schema": vegaLiteSchema,
		"title":   title,
		"width":   650,
		"height":  400,
		"data":    Spec{"values": points},
		"mark":    Spec{"type": "point", "size": 20},
		"encoding": Spec{
			"x":     Spec{"field": core.VarBMI, "type": "quantitative", "title": "Body Mass Index", "scale": Spec{"zero": true}},
			"y":     Spec{"field": core.VarIndex, "type": "quantitative", "title": "Index", "scale": Spec{"zero": true}},
			"color": color,
		},
		"config": Spec{
			"axis":   Spec{"labelFontSize": 15},
			"legend": Spec{"strokeColor": "gray", "padding": 10, "cornerRadius": 10, "orient": "bottom-right"},
		},
	}
}

func bmiIndexChart(report *app.Report) Spec {
	return scatter("BMI vs Index", scatterPoints(report.Rows), Spec{
		"field": core.VarGender,
		"type":  "nominal",
		"scale": Spec{"domain": []string{"Male", "Female"}, "range": []string{"#33F6FF", "#FF00C5"}},
	})
}

func bmiIndexFlagChart(report *app.Report) Spec {
	return scatter("BMI vs Index (with marked-excluded data)", scatterPoints(report.Rows), Spec{
		"field": core.VarFlag,
		"type":  "nominal",
		"scale": Spec{
			"domain": []string{string(bmi.FlagIncluded), string(bmi.FlagExcluded)},
			"range":  []string{"#00C391", "#FF5858"},
		},
	})
}

func mappingChart(report *app.Report) Spec {
	points := make([]map[string]interface{}, len(report.Grid))
	for i, c := range report.Grid {
		points[i] = map[string]interface{}{
			string(core.VarHeight): c.Height,
			string(core.VarWeight): c.Weight,
			string(core.VarBMI):    c.BMI,
			string(core.VarIndex):  int(c.Index),
		}
	}

	domain := make([]int, bmi.NumCategories)
	for i := range domain {
		domain[i] = i
	}

	return Spec{
		"$schema": vegaLiteSchema,
		"title":   "BMI Category",
		"width":   650,
		"height":  400,
		"data":    Spec{"values": points},
		"mark":    Spec{"type": "point", "size": 40, "filled": true},
		"encoding": Spec{
			"x": Spec{"field": core.VarWeight, "type": "quantitative", "title": "Weight (in kg)", "scale": Spec{"zero": false}},
			"y": Spec{"field": core.VarHeight, "type": "quantitative", "title": "Height (in cm)", "scale": Spec{"zero": false}},
			"color": Spec{
				"field": core.VarIndex,
				"type":  "ordinal",
				"scale": Spec{
					"domain": domain,
					"range":  []string{"#50BAC6", "#88D5E1", "#A6BBC4", "#C3A0A6", "#E18689", "#FF6B6B"},
				},
			},
		},
		"config": Spec{"axis": Spec{"labelFontSize": 15}},
	}
}
