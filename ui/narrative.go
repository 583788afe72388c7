package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"math"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"bmireport/app"
	"bmireport/domain/bmi"
)

const introMarkdown = `
The World Health Organization (WHO) defines overweight and obesity as abnormal or
excessive fat accumulation that presents a risk to health. Too much body fat is linked
to heart disease, diabetes, high blood pressure, high cholesterol, liver disease, sleep
apnea and certain cancers.

The **Body Mass Index** (BMI) is commonly used to diagnose obesity: divide the weight in
kilograms by the squared height in meters. A BMI over 25 is considered overweight and
over 30 is obese.

This page shows the dataset, how BMI is calculated from it, how BMI relates to the
stated Index, and finally the rule that maps height and weight to an Index.
`

const datasetMarkdown = `
The table below shows the first rows of the data. The full dataset is available from the
[source](https://www.kaggle.com/datasets/sjagkoo7/bmi-body-mass-index/data).

- **Gender**: the gender of the individual
- **Height**: the height of the individual in cm
- **Weight**: the weight of the individual in kg
- **Index**: the BMI index of the individual:
%s`

const calculationMarkdown = `
BMI is computed from height and weight as

    BMI = Weight / Height²

where weight is in kilograms and height in meters. Rows whose height or weight is missing
or not positive cannot be scored; they are kept and marked *Invalid* (%d of %d rows).
`

const analysisMarkdown = `
BMI is continuous numerical data and the Index is ordinal, so Spearman's rank
correlation is the appropriate measure of their association. Over the %d valid rows
the correlation is **%s** (%s).

A high positive value means a high BMI goes with a high Index and vice versa. It says
nothing about which variable causes the other.

Excluding the rows marked red (their stated Index disagrees with their BMI) leaves a
clean separation of the groups, following this rule:

%s
%d rows agree with the rule and %d disagree (%s agreement). On the agreeing rows alone
the rank correlation is %s.
`

const mappingMarkdown = `
Using the rule above the Index can be mapped over a grid of heights from %d to %d cm
and weights from %d to %d kg.
`

// renderMarkdown converts narrative markdown to trusted HTML. The input is
// built from constants and numbers only.
func renderMarkdown(md string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return template.HTML(markdown.ToHTML([]byte(md), p, r))
}

// narrativeSections renders the text blocks of the report page
func narrativeSections(report *app.Report) map[string]template.HTML {
	a := report.Agreement
	spearman := report.Spearman()
	included := report.IncludedSpearman

	g := report.GridRange
	if g.Size() == 0 {
		g = bmi.DefaultGridRange()
	}

	return map[string]template.HTML{
		"intro":       renderMarkdown(introMarkdown),
		"dataset":     renderMarkdown(fmt.Sprintf(datasetMarkdown, categoryList())),
		"calculation": renderMarkdown(fmt.Sprintf(calculationMarkdown, a.Invalid, a.Total)),
		"analysis": renderMarkdown(fmt.Sprintf(analysisMarkdown,
			spearman.SampleSize, formatCoefficient(spearman), spearman.Signal,
			ruleList(), a.Included, a.Excluded, formatRate(a.InclusionRate), formatCoefficient(included))),
		"mapping": renderMarkdown(fmt.Sprintf(mappingMarkdown, g.HeightMin, g.HeightMax, g.WeightMin, g.WeightMax)),
	}
}

func categoryList() string {
	var buf bytes.Buffer
	for _, c := range bmi.Categories() {
		fmt.Fprintf(&buf, "    - %d: %s\n", int(c), c.Label())
	}
	return buf.String()
}

// ruleList spells out the threshold table, e.g. "Index 2 (Normal): 20 < BMI <= 25"
func ruleList() string {
	var buf bytes.Buffer
	for _, c := range bmi.Categories() {
		lower, upper, _ := bmi.Bounds(c)
		var rule string
		switch {
		case math.IsInf(lower, -1):
			rule = fmt.Sprintf("BMI <= %g", upper)
		case math.IsInf(upper, 1):
			rule = fmt.Sprintf("BMI > %g", lower)
		default:
			rule = fmt.Sprintf("%g < BMI <= %g", lower, upper)
		}
		fmt.Fprintf(&buf, "- Index %d (%s): %s\n", int(c), c.Label(), rule)
	}
	return buf.String()
}

func formatCoefficient(c app.Correlation) string {
	if !c.Defined {
		return "undefined"
	}
	return fmt.Sprintf("%.4f", c.Rounded)
}

func formatRate(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}
