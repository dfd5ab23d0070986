package main

import (
	"net/http"
)

type stat struct {
	Label string
	Value string
}

type feature struct {
	Badge       string
	Title       string
	Description string
	Link        string
}

type homeTemplateData struct {
	BaseTemplateData
	Stats    []stat
	Features []feature
}

var homeStats = []stat{ //nolint:gochecknoglobals // static content
	{Label: "Active Farmers", Value: "2,500+"},
	{Label: "Farms Protected", Value: "1,200+"},
	{Label: "Disease Alerts", Value: "48"},
	{Label: "Training Modules", Value: "25"},
}

var homeFeatures = []feature{ //nolint:gochecknoglobals // static content
	{
		Badge:       "Essential",
		Title:       "Risk Assessment",
		Description: "Evaluate biosecurity risks with our comprehensive assessment tool",
		Link:        "/assessment",
	},
	{
		Badge:       "Popular",
		Title:       "Learning Center",
		Description: "Access training modules and best practices for farm biosecurity",
		Link:        "/learning",
	},
	{
		Badge:       "Required",
		Title:       "Digital Records",
		Description: "Maintain comprehensive health and compliance records",
		Link:        "/records",
	},
	{
		Badge:       "Insights",
		Title:       "Analytics Dashboard",
		Description: "Monitor farm performance and track biosecurity metrics",
		Link:        "/analytics",
	},
	{
		Badge:       "Live",
		Title:       "Disease Alerts",
		Description: "Stay informed about local outbreaks and notifications",
		Link:        "/alerts",
	},
	{
		Badge:       "Coming Soon",
		Title:       "Expert Support",
		Description: "Connect with veterinarians and biosecurity experts",
		Link:        "",
	},
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	data := homeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Stats:            homeStats,
		Features:         homeFeatures,
	}

	app.render(w, r, http.StatusOK, "home", data)
}
