package models

type LivestockGroup struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	Unit      string `db:"unit"`
	HeadCount int    `db:"head_count"`
	Status    string `db:"status"`
}

type Vaccination struct {
	ID      int64  `db:"id"`
	Vaccine string `db:"vaccine"`
	Target  string `db:"target"`
	Status  string `db:"status"`
	DueOn   string `db:"due_on"`
}

type HealthCheck struct {
	ID       int64  `db:"id"`
	Location string `db:"location"`
	Note     string `db:"note"`
	Status   string `db:"status"`
}

// Metric is a farm-wide key figure shown on the records and analytics pages.
type Metric struct {
	Name  string  `db:"name"`
	Label string  `db:"label"`
	Value float64 `db:"value"`
	Unit  string  `db:"unit"`
	Trend string  `db:"trend"`
}

// RecordSummary aggregates the herd figures.
type RecordSummary struct {
	Groups       int
	Animals      int
	Monitoring   int
	VaccinesDue  int
	HealthChecks int
}
