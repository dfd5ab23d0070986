package models

// LearningModule is a training course. Completion is tracked per browser session.
type LearningModule struct {
	ID          string   `db:"id"`
	Title       string   `db:"title"`
	Description string   `db:"description"`
	Duration    string   `db:"duration"`
	Level       string   `db:"level"`
	Topics      []string `db:"-"`
}
