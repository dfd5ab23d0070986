package risk

import (
	_ "embed"
	"log/slog"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/myrjola/biosecure/internal/errors"
	"gopkg.in/yaml.v3"
)

//go:embed farm_biosecurity.yaml
var farmBiosecurityYAML []byte

// DefaultCatalogName identifies the embedded farm catalog.
const DefaultCatalogName = "farm-biosecurity"

var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // caches struct info

// Catalog is the configuration a questionnaire is loaded from.
type Catalog struct {
	Name      string     `yaml:"name"      validate:"required"`
	Title     string     `yaml:"title"`
	Questions []Question `yaml:"questions" validate:"required,min=1,dive"`
	Actions   Actions    `yaml:"actions"   validate:"required"`
}

// Engine validates the catalog and builds a scoring engine from it.
func (c Catalog) Engine(logger *slog.Logger) (*Engine, error) {
	q, err := NewQuestionnaire(c.Questions)
	if err != nil {
		return nil, errors.Wrap(err, "new questionnaire", slog.String("catalog", c.Name))
	}
	engine, err := NewEngine(q, c.Actions, logger)
	if err != nil {
		return nil, errors.Wrap(err, "new engine", slog.String("catalog", c.Name))
	}
	return engine, nil
}

// LoadCatalog decodes and validates a YAML catalog.
func LoadCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, errors.Wrap(ErrConfiguration, "unmarshal catalog", slog.String("cause", err.Error()))
	}
	if err := validate.Struct(c); err != nil {
		return Catalog{}, errors.Wrap(ErrConfiguration, "validate catalog", slog.String("cause", err.Error()))
	}
	if _, err := NewQuestionnaire(c.Questions); err != nil {
		return Catalog{}, errors.Wrap(err, "check questionnaire", slog.String("catalog", c.Name))
	}
	return c, nil
}

// LoadCatalogFile reads a catalog from disk.
func LoadCatalogFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, errors.Wrap(err, "read catalog", slog.String("path", path))
	}
	c, err := LoadCatalog(data)
	if err != nil {
		return Catalog{}, errors.Wrap(err, "load catalog", slog.String("path", path))
	}
	return c, nil
}

var defaultCatalog = sync.OnceValues(func() (Catalog, error) { //nolint:gochecknoglobals // parsed once
	return LoadCatalog(farmBiosecurityYAML)
})

// DefaultCatalog returns the embedded reference catalog with ten farm questions.
func DefaultCatalog() Catalog {
	c, err := defaultCatalog()
	if err != nil {
		panic(err) // the embedded catalog is covered by tests
	}
	c.Questions = slices.Clone(c.Questions)
	c.Actions = maps.Clone(c.Actions)
	return c
}
