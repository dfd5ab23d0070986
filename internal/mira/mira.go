// Package mira is the farm assistant behind the chat widget. It answers with canned, bilingual
// responses picked by an ordered keyword rule table.
package mira

import (
	_ "embed"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/myrjola/biosecure/internal/errors"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var rulesYAML []byte

var (
	ErrEmptyMessage = errors.NewSentinel("empty message")
	ErrInvalidRules = errors.NewSentinel("invalid assistant rules")
)

type Language string

const (
	English Language = "en"
	Hindi   Language = "hi"
)

// ParseLanguage returns the language for code, defaulting to English.
func ParseLanguage(code string) Language {
	if Language(strings.ToLower(strings.TrimSpace(code))) == Hindi {
		return Hindi
	}
	return English
}

type Responses struct {
	English string `yaml:"en" validate:"required"`
	Hindi   string `yaml:"hi" validate:"required"`
}

func (r Responses) In(lang Language) string {
	if lang == Hindi {
		return r.Hindi
	}
	return r.English
}

// Rule fires when the message contains any of its keywords.
type Rule struct {
	Topic       string    `yaml:"topic"       validate:"required"`
	Keywords    []string  `yaml:"keywords"    validate:"required,min=1,dive,required"`
	Responses   Responses `yaml:"responses"`
	Suggestions []string  `yaml:"suggestions" validate:"dive,required"`
}

func (r Rule) matches(lowered string) bool {
	for _, keyword := range r.Keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

type Greeting struct {
	Text        string   `yaml:"text"        validate:"required"`
	Suggestions []string `yaml:"suggestions" validate:"dive,required"`
}

type ruleFile struct {
	Greeting Greeting `yaml:"greeting"`
	Rules    []Rule   `yaml:"rules"    validate:"required,min=1,dive"`
	Fallback struct {
		Topic       string    `yaml:"topic"       validate:"required"`
		Responses   Responses `yaml:"responses"`
		Suggestions []string  `yaml:"suggestions" validate:"dive,required"`
	} `yaml:"fallback"`
}

// Reply is what the assistant answers.
type Reply struct {
	Topic       string
	Text        string
	Suggestions []string
}

// Assistant evaluates rules top to bottom, first match wins.
type Assistant struct {
	greeting Greeting
	rules    []Rule
	fallback Rule
}

// NewAssistant parses a YAML rule table.
func NewAssistant(data []byte) (*Assistant, error) {
	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(ErrInvalidRules, "unmarshal rules", slog.String("cause", err.Error()))
	}
	if err := validator.New().Struct(f); err != nil {
		return nil, errors.Wrap(ErrInvalidRules, "validate rules", slog.String("cause", err.Error()))
	}
	rules := make([]Rule, len(f.Rules))
	for i, r := range f.Rules {
		keywords := make([]string, len(r.Keywords))
		for j, k := range r.Keywords {
			keywords[j] = strings.ToLower(k)
		}
		r.Keywords = keywords
		rules[i] = r
	}
	return &Assistant{
		greeting: f.Greeting,
		rules:    rules,
		fallback: Rule{
			Topic:       f.Fallback.Topic,
			Keywords:    nil,
			Responses:   f.Fallback.Responses,
			Suggestions: f.Fallback.Suggestions,
		},
	}, nil
}

// Default returns the assistant with the built-in vaccination, biosecurity, disease and feed rules.
func Default() *Assistant {
	a, err := NewAssistant(rulesYAML)
	if err != nil {
		panic(err)
	}
	return a
}

// Greeting is the bilingual welcome shown before the first message.
func (a *Assistant) Greeting() Reply {
	return Reply{
		Topic:       "greeting",
		Text:        a.greeting.Text,
		Suggestions: append([]string(nil), a.greeting.Suggestions...),
	}
}

// Reply answers message in lang.
func (a *Assistant) Reply(message string, lang Language) (Reply, error) {
	if strings.TrimSpace(message) == "" {
		return Reply{}, ErrEmptyMessage
	}
	lowered := strings.ToLower(message)
	rule := a.fallback
	for _, r := range a.rules {
		if r.matches(lowered) {
			rule = r
			break
		}
	}
	return Reply{
		Topic:       rule.Topic,
		Text:        rule.Responses.In(lang),
		Suggestions: append([]string(nil), rule.Suggestions...),
	}, nil
}

// Topics lists the rule topics in evaluation order followed by the fallback topic.
func (a *Assistant) Topics() []string {
	topics := make([]string, 0, len(a.rules)+1)
	for _, r := range a.rules {
		topics = append(topics, r.Topic)
	}
	return append(topics, a.fallback.Topic)
}
