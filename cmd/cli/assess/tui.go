package assess

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/myrjola/biosecure/cmd/cli/catalog"
	"github.com/myrjola/biosecure/internal/assessment"
	"github.com/myrjola/biosecure/internal/errors"
	"github.com/myrjola/biosecure/internal/risk"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // styles are immutable values
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	tierStyles    = map[risk.Tier]lipgloss.Style{
		risk.TierLow:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		risk.TierMedium: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		risk.TierHigh:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
)

// Model walks an [assessment.Session] one question at a time.
type Model struct {
	ctx     context.Context
	title   string
	engine  *risk.Engine
	session assessment.Session
	cursor  int
	report  *risk.Report
	err     string
}

func NewModel(ctx context.Context, title string, engine *risk.Engine) Model {
	return Model{
		ctx:     ctx,
		title:   title,
		engine:  engine,
		session: assessment.New(),
		cursor:  0,
		report:  nil,
		err:     "",
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Report is the final result once every question has been answered.
func (m Model) Report() (risk.Report, bool) {
	if m.report == nil {
		return risk.Report{}, false //nolint:exhaustruct // zero report
	}
	return *m.report, true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	}
	if m.report != nil {
		if keyMsg.String() == "r" {
			return m.retake(), nil
		}
		return m, nil
	}

	q := m.engine.Questionnaire()
	current, _ := m.session.Current(q)
	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(current.Options)-1 {
			m.cursor++
		}
	case "left", "h", "backspace":
		m.session = m.session.Previous()
		m.err = ""
		m.cursor = m.selectedIndex()
	case "enter", " ", "right", "l":
		return m.answer(current), nil
	}
	return m, nil
}

func (m Model) answer(current risk.Question) Model {
	q := m.engine.Questionnaire()
	next, err := m.session.Answer(q, current.ID, current.Options[m.cursor].Value)
	if err == nil {
		next, err = next.Next(q)
	}
	if err != nil {
		m.err = err.Error()
		return m
	}
	m.session = next
	m.err = ""
	if m.session.Completed {
		report := m.engine.Score(m.ctx, m.session.Answers)
		m.report = &report
		return m
	}
	m.cursor = m.selectedIndex()
	return m
}

func (m Model) retake() Model {
	m.session = m.session.Retake()
	m.report = nil
	m.cursor = 0
	m.err = ""
	return m
}

// selectedIndex places the cursor on the previously given answer of the current question.
func (m Model) selectedIndex() int {
	q := m.engine.Questionnaire()
	current, _ := m.session.Current(q)
	selected := m.session.Selected(q)
	for i, o := range current.Options {
		if o.Value == selected {
			return i
		}
	}
	return 0
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	if m.report != nil {
		style := tierStyles[m.report.Tier]
		fmt.Fprintf(&b, "Risk level: %s\n", style.Render(string(m.report.Tier)))
		fmt.Fprintf(&b, "Risk score: %d%% (%d of %d points)\n\n",
			m.report.Percentage, m.report.TotalScore, m.report.MaxScore)
		b.WriteString("Immediate actions:\n")
		for i, action := range m.report.Actions {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, action)
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("r retake • q quit"))
		b.WriteString("\n")
		return b.String()
	}

	q := m.engine.Questionnaire()
	current, _ := m.session.Current(q)
	fmt.Fprintf(&b, "Question %d of %d (%d%%)  %s\n", m.session.Index+1, q.Len(), m.session.Progress(q),
		categoryStyle.Render(current.Category))
	fmt.Fprintf(&b, "%s\n\n", current.Prompt)
	for i, o := range current.Options {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + o.Label))
		} else {
			b.WriteString("  " + o.Label)
		}
		b.WriteString("\n")
	}
	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ choose • enter next • ← previous • q quit"))
	b.WriteString("\n")
	return b.String()
}

func NewAssessCommand() *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct // cobra defaults
		Use:     "assess",
		GroupID: Group.ID,
		Short:   "Answer the questionnaire interactively",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("catalog")
			c, err := catalog.Load(path)
			if err != nil {
				return err
			}
			engine, err := c.Engine(catalog.Logger(cmd))
			if err != nil {
				return errors.Wrap(err, "build engine")
			}
			program := tea.NewProgram(NewModel(cmd.Context(), c.Title, engine),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()))
			final, err := program.Run()
			if err != nil {
				return errors.Wrap(err, "run assessment")
			}
			if report, done := final.(Model).Report(); done {
				return writeReport(cmd.OutOrStdout(), c.Title, report)
			}
			return nil
		},
	}
	cmd.Flags().String("catalog", "", "path to a catalog YAML file, defaults to the built-in farm catalog")
	return cmd
}
