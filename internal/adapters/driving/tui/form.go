package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/leasefill/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/leasefill/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/leasefill/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/leasefill/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/leasefill/internal/core/domain"
)

const formTitle = "Contrato de locação - dados do locatário"

type formState int

const (
	stateEditing formState = iota
	stateSubmitting
	stateDone
)

// Options tune a form run.
type Options struct {
	// DryRun generates the contract without delivering it.
	DryRun bool
}

// Form is the tenant form model. Each non-derived field of the contract
// schema gets one input.
type Form struct {
	ports  *Ports
	opts   Options
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	fields []*input.Field
	focus  int
	state  formState

	// notice is shown above the help line, e.g. the missing fields of a
	// rejected submission.
	notice string

	result    *domain.ContractResult
	err       error
	cancelled bool
}

// NewForm creates a form for the schema of ports.Contracts.
func NewForm(ports *Ports, opts Options) (*Form, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	s := styles.DefaultStyles()
	specs := ports.Contracts.Schema().Inputs()
	fields := make([]*input.Field, 0, len(specs))
	for _, spec := range specs {
		fields = append(fields, input.NewField(spec.Key, spec.Label, s))
	}

	f := &Form{
		ports:  ports,
		opts:   opts,
		ctx:    context.Background(),
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		fields: fields,
	}
	if len(fields) > 0 {
		fields[0].Focus()
	}
	return f, nil
}

// WithContext sets the context the submission runs under.
func (f *Form) WithContext(ctx context.Context) *Form {
	f.ctx = ctx
	return f
}

// Init implements tea.Model.
func (f *Form) Init() tea.Cmd {
	return tea.SetWindowTitle("leasefill")
}

// Update implements tea.Model.
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		for _, field := range f.fields {
			field.SetWidth(msg.Width)
		}
		return f, nil

	case messages.SubmitRequested:
		f.state = stateSubmitting
		f.notice = ""
		return f, f.process(msg.Request)

	case messages.ContractProcessed:
		return f.handleProcessed(msg)

	case tea.KeyMsg:
		return f.handleKey(msg)
	}

	return f.updateFocused(msg)
}

func (f *Form) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, f.keymap.Cancel) {
		if f.state != stateDone {
			f.cancelled = true
		}
		return f, tea.Quit
	}
	if f.state != stateEditing {
		return f, nil
	}

	switch {
	case key.Matches(msg, f.keymap.Next):
		return f, f.moveFocus(1)
	case key.Matches(msg, f.keymap.Prev):
		return f, f.moveFocus(-1)
	case key.Matches(msg, f.keymap.Submit):
		if f.focus < len(f.fields)-1 {
			return f, f.moveFocus(1)
		}
		req := f.Request()
		return f, func() tea.Msg { return messages.SubmitRequested{Request: req} }
	}

	return f.updateFocused(msg)
}

func (f *Form) handleProcessed(msg messages.ContractProcessed) (tea.Model, tea.Cmd) {
	if missing := domain.MissingFields(msg.Err); len(missing) > 0 {
		// Let the user fill in what was rejected.
		f.state = stateEditing
		f.notice = "Campos obrigatórios ausentes: " + strings.Join(missing, ", ")
		return f, f.focusKey(missing[0])
	}

	f.state = stateDone
	f.result = msg.Result
	f.err = msg.Err
	return f, tea.Quit
}

func (f *Form) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if f.state != stateEditing || len(f.fields) == 0 {
		return f, nil
	}
	_, cmd := f.fields[f.focus].Update(msg)
	return f, cmd
}

// moveFocus shifts focus by delta, wrapping around.
func (f *Form) moveFocus(delta int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	next := (f.focus + delta + len(f.fields)) % len(f.fields)
	return f.setFocus(next)
}

func (f *Form) focusKey(k string) tea.Cmd {
	for i, field := range f.fields {
		if field.Key() == k {
			return f.setFocus(i)
		}
	}
	return nil
}

func (f *Form) setFocus(i int) tea.Cmd {
	f.fields[f.focus].Blur()
	f.focus = i
	return f.fields[i].Focus()
}

func (f *Form) process(req domain.ContractRequest) tea.Cmd {
	ctx := f.ctx
	contracts := f.ports.Contracts
	return func() tea.Msg {
		res, err := contracts.Process(ctx, req)
		return messages.ContractProcessed{Result: res, Err: err}
	}
}

// View implements tea.Model.
func (f *Form) View() string {
	var b strings.Builder
	b.WriteString(f.styles.Title.Render(formTitle))
	b.WriteString("\n")

	switch f.state {
	case stateSubmitting:
		b.WriteString(f.styles.Muted.Render("Gerando contrato..."))
		b.WriteString("\n")
		return b.String()
	case stateDone:
		b.WriteString(f.viewOutcome())
		b.WriteString("\n")
		return b.String()
	}

	for _, field := range f.fields {
		b.WriteString(field.View())
		b.WriteString("\n")
	}
	if f.notice != "" {
		b.WriteString(f.styles.Warning.Render(f.notice))
		b.WriteString("\n")
	}
	b.WriteString(f.viewHelp())
	return b.String()
}

func (f *Form) viewOutcome() string {
	if f.err != nil {
		return f.styles.Error.Render(fmt.Sprintf("Falha (%s): %v", domain.KindOf(f.err), f.err))
	}
	if f.result == nil {
		return ""
	}
	return f.styles.Success.Render(f.result.Message + ": " + f.result.Filename)
}

func (f *Form) viewHelp() string {
	parts := make([]string, 0, len(f.keymap.ShortHelp()))
	for _, b := range f.keymap.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return f.styles.Help.Render(strings.Join(parts, " • "))
}

// Request returns the current field values as a contract request.
func (f *Form) Request() domain.ContractRequest {
	fields := make(map[string]string, len(f.fields))
	for _, field := range f.fields {
		fields[field.Key()] = field.Value()
	}
	return domain.ContractRequest{Fields: fields, DryRun: f.opts.DryRun}
}

// Result returns the outcome of the submission, if any.
func (f *Form) Result() (*domain.ContractResult, error) {
	return f.result, f.err
}

// Cancelled reports whether the user abandoned the form.
func (f *Form) Cancelled() bool {
	return f.cancelled
}

// Run shows the form on the given terminal streams until it is submitted or
// cancelled, and returns the pipeline outcome.
func Run(ctx context.Context, ports *Ports, opts Options, in io.Reader, out io.Writer) (*domain.ContractResult, error) {
	f, err := NewForm(ports, opts)
	if err != nil {
		return nil, err
	}
	f.WithContext(ctx)

	p := tea.NewProgram(f, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil, ErrCancelled
		}
		return nil, fmt.Errorf("tui: %w", err)
	}
	if f.Cancelled() {
		return nil, ErrCancelled
	}
	return f.Result()
}
