package tui

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/service"
	"github.com/MKhiriev/go-todo-sync/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const statusTTL = 3 * time.Second

// clipboardWrite is swapped in tests; headless CI has no clipboard.
var clipboardWrite = clipboard.WriteAll

type model struct {
	ctx        context.Context
	controller service.TodoController
	cfg        *config.ClientConfig

	view models.View
	idx  int

	adding     bool
	input      textinput.Model
	confirming bool
	spinner    spinner.Model

	status string
	errMsg string
}

func newModel(ctx context.Context, controller service.TodoController, cfg *config.ClientConfig) model {
	in := textinput.New()
	in.Placeholder = "Что нужно сделать?"
	in.CharLimit = 256

	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return model{
		ctx:        ctx,
		controller: controller,
		cfg:        cfg,
		view:       controller.View(),
		input:      in,
		spinner:    s,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdLoadInitial())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case viewMsg:
		m.view = msg.view
		m.errMsg = humanizeError(msg.view.Err)
		m.clampCursor()
		return m, nil
	case opDoneMsg:
		if msg.err != nil {
			if errors.Is(msg.err, service.ErrSuperseded) {
				return m, nil
			}
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		return m, m.setStatus(opStatus(msg.op))
	case copiedMsg:
		if msg.err != nil {
			m.errMsg = "Не удалось скопировать: " + msg.err.Error()
			return m, nil
		}
		return m, m.setStatus("Скопировано в буфер обмена")
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.adding {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.adding {
		return m.updateAdding(msg)
	}
	if m.confirming {
		return m.updateConfirm(msg)
	}

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(msg, keys.down):
		if m.idx < len(m.view.Items)-1 {
			m.idx++
		}
	case key.Matches(msg, keys.newItem):
		m.adding = true
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(msg, keys.toggle):
		if item, ok := m.current(); ok {
			return m, m.cmdToggle(item.ID)
		}
	case key.Matches(msg, keys.delete):
		if _, ok := m.current(); ok {
			m.confirming = true
		}
	case key.Matches(msg, keys.retry):
		return m, m.cmdRetry()
	case key.Matches(msg, keys.profile):
		return m.switchProfile()
	case key.Matches(msg, keys.copy):
		if item, ok := m.current(); ok {
			return m, cmdCopy(item.Title)
		}
	}

	return m, nil
}

func (m model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.adding = false
		m.input.Blur()
		return m, nil
	case key.Matches(msg, keys.enter):
		title := m.input.Value()
		m.adding = false
		m.input.Blur()
		m.input.SetValue("")
		return m, m.cmdCreate(title)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		m.confirming = false
		if item, ok := m.current(); ok {
			return m, m.cmdDelete(item.ID)
		}
	case key.Matches(msg, keys.no):
		m.confirming = false
	}
	return m, nil
}

// switchProfile flips between the local and remote endpoints.
func (m model) switchProfile() (tea.Model, tea.Cmd) {
	next := config.ProfileRemote
	if m.controller.Endpoint().Name == config.ProfileRemote {
		next = config.ProfileLocal
	}

	endpoint, err := m.cfg.EndpointFor(next)
	if err != nil {
		m.errMsg = humanizeError(err)
		return m, nil
	}

	m.idx = 0
	return m, m.cmdReconfigure(endpoint)
}

func (m model) current() (models.Item, bool) {
	if m.idx < 0 || m.idx >= len(m.view.Items) {
		return models.Item{}, false
	}
	return m.view.Items[m.idx], true
}

func (m *model) clampCursor() {
	if m.idx >= len(m.view.Items) {
		m.idx = len(m.view.Items) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *model) setStatus(status string) tea.Cmd {
	m.status = status
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m model) cmdLoadInitial() tea.Cmd {
	ctrl, ctx := m.controller, m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: "load", err: ctrl.LoadInitial(ctx)}
	}
}

func (m model) cmdCreate(title string) tea.Cmd {
	ctrl, ctx := m.controller, m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: "create", err: ctrl.CreateItem(ctx, title)}
	}
}

func (m model) cmdToggle(id models.ItemID) tea.Cmd {
	ctrl, ctx := m.controller, m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: "toggle", err: ctrl.ToggleItem(ctx, id)}
	}
}

func (m model) cmdDelete(id models.ItemID) tea.Cmd {
	ctrl, ctx := m.controller, m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: "delete", err: ctrl.DeleteItem(ctx, id)}
	}
}

func (m model) cmdRetry() tea.Cmd {
	ctrl, ctx := m.controller, m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: "retry", err: ctrl.Retry(ctx)}
	}
}

func (m model) cmdReconfigure(endpoint config.Endpoint) tea.Cmd {
	ctrl, ctx := m.controller, m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: "switch", err: ctrl.Reconfigure(ctx, endpoint)}
	}
}

func cmdCopy(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboardWrite(text)}
	}
}

func opStatus(op string) string {
	switch op {
	case "create":
		return "Запись добавлена"
	case "toggle":
		return "Статус изменён"
	case "delete":
		return "Запись удалена"
	case "retry":
		return "Список обновлён"
	case "switch":
		return "Профиль переключён"
	default:
		return ""
	}
}
