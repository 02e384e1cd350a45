package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-todo-sync/models"
)

func (m model) View() string {
	if m.confirming {
		if item, ok := m.current(); ok {
			return appStyle.Render(confirmModel{message: item.Title}.View())
		}
	}

	header := titleStyle.Render("Список дел") + "  " + m.connectionLabel()
	if m.view.Endpoint != "" {
		header += helpStyle.Render("  [" + m.view.Endpoint + "]")
	}

	var body strings.Builder
	switch {
	case m.view.Loading && len(m.view.Items) == 0:
		body.WriteString(m.spinner.View() + " Загрузка...")
	case len(m.view.Items) == 0:
		body.WriteString("Нет записей")
	default:
		for i, item := range m.view.Items {
			body.WriteString(renderItem(item, i == m.idx))
			body.WriteString("\n")
		}
	}

	if m.adding {
		body.WriteString("\n\nНовая запись: " + m.input.View())
	}
	if m.status != "" {
		body.WriteString("\n\n" + m.status)
	}
	if m.errMsg != "" {
		body.WriteString("\n\n" + errorStyle.Render("Ошибка: "+m.errMsg))
	}

	return appStyle.Render(renderPage(header, body.String(), helpStyle.Render(m.hotKeys())))
}

func (m model) hotKeys() string {
	if m.adding {
		return "enter сохранить  esc отмена"
	}
	return "n новая  space отметить  d удалить  c копировать  r обновить  p профиль  q выход"
}

func (m model) connectionLabel() string {
	state := m.view.Connection
	label := state.Status.String()
	switch state.Status {
	case models.Connecting:
		if state.Attempt > 1 {
			label = fmt.Sprintf("%s (попытка %d)", label, state.Attempt)
		}
		label = m.spinner.View() + " " + label
	case models.Error, models.Disconnected:
		if state.Reason != "" {
			label += ": " + fitText(state.Reason, 48)
		}
	}

	style, ok := connectionStyles[state.Status.String()]
	if !ok {
		return label
	}
	return style.Render(label)
}

func renderItem(item models.Item, selected bool) string {
	cursor := "  "
	if selected {
		cursor = cursorStyle.Render("> ")
	}

	box := "[ ]"
	title := item.Title
	if item.Completed {
		box = "[x]"
		title = doneStyle.Render(title)
	}
	return fmt.Sprintf("%s%s %s", cursor, box, title)
}
