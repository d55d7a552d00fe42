package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/soap4/internal/domain"
	"github.com/mmcdole/soap4/internal/tui/styles"
)

// Vertical chrome: header, blank line, footer
const chromeHeight = 3

// row is one rendered line of the page body
type row struct {
	item    *domain.Item
	match   *filterMatch
	visible int // index into Model.visible, -1 for separators
}

func (m Model) bodyHeight() int {
	h := m.Height - chromeHeight
	if m.snap.Err != nil {
		h--
	}
	if h < 1 {
		return 1
	}
	return h
}

// View renders the application
func (m Model) View() string {
	width := m.Width
	if width <= 0 {
		width = 80
	}

	if m.State == StateLogin {
		return m.renderLogin(width)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader(width))
	b.WriteString("\n\n")
	if m.snap.Err != nil {
		b.WriteString(styles.ErrorStyle.Render(domain.UserMessage(m.snap.Err)))
		b.WriteString("\n")
	}
	b.WriteString(m.renderBody(width))
	b.WriteString("\n")
	b.WriteString(m.renderFooter(width))
	return b.String()
}

func (m Model) renderHeader(width int) string {
	title := m.snap.Meta.Title
	if title == "" {
		title = "soap4"
	}
	header := styles.TitleStyle.Render(styles.Truncate(title, width-16))
	if m.snap.Total > 0 {
		header += styles.DimStyle.Render(fmt.Sprintf("  %d results", m.snap.Total))
	}
	if m.navigating {
		header += " " + m.spinner.View()
	}
	return header
}

// rows lists the body lines. Group headings show only when no filter
// is applied.
func (m Model) rows() []row {
	var rows []row
	if m.filterInput.Value() == "" {
		next := 0
		for i := range m.snap.Items {
			item := &m.snap.Items[i]
			if item.Kind == domain.ItemSeparator {
				rows = append(rows, row{item: item, visible: -1})
				continue
			}
			if next < len(m.visible) && m.visible[next].index == i {
				rows = append(rows, row{item: item, match: &m.visible[next], visible: next})
				next++
			}
		}
		return rows
	}
	for i := range m.visible {
		rows = append(rows, row{item: &m.snap.Items[m.visible[i].index], match: &m.visible[i], visible: i})
	}
	return rows
}

func (m Model) renderBody(width int) string {
	rows := m.rows()
	height := m.bodyHeight()

	if len(rows) == 0 {
		switch {
		case m.navigating:
			return styles.DimStyle.Render("Loading...")
		case m.filterInput.Value() != "":
			return styles.DimStyle.Render("No matches")
		default:
			return styles.DimStyle.Render("Nothing here")
		}
	}

	cursorRow := 0
	for i, r := range rows {
		if r.visible == m.cursor {
			cursorRow = i
			break
		}
	}
	start := 0
	if cursorRow >= height {
		start = cursorRow - height + 1
	}
	end := min(start+height, len(rows))

	lines := make([]string, 0, end-start)
	for _, r := range rows[start:end] {
		lines = append(lines, m.renderRow(r, width))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(r row, width int) string {
	item := r.item
	if r.visible < 0 {
		return styles.GroupStyle.Render(styles.Truncate(item.Title, width))
	}

	selected := r.visible == m.cursor

	mark := " "
	if item.Kind == domain.ItemVideo {
		mark = styles.UnplayedDot
		if item.Watched {
			mark = styles.PlayedCheck
		}
	}

	var extra []string
	if item.Quality != "" {
		extra = append(extra, item.Quality)
	}
	if item.Year > 0 {
		extra = append(extra, fmt.Sprintf("%d", item.Year))
	}
	if item.Rating > 0 {
		extra = append(extra, fmt.Sprintf("★ %.1f", item.Rating))
	}
	suffix := ""
	if len(extra) > 0 {
		suffix = "  " + strings.Join(extra, " · ")
	}

	titleWidth := width - 4 - lipgloss.Width(suffix)
	title := styles.Truncate(item.Title, titleWidth)

	style := styles.NormalItemStyle
	if selected {
		style = styles.SelectedItemStyle
	}

	var text string
	if r.match != nil && len(r.match.matched) > 0 {
		text = highlight(title, r.match.matched, style)
	} else {
		text = style.Render(title)
	}

	line := fmt.Sprintf(" %s %s%s", mark, text, style.Render(suffix))
	if selected {
		pad := width - lipgloss.Width(line)
		if pad > 0 {
			line += style.Render(strings.Repeat(" ", pad))
		}
	}
	return line
}

// highlight renders title with the matched byte offsets emphasised
func highlight(title string, matched []int, base lipgloss.Style) string {
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var b strings.Builder
	for i, r := range title {
		if hit[i] {
			b.WriteString(styles.MatchHighlightStyle.Inherit(base).Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

func (m Model) renderFooter(width int) string {
	switch m.State {
	case StateFiltering:
		return m.filterInput.View()
	case StateSearching:
		return m.searchInput.View()
	}

	if m.StatusMsg != "" {
		style := styles.SubtitleStyle
		if m.StatusIsErr {
			style = styles.ErrorStyle
		}
		return style.Render(styles.Truncate(m.StatusMsg, width))
	}

	if q := m.filterInput.Value(); q != "" {
		return styles.FilterStyle.Render(fmt.Sprintf("filter: %s  (esc to clear)", q))
	}

	bindings := []struct{ key, desc string }{
		{"enter", "open"},
		{"h", "back"},
		{"/", "filter"},
		{"f", "search"},
		{"r", "reload"},
		{"L", "logout"},
		{"q", "quit"},
	}
	var parts []string
	for _, kb := range bindings {
		parts = append(parts, styles.HelpKeyStyle.Render(kb.key)+" "+styles.HelpDescStyle.Render(kb.desc))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderLogin(width int) string {
	title := m.loginTitle
	if title == "" {
		title = "Login"
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(title),
		styles.SubtitleStyle.Render(m.loginReason),
		"",
		m.loginUser.View(),
		m.loginPass.View(),
		"",
		styles.DimStyle.Render("enter submit · tab switch field · esc cancel"),
	)
	modal := styles.ModalStyle.Render(body)

	height := m.Height
	if height <= 0 {
		height = lipgloss.Height(modal)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}
