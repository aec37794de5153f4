// Package tui provides the Bubble Tea name explorer.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/namepick/internal/favorites"
	"github.com/verte-zerg/namepick/internal/model"
	"github.com/verte-zerg/namepick/internal/query"
	"github.com/verte-zerg/namepick/internal/report"
)

type mode int

const (
	modeTable mode = iota
	modeFilter
	modeFavorites
)

// Filter inputs, in tab order.
const (
	inputContains = iota
	inputStarts
	inputEnds
	inputLength
	inputYear
	inputTotal
	inputCount
)

const (
	favoritesPanelWidth = 26
	minWidthForPanel    = 70
	headerHeight        = 4
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	countStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	panelStyle  = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	activePanelStyle = panelStyle.BorderForeground(lipgloss.Color("#C89A3A"))
	favoriteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	selectedFavStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
)

// Model implements the Bubble Tea explorer UI.
type Model struct {
	cfg       model.Config
	records   []model.NameRecord
	sorter    *query.Sorter
	favorites *favorites.Favorites

	criteria model.FilterCriteria
	sortSpec model.SortSpec
	result   query.Result
	summary  report.Summary

	mode       mode
	table      table.Model
	inputs     []textinput.Model
	inputIndex int
	favCursor  int

	width  int
	height int

	errMsg string
}

// NewModel constructs an explorer over records. The records are never modified.
func NewModel(cfg model.Config, records []model.NameRecord, sorter *query.Sorter, fav *favorites.Favorites) *Model {
	m := &Model{
		cfg:       cfg,
		records:   records,
		sorter:    sorter,
		favorites: fav,
		sortSpec:  cfg.Sort,
		criteria: model.FilterCriteria{
			IgnoreAccents:      cfg.IgnoreAccents,
			SuppressDuplicates: cfg.NoDuplicates,
		},
	}
	if err := fav.Corrupt(); err != nil {
		m.errMsg = fmt.Sprintf("ignored malformed favorites: %v", err)
	}
	m.initInputs()
	m.initTable()
	m.recompute()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeFilter:
			return m.updateFilter(msg)
		case modeFavorites:
			return m.updateFavorites(msg)
		default:
			return m.updateTable(msg)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	footer := m.renderFooter()
	footerHeight := lipgloss.Height(footer)
	bodyHeight := maxInt(1, m.height-headerHeight-footerHeight)
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	return strings.Join([]string{header, body, fitLines(footer, m.width, footerHeight)}, "\n")
}

func (m *Model) initInputs() {
	m.inputs = make([]textinput.Model, inputCount)
	m.inputs[inputContains] = newFilterInput("Contains: ", 12)
	m.inputs[inputStarts] = newFilterInput("Starts: ", 10)
	m.inputs[inputEnds] = newFilterInput("Ends: ", 10)
	m.inputs[inputLength] = newFilterInput("Length: ", 4)
	m.inputs[inputYear] = newFilterInput("Year: ", 4)
	m.inputs[inputTotal] = newFilterInput("Total: ", 8)
}

func newFilterInput(prompt string, width int) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 64
	input.Width = width
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) initTable() {
	m.table = table.New(
		table.WithColumns(m.columns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	m.table.SetStyles(tableStyles())
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#F0F0F0")).
		Background(lipgloss.Color("#3A3A3A")).
		Bold(true)
	return styles
}

func (m *Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		return m.startFilter()
	case "s":
		m.criteria.Sex = nextSex(m.criteria.Sex)
		m.recompute()
		return m, nil
	case "d":
		m.criteria.SuppressDuplicates = !m.criteria.SuppressDuplicates
		m.recompute()
		return m, nil
	case "a":
		m.criteria.IgnoreAccents = !m.criteria.IgnoreAccents
		m.recompute()
		return m, nil
	case "x":
		m.clearCriteria()
		return m, nil
	case "1":
		m.toggleSort(model.SortName)
		return m, nil
	case "2":
		m.toggleSort(model.SortSex)
		return m, nil
	case "3":
		m.toggleSort(model.SortYear)
		return m, nil
	case "4":
		m.toggleSort(model.SortTotal)
		return m, nil
	case "f", " ":
		if rec, ok := m.selectedRecord(); ok {
			m.toggleFavorite(rec.Name)
		}
		return m, nil
	case "F", "tab":
		if m.favorites.Current().Len() > 0 {
			m.mode = modeFavorites
			m.table.Blur()
			m.favCursor = minInt(m.favCursor, m.favorites.Current().Len()-1)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.mode = modeFilter
	m.table.Blur()
	return m, m.setInputIndex(m.inputIndex)
}

func (m *Model) stopFilter() {
	m.mode = modeTable
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.table.Focus()
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.stopFilter()
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		return m, m.setInputIndex(m.inputIndex + 1)
	case tea.KeyShiftTab, tea.KeyUp:
		return m, m.setInputIndex(m.inputIndex - 1)
	}
	var cmd tea.Cmd
	m.inputs[m.inputIndex], cmd = m.inputs[m.inputIndex].Update(msg)
	m.criteriaFromInputs()
	m.recompute()
	return m, cmd
}

func (m *Model) updateFavorites(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	names := m.favorites.Names()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "F", "tab":
		m.leaveFavorites()
	case "up", "k":
		if m.favCursor > 0 {
			m.favCursor--
		}
	case "down", "j":
		if m.favCursor < len(names)-1 {
			m.favCursor++
		}
	case "enter", "f", " ", "delete", "backspace":
		if m.favCursor < len(names) {
			m.toggleFavorite(names[m.favCursor])
		}
		if n := m.favorites.Current().Len(); n == 0 {
			m.leaveFavorites()
		} else if m.favCursor >= n {
			m.favCursor = n - 1
		}
	}
	return m, nil
}

func (m *Model) leaveFavorites() {
	m.mode = modeTable
	m.table.Focus()
}

func (m *Model) setInputIndex(idx int) tea.Cmd {
	count := len(m.inputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.inputIndex = idx
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == m.inputIndex {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) criteriaFromInputs() {
	m.criteria.NameContains = m.inputs[inputContains].Value()
	m.criteria.StartsWith = m.inputs[inputStarts].Value()
	m.criteria.EndsWith = m.inputs[inputEnds].Value()
	m.criteria.Length = m.inputs[inputLength].Value()
	m.criteria.Year = m.inputs[inputYear].Value()
	m.criteria.CumulativeTotal = m.inputs[inputTotal].Value()
}

func (m *Model) clearCriteria() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.criteria = model.FilterCriteria{}
	m.recompute()
}

func (m *Model) toggleSort(field model.SortField) {
	m.sortSpec = m.sortSpec.Toggle(field)
	m.recompute()
}

func (m *Model) toggleFavorite(name string) {
	if err := m.favorites.Toggle(context.Background(), name); err != nil {
		m.errMsg = err.Error()
	} else {
		m.errMsg = ""
	}
	m.refreshRows()
}

// recompute reruns the whole pipeline; each run replaces the previous result.
func (m *Model) recompute() {
	m.result = query.Run(m.records, m.criteria, m.sortSpec, m.sorter, m.cfg.DisplayLimit)
	m.summary = report.Summarize(m.result.Sorted)
	m.table.SetColumns(m.columns(m.tableWidth()))
	m.refreshRows()
	m.table.GotoTop()
}

func (m *Model) refreshRows() {
	rows := make([]table.Row, 0, len(m.result.Rows))
	for _, r := range m.result.Rows {
		rows = append(rows, table.Row(report.Row(r, m.favorites.IsFavorite(r.Name))))
	}
	m.table.SetRows(rows)
}

func (m *Model) selectedRecord() (model.NameRecord, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.result.Rows) {
		return model.NameRecord{}, false
	}
	return m.result.Rows[idx], true
}

func (m *Model) showPanel() bool {
	return m.width == 0 || m.width >= minWidthForPanel
}

func (m *Model) tableWidth() int {
	width := m.width
	if width <= 0 {
		width = 80
	}
	if m.showPanel() {
		width -= favoritesPanelWidth
	}
	return maxInt(20, width)
}

func (m *Model) columns(width int) []table.Column {
	titles := []string{"Name", "Sex", "Year", "Total", "★"}
	fields := []model.SortField{model.SortName, model.SortSex, model.SortYear, model.SortTotal, model.SortNone}
	fixed := []int{0, 4, 6, 9, 2}
	nameWidth := width
	for _, w := range fixed[1:] {
		nameWidth -= w + 1
	}
	nameWidth = maxInt(8, nameWidth-1)
	cols := make([]table.Column, len(titles))
	for i, title := range titles {
		w := fixed[i]
		if i == 0 {
			w = nameWidth
		}
		if fields[i] != model.SortNone && fields[i] == m.sortSpec.Field {
			title += sortIndicator(m.sortSpec.Direction)
		}
		cols[i] = table.Column{Title: title, Width: w}
	}
	return cols
}

func sortIndicator(d model.SortDirection) string {
	if d == model.Descending {
		return " ▼"
	}
	return " ▲"
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	footerHeight := lipgloss.Height(m.renderFooter())
	bodyHeight := maxInt(1, m.height-headerHeight-footerHeight)
	m.table.SetColumns(m.columns(m.tableWidth()))
	m.table.SetWidth(m.tableWidth())
	m.table.SetHeight(maxInt(1, bodyHeight-1))
}

func (m *Model) renderHeader() string {
	lines := []string{
		titleStyle.Render("namepick") + "  " + headerStyle.Render(m.renderToggles()),
		m.renderInputs(0, inputLength),
		m.renderInputs(inputLength, inputCount),
		m.renderStatus(),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderToggles() string {
	sex := "any"
	if m.criteria.Sex != model.SexAny {
		sex = string(m.criteria.Sex)
	}
	dupes := "shown"
	if m.criteria.SuppressDuplicates {
		dupes = "hidden"
	}
	accents := "strict"
	if m.criteria.IgnoreAccents {
		accents = "ignored"
	}
	return fmt.Sprintf("sex=%s  duplicates=%s  accents=%s", sex, dupes, accents)
}

func (m *Model) renderInputs(from, to int) string {
	parts := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		parts = append(parts, m.inputs[i].View())
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderStatus() string {
	segments := []string{
		countStyle.Render(report.RecordsFound(m.result.FilteredCount)),
		headerStyle.Render(m.summary.String()),
	}
	if m.result.Truncated {
		segments = append(segments, noticeStyle.Render(report.TruncatedNotice(m.displayLimit())))
	}
	if err := m.criteria.Validate(); err != nil {
		segments = append(segments, errorStyle.Render(err.Error()))
	}
	return strings.Join(segments, "  ")
}

func (m *Model) displayLimit() int {
	if m.cfg.DisplayLimit > 0 {
		return m.cfg.DisplayLimit
	}
	return query.DefaultDisplayLimit
}

func (m *Model) renderBody(height int) string {
	tableView := m.table.View()
	if !m.showPanel() {
		return tableView
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, fitLines(tableView, m.tableWidth(), height), m.renderFavorites(height))
}

func (m *Model) renderFavorites(height int) string {
	style := panelStyle
	if m.mode == modeFavorites {
		style = activePanelStyle
	}
	inner := favoritesPanelWidth - 4
	names := m.favorites.Names()
	lines := []string{headerStyle.Render(fmt.Sprintf("Favorites (%d)", len(names)))}
	if len(names) == 0 {
		lines = append(lines, headerStyle.Render("none yet"))
	}
	for i, name := range names {
		line := report.Truncate(report.FavoriteMark+" "+name, inner)
		if m.mode == modeFavorites && i == m.favCursor {
			line = selectedFavStyle.Render(line)
		} else {
			line = favoriteStyle.Render(line)
		}
		lines = append(lines, line)
	}
	maxLines := maxInt(1, height-2)
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return style.Width(inner + 2).Height(maxLines).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter() string {
	var help string
	switch m.mode {
	case modeFilter:
		help = "tab/shift+tab: next field  enter/esc: back to results  ctrl+c: quit"
	case modeFavorites:
		help = "up/down: move  enter: remove  esc: back  q: quit"
	default:
		help = "/: filters  s: sex  d: duplicates  a: accents  x: clear  1-4: sort  f: favorite  F: favorites  q: quit"
	}
	footer := headerStyle.Render(truncateLine(help, m.width))
	if m.errMsg != "" {
		footer += "\n" + errorStyle.Render(truncateLine(m.errMsg, m.width))
	}
	return footer
}

func nextSex(s model.Sex) model.Sex {
	switch s {
	case model.SexAny:
		return model.SexFemale
	case model.SexFemale:
		return model.SexMale
	default:
		return model.SexAny
	}
}
