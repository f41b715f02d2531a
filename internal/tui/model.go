// Package tui provides the Bubble Tea induction lab.
package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/faraday/internal/export"
	"github.com/verte-zerg/faraday/internal/game"
	"github.com/verte-zerg/faraday/internal/model"
	"github.com/verte-zerg/faraday/internal/sim"
	"github.com/verte-zerg/faraday/internal/stats"
)

const (
	tabLab = iota
	tabData
	tabTheory
	tabHistory
	tabAchievements
)

const (
	gameTickInterval = time.Second
	nudgeStep        = 10.0 // px
	electronDrift    = 0.15 // radians per frame per ampere
	minCanvasCols    = 20
	minCanvasRows    = 8
	curveHeight      = 6
	textWidth        = 96
)

type frameMsg struct{ gen int }

type gameTickMsg struct {
	gen     int
	session int
}

type exportedMsg struct {
	path string
	rows int
	err  error
}

type dataStamp struct {
	n    int
	last float64
}

// Model implements the Bubble Tea lab UI.
type Model struct {
	sim       *sim.Simulation
	exportDir string
	logger    *zap.Logger
	now       func() time.Time

	keys keyMap
	help help.Model

	tabs      []string
	activeTab int
	viewports []viewport.Model
	dataTable table.Model
	dataStamp dataStamp

	width     int
	height    int
	canvas    sim.Viewport
	canvasTop int
	showScope bool

	tel       model.Telemetry
	gen       int
	session   int
	phase     float64
	spring    harmonica.Spring
	needle    float64
	needleVel float64
	dragging  bool

	status    string
	statusErr bool

	audio Audio
}

// Audio is the sound device behind the lab's cues.
type Audio interface {
	Open()
	SetEnabled(on bool)
	Enabled() bool
	Silent() bool
}

// Option configures a Model.
type Option func(*Model)

// WithAudio lets the lab open the device on the first key or click and
// report its state.
func WithAudio(a Audio) Option {
	return func(m *Model) { m.audio = a }
}

// NewModel constructs a lab UI driving s. Exports are written to exportDir.
func NewModel(s *sim.Simulation, exportDir string, logger *zap.Logger, opts ...Option) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Model{
		sim:       s,
		exportDir: exportDir,
		logger:    logger,
		now:       time.Now,
		keys:      defaultKeyMap(),
		help:      help.New(),
		tabs:      []string{"Lab", "Data", "Theory", "History", "Achievements"},
		spring:    harmonica.NewSpring(harmonica.FPS(60), 6.0, 0.35),
	}
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.dataTable = table.New(
		table.WithColumns(historyColumns()),
		table.WithHeight(1),
	)
	m.dataTable.SetStyles(historyTableStyles())
	m.tel = s.Telemetry()
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(m.gen), gameTickCmd(m.gen, m.session))
}

func frameCmd(gen int) tea.Cmd {
	return tea.Tick(sim.FrameInterval, func(time.Time) tea.Msg { return frameMsg{gen: gen} })
}

func gameTickCmd(gen, session int) tea.Cmd {
	return tea.Tick(gameTickInterval, func(time.Time) tea.Msg { return gameTickMsg{gen: gen, session: session} })
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case frameMsg:
		if !m.live(msg.gen) {
			return m, nil
		}
		m.sim.Frame()
		m.refresh()
		return m, frameCmd(m.gen)
	case gameTickMsg:
		if !m.live(msg.gen) || msg.session != m.session {
			return m, nil
		}
		if res, done := m.sim.GameTick(context.Background()); done {
			m.setStatus(gameOverStatus(res), false)
		}
		m.tel = m.sim.Telemetry()
		return m, gameTickCmd(m.gen, m.session)
	case exportedMsg:
		m.handleExported(msg)
		return m, nil
	case tea.MouseMsg:
		m.openAudio()
		m.handleMouse(msg)
		return m, nil
	case tea.KeyMsg:
		m.openAudio()
		return m.handleKey(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.help.View(m.keys), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// live reports whether a scheduled message still belongs to the running lab.
func (m *Model) live(gen int) bool {
	return gen == m.gen && !m.sim.Closed()
}

func (m *Model) openAudio() {
	if m.audio != nil {
		m.audio.Open()
	}
}

func (m *Model) quit() {
	m.gen++
	m.sim.Close()
}

func (m *Model) refresh() {
	m.tel = m.sim.Telemetry()
	current := m.tel.ScopeLatest
	m.phase = math.Mod(m.phase+current*electronDrift, 2*math.Pi)
	target := math.Min(1, current/gaugeFullScale)
	m.needle, m.needleVel = m.spring.Update(m.needle, m.needleVel, target)
	if m.activeTab == tabData {
		m.refreshData(false)
	}
}

func gameOverStatus(res game.Result) string {
	if res.NewHigh {
		return fmt.Sprintf("Game over: %d points, new high score!", res.Score)
	}
	return fmt.Sprintf("Game over: %d points (best %d)", res.Score, res.HighScore)
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quit()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.updateLayout()
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		m.moveTab(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.moveTab(-1)
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		m.setTab(int(msg.String()[0] - '1'))
		return m, nil
	case key.Matches(msg, m.keys.Export):
		return m, m.exportCmd()
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case tabLab:
		cmd = m.handleLabKey(msg)
	case tabData:
		m.dataTable, cmd = m.dataTable.Update(msg)
	case tabTheory, tabHistory:
		m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
	}
	return m, cmd
}

func (m *Model) handleLabKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	cfg := m.sim.Config()
	switch {
	case key.Matches(msg, m.keys.TurnsUp):
		m.sim.SetTurns(cfg.Turns + 1)
	case key.Matches(msg, m.keys.TurnsDown):
		m.sim.SetTurns(cfg.Turns - 1)
	case key.Matches(msg, m.keys.Stronger):
		m.sim.SetStrength(cfg.Strength + sim.StrengthInc)
	case key.Matches(msg, m.keys.Weaker):
		m.sim.SetStrength(cfg.Strength - sim.StrengthInc)
	case key.Matches(msg, m.keys.Magnet):
		m.sim.SetMagnetType(cfg.MagnetType.Next())
		m.setStatus("Magnet: "+string(m.sim.Config().MagnetType), false)
	case key.Matches(msg, m.keys.Material):
		m.sim.SetMaterial(model.NextMaterial(cfg.Material))
		m.setStatus("Coil material: "+m.sim.Config().Material, false)
	case key.Matches(msg, m.keys.Sound):
		m.setSound(!cfg.SoundEnabled)
	case key.Matches(msg, m.keys.Particles):
		m.sim.SetParticlesEnabled(!cfg.ParticlesEnabled)
	case key.Matches(msg, m.keys.FieldLines):
		m.sim.SetFieldLinesEnabled(!cfg.FieldLinesEnabled)
	case key.Matches(msg, m.keys.SlowMotion):
		m.sim.SetSlowMotion(!cfg.SlowMotion)
	case key.Matches(msg, m.keys.Game):
		cmd = m.toggleGame()
	case key.Matches(msg, m.keys.Through):
		m.startPreset("through")
	case key.Matches(msg, m.keys.Fast):
		m.startPreset("fast")
	case key.Matches(msg, m.keys.Approach):
		m.startPreset("approach")
	case key.Matches(msg, m.keys.Reset):
		m.sim.Reset()
		m.dragging = false
		m.needle, m.needleVel = 0, 0
		m.setStatus("Lab reset", false)
	case key.Matches(msg, m.keys.Nudge):
		m.nudge(msg.String())
	default:
		return nil
	}
	m.tel = m.sim.Telemetry()
	return cmd
}

// toggleGame starts or stops a session. Each toggle restarts the one-second
// ticker so a new game gets its full first second.
func (m *Model) toggleGame() tea.Cmd {
	m.session++
	if m.tel.GameActive {
		m.sim.StopGame()
		m.setStatus("Game stopped", false)
	} else {
		m.sim.StartGame()
		m.setStatus(fmt.Sprintf("Game on: keep the bulb lit for %d seconds", game.SessionSeconds), false)
	}
	return gameTickCmd(m.gen, m.session)
}

func (m *Model) setSound(on bool) {
	m.sim.SetSoundEnabled(on)
	if m.audio != nil {
		m.audio.SetEnabled(on)
	}
	m.setStatus(m.soundStatus(), false)
}

func (m *Model) soundStatus() string {
	switch {
	case m.audio != nil && m.audio.Silent():
		return "Sound unavailable: no audio device"
	case !m.sim.Config().SoundEnabled, m.audio != nil && !m.audio.Enabled():
		return "Sound off"
	default:
		return "Sound on"
	}
}

func (m *Model) startPreset(name string) {
	if err := m.sim.StartPreset(name); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.dragging = false
	m.setStatus("Demo: "+name, false)
}

func (m *Model) nudge(dir string) {
	var d model.Vec
	switch dir {
	case "h":
		d.X = -nudgeStep
	case "l":
		d.X = nudgeStep
	case "k":
		d.Y = -nudgeStep
	case "j":
		d.Y = nudgeStep
	}
	pos := m.tel.Magnet.Pos
	if !m.sim.PointerDown(pos) {
		return
	}
	m.sim.PointerMove(pos.Add(d))
	m.sim.PointerUp()
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.activeTab != tabLab || m.sim.Closed() {
		return
	}
	col, row := msg.X, msg.Y-m.canvasTop
	inside := col >= 0 && col < m.canvas.Cols && row >= 0 && row < m.canvas.Rows
	surface := m.sim.Surface()
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return
		}
		m.dragging = m.sim.PointerDown(m.canvas.ToSurface(col, row, surface))
	case tea.MouseActionMotion:
		if !m.dragging {
			return
		}
		if !inside {
			m.release()
			break
		}
		m.sim.PointerMove(m.canvas.ToSurface(col, row, surface))
	case tea.MouseActionRelease:
		m.release()
	}
	m.tel = m.sim.Telemetry()
}

func (m *Model) release() {
	m.dragging = false
	m.sim.PointerUp()
}

func (m *Model) exportCmd() tea.Cmd {
	points := m.sim.Telemetry().History
	dir := m.exportDir
	now := m.now()
	return func() tea.Msg {
		path, err := export.ExportFile(dir, points, now)
		return exportedMsg{path: path, rows: len(points), err: err}
	}
}

func (m *Model) handleExported(msg exportedMsg) {
	switch {
	case errors.Is(msg.err, export.ErrEmptyHistory):
		m.setStatus("Nothing to export yet: move the magnet first", false)
	case msg.err != nil:
		m.logger.Warn("export failed", zap.Error(msg.err))
		m.setStatus("Export failed: "+msg.err.Error(), true)
	default:
		m.logger.Info("history exported", zap.String("path", msg.path), zap.Int("rows", msg.rows))
		m.sim.Notify(sim.NoticeDataExported)
		m.tel = m.sim.Telemetry()
		m.setStatus(fmt.Sprintf("Exported %d rows to %s", msg.rows, msg.path), false)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.setTab(next)
}

func (m *Model) setTab(idx int) {
	if idx < 0 || idx >= len(m.tabs) {
		return
	}
	m.activeTab = idx
	if idx != tabLab && m.dragging {
		m.release()
	}
	switch idx {
	case tabData:
		m.refreshData(true)
		m.dataTable.Focus()
	case tabTheory:
		m.sim.Notify(sim.NoticeTheoryOpened)
	case tabHistory:
		m.sim.Notify(sim.NoticeHistoryOpened)
	}
	if idx != tabData {
		m.dataTable.Blur()
	}
	m.tel = m.sim.Telemetry()
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(1, lipgloss.Height(activeNavStyle.Render("X")))
	headerHeight = tabsHeight + 1
	footerHeight = max(1, lipgloss.Height(m.help.View(m.keys)))
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.help.Width = m.width
	headerHeight, bodyHeight, _ := m.layoutHeights()
	m.canvasTop = headerHeight

	sideWidth := lipgloss.Width(renderSidePanel(m.tel, 0))
	cols := max(minCanvasCols, m.width-sideWidth-1)
	rows := bodyHeight
	scopeLines := lipgloss.Height(renderScope([]float64{0, 0}, m.width))
	m.showScope = bodyHeight-scopeLines >= minCanvasRows
	if m.showScope {
		rows = bodyHeight - scopeLines
	}
	m.canvas = sim.Viewport{Cols: cols, Rows: rows}

	wrap := lipgloss.NewStyle().Width(min(m.width, textWidth))
	for _, idx := range []int{tabTheory, tabHistory} {
		m.viewports[idx].Width = m.width
		m.viewports[idx].Height = bodyHeight
	}
	m.viewports[tabTheory].SetContent(wrap.Render(theoryText))
	m.viewports[tabHistory].SetContent(wrap.Render(historyText))
	m.refreshData(true)
}

func historyColumns() []table.Column {
	cols := make([]table.Column, len(stats.HistoryHeaders))
	for i, h := range stats.HistoryHeaders {
		cols[i] = table.Column{Title: h, Width: lipgloss.Width(h) + 1}
	}
	return cols
}

func (m *Model) refreshData(force bool) {
	points := m.tel.History
	stamp := dataStamp{n: len(points)}
	if len(points) > 0 {
		stamp.last = points[len(points)-1].Time
	}
	if !force && stamp == m.dataStamp {
		return
	}
	m.dataStamp = stamp
	raw := stats.HistoryRows(points, 0)
	rows := make([]table.Row, len(raw))
	for i, r := range raw {
		rows[i] = table.Row(r)
	}
	atEnd := m.dataTable.Cursor() >= len(m.dataTable.Rows())-1
	m.dataTable.SetRows(rows)
	_, bodyHeight, _ := m.layoutHeights()
	m.dataTable.SetHeight(max(3, bodyHeight-curveHeight-4))
	if atEnd {
		m.dataTable.GotoBottom()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		label := fmt.Sprintf("%d %s", i+1, tab)
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(label))
		} else {
			parts = append(parts, inactiveNavStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	return tabs + "\n" + m.renderStatus()
}

func (m *Model) renderStatus() string {
	if m.status == "" {
		cfg := m.tel.Config
		line := fmt.Sprintf("Faraday's law lab · %d turns · %s coil · %s magnet ×%.1f", cfg.Turns, cfg.Material, cfg.MagnetType, cfg.Strength)
		return headerStyle.Render(truncateLine(line, m.width))
	}
	if m.statusErr {
		return errorStyle.Render(truncateLine(m.status, m.width))
	}
	return statusStyle.Render(truncateLine(m.status, m.width))
}

func (m *Model) renderBody(height int) string {
	switch m.activeTab {
	case tabLab:
		return m.renderLab(height)
	case tabData:
		return m.renderData(height)
	case tabAchievements:
		return fitLines(renderAchievements(m.tel.Achievements, m.tel.UnlockedCount), m.width, height)
	default:
		return fitLines(m.viewports[m.activeTab].View(), m.width, height)
	}
}

func (m *Model) renderLab(height int) string {
	canvas := renderCanvas(sceneFrom(m.tel, m.phase), m.canvas, m.sim.Surface())
	canvas = fitLines(canvas, m.canvas.Cols, m.canvas.Rows)
	top := lipgloss.JoinHorizontal(lipgloss.Top, canvas, " ", renderSidePanel(m.tel, m.needle))
	if m.showScope {
		top += "\n" + renderScope(m.tel.Oscilloscope, m.width)
	}
	return fitLines(top, m.width, height)
}

func (m *Model) renderData(height int) string {
	points := m.tel.History
	if len(points) == 0 {
		return fitLines("No data recorded yet. Move the magnet in the Lab tab.", m.width, height)
	}
	var summary bytes.Buffer
	if err := stats.RenderSummary(&summary, points); err != nil {
		summary.Reset()
		summary.WriteString(err.Error())
	}
	current := make([]float64, len(points))
	for i, p := range points {
		current[i] = p.Current
	}
	side := strings.TrimRight(summary.String(), "\n") + "\n\n" + headerStyle.Render(stats.Sparkline(stats.Resample(current, 30)))
	top := lipgloss.JoinHorizontal(lipgloss.Top, tableMutedStyle.Render(m.dataTable.View()), "   ", side)

	var curves bytes.Buffer
	if err := stats.RenderCurves(&curves, points, m.width, curveHeight, true); err != nil {
		curves.Reset()
		curves.WriteString(fmt.Sprintf("Failed to render curves: %v", err))
	}
	return fitLines(top+"\n"+strings.TrimRight(curves.String(), "\n"), m.width, height)
}
