package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wayfynd/navcore/internal/engine"
	"github.com/wayfynd/navcore/pkg/geo"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0AF"))
	legendStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))
	gridStyle   = lipgloss.NewStyle().Padding(1, 2).BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444"))
	routeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2C2"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C33"))
)

// floorModel renders one floor's obstacles, nodes, and an optional route as
// a styled ASCII grid, following the teacher's DashboardModel shape
// (Init/Update/View over a fixed data snapshot with window-size handling).
type floorModel struct {
	eng     *engine.Engine
	floorID string
	route   []geo.Coord
	width   int
	height  int
	err     error
}

func newFloorModel(eng *engine.Engine, floorID string, route []geo.Coord) floorModel {
	return floorModel{eng: eng, floorID: floorID, route: route, width: 80, height: 24}
}

func (m floorModel) Init() tea.Cmd { return nil }

func (m floorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m floorModel) View() string {
	gridW, gridH := m.width-8, m.height-10
	if gridW < 20 {
		gridW = 20
	}
	if gridH < 10 {
		gridH = 10
	}

	g := m.eng.Graph()
	det := m.eng.Collision()
	if g == nil {
		return errStyle.Render("engine is not initialized") + "\n"
	}

	gr, ok := buildGrid(g, det, m.floorID, m.route, gridW, gridH)
	if !ok {
		return errStyle.Render(fmt.Sprintf("floor %q has no nodes", m.floorID)) + "\n"
	}

	header := headerStyle.Render(fmt.Sprintf("navcore-viz — floor %s", m.floorID))
	legend := legendStyle.Render("# obstacle   * walkable   + door   ^ stairs   E elevator   o route   S start   T end   (q to quit)")
	body := gridStyle.Render(gr.render())

	if len(m.route) > 0 {
		body = routeStyle.Render(body)
	}

	return header + "\n" + body + "\n" + legend + "\n"
}
