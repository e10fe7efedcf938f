package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/drapaimern/taskboard/pkg/models"
)

// Style definitions for the board view.
var (
	boardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	columnStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	focusedColumnStyle = columnStyle.
				BorderForeground(lipgloss.Color("62"))

	columnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252"))

	cardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	selectedCardStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62"))

	boardHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boardErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// boardModel drives the interactive four-column kanban view.
type boardModel struct {
	columns [][]models.Task // one slice per status, in AllStatuses order
	focus   int             // focused column index
	cursor  []int           // per-column selected row
	width   int
	height  int
	loading bool
	err     error
}

// boardLoadedMsg carries the freshly loaded board back to the model.
type boardLoadedMsg struct {
	columns [][]models.Task
	err     error
}

// taskMovedMsg reports the result of a move triggered from the board.
type taskMovedMsg struct {
	err error
}

func newBoardModel() boardModel {
	statuses := models.AllStatuses()
	return boardModel{
		columns: make([][]models.Task, len(statuses)),
		cursor:  make([]int, len(statuses)),
		loading: true,
	}
}

// loadBoard fetches all tasks and distributes them into columns.
func loadBoard() tea.Msg {
	tasks, err := TaskMgr.GetAllTasks()
	if err != nil {
		return boardLoadedMsg{err: err}
	}
	statuses := models.AllStatuses()
	index := make(map[models.Status]int, len(statuses))
	for i, status := range statuses {
		index[status] = i
	}
	columns := make([][]models.Task, len(statuses))
	for _, task := range tasks {
		i := index[task.Status]
		columns[i] = append(columns[i], task)
	}
	return boardLoadedMsg{columns: columns}
}

func (m boardModel) Init() tea.Cmd {
	return loadBoard
}

// selectedTask returns the task under the cursor, or nil when the focused
// column is empty.
func (m boardModel) selectedTask() *models.Task {
	col := m.columns[m.focus]
	if len(col) == 0 {
		return nil
	}
	row := m.cursor[m.focus]
	if row >= len(col) {
		row = len(col) - 1
	}
	return &col[row]
}

// nextStatus cycles through the columns in board order.
func nextStatus(status models.Status) models.Status {
	statuses := models.AllStatuses()
	for i, s := range statuses {
		if s == status {
			return statuses[(i+1)%len(statuses)]
		}
	}
	return models.StatusBacklog
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case boardLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.columns = msg.columns
			for i := range m.cursor {
				if m.cursor[i] >= len(m.columns[i]) {
					m.cursor[i] = max(0, len(m.columns[i])-1)
				}
			}
		}
		return m, nil

	case taskMovedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m, loadBoard

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.focus > 0 {
				m.focus--
			}
		case "right", "l":
			if m.focus < len(m.columns)-1 {
				m.focus++
			}
		case "up", "k":
			if m.cursor[m.focus] > 0 {
				m.cursor[m.focus]--
			}
		case "down", "j":
			if m.cursor[m.focus] < len(m.columns[m.focus])-1 {
				m.cursor[m.focus]++
			}
		case "m":
			if task := m.selectedTask(); task != nil {
				id := task.ID
				target := nextStatus(task.Status)
				return m, func() tea.Msg {
					_, err := TaskMgr.MoveTask(id, target)
					return taskMovedMsg{err: err}
				}
			}
		case "r":
			m.loading = true
			return m, loadBoard
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.loading {
		return "Loading board...\n"
	}

	title := boardTitleStyle.Render("taskboard")

	colWidth := 24
	if m.width > 0 {
		if w := m.width/len(m.columns) - 4; w > 16 {
			colWidth = w
		}
	}

	statuses := models.AllStatuses()
	rendered := make([]string, 0, len(statuses))
	for i, status := range statuses {
		var lines []string
		lines = append(lines, columnHeaderStyle.Render(
			fmt.Sprintf("%s (%d)", status.Label(), len(m.columns[i]))))
		for j, task := range m.columns[i] {
			label := fmt.Sprintf("%s [%s]", task.Title, task.Priority)
			if len(label) > colWidth {
				label = label[:colWidth-1] + "…"
			}
			style := cardStyle
			if i == m.focus && j == m.cursor[i] {
				style = selectedCardStyle
			}
			lines = append(lines, style.Render(label))
		}
		if len(m.columns[i]) == 0 {
			lines = append(lines, cardStyle.Render("—"))
		}

		style := columnStyle
		if i == m.focus {
			style = focusedColumnStyle
		}
		rendered = append(rendered, style.Width(colWidth+2).Render(
			lipgloss.JoinVertical(lipgloss.Left, lines...)))
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	help := boardHelpStyle.Render("←/→ column · ↑/↓ task · m move · r reload · q quit")

	out := lipgloss.JoinVertical(lipgloss.Left, title, board, help)
	if m.err != nil {
		out = lipgloss.JoinVertical(lipgloss.Left, out,
			boardErrStyle.Render("error: "+m.err.Error()))
	}
	return out + "\n"
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Interactive four-column kanban view",
	Long: `Open the board in an interactive terminal view with the four columns
Backlog, In Progress, Blocked and Done.

Navigate with the arrow keys (or hjkl), press m to move the selected task
to the next column, r to reload, q to quit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		p := tea.NewProgram(newBoardModel(), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running board view: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
}
