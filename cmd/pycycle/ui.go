// # cmd/pycycle/ui.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"pycycle/internal/graph"
	"pycycle/internal/scanner"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	cycleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type model struct {
	list        list.Model
	cycles      [][]string
	lastUpdate  time.Time
	moduleCount int
	fileCount   int
}

type updateMsg struct {
	snapshot *scanner.Snapshot
	cycles   [][]string
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	case updateMsg:
		m.cycles = msg.cycles
		m.moduleCount = msg.snapshot.ModuleCount()
		m.fileCount = msg.snapshot.FileCount
		m.lastUpdate = time.Now()

		idx := graph.BuildCycleIndex(msg.cycles)
		items := []list.Item{}
		for _, c := range m.cycles {
			items = append(items, item{
				title: "Circular Import",
				desc:  strings.Join(c, " -> "),
			})
		}
		for _, fqn := range msg.snapshot.Order {
			if idx.InCycle(fqn) {
				continue
			}
			rec := msg.snapshot.Modules[fqn]
			items = append(items, item{
				title: fqn,
				desc:  fmt.Sprintf("%d imports | %s", len(rec.Imports), rec.Path),
			})
		}
		m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d files | %d modules",
		m.lastUpdate.Format("15:04:05"), m.fileCount, m.moduleCount))

	var summary string
	if len(m.cycles) == 0 {
		summary = successStyle.Render("✅ No circular imports")
	} else {
		summary = cycleStyle.Render(fmt.Sprintf("⚠️  %d Cycles", len(m.cycles)))
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Import Cycle Monitor"), status, summary)
	return docStyle.Render(header + "\n" + m.list.View())
}

func initialModel() model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Modules and Cycles"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return model{
		list:       l,
		lastUpdate: time.Now(),
	}
}

func (a *App) RunUI(res ScanResult) error {
	m := initialModel()
	p := tea.NewProgram(m, tea.WithAltScreen())
	a.teaProgram = p

	go func() {
		a.teaProgram.Send(updateMsg{
			snapshot: res.Snapshot,
			cycles:   res.Cycles,
		})
	}()

	_, err := p.Run()
	return err
}

var uiCmd = &cobra.Command{
	Use:   "ui [root]",
	Short: "Watch the project in an interactive terminal UI",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			cfg.Root = args[0]
		}

		app, err := NewApp(cfg)
		if err != nil {
			return err
		}
		defer app.Close(cmd.Context())

		res, err := app.RunScan(cmd.Context())
		if err != nil {
			return err
		}

		if err := app.StartWatcher(); err != nil {
			return err
		}

		return app.RunUI(res)
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
