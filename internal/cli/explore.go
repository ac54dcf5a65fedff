package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sograph/sograph/internal/config"
	"github.com/sograph/sograph/pkg/depgraph"
	"github.com/sograph/sograph/pkg/elfsym"
	"github.com/sograph/sograph/pkg/locate"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// exploreCommand creates the explore command: walk first, browse after.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		depth      int
		groups     []string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "explore <elf-file>",
		Short: "Browse the dependency graph interactively",
		Long: `Walk the shared-library dependency graph of an ELF binary and browse it in
an interactive tree. Enter expands or collapses a library's dependencies;
arrow keys or j/k move the cursor; q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("depth") && cfg.Depth > 0 {
				depth = cfg.Depth
			}
			groups = append(groups, cfg.Groups...)

			g := depgraph.NewGraph()
			walker := depgraph.New(elfsym.FileInspector{}, locate.Default(args[0], cfg.SearchPaths))
			opts := depgraph.Options{
				Groups: depgraph.NewGroups(groups, cfg.Palette),
				Warnf:  logger.Debugf, // quiet walk, warnings on --verbose only
			}

			spinner := newSpinnerWithContext(ctx, "Walking dependencies...")
			spinner.Start()
			err = walker.Walk(ctx, args[0], depth, g, opts)
			spinner.Stop()
			if err != nil {
				return err
			}
			if g.NodeCount() == 0 {
				return fmt.Errorf("nothing to explore: depth %d emitted no nodes", depth)
			}

			model := newExploreModel(g)
			_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().IntVar(&depth, "depth", depgraph.DefaultMaxDepth, "maximum recursion depth")
	cmd.Flags().StringArrayVar(&groups, "group", nil, "group libraries whose path contains this substring (repeatable)")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file (default ~/.config/sograph/config.toml)")

	return cmd
}

// exploreRow is one visible line of the tree. The key encodes the path from
// the root, so the same library expands independently at different
// positions.
type exploreRow struct {
	name  string
	key   string
	level int
}

// exploreModel is the bubbletea model for the dependency tree browser.
type exploreModel struct {
	graph    *depgraph.Graph
	root     string
	expanded map[string]bool
	rows     []exploreRow
	cursor   int
	offset   int
	height   int
}

func newExploreModel(g *depgraph.Graph) exploreModel {
	root := g.Nodes()[0].Name
	m := exploreModel{
		graph:    g,
		root:     root,
		expanded: map[string]bool{"/" + root: true},
		height:   15,
	}
	m.rebuild()
	return m
}

// rebuild recomputes the visible rows from the expansion state.
func (m *exploreModel) rebuild() {
	m.rows = m.rows[:0]
	m.appendRows(m.root, "", 0)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
}

func (m *exploreModel) appendRows(name, parentKey string, level int) {
	key := parentKey + "/" + name
	m.rows = append(m.rows, exploreRow{name: name, key: key, level: level})
	if !m.expanded[key] {
		return
	}
	for _, child := range m.graph.Children(name) {
		m.appendRows(child, key, level+1)
	}
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			row := m.rows[m.cursor]
			if len(m.graph.Children(row.name)) > 0 {
				m.expanded[row.key] = !m.expanded[row.key]
				m.rebuild()
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 4
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Dependency Explorer"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ expand/collapse  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.offset; i < end; i++ {
		row := m.rows[i]
		node, _ := m.graph.Node(row.name)

		marker := "  "
		if kids := m.graph.Children(row.name); len(kids) > 0 {
			marker = "▸ "
			if m.expanded[row.key] {
				marker = "▾ "
			}
		}

		style := listNormalStyle
		if i == m.cursor {
			style = listSelectedStyle
		}

		b.WriteString(strings.Repeat("  ", row.level))
		b.WriteString(style.Render(marker + node.File))
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d fn  %s", node.Functions, node.Path)))
		b.WriteString("\n")
	}

	return b.String()
}
