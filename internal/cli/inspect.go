package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/surveycharts/pkg/pipeline"
	"github.com/matzehuels/surveycharts/pkg/shape"
	"github.com/matzehuels/surveycharts/pkg/source"
	"github.com/matzehuels/surveycharts/pkg/survey"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var mongoDB string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "inspect <dataset>",
		Short: "Summarize a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ds, name, err := c.loadDataset(ctx, args[0], mongoDB)
			if err != nil {
				return err
			}
			rows := roleRows(ds)
			if interactive {
				_, err := tea.NewProgram(NewRoleListModel(rows), tea.WithContext(ctx)).Run()
				return err
			}
			fmt.Print(renderSummary(name, ds, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&mongoDB, "mongo-db", "", "database name for mongodb:// sources")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse roles interactively")
	return cmd
}

// loadDataset opens and loads a dataset without the cache.
func (c *CLI) loadDataset(ctx context.Context, input, mongoDB string) (*survey.Dataset, string, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, "", err
	}
	src, err := source.Open(ctx, input, source.Options{Files: cfg.Files, Database: mongoDB})
	if err != nil {
		return nil, "", err
	}
	defer source.Close(ctx, src)

	ds, err := source.Load(ctx, src)
	if err != nil {
		return nil, "", err
	}
	return ds, src.Name(), nil
}

// =============================================================================
// Role rows
// =============================================================================

// roleRow collects what the dataset says about one role.
type roleRow struct {
	Role   string
	IRole  int
	Total  float64
	Orgs   []string
	Links  int
	Sides  []survey.Primary
	Shares []survey.Aggregate
}

// roleRows joins roles with the connect links and org records by role name.
func roleRows(ds *survey.Dataset) []roleRow {
	var rows []roleRow
	index := map[string]int{}
	add := func(name string, iRole int) *roleRow {
		if i, ok := index[name]; ok {
			return &rows[i]
		}
		index[name] = len(rows)
		rows = append(rows, roleRow{Role: name, IRole: iRole})
		return &rows[len(rows)-1]
	}

	for _, r := range ds.Roles {
		row := add(r.Role, r.IRole)
		row.Total = r.RoleTotal
		row.Sides = r.Primaries
	}
	if ds.HasConnect() {
		for _, n := range ds.Connect.Nodes {
			if !n.IsOrg() {
				row := add(n.ID, n.Index)
				if row.Total == 0 {
					row.Total = n.Value
				}
			}
		}
		for _, l := range ds.Connect.Links {
			for i := range rows {
				if rows[i].IRole == l.IRole {
					rows[i].Links++
				}
			}
		}
	}
	for _, o := range ds.Orgs {
		for _, r := range o.Roles {
			row := add(r.Role, r.IRole)
			row.Orgs = append(row.Orgs, o.Org)
			row.Shares = append(row.Shares, r.Agg...)
		}
	}
	return rows
}

// =============================================================================
// Static summary
// =============================================================================

// renderSummary formats the dataset overview and role table.
func renderSummary(name string, ds *survey.Dataset, rows []roleRow) string {
	var b strings.Builder
	s := ds.Summary()

	b.WriteString(StyleTitle.Render("Dataset") + " " + StyleValue.Render(name) + "\n\n")
	for _, kv := range [][2]string{
		{"Roles", strconv.Itoa(s.Roles)},
		{"Orgs", fmt.Sprintf("%d (%d in connect)", s.Orgs, s.OrgNodes)},
		{"Links", strconv.Itoa(s.Links)},
		{"Max total", num(s.MaxRoleTotal)},
		{"Max YOE", num(s.MaxYOE)},
		{"Max salary", num(s.MaxSalary) + "k"},
	} {
		b.WriteString(keyValue(kv[0], kv[1]) + "\n")
	}
	b.WriteString("\n")

	if len(rows) > 0 {
		b.WriteString(roleTable(rows, -1).Render())
		b.WriteString("\n")
	}

	charts := pipeline.Available(ds)
	if len(charts) == 0 {
		b.WriteString(StyleWarning.Render("No chart can be drawn from this dataset") + "\n")
	} else {
		b.WriteString(StyleDim.Render("Charts: ") + StyleHighlight.Render(strings.Join(charts, ", ")) + "\n")
	}
	return b.String()
}

// roleTable renders rows; the row at cursor (if any) is highlighted.
func roleTable(rows []roleRow, cursor int) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{
			strconv.Itoa(r.IRole),
			r.Role,
			num(r.Total),
			strconv.Itoa(len(r.Sides)),
			strconv.Itoa(r.Links),
			strings.Join(r.Orgs, ", "),
		}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Role", "Total", "Sides", "Links", "Orgs").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case row == cursor:
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			case col == 2 || col == 3 || col == 4:
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		})
}

// keyValue formats a labeled value.
func keyValue(key, value string) string {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	return keyStyle.Render(key) + " " + StyleValue.Render(value)
}

func num(v float64) string { return shape.FormatNumber(v, 2) }

// =============================================================================
// RoleListModel - Interactive role browser
// =============================================================================

// RoleListModel is the bubbletea model for browsing roles.
type RoleListModel struct {
	Rows   []roleRow
	Cursor int
	Height int
	Offset int
	// Detail shows the metrics of the role under the cursor.
	Detail bool
}

// NewRoleListModel creates a new role list model.
func NewRoleListModel(rows []roleRow) RoleListModel {
	return RoleListModel{Rows: rows, Height: 15}
}

func (m RoleListModel) Init() tea.Cmd {
	return nil
}

func (m RoleListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			m.Detail = !m.Detail
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-12, 5)
	}
	return m, nil
}

func (m RoleListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Roles"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	if len(m.Rows) == 0 {
		b.WriteString(StyleWarning.Render("No roles in dataset"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Rows))
	b.WriteString(roleTable(m.Rows[m.Offset:end], m.Cursor-m.Offset).Render())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	if m.Detail {
		b.WriteString("\n\n")
		b.WriteString(roleDetail(m.Rows[m.Cursor]))
	}
	return b.String()
}

// roleDetail lists the distributions of one role.
func roleDetail(r roleRow) string {
	var b strings.Builder
	b.WriteString(StyleHighlight.Render(r.Role) + "\n")
	for _, p := range r.Sides {
		side := "secondary"
		if p.Primary {
			side = "primary"
		}
		yoe := make([]string, len(p.YOEMetrics))
		for i, m := range p.YOEMetrics {
			yoe[i] = fmt.Sprintf("%s:%s", num(m.YOE), num(m.PctVolume))
		}
		salary := make([]string, len(p.SalaryMetrics))
		for i, m := range p.SalaryMetrics {
			salary[i] = fmt.Sprintf("%sk:%s", num(m.Salary), num(m.PctVolume))
		}
		b.WriteString(keyValue("  "+side, "yoe "+strings.Join(yoe, " ")) + "\n")
		if len(salary) > 0 {
			b.WriteString(keyValue("", "salary "+strings.Join(salary, " ")) + "\n")
		}
	}
	for _, a := range r.Shares {
		b.WriteString(keyValue("  share", fmt.Sprintf("primary %s · secondary %s · total %s",
			num(a.Primary), num(a.Secondary), num(a.Total))) + "\n")
	}
	return b.String()
}
