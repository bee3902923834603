package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bite-admin/bite/pkg/model"
	"github.com/bite-admin/bite/pkg/state"
)

// stockColor returns a lipgloss foreground colour for a stock level.
func stockColor(stock int) lipgloss.Color {
	switch {
	case stock == 0:
		return lipgloss.Color("1") // red
	case stock < 20:
		return lipgloss.Color("3") // yellow
	default:
		return lipgloss.Color("2") // green
	}
}

// rowStyleFor picks the zebra or cursor style for row i.
func rowStyleFor(i, cursor int) lipgloss.Style {
	switch {
	case i == cursor:
		return selectedRowStyle
	case i%2 == 0:
		return altRowStyle
	default:
		return rowStyle
	}
}

// renderCustomers renders one page of customers. width constrains the
// overall column layout.
func renderCustomers(customers []model.Customer, cursor, width int) string {
	if len(customers) == 0 {
		return dimStyle.Render("  No customers found.")
	}

	colName := colWidth(width, 0.25)
	colEmail := colWidth(width, 0.30)
	colPhone := colWidth(width, 0.20)
	colGender := colWidth(width, 0.10)

	header := strings.Join([]string{
		headerCellStyle.Width(colName).Render("NAME"),
		headerCellStyle.Width(colEmail).Render("EMAIL"),
		headerCellStyle.Width(colPhone).Render("PHONE"),
		headerCellStyle.Width(colGender).Render("GENDER"),
	}, "")

	rows := []string{header}
	for i, c := range customers {
		style := rowStyleFor(i, cursor)
		rows = append(rows, strings.Join([]string{
			style.Width(colName).Render(truncate(c.Name, colName-1)),
			style.Width(colEmail).Render(truncate(c.Email, colEmail-1)),
			style.Width(colPhone).Render(truncate(c.Phone, colPhone-1)),
			style.Width(colGender).Render(truncate(c.Gender, colGender-1)),
		}, ""))
	}
	return strings.Join(rows, "\n")
}

// renderProducts renders one page of products. The stock column is coloured
// by level.
func renderProducts(products []model.Product, cursor, width int) string {
	if len(products) == 0 {
		return dimStyle.Render("  No products found.")
	}

	colName := colWidth(width, 0.30)
	colCategory := colWidth(width, 0.18)
	colPrice := colWidth(width, 0.14)
	colStock := colWidth(width, 0.12)
	colSold := colWidth(width, 0.12)

	header := strings.Join([]string{
		headerCellStyle.Width(colName).Render("NAME"),
		headerCellStyle.Width(colCategory).Render("CATEGORY"),
		headerCellStyle.Width(colPrice).Render("PRICE"),
		headerCellStyle.Width(colStock).Render("STOCK"),
		headerCellStyle.Width(colSold).Render("SOLD"),
	}, "")

	rows := []string{header}
	for i, p := range products {
		style := rowStyleFor(i, cursor)
		stockCell := style.Width(colStock).
			Foreground(stockColor(p.Stock)).
			Render(strconv.Itoa(p.Stock))
		rows = append(rows, strings.Join([]string{
			style.Width(colName).Render(truncate(p.Name, colName-1)),
			style.Width(colCategory).Render(truncate(p.Category, colCategory-1)),
			style.Width(colPrice).Render(strconv.FormatFloat(p.Price, 'f', 2, 64)),
			stockCell,
			style.Width(colSold).Render(strconv.Itoa(p.TotalSold)),
		}, ""))
	}
	return strings.Join(rows, "\n")
}

// renderDetail renders the opened record of the active tab together with
// its statistics.
func (m Model) renderDetail() string {
	st := m.store.State()
	var (
		status  state.Status
		errText string
		lines   [][2]string
	)

	if m.activeTab == tabCustomers {
		status, errText = state.CustomerStatus(st)
		if c := state.CurrentCustomer(st); c != nil {
			stats := model.StatsForCustomer(*c, m.now())
			lines = [][2]string{
				{"ID", c.ID},
				{"Name", c.Name},
				{"Email", c.Email},
				{"Phone", c.Phone},
				{"Gender", c.Gender},
				{"Created", c.CreatedAt},
				{"Updated", c.UpdatedAt},
				{"Status", stats.Status},
				{"Days since created", strconv.Itoa(stats.DaysSinceCreated)},
				{"Contact complete", strconv.FormatBool(stats.ContactComplete)},
			}
		}
	} else {
		status, errText = state.ProductStatus(st)
		if p := state.CurrentProduct(st); p != nil {
			stats := model.StatsForProduct(*p)
			lines = [][2]string{
				{"ID", p.ID},
				{"Name", p.Name},
				{"Description", p.Description},
				{"Category", p.Category},
				{"Price", strconv.FormatFloat(p.Price, 'f', 2, 64)},
				{"Stock", strconv.Itoa(p.Stock)},
				{"Created", p.CreatedAt},
				{"Updated", p.UpdatedAt},
				{"Total revenue", stats.TotalRevenue.StringFixed(2)},
				{"Units sold", strconv.Itoa(stats.UnitsSold)},
				{"Stock value", stats.StockValue.StringFixed(2)},
			}
		}
	}

	switch {
	case status == state.StatusLoading:
		return dimStyle.Render("  Loading…")
	case status == state.StatusFailed && errText != "":
		return errorStyle.Render("Error: " + errText)
	case len(lines) == 0:
		return dimStyle.Render("  Nothing opened.")
	}

	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(fmt.Sprintf("  %s%s\n", labelStyle.Render(l[0]), l[1]))
	}
	sb.WriteString(dimStyle.Render("  esc: back"))
	return sb.String()
}

// colWidth converts a fractional width into an integer column width, leaving a
// small gutter between columns.
func colWidth(totalWidth int, fraction float64) int {
	w := int(float64(totalWidth) * fraction)
	if w < 8 {
		w = 8
	}
	return w
}

// truncate shortens s to maxLen runes, appending "…" if truncation occurred.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}
