package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/todoer/internal/domain"
)

// FormatLeisureItems lists the catalogue; items the balance cannot cover
// are dimmed.
func FormatLeisureItems(items []*domain.LeisureItem, balance float64) string {
	var b strings.Builder
	b.WriteString(FormatBalance(balance))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(Dim("The shop is empty. Run 'todoer init' to seed it.") + "\n")
		return b.String()
	}

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		cost := StyleGreen.Render(Points(it.Cost))
		name := it.Icon + " " + it.Name
		if it.Cost > balance {
			cost = Dim(Points(it.Cost))
			name = Dim(name)
		}
		rows = append(rows, []string{name, cost, Dim(it.Description), Dim(ShortID(it.ID))})
	}
	b.WriteString(RenderTable([]string{"ITEM", "COST", "", "ID"}, rows))
	return b.String()
}

func FormatPurchases(list []*domain.Purchase, now time.Time) string {
	if len(list) == 0 {
		return Dim("No purchases yet.") + "\n"
	}
	rows := make([][]string, 0, len(list))
	for _, p := range list {
		status := StyleBlue.Render(string(p.Status))
		if p.Status == domain.PurchaseUsed {
			status = Dim(string(p.Status))
		}
		rows = append(rows, []string{
			p.ItemIcon + " " + p.ItemName,
			p.ScheduledAt.Format("2006-01-02 15:04"),
			RelativeDateFrom(p.ScheduledAt, now),
			Points(p.Cost),
			status,
			Dim(ShortID(p.ID)),
		})
	}
	return RenderTable([]string{"ITEM", "SCHEDULED", "WHEN", "COST", "STATUS", "ID"}, rows)
}

func FormatBalance(balance float64) string {
	return fmt.Sprintf("Leisure balance: %s\n", StyleGreen.Render(Points(balance)))
}
