package dashboards

import (
	"fmt"
	"time"
)

// ListView is the render model for the dashboard grid. Empty is set when
// there is nothing to show and the empty-state message should render.
type ListView struct {
	Empty bool
	Cards []DashboardCard
}

// DashboardCard is one dashboard summary card.
type DashboardCard struct {
	ID               string
	Title            string
	Creator          string
	CreatedAt        time.Time
	CreatedAgo       time.Duration
	WidgetCountLabel string
	Previews         []WidgetPreview
	// CanDelete gates the quick-menu delete action; it is false when this is
	// the only dashboard left so the menu cannot empty the account.
	CanDelete bool
}

// WidgetCountLabel formats the "contains N widgets" label. Exactly one
// widget is singular; zero and two-plus are plural.
func WidgetCountLabel(count int) string {
	if count == 1 {
		return "1 widget"
	}
	return fmt.Sprintf("%d widgets", count)
}

// BuildListView converts dashboard summaries into cards in arrival order.
func BuildListView(items []DashboardListItem, now time.Time) ListView {
	if len(items) == 0 {
		return ListView{Empty: true}
	}
	cards := make([]DashboardCard, len(items))
	for i, item := range items {
		cards[i] = DashboardCard{
			ID:               item.ID,
			Title:            item.Title,
			Creator:          item.CreatedBy.Name,
			CreatedAt:        item.CreatedAt,
			CreatedAgo:       now.Sub(item.CreatedAt),
			WidgetCountLabel: WidgetCountLabel(len(item.WidgetPreview)),
			Previews:         append([]WidgetPreview(nil), item.WidgetPreview...),
			CanDelete:        len(items) > 1,
		}
	}
	return ListView{Cards: cards}
}
