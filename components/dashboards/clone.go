package dashboards

import "fmt"

// Cloner decides the title and shape of a duplicated dashboard before it is
// submitted for creation.
type Cloner interface {
	Clone(detail DashboardDetail, existingTitles []string) DashboardDetail
}

// TitleCloner copies a dashboard and picks the first non-colliding
// "<title> copy"/"<title> copy N" name against the supplied titles.
type TitleCloner struct{}

// Clone returns a deep copy of detail with a deduplicated title and no ID.
func (TitleCloner) Clone(detail DashboardDetail, existingTitles []string) DashboardDetail {
	taken := make(map[string]bool, len(existingTitles))
	for _, title := range existingTitles {
		taken[title] = true
	}
	title := detail.Title + " copy"
	for n := 1; taken[title]; n++ {
		title = fmt.Sprintf("%s copy %d", detail.Title, n)
	}

	clone := detail
	clone.ID = ""
	clone.Title = title
	clone.Widgets = cloneWidgets(detail.Widgets)
	return clone
}

func cloneWidgets(widgets []Widget) []Widget {
	if widgets == nil {
		return nil
	}
	out := make([]Widget, len(widgets))
	for i, w := range widgets {
		out[i] = w
		out[i].Queries = append([]WidgetQuery(nil), w.Queries...)
		for j, q := range out[i].Queries {
			out[i].Queries[j].Fields = append([]string(nil), q.Fields...)
			out[i].Queries[j].Columns = append([]string(nil), q.Columns...)
			out[i].Queries[j].Aggregates = append([]string(nil), q.Aggregates...)
			out[i].Queries[j].FieldAliases = append([]string(nil), q.FieldAliases...)
		}
		if w.Layout != nil {
			layout := *w.Layout
			out[i].Layout = &layout
		}
	}
	return out
}
