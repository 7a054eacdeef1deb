package options

import (
	"github.com/charmbracelet/combo/internal/window"
)

const groupIDPrefix = "group:"

// Items converts options into window items. Ungrouped options come first;
// each group follows in first-seen order behind a single header.
func Items(opts []Option) []window.Item {
	var (
		ungrouped []Option
		order     []string
		groups    = map[string][]Option{}
	)
	for _, o := range opts {
		if o.Group == "" {
			ungrouped = append(ungrouped, o)
			continue
		}
		if _, ok := groups[o.Group]; !ok {
			order = append(order, o.Group)
		}
		groups[o.Group] = append(groups[o.Group], o)
	}

	items := make([]window.Item, 0, len(opts)+len(order))
	for _, o := range ungrouped {
		items = append(items, o.item())
	}
	for _, name := range order {
		items = append(items, window.Item{
			ID:    groupIDPrefix + name,
			Kind:  window.KindGroupHeader,
			Label: name,
		})
		for _, o := range groups[name] {
			items = append(items, o.item())
		}
	}
	return items
}

func (o Option) item() window.Item {
	return window.Item{
		ID:          o.ID,
		Kind:        window.KindRow,
		Label:       o.Label,
		Description: o.Description,
		Value:       o.Value,
	}
}
