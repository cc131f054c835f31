package palette

// Mapping is an ordered category to color assignment.
type Mapping struct {
	order  []string
	colors map[string]Color
}

// CategoryColors assigns colors[i mod len(colors)] to the i-th unique category
// in first-seen order. Repeated names keep their first color and do not consume
// a palette slot. With an empty palette every category gets DefaultColor.
func CategoryColors(categories []string, colors []Color) Mapping {
	m := Mapping{
		order:  make([]string, 0, len(categories)),
		colors: make(map[string]Color, len(categories)),
	}

	for _, category := range categories {
		if _, seen := m.colors[category]; seen {
			continue
		}

		c := DefaultColor
		if len(colors) > 0 {
			c = colors[len(m.order)%len(colors)]
		}

		m.colors[category] = c
		m.order = append(m.order, category)
	}

	return m
}

// Get returns the color assigned to category.
func (m Mapping) Get(category string) (Color, bool) {
	c, ok := m.colors[category]

	return c, ok
}

// ColorOf returns the color assigned to category, or DefaultColor.
func (m Mapping) ColorOf(category string) Color {
	if c, ok := m.colors[category]; ok {
		return c
	}

	return DefaultColor
}

// Categories returns the mapped categories in assignment order.
func (m Mapping) Categories() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)

	return out
}

// Len returns the number of mapped categories.
func (m Mapping) Len() int {
	return len(m.order)
}
