// Package gallery holds named stories for the chart and layout components and
// serves or exports them as HTML pages.
package gallery

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Sumatoshi-tech/chartkit/pkg/chart"
	"github.com/Sumatoshi-tech/chartkit/pkg/plotpage"
)

// Story groups.
const (
	GroupAreaChart = "AreaChart"
	GroupAccordion = "Accordion"
)

// Registry errors.
var (
	ErrUnknownStory   = errors.New("unknown story")
	ErrDuplicateStory = errors.New("duplicate story")
	ErrInvalidStory   = errors.New("invalid story")
)

// Env is what a story may vary on.
type Env struct {
	Theme    plotpage.Theme
	Defaults chart.AreaChartProps
}

// Content is a built story: the page sections plus the charts inside them,
// kept so callers can inspect what was drawn.
type Content struct {
	Sections []plotpage.Section
	Charts   []*plotpage.AreaChart
}

// Story is one named component example.
type Story struct {
	ID          string
	Group       string
	Name        string
	Description string
	Build       func(env Env) Content
}

// Meta returns the page metadata for the story.
func (s Story) Meta() plotpage.PageMeta {
	return plotpage.PageMeta{ID: s.ID, Group: s.Group, Title: s.Group + " / " + s.Name, Description: s.Description}
}

// Registry keeps stories in registration order.
type Registry struct {
	stories []Story
	index   map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// DefaultRegistry returns a registry holding every built-in story.
func DefaultRegistry() *Registry {
	reg := NewRegistry()

	for _, s := range append(areaChartStories(), accordionStories()...) {
		// Built-in ids are unique.
		_ = reg.Register(s)
	}

	return reg
}

// Register adds a story.
func (r *Registry) Register(s Story) error {
	if s.ID == "" || s.Build == nil {
		return fmt.Errorf("%w: %q needs an id and a build function", ErrInvalidStory, s.ID)
	}

	if _, ok := r.index[s.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateStory, s.ID)
	}

	r.index[s.ID] = len(r.stories)
	r.stories = append(r.stories, s)

	return nil
}

// Lookup finds a story by id.
func (r *Registry) Lookup(id string) (Story, error) {
	i, ok := r.index[id]
	if !ok {
		return Story{}, fmt.Errorf("%w: %s", ErrUnknownStory, id)
	}

	return r.stories[i], nil
}

// Stories returns all stories in registration order.
func (r *Registry) Stories() []Story {
	out := make([]Story, len(r.stories))
	copy(out, r.stories)

	return out
}

// Metas returns page metadata for all stories.
func (r *Registry) Metas() []plotpage.PageMeta {
	metas := make([]plotpage.PageMeta, len(r.stories))
	for i, s := range r.stories {
		metas[i] = s.Meta()
	}

	return metas
}

func dollars(v float64) string {
	return "$ " + chart.CommaFormatter(0)(v)
}

// areaStory builds a story showing one chart twice: narrow and full width.
func areaStory(id, name, description string, configure func(*chart.AreaChartProps)) Story {
	return Story{
		ID:          id,
		Group:       GroupAreaChart,
		Name:        name,
		Description: description,
		Build: func(env Env) Content {
			props := env.Defaults
			props.Data = performanceData()
			props.Index = "month"
			props.Categories = []string{"Sales", "Profit"}
			props.ValueFormatter = dollars

			if configure != nil {
				configure(&props)
			}

			content := responsive(id, env.Theme, props)
			content.Sections[len(content.Sections)-1].Hint = propsHint(env.Defaults, props)

			return content
		},
	}
}

// propsHint lists the toggles a story flips away from the gallery defaults.
func propsHint(defaults, props chart.AreaChartProps) plotpage.Hint {
	var items []string

	flag := func(name string, def, got bool) {
		if def != got {
			items = append(items, name+": "+strconv.FormatBool(got))
		}
	}

	flag("stack", defaults.Stack, props.Stack)
	flag("showGradient", defaults.ShowGradient, props.ShowGradient)
	flag("startEndOnly", defaults.StartEndOnly, props.StartEndOnly)
	flag("autoMinValue", defaults.AutoMinValue, props.AutoMinValue)
	flag("connectNulls", defaults.ConnectNulls, props.ConnectNulls)

	if len(props.Data) == 0 {
		items = append(items, "data: none")
	}

	return plotpage.Hint{Title: "Props", Items: items}
}

func responsive(id string, theme plotpage.Theme, props chart.AreaChartProps) Content {
	mobile := plotpage.NewAreaChart(id+"-mobile", props).WithTheme(theme)
	desktop := plotpage.NewAreaChart(id+"-desktop", props).WithTheme(theme)

	return Content{
		Sections: []plotpage.Section{
			{
				Title: "Mobile",
				Chart: plotpage.NewDiv("w-64", plotpage.NewCard("", "").WithContent(mobile)),
			},
			{
				Title: "Desktop",
				Chart: plotpage.NewCard("", "").WithContent(desktop),
			},
		},
		Charts: []*plotpage.AreaChart{mobile, desktop},
	}
}

func areaChartStories() []Story {
	return []Story{
		areaStory("areachart-default", "Default", "Sales and profit with every element shown.", nil),
		areaStory("areachart-stacked", "Stacked", "Series stacked on one another.", func(p *chart.AreaChartProps) {
			p.Stack = true
		}),
		areaStory("areachart-gradient-off", "WithGradientOff", "Flat fills instead of gradients.", func(p *chart.AreaChartProps) {
			p.ShowGradient = false
		}),
		areaStory("areachart-start-end-only", "StartEndOnly", "Only the first and last X labels.", func(p *chart.AreaChartProps) {
			p.StartEndOnly = true
		}),
		areaStory("areachart-auto-min-value", "AutoMinValue", "Y axis floor taken from the data.", func(p *chart.AreaChartProps) {
			p.Data = trafficData()
			p.Categories = []string{"Visitors"}
			p.ValueFormatter = chart.CommaFormatter(0)
			p.AutoMinValue = true
		}),
		areaStory("areachart-no-data", "NoData", "The placeholder shown without data.", func(p *chart.AreaChartProps) {
			p.Data = nil
		}),
		connectNullsStory(),
	}
}

func connectNullsStory() Story {
	const id = "areachart-connect-nulls"

	return Story{
		ID:          id,
		Group:       GroupAreaChart,
		Name:        "ConnectNulls",
		Description: "Gaps left open and bridged.",
		Build: func(env Env) Content {
			props := env.Defaults
			props.Data = gappedData()
			props.Index = "month"
			props.Categories = []string{"Sales", "Profit"}
			props.ValueFormatter = dollars

			bridged := props
			bridged.ConnectNulls = true

			gaps := plotpage.NewAreaChart(id+"-gaps", props).WithTheme(env.Theme)
			connected := plotpage.NewAreaChart(id+"-connected", bridged).WithTheme(env.Theme)

			return Content{
				Sections: []plotpage.Section{
					{Title: "connectNulls: false", Chart: plotpage.NewCard("", "").WithContent(gaps)},
					{
						Title: "connectNulls: true",
						Hint:  propsHint(props, bridged),
						Chart: plotpage.NewCard("", "").WithContent(connected),
					},
				},
				Charts: []*plotpage.AreaChart{gaps, connected},
			}
		},
	}
}

// SimpleAccordion is the accordion every accordion story shows.
func SimpleAccordion(expanded, shadow bool) *plotpage.Accordion {
	return plotpage.NewAccordion(
		plotpage.NewAccordionHeader(plotpage.NewText("Accordion 1")),
		plotpage.NewAccordionBody(plotpage.NewText(
			"Lorem ipsum dolor sit amet, consetetur sadipscing elitr, sed diam nonumy eirmod tempor invidunt ut labore et dolore magna aliquyam erat.",
		)),
	).WithExpanded(expanded).WithShadow(shadow)
}

func accordionResponsive(expanded, shadow bool) func(Env) Content {
	return func(Env) Content {
		return Content{Sections: []plotpage.Section{
			{
				Title: "Mobile",
				Chart: plotpage.NewDiv("w-64", plotpage.NewCard("", "").WithContent(SimpleAccordion(expanded, shadow))),
			},
			{
				Title: "Desktop",
				Chart: plotpage.NewCard("", "").WithContent(SimpleAccordion(expanded, shadow)),
			},
		}}
	}
}

func accordionFlex(Env) Content {
	row := func(label string, justify plotpage.JustifyContent, innerDiv bool) []plotpage.Renderable {
		var item plotpage.Renderable = SimpleAccordion(false, false)
		if innerDiv {
			item = plotpage.NewDiv("", item)
		}

		text := plotpage.NewText(label)
		text.ClassName = "mt-2"

		flex := plotpage.NewFlex(justify, item)
		flex.ClassName = "mt-2"

		return []plotpage.Renderable{text, flex}
	}

	var items []plotpage.Renderable

	items = append(items, row("Justify Start", plotpage.JustifyStart, false)...)
	items = append(items, row("Justify End", plotpage.JustifyEnd, false)...)
	items = append(items, row("Justify End with inner div", plotpage.JustifyEnd, true)...)
	items = append(items, row("Justify Start with inner div", plotpage.JustifyStart, true)...)

	return Content{Sections: []plotpage.Section{
		{Chart: plotpage.NewCard("", "").WithContent(plotpage.NewDiv("", items...))},
	}}
}

func accordionStories() []Story {
	return []Story{
		{
			ID:          "accordion-default-responsive",
			Group:       GroupAccordion,
			Name:        "DefaultResponsive",
			Description: "Collapsed accordion in a narrow and a wide card.",
			Build:       accordionResponsive(false, false),
		},
		{
			ID:          "accordion-with-flex-parent",
			Group:       GroupAccordion,
			Name:        "WithFlexParent",
			Description: "Accordions aligned by a flex row, with and without a wrapper.",
			Build:       accordionFlex,
		},
		{
			ID:          "accordion-with-expanded",
			Group:       GroupAccordion,
			Name:        "WithExpanded",
			Description: "Accordion that starts open.",
			Build:       accordionResponsive(true, false),
		},
		{
			ID:          "accordion-with-shadow",
			Group:       GroupAccordion,
			Name:        "WithShadow",
			Description: "Accordion with a drop shadow.",
			Build:       accordionResponsive(false, true),
		},
	}
}
