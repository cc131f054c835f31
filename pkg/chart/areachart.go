package chart

import (
	"github.com/Sumatoshi-tech/chartkit/pkg/palette"
)

// Presentation constants shared by the area chart primitives.
const (
	DefaultNoDataText  = "No data"
	DefaultYAxisWidth  = 56
	DefaultChartHeight = "320px"

	gridDashArray      = "3 3"
	axisFontSize       = 12
	axisPadding        = 10
	xAxisMinTickGap    = 5
	xAxisInterval      = "preserveStartEnd"
	legendAlignTop     = "top"
	tooltipCursorColor = "#d1d5db"
	seriesStrokeWidth  = 2
	stackID            = "a"

	gradientTopOffset     = 0.05
	gradientBottomOffset  = 0.95
	gradientTopOpacity    = 0.4
	gradientBottomOpacity = 0.0
	flatFillOpacity       = 0.3
)

// AreaChartProps configures an area chart. Use DefaultAreaChartProps and
// override fields; the zero value hides every optional element.
type AreaChartProps struct {
	Data       []Record
	Categories []string
	// Index is the record field used as the X value.
	Index string

	Stack          bool
	CurveType      CurveType
	Colors         []palette.Color
	ValueFormatter ValueFormatter

	StartEndOnly  bool
	ShowXAxis     bool
	ShowYAxis     bool
	YAxisWidth    int
	ShowAnimation bool
	ShowTooltip   bool
	ShowLegend    bool
	ShowGridLines bool
	ShowGradient  bool

	AutoMinValue  bool
	MinValue      *float64
	MaxValue      *float64
	ConnectNulls  bool
	AllowDecimals bool

	ClassName  string
	NoDataText string
	Height     string
	// Width is the rendered width in pixels, used to wrap the legend. Zero
	// means unknown and keeps the legend on one row.
	Width int

	Legend  LegendRenderer
	Tooltip TooltipRenderer
	// LegendLayout carries the measured legend height across compositions.
	// A fresh layout is used when nil.
	LegendLayout *LegendLayout
}

// DefaultAreaChartProps returns props with every display element enabled,
// linear curves, the theme palette and the default value formatter.
func DefaultAreaChartProps() AreaChartProps {
	return AreaChartProps{
		CurveType:      CurveLinear,
		Colors:         palette.ThemeColorRange,
		ValueFormatter: DefaultValueFormatter,
		ShowXAxis:      true,
		ShowYAxis:      true,
		YAxisWidth:     DefaultYAxisWidth,
		ShowAnimation:  true,
		ShowTooltip:    true,
		ShowLegend:     true,
		ShowGridLines:  true,
		ShowGradient:   true,
		AllowDecimals:  true,
		NoDataText:     DefaultNoDataText,
		Height:         DefaultChartHeight,
		Legend:         DefaultLegend{},
		Tooltip:        DefaultTooltip{},
	}
}

// AreaView is the composed area chart. When NoData is set only NoDataText,
// ClassName and Height are meaningful.
type AreaView struct {
	NoData     bool
	NoDataText string
	ClassName  string
	Height     string

	Grid      *GridLines
	XAxis     XAxis
	YAxis     YAxis
	Tooltip   *TooltipView
	Legend    *LegendView
	Gradients []Gradient
	Series    []AreaSeries
	Colors    palette.Mapping
}

// GridLines describes the background grid.
type GridLines struct {
	DashArray  string
	Horizontal bool
	Vertical   bool
}

// XAxis is the category axis.
type XAxis struct {
	Hidden  bool
	DataKey string
	Labels  []string
	// Ticks restricts the shown labels; nil shows the renderer's choice.
	Ticks        []string
	TickIndexes  []int
	Interval     string
	MinTickGap   int
	PaddingLeft  int
	PaddingRight int
	FontSize     int
}

// YAxis is the value axis.
type YAxis struct {
	Hidden bool
	Width  int
	// HasDomain is false when no domain could be derived; the renderer then
	// scales on its own.
	HasDomain  bool
	Domain     Domain
	Ticks      []float64
	TickLabels []string
	// Labels maps every value the renderer may label to its formatted text:
	// the ticks, both domain bounds, or the predicted ticks of an auto domain.
	Labels        map[float64]string
	AllowDecimals bool
	Formatter     ValueFormatter
	FontSize      int
}

// TooltipView describes the hover tooltip.
type TooltipView struct {
	AnimationActive bool
	PositionY       int
	CursorColor     string
	CursorWidth     int
	// Entries holds the rendered tooltip per data index.
	Entries []string
}

// LegendView describes the legend.
type LegendView struct {
	VerticalAlign string
	Height        int
	Content       LegendContent
}

// GradientStop is one color stop; Offset is a fraction of the area height.
type GradientStop struct {
	Offset  float64
	Opacity float64
}

// Gradient is the fill definition of one category.
type Gradient struct {
	ID    string
	Color palette.Color
	Hex   string
	Stops []GradientStop
}

// Flat reports whether the gradient is a single solid fill.
func (g Gradient) Flat() bool {
	return len(g.Stops) == 1
}

// AreaSeries is one plotted category.
type AreaSeries struct {
	Name         string
	Color        palette.Color
	Stroke       string
	Fill         string
	GradientID   string
	StrokeWidth  int
	Dot          bool
	Curve        CurveType
	StackID      string
	Animated     bool
	ConnectNulls bool
	Values       []*float64
}

// ComposeArea builds the area chart view from props. Empty data yields the
// no-data placeholder and no chart primitives.
func ComposeArea(props AreaChartProps) *AreaView {
	props = normalize(props)

	view := &AreaView{
		ClassName: props.ClassName,
		Height:    props.Height,
	}

	if len(props.Data) == 0 {
		view.NoData = true
		view.NoDataText = props.NoDataText

		return view
	}

	colors := palette.CategoryColors(props.Categories, props.Colors)
	categories := colors.Categories()
	view.Colors = colors

	if props.ShowGridLines {
		view.Grid = &GridLines{DashArray: gridDashArray, Horizontal: true}
	}

	view.XAxis = composeXAxis(props)
	view.YAxis = composeYAxis(props, categories)

	if props.ShowTooltip {
		view.Tooltip = composeTooltip(props, colors, categories)
	}

	if props.ShowLegend {
		view.Legend = composeLegend(props, colors)
	}

	for _, category := range categories {
		c := colors.ColorOf(category)
		g := gradientFor(c, props.ShowGradient)
		view.Gradients = append(view.Gradients, g)

		s := AreaSeries{
			Name:         category,
			Color:        c,
			Stroke:       c.Hex(),
			Fill:         "url(#" + g.ID + ")",
			GradientID:   g.ID,
			StrokeWidth:  seriesStrokeWidth,
			Curve:        props.CurveType,
			Animated:     props.ShowAnimation,
			ConnectNulls: props.ConnectNulls,
			Values:       Values(props.Data, category),
		}

		if props.Stack {
			s.StackID = stackID
		}

		view.Series = append(view.Series, s)
	}

	return view
}

func normalize(props AreaChartProps) AreaChartProps {
	if props.CurveType == "" {
		props.CurveType = CurveLinear
	}

	if props.Colors == nil {
		props.Colors = palette.ThemeColorRange
	}

	if props.ValueFormatter == nil {
		props.ValueFormatter = DefaultValueFormatter
	}

	if props.YAxisWidth <= 0 {
		props.YAxisWidth = DefaultYAxisWidth
	}

	if props.NoDataText == "" {
		props.NoDataText = DefaultNoDataText
	}

	if props.Height == "" {
		props.Height = DefaultChartHeight
	}

	if props.Legend == nil {
		props.Legend = DefaultLegend{}
	}

	if props.Tooltip == nil {
		props.Tooltip = DefaultTooltip{}
	}

	return props
}

func composeXAxis(props AreaChartProps) XAxis {
	axis := XAxis{
		Hidden:       !props.ShowXAxis,
		DataKey:      props.Index,
		Labels:       Labels(props.Data, props.Index),
		Interval:     xAxisInterval,
		MinTickGap:   xAxisMinTickGap,
		PaddingLeft:  axisPadding,
		PaddingRight: axisPadding,
		FontSize:     axisFontSize,
	}

	if props.StartEndOnly {
		last := len(props.Data) - 1
		axis.Ticks = []string{props.Data[0].Label(props.Index), props.Data[last].Label(props.Index)}
		axis.TickIndexes = []int{0, last}
	}

	return axis
}

func composeYAxis(props AreaChartProps, categories []string) YAxis {
	axis := YAxis{
		Hidden:        !props.ShowYAxis,
		Width:         props.YAxisWidth,
		AllowDecimals: props.AllowDecimals,
		Formatter:     props.ValueFormatter,
		FontSize:      axisFontSize,
	}

	domain, ok := ResolveYDomain(DomainOptions{
		AutoMinValue: props.AutoMinValue,
		MinValue:     props.MinValue,
		MaxValue:     props.MaxValue,
		Stack:        props.Stack,
	}, props.Data, categories)
	if !ok {
		return axis
	}

	axis.HasDomain = true
	axis.Domain = domain
	axis.Labels = make(map[float64]string)

	if domain.Auto {
		lo, hi, found := Extent(props.Data, categories, props.Stack)
		if found {
			for _, tick := range RendererTicks(lo, hi, defaultTickCount, !props.AllowDecimals) {
				axis.Labels[tick] = props.ValueFormatter(tick)
			}
		}

		return axis
	}

	axis.Ticks = NiceTicks(domain, defaultTickCount, !props.AllowDecimals)

	for _, tick := range axis.Ticks {
		label := props.ValueFormatter(tick)
		axis.TickLabels = append(axis.TickLabels, label)
		axis.Labels[tick] = label
	}

	axis.Labels[domain.Min] = props.ValueFormatter(domain.Min)
	axis.Labels[domain.Max] = props.ValueFormatter(domain.Max)

	return axis
}

func composeTooltip(props AreaChartProps, colors palette.Mapping, categories []string) *TooltipView {
	tv := &TooltipView{
		CursorColor: tooltipCursorColor,
		CursorWidth: 1,
		Entries:     make([]string, len(props.Data)),
	}

	for i, rec := range props.Data {
		payload := tooltipPayload(rec, props.Index, colors, categories, props.ValueFormatter)
		tv.Entries[i] = props.Tooltip.RenderTooltip(payload)
	}

	return tv
}

func composeLegend(props AreaChartProps, colors palette.Mapping) *LegendView {
	layout := props.LegendLayout
	if layout == nil {
		layout = NewLegendLayout()
	}

	content := props.Legend.RenderLegend(legendItems(colors), props.Width)
	layout.Measure(content)

	return &LegendView{
		VerticalAlign: legendAlignTop,
		Height:        layout.Height(),
		Content:       content,
	}
}

func gradientFor(c palette.Color, showGradient bool) Gradient {
	g := Gradient{
		ID:    "ck-gradient-" + c.ID(),
		Color: c,
		Hex:   c.Hex(),
	}

	if showGradient {
		g.Stops = []GradientStop{
			{Offset: gradientTopOffset, Opacity: gradientTopOpacity},
			{Offset: gradientBottomOffset, Opacity: gradientBottomOpacity},
		}
	} else {
		g.Stops = []GradientStop{{Opacity: flatFillOpacity}}
	}

	return g
}
