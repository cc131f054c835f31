package gallery

import "github.com/Sumatoshi-tech/chartkit/pkg/chart"

var months = []string{
	"Jan 22", "Feb 22", "Mar 22", "Apr 22", "May 22", "Jun 22",
	"Jul 22", "Aug 22", "Sep 22", "Oct 22", "Nov 22", "Dec 22",
}

var (
	salesValues  = []float64{2890, 2756, 3322, 3470, 3475, 3129, 3490, 2903, 2643, 2837, 2954, 3239}
	profitValues = []float64{2338, 2103, 2194, 2108, 1812, 1726, 1982, 2012, 2342, 2473, 3848, 3736}
)

// performanceData is a year of monthly sales and profit.
func performanceData() []chart.Record {
	data := make([]chart.Record, len(months))
	for i, month := range months {
		data[i] = chart.Record{
			"month":  month,
			"Sales":  salesValues[i],
			"Profit": profitValues[i],
		}
	}

	return data
}

// trafficData stays between 2,000 and 4,000 visitors, well clear of zero.
func trafficData() []chart.Record {
	visitors := []float64{2140, 2380, 2615, 2290, 2870, 3120, 3460, 3310, 2980, 3540, 3780, 3925}

	data := make([]chart.Record, len(months))
	for i, month := range months {
		data[i] = chart.Record{"month": month, "Visitors": visitors[i]}
	}

	return data
}

// gappedData leaves months without readings.
func gappedData() []chart.Record {
	data := performanceData()

	for _, i := range []int{3, 4, 8} {
		data[i]["Sales"] = nil
	}

	delete(data[6], "Profit")

	return data
}
