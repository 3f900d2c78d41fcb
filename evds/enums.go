package evds

import "github.com/wippyai/evds-bridge/errors"

// The enum types below cross the foreign-call boundary as small integers.
// Their numeric values are part of the published ABI and are append-only:
// existing values are never reordered or removed.

// Format selects the serialization of the response body. The core forwards
// it as an opaque request parameter and never interprets it further.
type Format int32

const (
	FormatCSV Format = iota
	FormatJSON
	FormatXML
)

// Valid reports whether f is a member of the closed set.
func (f Format) Valid() bool {
	return f >= FormatCSV && f <= FormatXML
}

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	case FormatXML:
		return "xml"
	}
	return "invalid"
}

// queryValue is the wire encoding used in the type= request parameter.
func (f Format) queryValue() string {
	return f.String()
}

// ParseFormat maps a format name to its enum value.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "xml":
		return FormatXML, nil
	}
	return 0, errors.InvalidEnum("format", s, "Format")
}

// Aggregation selects how values are aggregated over the requested frequency
// in advanced series fetches.
type Aggregation int32

const (
	AggregationAverage Aggregation = iota
	AggregationMinimum
	AggregationMaximum
	AggregationBeginning
	AggregationEnd
	AggregationCumulative
)

func (a Aggregation) Valid() bool {
	return a >= AggregationAverage && a <= AggregationCumulative
}

func (a Aggregation) String() string {
	switch a {
	case AggregationAverage:
		return "avg"
	case AggregationMinimum:
		return "min"
	case AggregationMaximum:
		return "max"
	case AggregationBeginning:
		return "first"
	case AggregationEnd:
		return "last"
	case AggregationCumulative:
		return "sum"
	}
	return "invalid"
}

func (a Aggregation) queryValue() string {
	return a.String()
}

// Formula selects the change computation applied to an advanced series.
type Formula int32

const (
	FormulaLevel Formula = iota
	FormulaPercentageChange
	FormulaDifference
	FormulaYearToYearPercentChange
	FormulaYearToYearDifference
	FormulaPercentageChangeByEndOfPreviousYear
	FormulaDifferenceByEndOfPreviousYear
	FormulaMovingAverage
	FormulaMovingSum
)

func (f Formula) Valid() bool {
	return f >= FormulaLevel && f <= FormulaMovingSum
}

func (f Formula) String() string {
	switch f {
	case FormulaLevel:
		return "level"
	case FormulaPercentageChange:
		return "percentage-change"
	case FormulaDifference:
		return "difference"
	case FormulaYearToYearPercentChange:
		return "year-to-year-percent-change"
	case FormulaYearToYearDifference:
		return "year-to-year-difference"
	case FormulaPercentageChangeByEndOfPreviousYear:
		return "percentage-change-by-end-of-previous-year"
	case FormulaDifferenceByEndOfPreviousYear:
		return "difference-by-end-of-previous-year"
	case FormulaMovingAverage:
		return "moving-average"
	case FormulaMovingSum:
		return "moving-sum"
	}
	return "invalid"
}

// queryValue: the service expects the formula's ordinal, not its name.
func (f Formula) queryValue() string {
	return itoa(int32(f))
}

// Frequency selects the sampling interval of an advanced series.
type Frequency int32

const (
	FrequencyDaily Frequency = iota
	FrequencyBusiness
	FrequencyWeeklyFriday
	FrequencyTwiceMonthly
	FrequencyMonthly
	FrequencyQuarterly
	FrequencySemiAnnual
	FrequencyAnnual
)

func (q Frequency) Valid() bool {
	return q >= FrequencyDaily && q <= FrequencyAnnual
}

func (q Frequency) String() string {
	switch q {
	case FrequencyDaily:
		return "daily"
	case FrequencyBusiness:
		return "business"
	case FrequencyWeeklyFriday:
		return "weekly-friday"
	case FrequencyTwiceMonthly:
		return "twice-monthly"
	case FrequencyMonthly:
		return "monthly"
	case FrequencyQuarterly:
		return "quarterly"
	case FrequencySemiAnnual:
		return "semi-annual"
	case FrequencyAnnual:
		return "annual"
	}
	return "invalid"
}

// queryValue: the service numbers frequencies from 1.
func (q Frequency) queryValue() string {
	return itoa(int32(q) + 1)
}

func itoa(v int32) string {
	// enum ordinals are single digits
	return string([]byte{byte('0' + v)})
}
