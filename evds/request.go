package evds

import (
	"net/url"
	"strconv"
	"strings"
)

// BaseURL is the root of the EVDS web service.
const BaseURL = "https://evds2.tcmb.gov.tr/service/evds/"

// The service routes operations through path-embedded key=value segments
// rather than conventional query strings; the shapes below reproduce the
// documented request layouts exactly, with every caller-supplied value
// percent-escaped.

type requestBuilder struct {
	b       strings.Builder
	needSep bool
}

func newRequestBuilder(base, resource string) *requestBuilder {
	rb := &requestBuilder{}
	rb.b.WriteString(base)
	rb.b.WriteString(resource)
	last := byte(0)
	if resource != "" {
		last = resource[len(resource)-1]
	} else if base != "" {
		last = base[len(base)-1]
	}
	rb.needSep = last != '/'
	return rb
}

// param appends key=value, separating it from what precedes with '&' unless
// it is the first pair after a resource path.
func (rb *requestBuilder) param(key, value string) *requestBuilder {
	if rb.needSep {
		rb.b.WriteByte('&')
	}
	rb.needSep = true
	rb.b.WriteString(key)
	rb.b.WriteByte('=')
	rb.b.WriteString(url.QueryEscape(value))
	return rb
}

func (rb *requestBuilder) dates(r DateRange) *requestBuilder {
	return rb.param("startDate", r.Start).param("endDate", r.End)
}

func (rb *requestBuilder) String() string {
	return rb.b.String()
}

func seriesURL(base, series string, dates DateRange, format Format, key string) string {
	return newRequestBuilder(base, "").
		param("series", series).
		dates(dates).
		param("type", format.queryValue()).
		param("key", key).
		String()
}

func advancedSeriesURL(base, series string, dates DateRange, format Format, key string, agg Aggregation, formula Formula, freq Frequency) string {
	return newRequestBuilder(base, "").
		param("series", series).
		dates(dates).
		param("type", format.queryValue()).
		param("key", key).
		param("aggregationTypes", agg.queryValue()).
		param("formulas", formula.queryValue()).
		param("frequency", freq.queryValue()).
		String()
}

func dataGroupURL(base, group string, dates DateRange, format Format, key string) string {
	return newRequestBuilder(base, "").
		param("datagroup", group).
		dates(dates).
		param("type", format.queryValue()).
		param("key", key).
		String()
}

func categoriesURL(base string, format Format, key string) string {
	return newRequestBuilder(base, "categories/").
		param("key", key).
		param("type", format.queryValue()).
		String()
}

func advancedDataGroupURL(base string, mode uint32, code string, format Format, key string) string {
	return newRequestBuilder(base, "datagroups/").
		param("key", key).
		param("mode", strconv.FormatUint(uint64(mode), 10)).
		param("code", code).
		param("type", format.queryValue()).
		String()
}

func seriesListURL(base, code string, format Format, key string) string {
	return newRequestBuilder(base, "serieList/").
		param("key", key).
		param("type", format.queryValue()).
		param("code", code).
		String()
}
