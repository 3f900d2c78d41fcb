package evds

import "testing"

func TestRequestShapes(t *testing.T) {
	single := DateRange{Start: "13-12-2011", End: "13-12-2011"}
	ranged := DateRange{Start: "13-12-2011", End: "12-12-2012"}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			"series single date",
			seriesURL(BaseURL, "TP.DK.USD.S", single, FormatCSV, "KEY"),
			BaseURL + "series=TP.DK.USD.S&startDate=13-12-2011&endDate=13-12-2011&type=csv&key=KEY",
		},
		{
			"series date range",
			seriesURL(BaseURL, "TP.DK.USD.A-TP.DK.USD.S", ranged, FormatXML, "KEY"),
			BaseURL + "series=TP.DK.USD.A-TP.DK.USD.S&startDate=13-12-2011&endDate=12-12-2012&type=xml&key=KEY",
		},
		{
			"advanced series",
			advancedSeriesURL(BaseURL, "TP.DK.USD.A", single, FormatJSON, "KEY",
				AggregationEnd, FormulaLevel, FrequencyMonthly),
			BaseURL + "series=TP.DK.USD.A&startDate=13-12-2011&endDate=13-12-2011&type=json&key=KEY" +
				"&aggregationTypes=last&formulas=0&frequency=5",
		},
		{
			"data group",
			dataGroupURL(BaseURL, "bie_yssk", ranged, FormatJSON, "KEY"),
			BaseURL + "datagroup=bie_yssk&startDate=13-12-2011&endDate=12-12-2012&type=json&key=KEY",
		},
		{
			"categories",
			categoriesURL(BaseURL, FormatJSON, "KEY"),
			BaseURL + "categories/key=KEY&type=json",
		},
		{
			"advanced data group",
			advancedDataGroupURL(BaseURL, 1, "bie_yssk", FormatJSON, "KEY"),
			BaseURL + "datagroups/key=KEY&mode=1&code=bie_yssk&type=json",
		},
		{
			"series list",
			seriesListURL(BaseURL, "bie_yssk", FormatCSV, "KEY"),
			BaseURL + "serieList/key=KEY&type=csv&code=bie_yssk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("url = %q\nwant  %q", tt.got, tt.want)
			}
		})
	}
}

func TestRequestSeparatorPlacement(t *testing.T) {
	// first pair after a slash-terminated path gets no separator
	got := newRequestBuilder("http://host/", "").param("a", "1").param("b", "2").String()
	if want := "http://host/a=1&b=2"; got != want {
		t.Errorf("url = %q, want %q", got, want)
	}
	// a base without a trailing slash needs the separator immediately
	got = newRequestBuilder("http://host/x", "").param("a", "1").String()
	if want := "http://host/x&a=1"; got != want {
		t.Errorf("url = %q, want %q", got, want)
	}
}

func TestRequestEscapesValues(t *testing.T) {
	got := seriesListURL(BaseURL, "a code&x=1", FormatJSON, "k/ey+1")
	want := BaseURL + "serieList/key=k%2Fey%2B1&type=json&code=a+code%26x%3D1"
	if got != want {
		t.Errorf("url = %q\nwant  %q", got, want)
	}
}
