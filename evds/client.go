package evds

import (
	"context"

	evdsbridge "github.com/wippyai/evds-bridge"
	"github.com/wippyai/evds-bridge/errors"
	"github.com/wippyai/evds-bridge/translit"
	"go.uber.org/zap"
)

// CallOptions carries the parameters shared by every operation.
type CallOptions struct {
	// APIKey is forwarded verbatim as the key= request parameter.
	APIKey string
	// Format selects the response serialization.
	Format Format
	// ASCII enables client-side transliteration of the response body. It is
	// consumed entirely locally and never reaches the remote service.
	ASCII bool
}

func (o CallOptions) validate() error {
	if o.APIKey == "" {
		return errors.EmptyParameter(errors.PhaseValidate, "api_key")
	}
	if !o.Format.Valid() {
		return errors.InvalidEnum("format", int32(o.Format), "Format")
	}
	return nil
}

// Client performs EVDS operations through a Transport collaborator.
//
// A Client holds no mutable state between calls; concurrent use from multiple
// goroutines is safe as long as the Transport is.
type Client struct {
	transport evdsbridge.Transport
	base      string
}

// NewClient creates a client talking to the production service.
func NewClient(t evdsbridge.Transport) *Client {
	return &Client{transport: t, base: BaseURL}
}

// NewClientWithBase creates a client against an alternate service root.
// Intended for stub servers; base must end with a slash.
func NewClientWithBase(t evdsbridge.Transport, base string) *Client {
	return &Client{transport: t, base: base}
}

// GetData fetches a time series. The series code is passed through to the
// service unvalidated beyond the non-empty check; vocabulary errors are the
// service's to report.
func (c *Client) GetData(ctx context.Context, series, date string, opts CallOptions) (string, error) {
	if series == "" {
		return "", errors.EmptyParameter(errors.PhaseValidate, "series")
	}
	dates, err := ParseDateRange(date)
	if err != nil {
		return "", err
	}
	if err := opts.validate(); err != nil {
		return "", err
	}
	return c.fetch(ctx, "get_data", seriesURL(c.base, series, dates, opts.Format, opts.APIKey), opts.ASCII, checkNone)
}

// GetAdvancedData fetches a time series with aggregation, formula and
// frequency applied server-side.
func (c *Client) GetAdvancedData(ctx context.Context, series, date string, agg Aggregation, formula Formula, freq Frequency, opts CallOptions) (string, error) {
	if series == "" {
		return "", errors.EmptyParameter(errors.PhaseValidate, "series")
	}
	dates, err := ParseDateRange(date)
	if err != nil {
		return "", err
	}
	if !agg.Valid() {
		return "", errors.InvalidEnum("aggregation_type", int32(agg), "Aggregation")
	}
	if !formula.Valid() {
		return "", errors.InvalidEnum("formula", int32(formula), "Formula")
	}
	if !freq.Valid() {
		return "", errors.InvalidEnum("frequency", int32(freq), "Frequency")
	}
	if err := opts.validate(); err != nil {
		return "", err
	}
	url := advancedSeriesURL(c.base, series, dates, opts.Format, opts.APIKey, agg, formula, freq)
	return c.fetch(ctx, "get_advanced_data", url, opts.ASCII, checkNone)
}

// GetDataGroup fetches every series of a data group.
func (c *Client) GetDataGroup(ctx context.Context, group, date string, opts CallOptions) (string, error) {
	if group == "" {
		return "", errors.EmptyParameter(errors.PhaseValidate, "data_group")
	}
	dates, err := ParseDateRange(date)
	if err != nil {
		return "", err
	}
	if err := opts.validate(); err != nil {
		return "", err
	}
	return c.fetch(ctx, "get_data_group", dataGroupURL(c.base, group, dates, opts.Format, opts.APIKey), opts.ASCII, checkNone)
}

// GetCategories lists the service's top-level categories.
func (c *Client) GetCategories(ctx context.Context, opts CallOptions) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}
	return c.fetch(ctx, "get_categories", categoriesURL(c.base, opts.Format, opts.APIKey), opts.ASCII, checkNone)
}

// GetAdvancedDataGroup fetches data group metadata by mode selector and code.
func (c *Client) GetAdvancedDataGroup(ctx context.Context, mode uint32, code string, opts CallOptions) (string, error) {
	if code == "" {
		return "", errors.EmptyParameter(errors.PhaseValidate, "code")
	}
	if err := opts.validate(); err != nil {
		return "", err
	}
	url := advancedDataGroupURL(c.base, mode, code, opts.Format, opts.APIKey)
	return c.fetch(ctx, "get_advanced_data_group", url, opts.ASCII, checkNone)
}

// GetSeriesList lists the series available under a code.
func (c *Client) GetSeriesList(ctx context.Context, code string, opts CallOptions) (string, error) {
	if code == "" {
		return "", errors.EmptyParameter(errors.PhaseValidate, "code")
	}
	if err := opts.validate(); err != nil {
		return "", err
	}
	return c.fetch(ctx, "get_series_list", seriesListURL(c.base, code, opts.Format, opts.APIKey), opts.ASCII, checkEmptyList)
}

type responseCheck int

const (
	checkNone responseCheck = iota
	// checkEmptyList rejects the two literal empty-collection bodies the
	// serieList resource returns for unknown codes. Any other body that
	// happens to encode an upstream error message passes through undetected;
	// callers must inspect content if they need that level of confidence.
	checkEmptyList
)

func (c *Client) fetch(ctx context.Context, op, url string, ascii bool, check responseCheck) (string, error) {
	resp, err := c.transport.Get(ctx, url)
	if err != nil {
		Logger().Debug("transport failure", zap.String("op", op), zap.Error(err))
		return "", errors.Network(err)
	}
	if resp.Status < 200 || resp.Status > 299 {
		Logger().Debug("upstream status", zap.String("op", op), zap.Int("status", resp.Status))
		return "", errors.UpstreamStatus(resp.Status)
	}
	if len(resp.Body) == 0 {
		return "", errors.New(errors.PhaseFetch, errors.KindUpstreamStatus).
			Detail("empty response from upstream").
			Build()
	}

	var body string
	if ascii {
		body = translit.ToASCII(resp.Body)
	} else {
		body, err = translit.Decode(resp.Body)
		if err != nil {
			return "", err
		}
	}

	if check == checkEmptyList && (body == "[]" || body == "<document></document>") {
		return "", errors.New(errors.PhaseFetch, errors.KindUpstreamStatus).
			Detail("no series found for the given code").
			Build()
	}

	Logger().Debug("operation complete", zap.String("op", op), zap.Int("bytes", len(body)))
	return body, nil
}
