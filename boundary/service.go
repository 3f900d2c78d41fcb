package boundary

import (
	"context"

	evdsbridge "github.com/wippyai/evds-bridge"
	"github.com/wippyai/evds-bridge/errors"
	"github.com/wippyai/evds-bridge/evds"
	"go.uber.org/zap"
)

// Service binds the domain client to one foreign memory space. Each method
// is a single synchronous call: descriptors in, validation, one network
// round trip, result descriptor out. A Service holds no per-call state, so
// concurrent invocations are safe as long as each caller releases the
// results it receives.
type Service struct {
	client *evds.Client
	mem    evdsbridge.Memory
	alloc  evdsbridge.Allocator
}

// NewService creates a Service. mem and alloc must address the same foreign
// memory space; results are allocated there and released there.
func NewService(client *evds.Client, mem evdsbridge.Memory, alloc evdsbridge.Allocator) *Service {
	return &Service{client: client, mem: mem, alloc: alloc}
}

// common unpacks the parameters every operation shares. Enum range checking
// happens here because the selector crosses the boundary as a raw integer.
func (s *Service) common(apiKey Input, format int32) (evds.CallOptions, error) {
	key, err := ReadInput(s.mem, apiKey, "api_key")
	if err != nil {
		return evds.CallOptions{}, err
	}
	f := evds.Format(format)
	if !f.Valid() {
		return evds.CallOptions{}, errors.InvalidEnum("format", format, "Format")
	}
	return evds.CallOptions{APIKey: key, Format: f}, nil
}

// GetData fetches a time series.
func (s *Service) GetData(ctx context.Context, series, date, apiKey Input, format int32, ascii bool) Result {
	opts, err := s.common(apiKey, format)
	if err != nil {
		return s.fail(err)
	}
	opts.ASCII = ascii
	seriesStr, err := ReadInput(s.mem, series, "series")
	if err != nil {
		return s.fail(err)
	}
	dateStr, err := ReadInput(s.mem, date, "date")
	if err != nil {
		return s.fail(err)
	}
	return s.finish("get_data")(s.client.GetData(ctx, seriesStr, dateStr, opts))
}

// GetAdvancedData fetches a series with aggregation, formula and frequency
// selectors, each arriving as a raw integer to be range-checked.
func (s *Service) GetAdvancedData(ctx context.Context, series, date Input, aggregation, formula, frequency int32, apiKey Input, format int32, ascii bool) Result {
	opts, err := s.common(apiKey, format)
	if err != nil {
		return s.fail(err)
	}
	opts.ASCII = ascii
	seriesStr, err := ReadInput(s.mem, series, "series")
	if err != nil {
		return s.fail(err)
	}
	dateStr, err := ReadInput(s.mem, date, "date")
	if err != nil {
		return s.fail(err)
	}
	agg := evds.Aggregation(aggregation)
	if !agg.Valid() {
		return s.fail(errors.InvalidEnum("aggregation_type", aggregation, "Aggregation"))
	}
	form := evds.Formula(formula)
	if !form.Valid() {
		return s.fail(errors.InvalidEnum("formula", formula, "Formula"))
	}
	freq := evds.Frequency(frequency)
	if !freq.Valid() {
		return s.fail(errors.InvalidEnum("frequency", frequency, "Frequency"))
	}
	return s.finish("get_advanced_data")(s.client.GetAdvancedData(ctx, seriesStr, dateStr, agg, form, freq, opts))
}

// GetDataGroup fetches every series of a data group.
func (s *Service) GetDataGroup(ctx context.Context, group, date, apiKey Input, format int32, ascii bool) Result {
	opts, err := s.common(apiKey, format)
	if err != nil {
		return s.fail(err)
	}
	opts.ASCII = ascii
	groupStr, err := ReadInput(s.mem, group, "data_group")
	if err != nil {
		return s.fail(err)
	}
	dateStr, err := ReadInput(s.mem, date, "date")
	if err != nil {
		return s.fail(err)
	}
	return s.finish("get_data_group")(s.client.GetDataGroup(ctx, groupStr, dateStr, opts))
}

// GetCategories lists the service's categories; no data parameters beyond
// authentication and format.
func (s *Service) GetCategories(ctx context.Context, apiKey Input, format int32, ascii bool) Result {
	opts, err := s.common(apiKey, format)
	if err != nil {
		return s.fail(err)
	}
	opts.ASCII = ascii
	return s.finish("get_categories")(s.client.GetCategories(ctx, opts))
}

// GetAdvancedDataGroup fetches data group metadata by mode and code.
func (s *Service) GetAdvancedDataGroup(ctx context.Context, mode uint32, code, apiKey Input, format int32, ascii bool) Result {
	opts, err := s.common(apiKey, format)
	if err != nil {
		return s.fail(err)
	}
	opts.ASCII = ascii
	codeStr, err := ReadInput(s.mem, code, "code")
	if err != nil {
		return s.fail(err)
	}
	return s.finish("get_advanced_data_group")(s.client.GetAdvancedDataGroup(ctx, mode, codeStr, opts))
}

// GetSeriesList lists the series available under a code.
func (s *Service) GetSeriesList(ctx context.Context, code, apiKey Input, format int32, ascii bool) Result {
	opts, err := s.common(apiKey, format)
	if err != nil {
		return s.fail(err)
	}
	opts.ASCII = ascii
	codeStr, err := ReadInput(s.mem, code, "code")
	if err != nil {
		return s.fail(err)
	}
	return s.finish("get_series_list")(s.client.GetSeriesList(ctx, codeStr, opts))
}

// finish turns a client call's outcome into a result descriptor.
func (s *Service) finish(op string) func(string, error) Result {
	return func(body string, err error) Result {
		if err != nil {
			res := s.fail(err)
			Logger().Debug("operation failed",
				zap.String("op", op),
				zap.Stringer("code", res.Code),
				zap.Error(err))
			return res
		}
		return s.emit(body)
	}
}
