// Command libevds builds as a C shared library exposing the bridge's
// operations under the stable tcmb_evds_c_* ABI:
//
//	go build -buildmode=c-shared -o libevds.so ./cmd/libevds
//
// Result buffers are allocated with C malloc and must be handed back to
// tcmb_evds_c_release exactly once. Input descriptors stay caller-owned;
// the library copies out of them and never frees them.
package main

/*
#include <stdbool.h>
#include <stdint.h>
#include <stdlib.h>

// Caller-owned input string. string_capacity is the byte length and is
// authoritative; the library never scans for a terminator.
typedef struct {
	const char *input_ptr;
	unsigned long string_capacity;
} TcmbEvdsInput;

// Library-owned result. When error_type is 0, output_ptr references
// string_capacity bytes of UTF-8 response text. Pass the whole struct to
// tcmb_evds_c_release when done, regardless of error_type.
typedef struct {
	unsigned char *output_ptr;
	unsigned long string_capacity;
	int32_t error_type;
} TcmbEvdsResult;

typedef enum {
	TCMB_EVDS_CSV,
	TCMB_EVDS_JSON,
	TCMB_EVDS_XML
} TcmbEvdsReturnFormat;

typedef enum {
	TCMB_EVDS_AGG_AVERAGE,
	TCMB_EVDS_AGG_MINIMUM,
	TCMB_EVDS_AGG_MAXIMUM,
	TCMB_EVDS_AGG_BEGINNING,
	TCMB_EVDS_AGG_END,
	TCMB_EVDS_AGG_CUMULATIVE
} TcmbEvdsAggregationType;

typedef enum {
	TCMB_EVDS_FORMULA_LEVEL,
	TCMB_EVDS_FORMULA_PERCENTAGE_CHANGE,
	TCMB_EVDS_FORMULA_DIFFERENCE,
	TCMB_EVDS_FORMULA_YEAR_TO_YEAR_PERCENT_CHANGE,
	TCMB_EVDS_FORMULA_YEAR_TO_YEAR_DIFFERENCES,
	TCMB_EVDS_FORMULA_PERCENTAGE_CHANGE_BY_END_OF_PREVIOUS_YEAR,
	TCMB_EVDS_FORMULA_DIFFERENCE_BY_END_OF_PREVIOUS_YEAR,
	TCMB_EVDS_FORMULA_MOVING_AVERAGE,
	TCMB_EVDS_FORMULA_MOVING_SUM
} TcmbEvdsFormula;

typedef enum {
	TCMB_EVDS_FREQ_DAILY,
	TCMB_EVDS_FREQ_BUSINESS,
	TCMB_EVDS_FREQ_WEEKLY_FRIDAY,
	TCMB_EVDS_FREQ_TWICE_MONTHLY,
	TCMB_EVDS_FREQ_MONTHLY,
	TCMB_EVDS_FREQ_QUARTERLY,
	TCMB_EVDS_FREQ_SEMI_ANNUAL,
	TCMB_EVDS_FREQ_ANNUAL
} TcmbEvdsDataFrequency;
*/
import "C"

import (
	"context"
	"sync"
	"unicode/utf8"
	"unsafe"

	"github.com/wippyai/evds-bridge/errors"
	"github.com/wippyai/evds-bridge/evds"
	"github.com/wippyai/evds-bridge/transport"
)

var (
	clientOnce sync.Once
	client     *evds.Client
)

// defaultClient is built lazily so library load stays side-effect free.
func defaultClient() *evds.Client {
	clientOnce.Do(func() {
		client = evds.NewClient(transport.New(nil))
	})
	return client
}

// goInput copies a caller-owned descriptor into an owned Go string.
// Length is authoritative; embedded NUL bytes pass through unchanged.
func goInput(in C.TcmbEvdsInput, name string) (string, error) {
	if in.input_ptr == nil || in.string_capacity == 0 {
		return "", errors.EmptyParameter(errors.PhaseBoundary, name)
	}
	data := C.GoBytes(unsafe.Pointer(in.input_ptr), C.int(in.string_capacity))
	if !utf8.Valid(data) {
		return "", errors.InvalidUTF8(errors.PhaseBoundary, name, data)
	}
	return string(data), nil
}

// cResult places text into a malloc'd buffer owned by the library. On error
// the payload is the diagnostic message. If even that allocation fails the
// result degrades to a null pointer, preserving a non-zero code.
func cResult(body string, err error) C.TcmbEvdsResult {
	code := errors.CodeOf(err)
	text := body
	if err != nil {
		text = errors.MessageOf(err)
	}
	if len(text) == 0 {
		return C.TcmbEvdsResult{error_type: C.int32_t(code)}
	}

	buf := C.malloc(C.size_t(len(text)))
	if buf == nil {
		if code == errors.CodeNoError {
			code = errors.CodeAllocation
		}
		return C.TcmbEvdsResult{error_type: C.int32_t(code)}
	}
	copy(unsafe.Slice((*byte)(buf), len(text)), text)

	return C.TcmbEvdsResult{
		output_ptr:      (*C.uchar)(buf),
		string_capacity: C.ulong(len(text)),
		error_type:      C.int32_t(code),
	}
}

func failure(err error) C.TcmbEvdsResult {
	return cResult("", err)
}

func callOptions(apiKey C.TcmbEvdsInput, format C.TcmbEvdsReturnFormat, ascii C.bool) (evds.CallOptions, error) {
	key, err := goInput(apiKey, "api_key")
	if err != nil {
		return evds.CallOptions{}, err
	}
	f := evds.Format(int32(format))
	if !f.Valid() {
		return evds.CallOptions{}, errors.InvalidEnum("return_format", int32(format), "Format")
	}
	return evds.CallOptions{APIKey: key, Format: f, ASCII: bool(ascii)}, nil
}

//export tcmb_evds_c_get_data
func tcmb_evds_c_get_data(dataSeries, date, apiKey C.TcmbEvdsInput, returnFormat C.TcmbEvdsReturnFormat, asciiMode C.bool) C.TcmbEvdsResult {
	opts, err := callOptions(apiKey, returnFormat, asciiMode)
	if err != nil {
		return failure(err)
	}
	series, err := goInput(dataSeries, "data_series")
	if err != nil {
		return failure(err)
	}
	dateStr, err := goInput(date, "date")
	if err != nil {
		return failure(err)
	}
	return cResult(defaultClient().GetData(context.Background(), series, dateStr, opts))
}

//export tcmb_evds_c_get_advanced_data
func tcmb_evds_c_get_advanced_data(currencySeries, date C.TcmbEvdsInput, aggregationType C.TcmbEvdsAggregationType, formula C.TcmbEvdsFormula, dataFrequency C.TcmbEvdsDataFrequency, apiKey C.TcmbEvdsInput, returnFormat C.TcmbEvdsReturnFormat, asciiMode C.bool) C.TcmbEvdsResult {
	opts, err := callOptions(apiKey, returnFormat, asciiMode)
	if err != nil {
		return failure(err)
	}
	series, err := goInput(currencySeries, "currency_series")
	if err != nil {
		return failure(err)
	}
	dateStr, err := goInput(date, "date")
	if err != nil {
		return failure(err)
	}
	agg := evds.Aggregation(int32(aggregationType))
	if !agg.Valid() {
		return failure(errors.InvalidEnum("aggregation_type", int32(aggregationType), "Aggregation"))
	}
	form := evds.Formula(int32(formula))
	if !form.Valid() {
		return failure(errors.InvalidEnum("formula", int32(formula), "Formula"))
	}
	freq := evds.Frequency(int32(dataFrequency))
	if !freq.Valid() {
		return failure(errors.InvalidEnum("data_frequency", int32(dataFrequency), "Frequency"))
	}
	return cResult(defaultClient().GetAdvancedData(context.Background(), series, dateStr, agg, form, freq, opts))
}

//export tcmb_evds_c_get_data_group
func tcmb_evds_c_get_data_group(dataGroup, date, apiKey C.TcmbEvdsInput, returnFormat C.TcmbEvdsReturnFormat, asciiMode C.bool) C.TcmbEvdsResult {
	opts, err := callOptions(apiKey, returnFormat, asciiMode)
	if err != nil {
		return failure(err)
	}
	group, err := goInput(dataGroup, "data_group")
	if err != nil {
		return failure(err)
	}
	dateStr, err := goInput(date, "date")
	if err != nil {
		return failure(err)
	}
	return cResult(defaultClient().GetDataGroup(context.Background(), group, dateStr, opts))
}

//export tcmb_evds_c_get_categories
func tcmb_evds_c_get_categories(apiKey C.TcmbEvdsInput, returnFormat C.TcmbEvdsReturnFormat, asciiMode C.bool) C.TcmbEvdsResult {
	opts, err := callOptions(apiKey, returnFormat, asciiMode)
	if err != nil {
		return failure(err)
	}
	return cResult(defaultClient().GetCategories(context.Background(), opts))
}

//export tcmb_evds_c_get_advanced_data_group
func tcmb_evds_c_get_advanced_data_group(mode C.uint, code, apiKey C.TcmbEvdsInput, returnFormat C.TcmbEvdsReturnFormat, asciiMode C.bool) C.TcmbEvdsResult {
	opts, err := callOptions(apiKey, returnFormat, asciiMode)
	if err != nil {
		return failure(err)
	}
	codeStr, err := goInput(code, "code")
	if err != nil {
		return failure(err)
	}
	return cResult(defaultClient().GetAdvancedDataGroup(context.Background(), uint32(mode), codeStr, opts))
}

//export tcmb_evds_c_get_series_list
func tcmb_evds_c_get_series_list(code, apiKey C.TcmbEvdsInput, returnFormat C.TcmbEvdsReturnFormat, asciiMode C.bool) C.TcmbEvdsResult {
	opts, err := callOptions(apiKey, returnFormat, asciiMode)
	if err != nil {
		return failure(err)
	}
	codeStr, err := goInput(code, "code")
	if err != nil {
		return failure(err)
	}
	return cResult(defaultClient().GetSeriesList(context.Background(), codeStr, opts))
}

//export tcmb_evds_c_is_error
func tcmb_evds_c_is_error(result C.TcmbEvdsResult) C.bool {
	return result.error_type != 0
}

//export tcmb_evds_c_release
func tcmb_evds_c_release(result C.TcmbEvdsResult) {
	if result.output_ptr != nil {
		C.free(unsafe.Pointer(result.output_ptr))
	}
}

func main() {}
