package boundary

import (
	"context"
	"errors"
	"strings"
	"testing"

	evdsbridge "github.com/wippyai/evds-bridge"
	bridgeerrors "github.com/wippyai/evds-bridge/errors"
	"github.com/wippyai/evds-bridge/evds"
)

// stubTransport records invocations so tests can prove that validation
// failures never reach the network.
type stubTransport struct {
	calls int
	urls  []string
	resp  *evdsbridge.Response
	err   error
}

func (s *stubTransport) Get(ctx context.Context, url string) (*evdsbridge.Response, error) {
	s.calls++
	s.urls = append(s.urls, url)
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func okBody(body string) *evdsbridge.Response {
	return &evdsbridge.Response{Status: 200, Body: []byte(body)}
}

type fixture struct {
	heap *Heap
	stub *stubTransport
	svc  *Service
}

func newFixture(t *testing.T, resp *evdsbridge.Response, err error) *fixture {
	t.Helper()
	heap := NewHeap(1 << 20)
	stub := &stubTransport{resp: resp, err: err}
	return &fixture{
		heap: heap,
		stub: stub,
		svc:  NewService(evds.NewClient(stub), heap, heap),
	}
}

func (f *fixture) place(t *testing.T, s string) Input {
	t.Helper()
	in, err := f.heap.Place(s)
	if err != nil {
		t.Fatalf("place %q: %v", s, err)
	}
	return in
}

func (f *fixture) payload(t *testing.T, r Result) string {
	t.Helper()
	if r.Ptr == 0 {
		return ""
	}
	data, err := f.heap.Read(r.Ptr, r.Len)
	if err != nil {
		t.Fatalf("read result payload: %v", err)
	}
	return string(data)
}

func TestGetData(t *testing.T) {
	const body = "Tarih,TP_DK_USD_S\n13-12-2011,1.8638\n"
	f := newFixture(t, okBody(body), nil)

	res := f.svc.GetData(context.Background(),
		f.place(t, "TP.DK.USD.S"), f.place(t, "13-12-2011"), f.place(t, "VALID_API_KEY"),
		int32(evds.FormatCSV), false)
	defer f.svc.Release(res)

	if IsError(res) {
		t.Fatalf("code = %v, payload = %q", res.Code, f.payload(t, res))
	}
	if res.Len != uint32(len(body)) {
		t.Errorf("Len = %d, want %d", res.Len, len(body))
	}
	if got := f.payload(t, res); got != body {
		t.Errorf("payload = %q, want %q", got, body)
	}
	if f.stub.calls != 1 {
		t.Errorf("transport calls = %d, want 1", f.stub.calls)
	}
	wantURL := evds.BaseURL + "series=TP.DK.USD.S&startDate=13-12-2011&endDate=13-12-2011&type=csv&key=VALID_API_KEY"
	if f.stub.urls[0] != wantURL {
		t.Errorf("url = %q\nwant  %q", f.stub.urls[0], wantURL)
	}
}

func TestGetAdvancedData(t *testing.T) {
	f := newFixture(t, okBody(`{"items":[]}`), nil)

	res := f.svc.GetAdvancedData(context.Background(),
		f.place(t, "TP.DK.USD.A"), f.place(t, "13-12-2011"),
		int32(evds.AggregationEnd), int32(evds.FormulaLevel), int32(evds.FrequencyMonthly),
		f.place(t, "VALID_API_KEY"), int32(evds.FormatJSON), false)
	defer f.svc.Release(res)

	if IsError(res) {
		t.Fatalf("code = %v, payload = %q", res.Code, f.payload(t, res))
	}
	url := f.stub.urls[0]
	for _, part := range []string{"aggregationTypes=last", "formulas=0", "frequency=5"} {
		if !strings.Contains(url, part) {
			t.Errorf("url %q missing %q", url, part)
		}
	}
}

func TestGetAdvancedDataImpossibleDate(t *testing.T) {
	f := newFixture(t, okBody("unreachable"), nil)

	res := f.svc.GetAdvancedData(context.Background(),
		f.place(t, "TP.DK.USD.A"), f.place(t, "31-02-2011"),
		int32(evds.AggregationAverage), int32(evds.FormulaLevel), int32(evds.FrequencyDaily),
		f.place(t, "VALID_API_KEY"), int32(evds.FormatJSON), false)
	defer f.svc.Release(res)

	if res.Code != bridgeerrors.CodeInvalidDate {
		t.Errorf("code = %v, want CodeInvalidDate", res.Code)
	}
	if f.stub.calls != 0 {
		t.Errorf("transport calls = %d, validation must precede I/O", f.stub.calls)
	}
}

func TestGetCategoriesEmptyAPIKey(t *testing.T) {
	f := newFixture(t, okBody("unreachable"), nil)

	res := f.svc.GetCategories(context.Background(), Input{}, int32(evds.FormatJSON), false)
	defer f.svc.Release(res)

	if res.Code != bridgeerrors.CodeInvalidInput {
		t.Errorf("code = %v, want CodeInvalidInput", res.Code)
	}
	if f.stub.calls != 0 {
		t.Errorf("transport calls = %d, want 0", f.stub.calls)
	}
}

func TestEmptyDescriptorsShortCircuit(t *testing.T) {
	f := newFixture(t, okBody("unreachable"), nil)
	key := f.place(t, "VALID_API_KEY")
	date := f.place(t, "13-12-2011")
	ctx := context.Background()
	fmtJSON := int32(evds.FormatJSON)

	tests := []struct {
		name string
		call func() Result
	}{
		{"series", func() Result { return f.svc.GetData(ctx, Input{}, date, key, fmtJSON, false) }},
		{"data_group", func() Result { return f.svc.GetDataGroup(ctx, Input{}, date, key, fmtJSON, false) }},
		{"code on series list", func() Result { return f.svc.GetSeriesList(ctx, Input{}, key, fmtJSON, false) }},
		{"code on advanced group", func() Result { return f.svc.GetAdvancedDataGroup(ctx, 1, Input{}, key, fmtJSON, false) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.call()
			defer f.svc.Release(res)
			if res.Code != bridgeerrors.CodeInvalidInput {
				t.Errorf("code = %v, want CodeInvalidInput", res.Code)
			}
		})
	}
	if f.stub.calls != 0 {
		t.Errorf("transport calls = %d, want 0", f.stub.calls)
	}
}

func TestEnumRangeChecks(t *testing.T) {
	f := newFixture(t, okBody("unreachable"), nil)
	key := f.place(t, "VALID_API_KEY")
	series := f.place(t, "TP.DK.USD.A")
	date := f.place(t, "13-12-2011")
	ctx := context.Background()

	tests := []struct {
		name string
		call func() Result
	}{
		{"format", func() Result { return f.svc.GetCategories(ctx, key, 99, false) }},
		{"negative format", func() Result { return f.svc.GetCategories(ctx, key, -1, false) }},
		{"aggregation", func() Result {
			return f.svc.GetAdvancedData(ctx, series, date, 6, 0, 0, key, int32(evds.FormatJSON), false)
		}},
		{"formula", func() Result {
			return f.svc.GetAdvancedData(ctx, series, date, 0, 9, 0, key, int32(evds.FormatJSON), false)
		}},
		{"frequency", func() Result {
			return f.svc.GetAdvancedData(ctx, series, date, 0, 0, 8, key, int32(evds.FormatJSON), false)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.call()
			defer f.svc.Release(res)
			if res.Code != bridgeerrors.CodeInvalidEnum {
				t.Errorf("code = %v, want CodeInvalidEnum", res.Code)
			}
		})
	}
	if f.stub.calls != 0 {
		t.Errorf("transport calls = %d, want 0", f.stub.calls)
	}
}

func TestNonUTF8Input(t *testing.T) {
	f := newFixture(t, okBody("unreachable"), nil)

	ptr, err := f.heap.Alloc(3)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.heap.Write(ptr, []byte{0xff, 0xfe, 0xfd}); err != nil {
		t.Fatal(err)
	}

	res := f.svc.GetData(context.Background(),
		Input{Ptr: ptr, Len: 3}, f.place(t, "13-12-2011"), f.place(t, "VALID_API_KEY"),
		int32(evds.FormatCSV), false)
	defer f.svc.Release(res)

	if res.Code != bridgeerrors.CodeInvalidUTF8 {
		t.Errorf("code = %v, want CodeInvalidUTF8", res.Code)
	}
	if f.stub.calls != 0 {
		t.Errorf("transport calls = %d, want 0", f.stub.calls)
	}
}

func TestOutOfBoundsDescriptor(t *testing.T) {
	f := newFixture(t, okBody("unreachable"), nil)

	res := f.svc.GetSeriesList(context.Background(),
		Input{Ptr: 1 << 30, Len: 16}, f.place(t, "VALID_API_KEY"),
		int32(evds.FormatJSON), false)
	defer f.svc.Release(res)

	if res.Code != bridgeerrors.CodeInvalidInput {
		t.Errorf("code = %v, want CodeInvalidInput", res.Code)
	}
	if f.stub.calls != 0 {
		t.Errorf("transport calls = %d, want 0", f.stub.calls)
	}
}

func TestStrictModeRejectsNonUTF8Body(t *testing.T) {
	f := newFixture(t, &evdsbridge.Response{Status: 200, Body: []byte{'o', 'k', 0xff, 0xfe}}, nil)

	res := f.svc.GetCategories(context.Background(),
		f.place(t, "VALID_API_KEY"), int32(evds.FormatJSON), false)
	defer f.svc.Release(res)

	if res.Code != bridgeerrors.CodeInvalidUTF8 {
		t.Errorf("code = %v, want CodeInvalidUTF8", res.Code)
	}
}

func TestASCIIModeNeverFailsOnEncoding(t *testing.T) {
	f := newFixture(t, &evdsbridge.Response{Status: 200, Body: []byte{'T', 0xc3, 0xbc, 'r', 0xff, '!'}}, nil)

	res := f.svc.GetCategories(context.Background(),
		f.place(t, "VALID_API_KEY"), int32(evds.FormatJSON), true)
	defer f.svc.Release(res)

	if IsError(res) {
		t.Fatalf("code = %v, ascii mode must not fail on encoding", res.Code)
	}
	got := f.payload(t, res)
	if got != "Tur * !" {
		t.Errorf("payload = %q, want %q", got, "Tur * !")
	}
}

func TestNetworkError(t *testing.T) {
	f := newFixture(t, nil, errors.New("dial tcp: connection refused"))

	res := f.svc.GetCategories(context.Background(),
		f.place(t, "VALID_API_KEY"), int32(evds.FormatJSON), false)
	defer f.svc.Release(res)

	if res.Code != bridgeerrors.CodeNetwork {
		t.Errorf("code = %v, want CodeNetwork", res.Code)
	}
}

func TestUpstreamStatusError(t *testing.T) {
	f := newFixture(t, &evdsbridge.Response{Status: 403, Body: []byte("denied")}, nil)

	res := f.svc.GetCategories(context.Background(),
		f.place(t, "VALID_API_KEY"), int32(evds.FormatJSON), false)
	defer f.svc.Release(res)

	if res.Code != bridgeerrors.CodeUpstreamStatus {
		t.Errorf("code = %v, want CodeUpstreamStatus", res.Code)
	}
	if msg := f.payload(t, res); !strings.Contains(msg, "403") {
		t.Errorf("diagnostic payload %q should mention the status", msg)
	}
}

func TestErrorBodyInSuccessfulResponsePassesThrough(t *testing.T) {
	// Documented limitation: an upstream application error inside a 200
	// payload is indistinguishable from data and is returned as-is.
	const body = `{"error":"no records found"}`
	f := newFixture(t, okBody(body), nil)

	res := f.svc.GetData(context.Background(),
		f.place(t, "TP.DK.USD.S"), f.place(t, "13-12-2011"), f.place(t, "VALID_API_KEY"),
		int32(evds.FormatJSON), false)
	defer f.svc.Release(res)

	if IsError(res) {
		t.Fatalf("code = %v, want NoError", res.Code)
	}
	if got := f.payload(t, res); got != body {
		t.Errorf("payload = %q, want %q", got, body)
	}
}

func TestReleasePairing(t *testing.T) {
	f := newFixture(t, okBody("csv body"), nil)
	series := f.place(t, "TP.DK.USD.S")
	date := f.place(t, "13-12-2011")
	key := f.place(t, "VALID_API_KEY")

	inputs := f.heap.Live()

	// success result owns a buffer; release returns it
	ok := f.svc.GetData(context.Background(), series, date, key, int32(evds.FormatCSV), false)
	if f.heap.Live() != inputs+1 {
		t.Fatalf("live = %d, want %d after success", f.heap.Live(), inputs+1)
	}
	f.svc.Release(ok)
	if f.heap.Live() != inputs {
		t.Errorf("live = %d, success result leaked", f.heap.Live())
	}

	// error result carries a diagnostic buffer; release is equally mandatory
	bad := f.svc.GetData(context.Background(), series, f.place(t, "99-99-9999"), key, int32(evds.FormatCSV), false)
	if !IsError(bad) {
		t.Fatal("expected error result")
	}
	f.svc.Release(bad)

	// null result is a safe no-op
	f.svc.Release(Result{})

	if f.heap.Live() != inputs+1 { // only the extra bad-date input remains
		t.Errorf("live = %d, error result leaked", f.heap.Live())
	}
}

func TestAllocationFailure(t *testing.T) {
	heap := NewHeap(64) // too small for any response body
	stub := &stubTransport{resp: okBody(strings.Repeat("x", 4096))}
	svc := NewService(evds.NewClient(stub), heap, heap)

	key, err := heap.Place("K")
	if err != nil {
		t.Fatal(err)
	}
	res := svc.GetCategories(context.Background(), key, int32(evds.FormatJSON), false)
	defer svc.Release(res)

	if res.Code != bridgeerrors.CodeAllocation {
		t.Errorf("code = %v, want CodeAllocation", res.Code)
	}
	if res.Ptr != 0 {
		t.Errorf("Ptr = %d, want null on allocation failure", res.Ptr)
	}
}
