package wasmhost

import (
	"context"
	"encoding/binary"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	evdsbridge "github.com/wippyai/evds-bridge"
	"github.com/wippyai/evds-bridge/boundary"
	"github.com/wippyai/evds-bridge/errors"
	"github.com/wippyai/evds-bridge/evds"
	"go.uber.org/zap"
)

// ModuleName is the import namespace guests bind the bridge functions under.
const ModuleName = "evds_bridge"

// resultSize is the byte width of a result descriptor in guest memory:
// three little-endian u32 fields, ptr then len then code.
const resultSize = 12

// Host binds one domain client to a wazero runtime. The same Host may serve
// many guest instances; each call resolves memory and allocator from the
// calling module, so results always live in the caller's own linear memory.
type Host struct {
	client *evds.Client
}

// NewHost creates a Host serving the given client.
func NewHost(client *evds.Client) *Host {
	return &Host{client: client}
}

// Instantiate registers the evds_bridge host module into r. Guests compiled
// against the module can then be instantiated on the same runtime.
func (h *Host) Instantiate(ctx context.Context, r wazero.Runtime) (api.Module, error) {
	i32 := api.ValueTypeI32

	b := r.NewHostModuleBuilder(ModuleName)

	export := func(name string, fn api.GoModuleFunc, params, results []api.ValueType) {
		b.NewFunctionBuilder().
			WithGoModuleFunction(fn, params, results).
			Export(name)
	}

	// (series_ptr, series_len, date_ptr, date_len, key_ptr, key_len, format, ascii, out_ptr)
	export("evds_get_data", h.getData,
		[]api.ValueType{i32, i32, i32, i32, i32, i32, i32, i32, i32}, nil)
	// (series_ptr, series_len, date_ptr, date_len, agg, formula, freq, key_ptr, key_len, format, ascii, out_ptr)
	export("evds_get_advanced_data", h.getAdvancedData,
		[]api.ValueType{i32, i32, i32, i32, i32, i32, i32, i32, i32, i32, i32, i32}, nil)
	// (group_ptr, group_len, date_ptr, date_len, key_ptr, key_len, format, ascii, out_ptr)
	export("evds_get_data_group", h.getDataGroup,
		[]api.ValueType{i32, i32, i32, i32, i32, i32, i32, i32, i32}, nil)
	// (key_ptr, key_len, format, ascii, out_ptr)
	export("evds_get_categories", h.getCategories,
		[]api.ValueType{i32, i32, i32, i32, i32}, nil)
	// (mode, code_ptr, code_len, key_ptr, key_len, format, ascii, out_ptr)
	export("evds_get_advanced_data_group", h.getAdvancedDataGroup,
		[]api.ValueType{i32, i32, i32, i32, i32, i32, i32, i32}, nil)
	// (code_ptr, code_len, key_ptr, key_len, format, ascii, out_ptr)
	export("evds_get_series_list", h.getSeriesList,
		[]api.ValueType{i32, i32, i32, i32, i32, i32, i32}, nil)
	// (ptr, len)
	export("evds_release", h.release,
		[]api.ValueType{i32, i32}, nil)
	// (code) -> bool
	export("evds_is_error", h.isError,
		[]api.ValueType{i32}, []api.ValueType{i32})

	return b.Instantiate(ctx)
}

// service builds a boundary service bound to the calling guest's memory and
// allocator. Resolved per call because a runtime may host many instances.
func (h *Host) service(ctx context.Context, mod api.Module) *boundary.Service {
	mem := guestMemory{mem: mod.Memory()}
	alloc := guestAllocator{
		ctx:     ctx,
		allocFn: mod.ExportedFunction(GuestAlloc),
		freeFn:  mod.ExportedFunction(GuestFree),
	}
	return boundary.NewService(h.client, mem, alloc)
}

func input(stack []uint64, i int) boundary.Input {
	return boundary.Input{Ptr: uint32(stack[i]), Len: uint32(stack[i+1])}
}

// writeResult marshals a result descriptor into guest memory at out.
func writeResult(mem evdsbridge.Memory, out uint32, res boundary.Result) error {
	var buf [resultSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], res.Ptr)
	binary.LittleEndian.PutUint32(buf[4:8], res.Len)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(res.Code))
	return mem.Write(out, buf[:])
}

func (h *Host) deliver(mod api.Module, out uint32, res boundary.Result) {
	if err := writeResult(guestMemory{mem: mod.Memory()}, out, res); err != nil {
		Logger().Error("result descriptor write failed",
			zap.Uint32("out", out),
			zap.Error(err))
		// The guest handed over a bad out pointer; trap it rather than
		// let it read uninitialized memory as a descriptor.
		panic(err)
	}
}

func (h *Host) getData(ctx context.Context, mod api.Module, stack []uint64) {
	svc := h.service(ctx, mod)
	res := svc.GetData(ctx,
		input(stack, 0), input(stack, 2), input(stack, 4),
		int32(uint32(stack[6])), stack[7] != 0)
	h.deliver(mod, uint32(stack[8]), res)
}

func (h *Host) getAdvancedData(ctx context.Context, mod api.Module, stack []uint64) {
	svc := h.service(ctx, mod)
	res := svc.GetAdvancedData(ctx,
		input(stack, 0), input(stack, 2),
		int32(uint32(stack[4])), int32(uint32(stack[5])), int32(uint32(stack[6])),
		input(stack, 7),
		int32(uint32(stack[9])), stack[10] != 0)
	h.deliver(mod, uint32(stack[11]), res)
}

func (h *Host) getDataGroup(ctx context.Context, mod api.Module, stack []uint64) {
	svc := h.service(ctx, mod)
	res := svc.GetDataGroup(ctx,
		input(stack, 0), input(stack, 2), input(stack, 4),
		int32(uint32(stack[6])), stack[7] != 0)
	h.deliver(mod, uint32(stack[8]), res)
}

func (h *Host) getCategories(ctx context.Context, mod api.Module, stack []uint64) {
	svc := h.service(ctx, mod)
	res := svc.GetCategories(ctx,
		input(stack, 0),
		int32(uint32(stack[2])), stack[3] != 0)
	h.deliver(mod, uint32(stack[4]), res)
}

func (h *Host) getAdvancedDataGroup(ctx context.Context, mod api.Module, stack []uint64) {
	svc := h.service(ctx, mod)
	res := svc.GetAdvancedDataGroup(ctx,
		uint32(stack[0]),
		input(stack, 1), input(stack, 3),
		int32(uint32(stack[5])), stack[6] != 0)
	h.deliver(mod, uint32(stack[7]), res)
}

func (h *Host) getSeriesList(ctx context.Context, mod api.Module, stack []uint64) {
	svc := h.service(ctx, mod)
	res := svc.GetSeriesList(ctx,
		input(stack, 0), input(stack, 2),
		int32(uint32(stack[4])), stack[5] != 0)
	h.deliver(mod, uint32(stack[6]), res)
}

func (h *Host) release(ctx context.Context, mod api.Module, stack []uint64) {
	svc := h.service(ctx, mod)
	svc.Release(boundary.Result{Ptr: uint32(stack[0]), Len: uint32(stack[1])})
}

func (h *Host) isError(_ context.Context, _ api.Module, stack []uint64) {
	res := boundary.Result{Code: errors.Code(int32(uint32(stack[0])))}
	if boundary.IsError(res) {
		stack[0] = 1
	} else {
		stack[0] = 0
	}
}
