package wasmhost

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
)

// Guest export names the host depends on. evds_alloc and evds_free are
// required; evds_abi_version is optional.
const (
	GuestAlloc      = "evds_alloc"
	GuestFree       = "evds_free"
	GuestABIVersion = "evds_abi_version"
)

// guestMemory adapts wazero's api.Memory to the bridge Memory interface.
type guestMemory struct {
	mem api.Memory
}

func (m guestMemory) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, fmt.Errorf("read out of bounds: offset=%d, length=%d", offset, length)
	}
	return data, nil
}

func (m guestMemory) Write(offset uint32, data []byte) error {
	ok := m.mem.Write(offset, data)
	if !ok {
		return fmt.Errorf("write out of bounds: offset=%d, length=%d", offset, len(data))
	}
	return nil
}

// guestAllocator allocates inside guest linear memory by calling the guest's
// exported evds_alloc and evds_free. Calls run on the invoking call's
// context so guest-side traps surface to the same caller.
type guestAllocator struct {
	ctx     context.Context
	allocFn api.Function
	freeFn  api.Function
}

func (a guestAllocator) Alloc(size uint32) (uint32, error) {
	if a.allocFn == nil {
		return 0, fmt.Errorf("guest does not export %s", GuestAlloc)
	}
	stack := []uint64{uint64(size)}
	if err := a.allocFn.CallWithStack(a.ctx, stack); err != nil {
		return 0, err
	}
	return uint32(stack[0]), nil
}

func (a guestAllocator) Free(ptr, size uint32) {
	if a.freeFn == nil || ptr == 0 {
		return
	}
	stack := []uint64{uint64(ptr), uint64(size)}
	if err := a.freeFn.CallWithStack(a.ctx, stack); err != nil {
		Logger().Warn("guest free failed",
			zap.Uint32("ptr", ptr),
			zap.Uint32("size", size),
			zap.Error(err))
	}
}
