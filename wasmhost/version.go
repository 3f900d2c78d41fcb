package wasmhost

import (
	"context"
	"fmt"

	"github.com/coreos/go-semver/semver"
	"github.com/tetratelabs/wazero/api"
	evdsbridge "github.com/wippyai/evds-bridge"
	"go.uber.org/zap"
)

// ABIVersion is the bridge ABI the host implements. The major number moves
// only when a descriptor layout or export signature changes incompatibly.
const ABIVersion = "1.0.0"

var hostVersion = semver.New(ABIVersion)

// CheckABI verifies that a guest module was built against a compatible
// bridge ABI. Guests without an evds_abi_version export are accepted; an
// export that traps, points outside memory, or names an incompatible
// version is an error.
func CheckABI(ctx context.Context, mod api.Module) error {
	fn := mod.ExportedFunction(GuestABIVersion)
	if fn == nil {
		Logger().Debug("guest declares no ABI version", zap.String("module", mod.Name()))
		return nil
	}

	stack := []uint64{0}
	if err := fn.CallWithStack(ctx, stack); err != nil {
		return fmt.Errorf("%s call failed: %w", GuestABIVersion, err)
	}

	raw, err := readPackedString(guestMemory{mem: mod.Memory()}, stack[0])
	if err != nil {
		return fmt.Errorf("%s returned bad descriptor: %w", GuestABIVersion, err)
	}

	guest, err := semver.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("guest ABI version %q is not semver: %w", raw, err)
	}
	if !abiCompatible(hostVersion, guest) {
		return fmt.Errorf("guest ABI version %s is incompatible with host %s", guest, hostVersion)
	}
	Logger().Debug("guest ABI accepted",
		zap.String("module", mod.Name()),
		zap.String("guest", guest.String()))
	return nil
}

// abiCompatible reports whether a host at version have can serve a guest
// built against version want: same major, and the host at least as new.
func abiCompatible(have, want *semver.Version) bool {
	if have.Major != want.Major {
		return false
	}
	return !have.LessThan(*want)
}

// readPackedString reads a string whose pointer and length are packed into
// one u64 as ptr<<32 | len.
func readPackedString(mem evdsbridge.Memory, packed uint64) (string, error) {
	ptr := uint32(packed >> 32)
	length := uint32(packed)
	if length == 0 {
		return "", fmt.Errorf("empty version string")
	}
	data, err := mem.Read(ptr, length)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
