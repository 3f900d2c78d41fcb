// Package wasmhost exposes the boundary service to WebAssembly guests
// through a wazero host module.
//
// The host module is named "evds_bridge". Guests import its functions and
// must export an allocator pair, "evds_alloc" and "evds_free", operating on
// their own linear memory. Every result descriptor the host returns is
// allocated with the guest's evds_alloc and must be handed back through the
// host's evds_release, which frees it with the guest's evds_free. The two
// sides therefore always agree on the allocator.
//
// A guest may additionally export "evds_abi_version" returning a packed
// pointer/length pair naming the ABI version it was built against. When
// present, Host.CheckABI compares it against ABIVersion before any call.
package wasmhost
