// Package evdsbridge provides a memory-safe bridge between callers with manual
// memory management and the EVDS statistical web service of the CBRT.
//
// The library's focus is the foreign-call boundary: untrusted pointer/length
// pairs living in a foreign address space are converted into validated owned
// strings, a request is built and executed against the remote service, and the
// response travels back as a pointer/length/error-code triple with an
// exactly-paired allocate/release discipline.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	evdsbridge/          Root package with core Memory, Allocator and Transport interfaces
//	├── evds/            Parameter validation, request building and the HTTP client
//	├── boundary/        Descriptor marshaling and result buffer ownership
//	├── transport/       Default net/http transport collaborator
//	├── translit/        UTF-8 decoding and ASCII transliteration of response bodies
//	├── wasmhost/        wazero host module exposing the operations to WASM guests
//	├── errors/          Structured error types and the stable boundary error codes
//	└── cmd/             evds CLI and the libevds C shared-library surface
//
// # Quick Start
//
// Fetch a series in-process:
//
//	client := evds.NewClient(transport.New(nil))
//	opts := evds.CallOptions{APIKey: key, Format: evds.FormatCSV}
//	body, err := client.GetData(ctx, "TP.DK.USD.S", "13-12-2011", opts)
//
// Or through the boundary, the way a foreign caller sees it:
//
//	heap := boundary.NewHeap(1 << 20)
//	svc := boundary.NewService(client, heap, heap)
//	res := svc.GetData(ctx, series, date, apiKey, int32(evds.FormatCSV), false)
//	defer svc.Release(res)
//
// # Ownership Model
//
// Input descriptors are borrowed views into caller memory and are never
// retained past the call that receives them. Result descriptors are owned by
// the bridge: the buffer is produced by the session's Allocator and must be
// returned through Release exactly once. The allocator that produced a result
// pointer is the only one allowed to free it; mixing allocators is undefined
// behavior.
package evdsbridge
