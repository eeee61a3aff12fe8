// Package dms contains the domain managers of the DMS MCP server.
//
// Each manager covers one DMS resource family (instances, endpoints, tasks,
// certificates, ...). A manager method translates its Go signature into the
// parameter names the AWS API expects, runs pre-flight validation, invokes
// the gateway, and normalizes the response into the uniform Result envelope.
//
// Two generic contracts carry most of the weight:
//
//   - pagedList implements every list operation: optional filters (an empty
//     set is omitted from the outgoing call, not sent as an empty list), a
//     page size defaulting to 100, an opaque continuation token forwarded
//     verbatim, and a normalized next_marker/next_token key in the result
//     that is present only when the service returned one.
//
//   - mutate implements every create/modify/delete/start/stop operation:
//     required-key presence is checked before any network call, an optional
//     semantic validator runs next, and on success the resource sub-object
//     is snake-cased and wrapped with a fixed human-readable message.
//
// Gateway errors are never caught, wrapped, or retried here; they propagate
// to the caller. The only retry loop in the system is the connection-test
// poll, which retries on business-level non-terminal status.
package dms
