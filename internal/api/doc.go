// Package api provides the HTTP client shared by every caller of the backend.
//
// # Overview
//
// The package turns an Endpoint (path, method, headers, optional body) into a
// decoded typed value or a classified *Error. One Client is built by the
// composition root and injected wherever requests are made; there is no
// package-level instance.
//
// # Architecture
//
//   - endpoint.go: Endpoint descriptor and the /items endpoint constructors
//   - client.go: Client, Execute, Download, Upload
//   - errors.go: the error taxonomy and transport error classification
//   - items.go: Item resource and the ItemService built on Execute
//   - metrics.go: Prometheus collectors for request outcomes
//
// # Request Handling
//
//	ep := api.GetItem(id.String())
//	item, err := api.Execute[api.Item](ctx, client, ep)
//	if errors.Is(err, api.ErrTimeout) {
//		// ...
//	}
//
// All requests:
//   - Resolve baseURL+path without I/O; a bad URL fails with KindInvalidURL
//   - Set Accept, User-Agent and a fresh X-Request-ID header
//   - Treat 200-299 as success; any other status (3xx included) is KindHTTPError
//   - Decode JSON bodies with encoding/json; time.Time fields use RFC 3339
//
// # Timeouts
//
// RequestTimeout bounds the wait for response headers and ResourceTimeout
// bounds the whole exchange including the body. Defaults are 30s and twice the
// request timeout. Exceeding either yields KindTimeout.
//
// # Error Handling
//
// Every operation returns nil or exactly one *Error:
//
//   - KindInvalidURL: base URL and path do not form an absolute URL
//   - KindInvalidResponse: the server sent no parseable status
//   - KindHTTPError: non-2xx status on Execute; StatusCode is set
//   - KindDecodingError: 2xx body did not decode into the result type
//   - KindEncodingError: request body could not be encoded
//   - KindDownloadFailed / KindUploadFailed: non-2xx on Download / Upload
//   - KindNoInternetConnection: DNS failure or unreachable network
//   - KindTimeout: a deadline was exceeded
//   - KindUnknown: anything else, with the cause attached
//
// # Shared State
//
// InFlight counts outstanding requests. LastError is cleared when a request
// starts and set when one fails; under overlapping requests it is eventually
// consistent and only suitable for passive display.
//
// # Design Rationale
//
// The package intentionally has no retries and no caching; callers decide
// when to ask again.
package api
