// Package alpaca defines the wire-level data model for the Alpaca brokerage
// REST API: order requests and responses, open positions, portfolio history
// and the error body the API returns on failed calls.
//
// The API encodes most numeric fields as JSON strings and mixes required,
// optional and sometimes-empty fields freely. This package concentrates that
// normalization at the decode boundary: every stringly-typed number passes
// through an explicit strict, optional or lenient parser, and every
// enumeration is validated against its fixed wire table. Decoders either
// return a fully populated value or a DecodeError; partial values are never
// handed back to the caller.
//
// Transport is out of scope. Callers hand raw response bytes to the Decode
// functions and send the bytes produced by EncodeOrderRequest; how those
// bytes move over HTTP is their concern.
package alpaca
