// Package maintenance implements the gRPC transport of the Control node
// maintenance API.
//
// The service is described by hand over protobuf well-known types: status
// is returned as a google.protobuf.Struct and the occupancy override takes a
// google.protobuf.BoolValue. Callers identify themselves with an actor
// carried in request metadata.
package maintenance
