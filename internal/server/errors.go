package server

import "errors"

// errNoServersAreCreated is returned when the handlers expose neither an HTTP
// router nor a gRPC service.
var errNoServersAreCreated = errors.New("no servers are created")
