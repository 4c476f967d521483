// Package contract reads the OpenAPI description of the remote service and
// exposes the operations forms submit to. An Operation knows its method and
// path, validates request bodies against its JSON request schema and can
// check that a form declaration matches that schema.
package contract
