// Package sentinel holds infrastructure-level sentinel errors. Stores return
// these (optionally wrapped) so services can translate them into domain errors
// without depending on a concrete backend.
package sentinel

import "errors"

var ErrNotFound = errors.New("not found")
