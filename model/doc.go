// Package model contains the in-memory representation of flows and of the ordered
// documents they are exchanged as.
//
// The `flow` sub-package defines the flow entity and its structural equality, the
// `document` sub-package defines the ordered element tree used by the XML codec.
package model
