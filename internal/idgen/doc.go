// Package idgen generates request identifiers; callers treat them as opaque strings.
package idgen
