// Package schema loads the tag reference that drives every conversion: which
// RIS tags are recognized, what they mean, and which of them repeat. The
// sorted tag list doubles as the canonical CSV column set.
package schema
