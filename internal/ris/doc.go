// Package ris implements the tagged-text side of the conversion: the record
// model with its scalar-to-list promotion rule, the line parser, and the
// serializer that turns tabular rows back into RIS blocks.
package ris
