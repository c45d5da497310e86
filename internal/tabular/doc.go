// Package tabular owns the CSV side of the conversion: projecting records
// onto the canonical column set, reading and writing CSV files, and merging
// per-file tables into one deduplicated table.
package tabular
