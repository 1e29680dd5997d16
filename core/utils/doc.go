// Package utils provides common utility functions for the report-sync application.
// It includes helpers for converting loosely typed driver values (dates, strings)
// that do not fit into domain-specific packages.
package utils
