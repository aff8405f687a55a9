// Package utils provides common utility functions for the access-analyzer
// application. It includes helpers for string-set construction and rendering
// shared by the reconciliation and reporting layers.
package utils
