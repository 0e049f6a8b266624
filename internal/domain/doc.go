// Package domain defines the user and product records, the client input
// that creates and changes them, and the validation errors raised when that
// input is incomplete.
package domain
