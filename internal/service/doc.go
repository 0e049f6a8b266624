// Package service contains the record use cases that sit between the HTTP
// handlers and the CSV-backed stores.
//
// Services validate client input before touching a store, so a rejected
// request never loads or writes the record file. Store errors are wrapped
// with context and passed through unchanged in kind; callers classify them
// with errors.Is against the sentinels in internal/store and internal/domain.
package service
