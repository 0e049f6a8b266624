// Package mocks provides hand-written test doubles for the store interfaces.
package mocks
