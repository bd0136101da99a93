// Package mocks provides test doubles for the store, auth and service
// interfaces. AccountStore uses testify/mock expectations; the others are
// function-field mocks with fixed default results.
package mocks
