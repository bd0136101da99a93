// Package domain contains the core entities of the application: users and the
// single business profile each user owns. It is independent of storage and
// transport; validation here reports every failing field at once.
package domain
