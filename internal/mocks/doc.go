// Package mocks provides hand-rolled test doubles for the service and
// repository interfaces. The memory repositories return nil from DB(), which
// makes the services run their transactional functions directly against them.
package mocks
