// Package testutil holds shared test helpers: readable subtest naming and
// fixed-time contexts for deterministic timestamps.
package testutil

import "testing"

// Given, When, and Then keep test descriptions readable without a BDD
// framework; each is just a named subtest.
func Given(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("Given "+desc, fn)
}

func When(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("When "+desc, fn)
}

func Then(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("Then "+desc, fn)
}
