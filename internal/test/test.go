// Package test contains assertion helpers shared by package tests.
package test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava12/bnfcheck"
)

// ExpectErrorCode fails unless e is (or wraps) *bnfcheck.Error with given code.
func ExpectErrorCode(t *testing.T, expected int, e error) {
	t.Helper()
	require.Error(t, e, "expecting error code %d", expected)
	require.Equal(t, expected, bnfcheck.ErrorCode(e), "unexpected error: %v", e)
}
