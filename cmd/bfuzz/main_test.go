package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunFixedSeed(t *testing.T) {
	require.NoError(t, run([]string{"-n", "500", "--seed", "7", "--max-len", "64"}))
}

func TestRunBadFlag(t *testing.T) {
	require.Error(t, run([]string{"--no-such-flag"}))
}
