package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShutdownBudgetCoversNestedWaits(t *testing.T) {
	budget := shutdownBudget(stepTimeout, stepTimeout)
	assert.Greater(t, budget, 2*stepTimeout)
	assert.Equal(t, time.Second, shutdownBudget())
}
