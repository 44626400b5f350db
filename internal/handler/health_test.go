package handler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheStatus_DisabledWithoutClient(t *testing.T) {
	assert.Equal(t, statusDisabled, cacheStatus(context.Background(), nil))
}
