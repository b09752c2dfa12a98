package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAcceptsMinimums(t *testing.T) {
	t.Parallel()

	p := PBENCParams{Time: MinTime, Memory: MinMemory}
	assert.NoError(t, p.Validate())
}

func TestValidateRejectsBelowMinimums(t *testing.T) {
	t.Parallel()

	p := PBENCParams{Time: 0, Memory: 10}
	err := p.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "time cost")
	assert.Contains(t, err.Error(), "memory cost")
}
