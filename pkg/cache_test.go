package pkg

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRedisClientRequiresURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "")
	assert.EqualError(t, err, "REDIS_URL not found")
}

func TestNewRedisClientRejectsBadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "http://localhost:6379")
	assert.ErrorContains(t, err, "parse redis url")
}

func TestNewRedisClientFailsWhenUnreachable(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "redis://127.0.0.1:1/0")
	assert.ErrorContains(t, err, "Não foi possível conectar ao Redis")
}
