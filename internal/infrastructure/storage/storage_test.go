package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega/internal/domain/entity"
	"github.com/jhoicas/bodega/internal/infrastructure/storage"
	"github.com/jhoicas/bodega/pkg/config"
	"github.com/jhoicas/bodega/pkg/logger"
)

func TestOpen_Memoria(t *testing.T) {
	ctx := context.Background()
	repos, err := storage.Open(ctx, config.DBConfig{Driver: "memory"}, logger.Nop())
	require.NoError(t, err)
	defer repos.Close()

	now := time.Now()
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{
		ID: "p-1", Name: "Cinta", SKU: "CI-1", Unit: "rollo", Quantity: 1, CreatedAt: now, UpdatedAt: now,
	}))
	list, err := repos.Products.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
