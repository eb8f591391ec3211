// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package nullable_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/langdata/pkg/nullable"
)

func TestPtr(t *testing.T) {
	assert.Nil(t, nullable.Ptr(sql.Null[string]{}))

	region := nullable.Ptr(sql.Null[string]{V: "01890a5d", Valid: true})
	require.NotNil(t, region)
	assert.Equal(t, "01890a5d", *region)
}

func TestFrom(t *testing.T) {
	assert.False(t, nullable.From[string](nil).Valid)

	region := "01890a5d"
	column := nullable.From(&region)
	assert.True(t, column.Valid)
	assert.Equal(t, region, column.V)
}
