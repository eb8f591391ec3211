// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/langdata/internal/platform/ctxutil"
)

func TestStringValues(t *testing.T) {
	tests := []struct {
		name string
		with func(context.Context, string) context.Context
		get  func(context.Context) string
		in   string
	}{
		{"request id", ctxutil.WithRequestID, ctxutil.GetRequestID, "01890a5d-ac96-774b-bcce-b302099a8057"},
		{"admin principal", ctxutil.WithAdmin, ctxutil.GetAdmin, "header"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			assert.Empty(t, tt.get(ctx))
			assert.Equal(t, tt.in, tt.get(tt.with(ctx, tt.in)))
		})
	}
}

func TestValuesDoNotLeakAcrossKeys(t *testing.T) {
	ctx := ctxutil.WithRequestID(context.Background(), "abc")
	assert.Empty(t, ctxutil.GetAdmin(ctx))
	assert.Nil(t, ctx.Value("request_id"))
}

func TestGetLogger(t *testing.T) {
	ctx := context.Background()
	assert.Same(t, slog.Default(), ctxutil.GetLogger(ctx))
	assert.Same(t, slog.Default(), ctxutil.GetLogger(ctxutil.WithLogger(ctx, nil)))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.Same(t, logger, ctxutil.GetLogger(ctxutil.WithLogger(ctx, logger)))
}
