// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/H0llyW00dzZ/bigip-cert-reporter/src/internal/helper/gc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferPool(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "GetReturnsEmptyBuffer",
			testFunc: func(t *testing.T) {
				buf := gc.Default.Get()
				defer gc.Default.Put(buf)

				assert.Zero(t, buf.Len())
			},
		},
		{
			name: "ReadFrom",
			testFunc: func(t *testing.T) {
				buf := gc.Default.Get()
				defer func() {
					buf.Reset()
					gc.Default.Put(buf)
				}()

				n, err := buf.ReadFrom(strings.NewReader(`{"items":[]}`))
				require.NoError(t, err)
				assert.Equal(t, int64(12), n)
				assert.Equal(t, `{"items":[]}`, string(buf.Bytes()))
			},
		},
		{
			name: "ResetClearsContents",
			testFunc: func(t *testing.T) {
				buf := gc.Default.Get()
				defer gc.Default.Put(buf)

				_, err := buf.WriteString("stale data")
				require.NoError(t, err)

				buf.Reset()
				assert.Zero(t, buf.Len())
			},
		},
		{
			name: "ConcurrentGetPut",
			testFunc: func(t *testing.T) {
				var wg sync.WaitGroup
				for range 64 {
					wg.Add(1)
					go func() {
						defer wg.Done()
						buf := gc.Default.Get()
						_, _ = buf.WriteString("chunk")
						buf.Reset()
						gc.Default.Put(buf)
					}()
				}
				wg.Wait()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}
