// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package typehash_test

import (
	"fmt"
	"testing"

	"github.com/blinklabs-io/typehash"
	"github.com/blinklabs-io/typehash/debug"
	"github.com/blinklabs-io/typehash/digest"
	"github.com/blinklabs-io/typehash/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestHasherDeterministic(t *testing.T) {
	h := typehash.New[digest.Blake2b256](digest.NewBlake2b256, pointEncoder)
	value := point{X: 1.5, Y: -3, Tags: []string{"a", "b"}}
	first := h.Sum(value)
	second := h.Sum(value)
	assert.Equal(t, first, second)
	assert.Equal(
		t,
		first,
		typehash.Sum[digest.Blake2b256](digest.NewBlake2b256, pointEncoder, value),
	)
	assert.NotEqual(t, first, h.Sum(point{X: 1.5, Y: -3}))
}

func TestHasherMatchesRecordedBytes(t *testing.T) {
	// The digest of a value is the digest of the bytes its rule produces
	value := point{X: 2, Y: 4, Tags: []string{"tag"}}
	recorded := typehash.Sum[debug.Bytes](debug.New, pointEncoder, value)
	direct := digest.NewSHA256()
	direct.Append(recorded)
	assert.Equal(
		t,
		direct.Value(),
		typehash.Sum[digest.SHA256](digest.NewSHA256, pointEncoder, value),
	)
}

func TestHasherFreshAccumulator(t *testing.T) {
	h := typehash.New[debug.Bytes](debug.New, typehash.Raw[int32]())
	first := h.Sum(1)
	second := h.Sum(2)
	assert.Equal(t, test.NativeHex(int32(1)), first.Hex())
	assert.Equal(t, test.NativeHex(int32(2)), second.Hex())
}

func TestHasherWithPrefix(t *testing.T) {
	h := typehash.New[debug.Bytes](debug.New, typehash.String[string]()).
		WithPrefix([]byte("ns:"))
	assert.Equal(t, "ns:one", string(h.Sum("one")))
	// The primed state is cloned, not shared
	assert.Equal(t, "ns:two", string(h.Sum("two")))

	plain := typehash.New[digest.Blake3](digest.NewBlake3, typehash.String[string]())
	prefixed := plain.WithPrefix([]byte("ns:"))
	assert.Equal(t, plain.Sum("ns:one"), prefixed.Sum("one"))
	assert.NotEqual(t, plain.Sum("one"), prefixed.Sum("one"))
}

func TestHasherWithPrefixChained(t *testing.T) {
	h := typehash.New[debug.Bytes](debug.New, typehash.String[string]()).
		WithPrefix([]byte("a")).
		WithPrefix([]byte("b"))
	assert.Equal(t, "abc", string(h.Sum("c")))
}

func TestSumAll(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := typehash.New[digest.Blake2b256](
		digest.NewBlake2b256,
		typehash.String[string](),
	)
	values := make([]string, 100)
	for i := range values {
		values[i] = fmt.Sprintf("value-%d", i)
	}
	for _, workers := range []int{0, 1, 4, 200} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			results := h.SumAll(values, workers)
			require.Len(t, results, len(values))
			for i, value := range values {
				assert.Equal(t, h.Sum(value), results[i])
			}
		})
	}
}

func TestSumAllWithPrefix(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := typehash.New[debug.Bytes](debug.New, typehash.Raw[uint8]()).
		WithPrefix([]byte{0xaa})
	results := h.SumAll([]uint8{1, 2, 3}, 3)
	require.Len(t, results, 3)
	assert.Equal(t, "aa01", results[0].Hex())
	assert.Equal(t, "aa02", results[1].Hex())
	assert.Equal(t, "aa03", results[2].Hex())
}

func TestSumAllEmpty(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := typehash.New[uint64](digest.NewXXH64, typehash.Raw[int64]())
	assert.Empty(t, h.SumAll(nil, 8))
}
