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

package typehash

import (
	"sync"
)

// Hasher is the generic hash functor. It binds an algorithm factory to the
// encoding rule for T; every call to Sum uses a fresh accumulator.
type Hasher[R any, A Algorithm[R, A], T any] struct {
	newAlgorithm func() A
	encoder      Encoder[T]
	primed       A
	hasPrimed    bool
}

// New creates a Hasher. The result type R must be given explicitly; the
// algorithm and value types are inferred:
//
//	h := typehash.New[debug.Bytes](debug.New, typehash.Raw[int32]())
func New[R any, A Algorithm[R, A], T any](
	newAlgorithm func() A,
	encoder Encoder[T],
) Hasher[R, A, T] {
	return Hasher[R, A, T]{
		newAlgorithm: newAlgorithm,
		encoder:      encoder,
	}
}

// Sum hashes a single value with a fresh accumulator built by newAlgorithm
func Sum[R any, A Algorithm[R, A], T any](
	newAlgorithm func() A,
	encoder Encoder[T],
	v T,
) R {
	return New[R](newAlgorithm, encoder).Sum(v)
}

// WithPrefix returns a Hasher whose accumulators start with prefix already
// absorbed. The prefix is absorbed once and each Sum works on a clone of that
// state, so it can be used for domain separation at no per-value cost.
func (h Hasher[R, A, T]) WithPrefix(prefix []byte) Hasher[R, A, T] {
	alg := h.algorithm()
	alg.Append(prefix)
	h.primed = alg
	h.hasPrimed = true
	return h
}

func (h Hasher[R, A, T]) algorithm() A {
	if h.hasPrimed {
		return h.primed.Clone()
	}
	return h.newAlgorithm()
}

// Sum hashes v and returns the finalized result
func (h Hasher[R, A, T]) Sum(v T) R {
	alg := h.algorithm()
	h.encoder.append(alg, &v)
	return alg.Value()
}

// SumAll hashes each value with its own accumulator using up to workers
// goroutines. Results are returned in the order of values.
func (h Hasher[R, A, T]) SumAll(values []T, workers int) []R {
	results := make([]R, len(values))
	workers = max(1, min(workers, len(values)))
	indexCh := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexCh {
				results[idx] = h.Sum(values[idx])
			}
		}()
	}
	for idx := range values {
		indexCh <- idx
	}
	close(indexCh)
	wg.Wait()
	return results
}
