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

package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/blinklabs-io/typehash"
	"github.com/blinklabs-io/typehash/debug"
	"github.com/blinklabs-io/typehash/digest"
	"github.com/spf13/pflag"
)

// sample mirrors the values fed through the accumulator by the demo
type sample struct {
	Number int32
	Flag   bool
	Pi     float64
	Values []int32
	Text   string
}

// newSample returns the demo values with text in place of the Text field
func newSample(text string) sample {
	return sample{
		Number: 5,
		Flag:   true,
		Pi:     3.1415,
		Values: []int32{1, 2, 3},
		Text:   text,
	}
}

var sampleEncoder = typehash.Struct(
	typehash.Field(
		func(s *sample) int32 { return s.Number },
		typehash.Raw[int32](),
	),
	typehash.Field(func(s *sample) bool { return s.Flag }, typehash.Raw[bool]()),
	typehash.Field(
		func(s *sample) float64 { return s.Pi },
		typehash.Float[float64](),
	),
	typehash.Field(
		func(s *sample) []int32 { return s.Values },
		typehash.Slice(typehash.Raw[int32]()),
	),
	typehash.Field(
		func(s *sample) string { return s.Text },
		typehash.String[string](),
	),
)

type cmdlineFlags struct {
	flagset   *pflag.FlagSet
	algorithm string
	key       string
	context   string
	bech32    string
	text      string
	verbose   bool
}

func newCmdlineFlags() *cmdlineFlags {
	f := &cmdlineFlags{
		flagset: pflag.NewFlagSet(os.Args[0], pflag.ExitOnError),
	}
	f.flagset.StringVarP(
		&f.algorithm,
		"algorithm",
		"a",
		"debug",
		"hash algorithm: debug, blake2b-256, blake2b-224, blake2b-160, blake3, sha256 or xxh64",
	)
	f.flagset.StringVar(
		&f.key,
		"key",
		"",
		"hex encoded 32-byte key for keyed blake3",
	)
	f.flagset.StringVar(
		&f.context,
		"context",
		"",
		"key derivation context for blake3",
	)
	f.flagset.StringVar(
		&f.bech32,
		"bech32",
		"",
		"render blake2b digests as bech32 with this prefix",
	)
	f.flagset.StringVar(&f.text, "text", "abcdef", "value of the sample's Text field")
	f.flagset.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
	return f
}

func main() {
	f := newCmdlineFlags()
	if err := f.flagset.Parse(os.Args[1:]); err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}
	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	)

	value := newSample(f.text)
	logger.Debug(
		"hashing sample",
		"algorithm", f.algorithm,
		"text", value.Text,
	)
	out, err := run(f, value)
	if err != nil {
		logger.Error("failed to hash sample", "error", err)
		os.Exit(1)
	}
	logger.Debug("hashed sample", "algorithm", f.algorithm, "result", out)
	fmt.Println(out)
}

var errUnknownAlgorithm = errors.New("unknown algorithm")

func run(f *cmdlineFlags, value sample) (string, error) {
	switch f.algorithm {
	case "debug":
		return sum(debug.New, value, func(r debug.Bytes) (string, error) {
			return r.String(), nil
		})
	case "blake2b-256":
		return sum(digest.NewBlake2b256, value, blake2bFormat[digest.Blake2b256](f.bech32))
	case "blake2b-224":
		return sum(digest.NewBlake2b224, value, blake2bFormat[digest.Blake2b224](f.bech32))
	case "blake2b-160":
		return sum(digest.NewBlake2b160, value, blake2bFormat[digest.Blake2b160](f.bech32))
	case "blake3":
		var opts []digest.OptionFunc
		if f.key != "" {
			key, err := hex.DecodeString(f.key)
			if err != nil {
				return "", fmt.Errorf("decoding key: %w", err)
			}
			opts = append(opts, digest.WithKey(key))
		}
		if f.context != "" {
			opts = append(opts, digest.WithContext(f.context))
		}
		newAlgorithm, err := digest.NewBlake3Factory(opts...)
		if err != nil {
			return "", err
		}
		return sum(newAlgorithm, value, stringFormat[digest.Blake3])
	case "sha256":
		return sum(digest.NewSHA256, value, stringFormat[digest.SHA256])
	case "xxh64":
		return sum(digest.NewXXH64, value, func(r uint64) (string, error) {
			return strconv.FormatUint(r, 16), nil
		})
	default:
		return "", fmt.Errorf("%w: %s", errUnknownAlgorithm, f.algorithm)
	}
}

func sum[R any, A typehash.Algorithm[R, A]](
	newAlgorithm func() A,
	value sample,
	format func(R) (string, error),
) (string, error) {
	return format(typehash.Sum[R](newAlgorithm, sampleEncoder, value))
}

func stringFormat[R fmt.Stringer](r R) (string, error) {
	return r.String(), nil
}

func blake2bFormat[R interface {
	fmt.Stringer
	Bytes() []byte
}](prefix string) func(R) (string, error) {
	return func(r R) (string, error) {
		if prefix == "" {
			return r.String(), nil
		}
		return digest.EncodeBech32(prefix, r.Bytes())
	}
}
