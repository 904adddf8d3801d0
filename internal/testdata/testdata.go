// Copyright 2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package testdata is a corpus of Heat2 captures and what decoding them
// should produce.
//
// Each case is a yaml file naming a sample record type from
// [tdftest.Types], one or more specimens of the same stream, and the
// expected result. Specimens are written as hex, or as Protoscope using only
// its backtick-hex and quoted-string forms (its numeric forms produce
// Protobuf varints, which Heat2 does not use).
package testdata

import (
	"bytes"
	"embed"
	"encoding/hex"
	"io/fs"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/protocolbuffers/protoscope"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/blazekit/tdf"
	"github.com/blazekit/tdf/internal/debug"
	"github.com/blazekit/tdf/internal/tdftest"
)

//go:embed *.yaml
var testdata embed.FS

// Harness is a generalization of [testing.TB] that also includes the
// [testing.T.Run] method. It must be generic because the signature of this
// function varies across [testing.T] and [testing.B].
type Harness[T any] interface {
	testing.TB
	Run(string, func(T)) bool
}

// TestCase is a case from the corpus.
type TestCase struct {
	Name string `yaml:"-"`

	TypeName string `yaml:"type"`
	// Decoding options.
	Heat1            *bool `yaml:"heat1"`
	MaxDepth         int   `yaml:"max_depth"`
	AllowInvalidUTF8 bool  `yaml:"allow_invalid_utf8"`

	// If set, run this test as a benchmark.
	Benchmark bool `yaml:"benchmark"`

	// Two ways to write the stream: hex and protoscope.
	Hex        []string `yaml:"hex"`
	Protoscope []string `yaml:"protoscope"`

	Expect struct {
		Valid bool `yaml:"valid"`
		// The decoded record, as printed by [tdf.Sprint].
		Record string `yaml:"record"`
		// Tags of skipped unknown fields, in stream order.
		Skipped []string `yaml:"skipped"`
		// Names of the problems found; see the heat2 conformance test.
		Problems []string `yaml:"problems"`
		// Whether re-encoding the decoded record reproduces the specimen.
		Canonical bool `yaml:"canonical"`
	} `yaml:"expect"`

	Specimens [][]byte `yaml:"-"`
}

// New returns an empty record of the case's type.
func (test *TestCase) New() tdf.Record {
	return tdftest.Types[test.TypeName]()
}

// RunAll runs all of the test cases against the given harness.
func RunAll[T Harness[T]](t T, f func(T, *TestCase)) {
	t.Helper()

	var failed atomic.Bool
	err := fs.WalkDir(testdata, ".", func(path string, d fs.DirEntry, err error) error {
		require.NoError(t, err, "loading test %q", path)

		if d.IsDir() {
			return nil
		}

		t.Run(strings.TrimSuffix(path, ".yaml"), func(t T) {
			if t, ok := any(t).(*testing.T); ok {
				t.Parallel()
			}

			defer failed.CompareAndSwap(false, t.Failed())

			data, err := fs.ReadFile(testdata, path)
			require.NoError(t, err, "loading test %q", path)

			test := parseTestCase(t, path, data)
			if test != nil {
				f(t, test)
			}
		})

		return nil
	})
	require.NoError(t, err)
}

// Run executes f on each of the case's specimens.
func (test *TestCase) Run(t *testing.T, f func(t *testing.T, specimen []byte)) {
	t.Helper()

	run := func(t *testing.T, specimen []byte) {
		t.Helper()
		defer debug.WithTesting(t)()
		f(t, specimen)
	}

	if len(test.Specimens) == 1 {
		run(t, test.Specimens[0])
		return
	}

	for _, specimen := range test.Specimens {
		t.Run("", func(t *testing.T) {
			t.Parallel()
			run(t, specimen)
		})
	}
}

// parseTestCase parses a single test case from the given data.
//
// This will call t.FailNow() if loading fails.
func parseTestCase(t testing.TB, path string, file []byte) *TestCase {
	t.Helper()
	defer debug.WithTesting(t)()

	require.True(t, bytes.HasSuffix(file, []byte("\n")), "missing trailing newline in %q", path)

	test := new(TestCase)
	dec := yaml.NewDecoder(bytes.NewReader(file))
	dec.KnownFields(true)
	err := dec.Decode(&test)
	require.NoError(t, err, "loading test %q", path)

	_, isBench := t.(*testing.B)
	if isBench && !test.Benchmark {
		t.SkipNow()
	}

	test.Name = strings.TrimSuffix(path, ".yaml")
	_, ok := tdftest.Types[test.TypeName]
	require.True(t, ok, "unknown type %q in %q", test.TypeName, path)

	for _, raw := range test.Hex {
		r := strings.NewReplacer(" ", "", "\t", "", "\n", "", "\r", "")
		b, err := hex.DecodeString(r.Replace(raw))
		require.NoError(t, err, "loading test %q", path)

		test.Specimens = append(test.Specimens, b)
	}

	for _, raw := range test.Protoscope {
		s := protoscope.NewScanner(raw)
		b, err := s.Exec()
		require.NoError(t, err, "loading test %q", path)

		test.Specimens = append(test.Specimens, b)
	}

	require.NotEmpty(t, test.Specimens, "no specimens in %q", path)
	return test
}
