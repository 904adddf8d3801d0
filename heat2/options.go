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

package heat2

import (
	"io"
	"log/slog"
	"math"

	"github.com/blazekit/tdf"
)

// Option is a configuration setting for an [Encoder], [Decoder] or
// [Serializer].
type Option struct{ apply func(*options) }

type options struct {
	heat1            bool
	registry         tdf.Registry
	logger           *slog.Logger
	maxDepth         int
	allowInvalidUTF8 bool
}

// discard drops every record before it is formatted.
var discard = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
	Level: slog.LevelError + 1,
}))

// DefaultMaxDepth is the default limit on record nesting.
const DefaultMaxDepth = 64

func newOptions(opts []Option) options {
	o := options{
		heat1:    true,
		registry: tdf.DefaultRegistry,
		logger:   discard,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt.apply(&o)
	}
	return o
}

// WithHeat1Compat sets whether list elements that are unions, lists or maps
// are labeled as structs on the wire, for older decoders. The default is
// true.
//
// Only the label changes; the payload is the same either way. This affects
// encoding only: decoders always accept both labels.
func WithHeat1Compat(enabled bool) Option {
	return Option{func(o *options) { o.heat1 = enabled }}
}

// WithRegistry sets the registry that provides schemas for records. The
// default is [tdf.DefaultRegistry].
func WithRegistry(registry tdf.Registry) Option {
	return Option{func(o *options) {
		if registry == nil {
			registry = tdf.DefaultRegistry
		}
		o.registry = registry
	}}
}

// WithLogger sets a logger for unknown fields (at debug level) and degraded
// streams (at warn level). The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return Option{func(o *options) {
		if logger == nil {
			logger = discard
		}
		o.logger = logger
	}}
}

// WithMaxDepth sets the maximum nesting of records, unions, lists and maps.
//
// Setting a large value enables potential DoS vectors when decoding. The
// default is [DefaultMaxDepth].
func WithMaxDepth(depth int) Option {
	return Option{func(o *options) { o.maxDepth = max(1, min(depth, math.MaxInt32)) }}
}

// WithAllowInvalidUTF8 sets whether decoding accepts strings that are not
// valid UTF-8 without degrading the stream. The default is false.
func WithAllowInvalidUTF8(allow bool) Option {
	return Option{func(o *options) { o.allowInvalidUTF8 = allow }}
}
