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

// Package heat2 implements Heat2, the binary wire encoding of TDF records.
//
// Every record member is written as a four-byte header (a 24-bit tag and a
// one-byte [tdf.WireType]) followed by its payload, and records end with a
// single zero byte. Integers use a sign-and-continuation varint, strings are
// length-prefixed and NUL-terminated, and lists and maps carry their element
// wire types and counts up front. The stream is self-describing, so decoders
// skip members they do not know.
//
// # Compatibility
//
// By default the encoder runs in Heat1 compatibility mode, which labels list
// elements that are unions, lists or maps as structs, the way older decoders
// expect. Payloads are unchanged. Decoders accept either label. Note that a
// decoder that does not know a member cannot skip such a list correctly,
// because the struct label is a lie about the payload; see
// [WithHeat1Compat].
//
// # Errors
//
// Decoding is lenient. Problems with the data are recorded and make
// [Decoder.Decode] report the stream as invalid, but do not stop it where it
// can continue: a wire type that does not match the schema, an integer too
// wide for its member, invalid UTF-8. Problems that make the rest of the
// stream unreadable, such as truncation, stop decoding, again without an
// error. Errors are returned only for problems with the program rather than
// the data, such as a member type with no wire representation, or for I/O
// failures.
package heat2
