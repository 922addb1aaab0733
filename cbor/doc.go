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

// Package cbor provides encoding rules that hash values through their
// deterministic CBOR encoding.
//
// Use these rules for types that have no static rule of their own, such as
// nested maps and records decoded from the wire, or for types that must hash
// to exactly the bytes they were received as.
//
// # Key Types
//
//   - Canonical: hashes the core deterministic encoding (RFC 8949 section 4.2.1)
//   - DecodeStoreCbor: embed to preserve the original CBOR bytes of a decoded value
//   - Original: hashes those preserved bytes verbatim
//
// # Equality
//
// Canonical follows Go equality for the values it hashes. CBOR keeps +0.0 and
// -0.0 apart, so zero floats are rewritten to +0.0 before encoding, matching
// the typehash.Float rule. Map key order is fixed by the deterministic
// encoding. Types with interface fields are rejected, since what they hold is
// only known once a value is hashed and may not be encodable at all.
package cbor
