// SPDX-License-Identifier: MPL-2.0

// Package sourcegraph discovers a project's C++ translation units under
// src/ and derives their compiler-reported header prerequisites (via -MM),
// the object targets they produce, and the unit-test binaries implied by
// translation units containing the CABIN_TEST sentinel.
package sourcegraph
