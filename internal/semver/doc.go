// SPDX-License-Identifier: MPL-2.0

// Package semver implements SemVer 2.0.0 version parsing and ordering
// (Version) plus Cargo-style version requirement parsing, satisfaction and
// canonicalization (VersionReq), grounded on the "cabin" C++ package
// manager's VersionReq.cc.
package semver
