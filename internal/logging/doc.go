// SPDX-License-Identifier: MPL-2.0

// Package logging wraps charmbracelet/log into a single explicitly
// constructed instance, threaded through as a dependency rather than
// reached for as a package-global singleton.
package logging
