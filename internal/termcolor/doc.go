// SPDX-License-Identifier: MPL-2.0

// Package termcolor resolves whether command echo output should carry
// ANSI styling, per spec §6's CABIN_TERM_COLOR environment variable and
// the config file's color_mode setting.
package termcolor
