// SPDX-License-Identifier: MPL-2.0

package depinstall

// ResolvedDep is the compiler/linker-flag contribution of one installed
// dependency, per §4.D.
type ResolvedDep struct {
	Name string

	// IsystemDirs are include directories that should suppress warnings
	// from the header's own content (Git dependencies, per §4.D: "expose
	// ... as an additional -isystem include path").
	IsystemDirs []string
	// IncludeDirs are ordinary -I include directories (Path dependencies,
	// and -I entries of a System dependency's pkg-config output).
	IncludeDirs []string
	LibDirs     []string // -L
	Libs        []string // -l
	Macros      []string // -D
	// OtherCxxflags/OtherLdflags carry pkg-config output that doesn't fit
	// the -D/-I/-L/-l shapes, passed through verbatim (e.g. -pthread,
	// -framework Metal, -Wl,...).
	OtherCxxflags []string
	OtherLdflags  []string
}

// AggregatedFlags is the flattened, deduplicated flag set built from every
// ResolvedDep an install() call produced.
type AggregatedFlags struct {
	IsystemDirs   []string
	IncludeDirs   []string
	LibDirs       []string
	Libs          []string
	Macros        []string
	OtherCxxflags []string
	OtherLdflags  []string
}

// Aggregate flattens deps in order, deduplicating -l library names by
// first-seen order across all ResolvedDeps (§4.D: "Lib deduplication by
// name preserves first-seen order across all ResolvedDeps"). Other flag
// categories are concatenated as-is; duplicate include/lib dirs and macros
// are harmless to a compiler invocation and the original tool does not
// dedup them, so neither do we.
func Aggregate(deps []ResolvedDep) AggregatedFlags {
	var out AggregatedFlags
	seenLibs := make(map[string]struct{})

	for _, d := range deps {
		out.IsystemDirs = append(out.IsystemDirs, d.IsystemDirs...)
		out.IncludeDirs = append(out.IncludeDirs, d.IncludeDirs...)
		out.LibDirs = append(out.LibDirs, d.LibDirs...)
		out.Macros = append(out.Macros, d.Macros...)
		out.OtherCxxflags = append(out.OtherCxxflags, d.OtherCxxflags...)
		out.OtherLdflags = append(out.OtherLdflags, d.OtherLdflags...)

		for _, lib := range d.Libs {
			if _, dup := seenLibs[lib]; dup {
				continue
			}
			seenLibs[lib] = struct{}{}
			out.Libs = append(out.Libs, lib)
		}
	}

	return out
}
