// SPDX-License-Identifier: MPL-2.0

package depinstall

import (
	"reflect"
	"testing"
)

func TestClassifyPkgConfigOutput(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		output string
		isLibs bool
		want   ResolvedDep
	}{
		{
			name:   "cflags",
			output: "-I/usr/include/gtk-4.0 -DGTK_VERSION=4 -pthread",
			want: ResolvedDep{
				IncludeDirs:   []string{"/usr/include/gtk-4.0"},
				Macros:        []string{"GTK_VERSION=4"},
				OtherCxxflags: []string{"-pthread"},
			},
		},
		{
			name:   "libs",
			output: "-L/usr/lib -lgtk-4 -lglib-2.0 -framework Metal",
			isLibs: true,
			want: ResolvedDep{
				LibDirs:      []string{"/usr/lib"},
				Libs:         []string{"gtk-4", "glib-2.0"},
				OtherLdflags: []string{"-framework", "Metal"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got ResolvedDep
			classify(&got, tt.output, tt.isLibs)
			got.Name = ""
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("classify(%q) = %+v, want %+v", tt.output, got, tt.want)
			}
		})
	}
}

func TestAggregateDedupsLibsFirstSeenOrder(t *testing.T) {
	t.Parallel()
	deps := []ResolvedDep{
		{Name: "a", Libs: []string{"foo", "bar"}},
		{Name: "b", Libs: []string{"bar", "baz"}},
	}
	got := Aggregate(deps)
	want := []string{"foo", "bar", "baz"}
	if !reflect.DeepEqual(got.Libs, want) {
		t.Errorf("Aggregate(...).Libs = %v, want %v", got.Libs, want)
	}
}
