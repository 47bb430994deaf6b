package pipeline

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleTagFile = `<?xml version='1.0' encoding='UTF-8' standalone='yes' ?>
<tagfile doxygen_version="1.9.8">
  <compound kind="namespace">
    <name>gfx</name>
    <filename>namespacegfx.html</filename>
    <class kind="class">gfx::Device</class>
    <member kind="function">
      <type>void</type>
      <name>init</name>
      <anchorfile>namespacegfx.html</anchorfile>
      <anchor>a1f2</anchor>
      <arglist>()</arglist>
    </member>
    <member kind="enumeration">
      <type></type>
      <name>Format</name>
      <anchorfile>namespacegfx.html</anchorfile>
      <anchor>b3c4</anchor>
      <enumvalue file="namespacegfx.html" anchor="b3c4a0">RGBA8</enumvalue>
    </member>
  </compound>
  <compound kind="class">
    <name>gfx::Device</name>
    <filename>classgfx_1_1Device.html</filename>
    <member kind="function">
      <type>bool</type>
      <name>submit</name>
      <anchorfile>classgfx_1_1Device.html</anchorfile>
      <anchor>c5d6</anchor>
      <arglist>(Queue q)</arglist>
    </member>
    <member kind="friend">
      <type>friend class</type>
      <name>Queue</name>
      <anchorfile>classgfx_1_1Device.html</anchorfile>
      <anchor>e7f8</anchor>
    </member>
  </compound>
  <compound kind="file">
    <name>device.h</name>
    <filename>device_8h.html</filename>
  </compound>
  <compound kind="group">
    <name>core</name>
    <title>Core API</title>
    <filename>group__core.html</filename>
    <member kind="function">
      <type>void</type>
      <name>init</name>
      <anchorfile>namespacegfx.html</anchorfile>
      <anchor>a1f2</anchor>
    </member>
    <member kind="define">
      <type></type>
      <name>GFX_VERSION</name>
      <anchorfile>group__core.html</anchorfile>
      <anchor>g9h0</anchor>
    </member>
  </compound>
</tagfile>
`

func loadSample(t *testing.T, base TagBase) []Tag {
	t.Helper()
	tags, err := LoadTagFile(strings.NewReader(sampleTagFile), base)
	if err != nil {
		t.Fatalf("LoadTagFile() error = %v", err)
	}
	return tags
}

// ---------------------------------------------------------------------------
// TestLoadTagFile - Traversal, naming and ordering
// ---------------------------------------------------------------------------

func TestLoadTagFile(t *testing.T) {
	t.Parallel()

	got := loadSample(t, TagBase{Location: "https://docs.example.com/api/", Remote: true})

	const base = "https://docs.example.com/api/"
	want := []Tag{
		{Name: "gfx::init", Link: base + "namespacegfx.html#a1f2", Ref: "namespacegfx.html#a1f2", Kind: KindFunction},
		{Name: "gfx::Format", Link: base + "namespacegfx.html#b3c4", Ref: "namespacegfx.html#b3c4", Kind: KindEnumeration},
		{Name: "gfx", Link: base + "namespacegfx.html", Ref: "namespacegfx.html", Kind: KindNamespace},
		{Name: "gfx::Device::submit", Link: base + "classgfx_1_1Device.html#c5d6", Ref: "classgfx_1_1Device.html#c5d6", Kind: KindFunction},
		{Name: "gfx::Device", Link: base + "classgfx_1_1Device.html", Ref: "classgfx_1_1Device.html", Kind: KindClass},
		{Name: "GFX_VERSION", Link: base + "group__core.html#g9h0", Ref: "group__core.html#g9h0", Kind: KindDefine, ViaGroup: true},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadTagFile() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadTagFile_GroupDuplicateSuppressed(t *testing.T) {
	t.Parallel()

	src := `<tagfile>
  <compound kind="group">
    <name>io</name>
    <member kind="function"><name>open</name><anchorfile>ns.html</anchorfile><anchor>x1</anchor></member>
  </compound>
  <compound kind="namespace">
    <name>io</name>
    <filename>ns.html</filename>
    <member kind="function"><name>open</name><anchorfile>ns.html</anchorfile><anchor>x1</anchor></member>
  </compound>
</tagfile>`

	got, err := LoadTagFile(strings.NewReader(src), TagBase{})
	if err != nil {
		t.Fatalf("LoadTagFile() error = %v", err)
	}

	want := []Tag{
		{Name: "io::open", Link: "ns.html#x1", Ref: "ns.html#x1", Kind: KindFunction},
		{Name: "io", Link: "ns.html", Ref: "ns.html", Kind: KindNamespace},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadTagFile_NestedGroupsCarryPrefix(t *testing.T) {
	t.Parallel()

	src := `<tagfile>
  <compound kind="class">
    <name>Outer</name>
    <filename>outer.html</filename>
    <group kind="group">
      <member kind="variable"><name>count</name><anchorfile>outer.html</anchorfile><anchor>v</anchor></member>
    </group>
  </compound>
</tagfile>`

	got, err := LoadTagFile(strings.NewReader(src), TagBase{})
	if err != nil {
		t.Fatalf("LoadTagFile() error = %v", err)
	}

	want := []Tag{
		{Name: "Outer::count", Link: "outer.html#v", Ref: "outer.html#v", Kind: KindVariable, ViaGroup: true},
		{Name: "Outer", Link: "outer.html", Ref: "outer.html", Kind: KindClass},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestLoadTagFile_SchemaGaps - Incomplete elements degrade gracefully
// ---------------------------------------------------------------------------

func TestLoadTagFile_SchemaGaps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []string // names, in order
	}{
		{
			name: "unknown kind skipped with its subtree",
			src: `<tagfile><compound kind="page"><name>intro</name><filename>intro.html</filename>
				<member kind="function"><name>f</name><anchorfile>intro.html</anchorfile></member></compound></tagfile>`,
			want: nil,
		},
		{
			name: "missing name skips subtree",
			src: `<tagfile><compound kind="class"><filename>c.html</filename>
				<member kind="function"><name>f</name><anchorfile>c.html</anchorfile></member></compound></tagfile>`,
			want: nil,
		},
		{
			name: "missing file keeps children",
			src: `<tagfile><compound kind="namespace"><name>ns</name>
				<member kind="typedef"><name>id_t</name><anchorfile>ns.html</anchorfile></member></compound></tagfile>`,
			want: []string{"ns::id_t"},
		},
		{
			name: "element without kind ignored",
			src:  `<tagfile><compound><name>x</name><filename>x.html</filename></compound></tagfile>`,
			want: nil,
		},
		{
			name: "empty root",
			src:  `<tagfile/>`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tags, err := LoadTagFile(strings.NewReader(tt.src), TagBase{})
			if err != nil {
				t.Fatalf("LoadTagFile() error = %v", err)
			}
			var names []string
			for _, tag := range tags {
				names = append(names, tag.Name)
			}
			if diff := cmp.Diff(tt.want, names); diff != "" {
				t.Errorf("names mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadTagFile_FilenamePreferredOverAnchorfile(t *testing.T) {
	t.Parallel()

	src := `<tagfile><compound kind="struct"><name>S</name><filename>s.html</filename><anchorfile>other.html</anchorfile></compound></tagfile>`
	tags, err := LoadTagFile(strings.NewReader(src), TagBase{})
	if err != nil {
		t.Fatalf("LoadTagFile() error = %v", err)
	}
	if len(tags) != 1 || tags[0].Link != "s.html" {
		t.Errorf("tags = %+v, want one tag linking s.html", tags)
	}
}

func TestLoadTagFile_ParseError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{name: "empty input", src: ""},
		{name: "not XML", src: "class Foo;"},
		{name: "unclosed element", src: "<tagfile><compound kind=\"class\">"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadTagFile(strings.NewReader(tt.src), TagBase{})
			if !errors.Is(err, ErrTagFileParse) {
				t.Errorf("error = %v, want ErrTagFileParse", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestTagBase_Join - Link formation
// ---------------------------------------------------------------------------

func TestTagBase_Join(t *testing.T) {
	t.Parallel()

	abs := func(p string) string {
		a, err := filepath.Abs(p)
		if err != nil {
			t.Fatalf("Abs: %v", err)
		}
		return a
	}

	tests := []struct {
		name string
		base TagBase
		file string
		want string
	}{
		{
			name: "remote with trailing slash",
			base: TagBase{Location: "https://example.com/api/", Remote: true},
			file: "a.html",
			want: "https://example.com/api/a.html",
		},
		{
			name: "remote without trailing slash",
			base: TagBase{Location: "https://example.com/api", Remote: true},
			file: "/a.html",
			want: "https://example.com/api/a.html",
		},
		{
			name: "remote ignores relativeTo",
			base: TagBase{Location: "https://example.com/api", RelativeTo: "build", Remote: true},
			file: "a.html",
			want: "https://example.com/api/a.html",
		},
		{
			name: "local path joined",
			base: TagBase{Location: "../api/html"},
			file: "a.html",
			want: "../api/html/a.html",
		},
		{
			name: "local path cleaned",
			base: TagBase{Location: "docs/./api/"},
			file: "sub/../a.html",
			want: "docs/api/a.html",
		},
		{
			name: "local relative to output directory",
			base: TagBase{Location: abs("site/api"), RelativeTo: abs("site/manual")},
			file: "a.html",
			want: "../api/a.html",
		},
		{
			name: "relative base made relative to absolute directory",
			base: TagBase{Location: "site/api", RelativeTo: abs("site")},
			file: "a.html",
			want: "api/a.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.base.join(tt.file)
			if got != tt.want {
				t.Errorf("join(%q) = %q, want %q", tt.file, got, tt.want)
			}
		})
	}
}
