package pipeline

import (
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
)

// ErrTagFileParse indicates the symbol database is not readable XML.
var ErrTagFileParse = errors.New("failed to parse tag file")

// scopeSeparator joins enclosing scope names into a qualified symbol name.
const scopeSeparator = "::"

// TagKind is the category of a documented entity, as named by the
// kind attribute of the tag file.
type TagKind string

// Recognized tag kinds.
const (
	KindClass       TagKind = "class"
	KindDefine      TagKind = "define"
	KindFunction    TagKind = "function"
	KindEnumeration TagKind = "enumeration"
	KindEnumValue   TagKind = "enumvalue"
	KindNamespace   TagKind = "namespace"
	KindStruct      TagKind = "struct"
	KindTypedef     TagKind = "typedef"
	KindVariable    TagKind = "variable"

	// kindGroup is a container only; it never yields a Tag.
	kindGroup TagKind = "group"
)

var recordKinds = map[TagKind]bool{
	KindClass:       true,
	KindDefine:      true,
	KindFunction:    true,
	KindEnumeration: true,
	KindEnumValue:   true,
	KindNamespace:   true,
	KindStruct:      true,
	KindTypedef:     true,
	KindVariable:    true,
}

// Tag is one documented symbol.
type Tag struct {
	Name     string  // fully qualified, scopes joined by "::"
	Link     string  // target, with #anchor when the symbol has one
	Ref      string  // filename plus #anchor, identifies the documented entity
	Kind     TagKind // category
	ViaGroup bool    // reached through a group rather than its own scope
}

// TagBase describes where the documentation a tag file indexes lives.
type TagBase struct {
	// Location is a local directory or a remote base URL.
	Location string

	// RelativeTo, when set, makes local links relative to this directory.
	// Ignored for remote bases.
	RelativeTo string

	// Remote selects URL joining instead of filesystem joining.
	Remote bool
}

// LoadTagFile parses a tag file and returns its symbols.
// Children precede their parent in the result, and group-derived
// duplicates of a symbol found in its own scope are removed.
func LoadTagFile(r io.Reader, base TagBase) ([]Tag, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTagFileParse, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrTagFileParse)
	}
	return CollectTags(root, base), nil
}

// CollectTags walks the children of root and returns the deduplicated symbols.
func CollectTags(root *etree.Element, base TagBase) []Tag {
	var tags []Tag
	for _, child := range root.ChildElements() {
		tags = append(tags, collectElement(child, base, "", false)...)
	}
	return dropGroupDuplicates(tags)
}

// collectElement returns the tags of el and its descendants, descendants first.
// Elements with unknown kinds, or without a name, contribute nothing.
func collectElement(el *etree.Element, base TagBase, prefix string, viaGroup bool) []Tag {
	kind := TagKind(el.SelectAttrValue("kind", ""))

	if kind == kindGroup {
		var tags []Tag
		for _, child := range el.ChildElements() {
			tags = append(tags, collectElement(child, base, prefix, true)...)
		}
		return tags
	}

	if !recordKinds[kind] {
		return nil
	}

	nameEl := el.SelectElement("name")
	if nameEl == nil {
		return nil
	}
	name := prefix + strings.TrimSpace(nameEl.Text())

	var tags []Tag
	for _, child := range el.ChildElements() {
		tags = append(tags, collectElement(child, base, name+scopeSeparator, viaGroup)...)
	}

	file := childText(el, "filename")
	if file == "" {
		file = childText(el, "anchorfile")
	}
	if file == "" {
		return tags
	}
	anchor := childText(el, "anchor")

	ref := file
	link := base.join(file)
	if anchor != "" {
		ref += "#" + anchor
		link += "#" + anchor
	}

	return append(tags, Tag{
		Name:     name,
		Link:     link,
		Ref:      ref,
		Kind:     kind,
		ViaGroup: viaGroup,
	})
}

// childText returns the trimmed text of the first child element named tag.
func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

// join forms the link target for a documentation file.
func (b TagBase) join(file string) string {
	if b.Remote {
		if b.Location == "" {
			return file
		}
		return strings.TrimRight(b.Location, "/") + "/" + strings.TrimLeft(file, "/")
	}

	joined := filepath.Join(b.Location, filepath.FromSlash(file))
	if b.RelativeTo != "" {
		if rel, err := relativePath(b.RelativeTo, joined); err == nil {
			joined = rel
		}
	}
	return path.Clean(filepath.ToSlash(joined))
}

// relativePath is filepath.Rel with both sides made absolute first, so that
// a relative base and an absolute target can still be related.
func relativePath(from, to string) (string, error) {
	absFrom, err := filepath.Abs(from)
	if err != nil {
		return "", err
	}
	absTo, err := filepath.Abs(to)
	if err != nil {
		return "", err
	}
	return filepath.Rel(absFrom, absTo)
}

// dropGroupDuplicates removes group-derived tags whose Ref also belongs to
// a tag found in its own scope. Order is preserved.
func dropGroupDuplicates(tags []Tag) []Tag {
	owned := make(map[string]bool, len(tags))
	for _, t := range tags {
		if !t.ViaGroup {
			owned[t.Ref] = true
		}
	}

	kept := tags[:0]
	for _, t := range tags {
		if t.ViaGroup && owned[t.Ref] {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}
