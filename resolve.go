// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaref

package schemaref

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

const (
	// defaultMaxRefDepth caps nested $ref chains.
	defaultMaxRefDepth = 64
	refKeyword         = "$ref"
	anchorKeyword      = "$anchor"
)

// Loader reads raw schema documents by absolute file path.
type Loader interface {
	Load(ctx context.Context, path string) ([]byte, error)
}

// FileLoader loads schema documents from local filesystem.
type FileLoader struct{}

// Load reads file content.
func (FileLoader) Load(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadFile(path)
}

// ResolveOptions configures reference dereferencing.
type ResolveOptions struct {
	// Loader reads referenced documents, FileLoader when nil.
	Loader Loader
	// RootDir bounds file references; directory of the root document when empty.
	RootDir string
	// MaxRefDepth caps nested $ref chains.
	MaxRefDepth int
	// AllowPathTraversal permits refs outside RootDir.
	AllowPathTraversal bool
}

// Resolver dereferences internal and cross-file $ref pointers.
type Resolver struct {
	loader Loader
	opts   ResolveOptions
}

// resolveSession holds per-document state for one Dereference call.
type resolveSession struct {
	resolver *Resolver
	cache    map[string]*resolvedDocument
	rootDir  string
	stack    []string
}

// resolvedDocument is one loaded schema file with indexed anchors.
type resolvedDocument struct {
	data    *Value
	anchors map[string]*Value
	path    string
}

// NewResolver constructs resolver with defaults applied.
func NewResolver(opts ResolveOptions) *Resolver {
	if opts.Loader == nil {
		opts.Loader = FileLoader{}
	}

	if opts.MaxRefDepth <= 0 {
		opts.MaxRefDepth = defaultMaxRefDepth
	}

	return &Resolver{loader: opts.Loader, opts: opts}
}

// RewriteRefs prefixes relative file references with dir.
// Local fragment references and absolute locations are left intact.
func RewriteRefs(node *Value, dir string) {
	if node == nil {
		return
	}

	switch node.Kind {
	case KindObject:
		for index := range node.Members {
			member := &node.Members[index]
			if member.Key == refKeyword && member.Value.Kind == KindString {
				member.Value = &Value{Kind: KindString, Text: absoluteRef(member.Value.Text, dir)}
				continue
			}

			RewriteRefs(member.Value, dir)
		}
	case KindArray:
		for _, item := range node.Items {
			RewriteRefs(item, dir)
		}
	}
}

// absoluteRef joins relative ref location with dir and keeps fragment.
func absoluteRef(ref, dir string) string {
	location, fragment, hasFragment := strings.Cut(ref, "#")
	if location == "" || strings.Contains(location, "://") || filepath.IsAbs(location) {
		return ref
	}

	out := filepath.Join(dir, filepath.FromSlash(location))
	if hasFragment {
		out += "#" + fragment
	}

	return out
}

// Dereference returns a copy of root with every $ref replaced by its target.
func (r *Resolver) Dereference(ctx context.Context, path string, root *Value) (*Value, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	rootDir := strings.TrimSpace(r.opts.RootDir)
	if rootDir == "" {
		rootDir = filepath.Dir(absPath)
	}

	rootDir, err = filepath.Abs(rootDir)
	if err != nil {
		return nil, err
	}

	session := &resolveSession{
		resolver: r,
		rootDir:  rootDir,
		cache:    make(map[string]*resolvedDocument),
		stack:    make([]string, 0, 4),
	}

	doc := newResolvedDocument(absPath, root)
	session.cache[absPath] = doc

	return session.resolveNode(ctx, doc, root)
}

// newResolvedDocument indexes anchors of loaded document.
func newResolvedDocument(path string, data *Value) *resolvedDocument {
	doc := &resolvedDocument{path: path, data: data, anchors: make(map[string]*Value)}
	indexAnchors(data, doc.anchors)
	return doc
}

// indexAnchors collects $anchor names of nested schema objects.
func indexAnchors(node *Value, anchors map[string]*Value) {
	if node == nil {
		return
	}

	switch node.Kind {
	case KindObject:
		if anchor, ok := node.Get(anchorKeyword); ok {
			if name, ok := anchor.StringValue(); ok && name != "" {
				anchors[name] = node
			}
		}

		for _, member := range node.Members {
			indexAnchors(member.Value, anchors)
		}
	case KindArray:
		for _, item := range node.Items {
			indexAnchors(item, anchors)
		}
	}
}

// resolveNode copies node replacing $ref objects with resolved targets.
func (s *resolveSession) resolveNode(ctx context.Context, doc *resolvedDocument, node *Value) (*Value, error) {
	switch node.Kind {
	case KindObject:
		if ref, ok := node.Get(refKeyword); ok && ref.Kind == KindString {
			return s.resolveRef(ctx, doc, node, ref.Text)
		}

		out := &Value{Kind: KindObject, Members: make([]Member, 0, len(node.Members))}
		for _, member := range node.Members {
			resolved, err := s.resolveNode(ctx, doc, member.Value)
			if err != nil {
				return nil, err
			}

			out.Members = append(out.Members, Member{Key: member.Key, Value: resolved})
		}

		return out, nil
	case KindArray:
		out := &Value{Kind: KindArray, Items: make([]*Value, 0, len(node.Items))}
		for _, item := range node.Items {
			resolved, err := s.resolveNode(ctx, doc, item)
			if err != nil {
				return nil, err
			}

			out.Items = append(out.Items, resolved)
		}

		return out, nil
	default:
		return node.Clone(), nil
	}
}

// resolveRef loads ref target, merges sibling keywords and resolves the result.
// Recursive refs are left unexpanded.
func (s *resolveSession) resolveRef(ctx context.Context, doc *resolvedDocument, node *Value, ref string) (*Value, error) {
	targetDoc, target, key, err := s.resolveRefTarget(ctx, doc, ref)
	if err != nil {
		return nil, err
	}

	// A ref already being expanded stays as is. It only fails later if it
	// ends up in a documented property position.
	if slices.Contains(s.stack, key) {
		return node.Clone(), nil
	}

	if len(s.stack) >= s.resolver.opts.MaxRefDepth {
		return nil, fmt.Errorf("%w at %q (max %d)", ErrRefDepthExceeded, ref, s.resolver.opts.MaxRefDepth)
	}

	merged := mergeRefTarget(target, node)

	s.stack = append(s.stack, key)
	resolved, err := s.resolveNode(ctx, targetDoc, merged)
	s.stack = s.stack[:len(s.stack)-1]
	if err != nil {
		return nil, err
	}

	return resolved, nil
}

// resolveRefTarget finds document and node addressed by ref.
func (s *resolveSession) resolveRefTarget(ctx context.Context, doc *resolvedDocument, ref string) (*resolvedDocument, *Value, string, error) {
	location, fragment, _ := strings.Cut(ref, "#")

	target := doc
	if location != "" {
		path, err := s.locate(doc, location)
		if err != nil {
			return nil, nil, "", fmt.Errorf("%w %q: %w", ErrUnresolvableReference, ref, err)
		}

		target, err = s.load(ctx, path)
		if err != nil {
			return nil, nil, "", fmt.Errorf("%w %q: %w", ErrUnresolvableReference, ref, err)
		}
	}

	node, err := target.fragment(fragment)
	if err != nil {
		return nil, nil, "", fmt.Errorf("%w %q: %w", ErrUnresolvableReference, ref, err)
	}

	return target, node, target.path + "#" + fragment, nil
}

// locate maps ref location to absolute file path.
func (s *resolveSession) locate(doc *resolvedDocument, location string) (string, error) {
	if strings.HasPrefix(location, "file://") {
		parsed, err := url.Parse(location)
		if err != nil {
			return "", err
		}

		location = parsed.Path
	} else if strings.Contains(location, "://") {
		return "", fmt.Errorf("unsupported ref location %q", location)
	}

	candidate := filepath.FromSlash(location)
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(filepath.Dir(doc.path), candidate)
	}

	candidate = filepath.Clean(candidate)
	if s.resolver.opts.AllowPathTraversal {
		return candidate, nil
	}

	rel, err := filepath.Rel(s.rootDir, candidate)
	if err != nil {
		return "", err
	}

	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w (%s)", ErrRefEscapesRoot, location)
	}

	return candidate, nil
}

// load reads and decodes referenced document once per session.
func (s *resolveSession) load(ctx context.Context, path string) (*resolvedDocument, error) {
	if cached, ok := s.cache[path]; ok {
		return cached, nil
	}

	data, err := s.resolver.loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadSchemaFile, err)
	}

	value, err := DecodeValue(data)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrDecodeSchema, path, err)
	}

	doc := newResolvedDocument(path, value)
	s.cache[path] = doc
	return doc, nil
}

// fragment resolves JSON pointer or anchor inside document.
func (doc *resolvedDocument) fragment(fragment string) (*Value, error) {
	if fragment == "" {
		return doc.data, nil
	}

	if strings.HasPrefix(fragment, "/") {
		return resolveJSONPointer(doc.data, fragment)
	}

	node, ok := doc.anchors[fragment]
	if !ok {
		return nil, fmt.Errorf("anchor %q not found", fragment)
	}

	return node, nil
}

// resolveJSONPointer walks RFC 6901 pointer from root value.
func resolveJSONPointer(root *Value, pointer string) (*Value, error) {
	current := root
	for _, rawToken := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		token, err := url.PathUnescape(rawToken)
		if err != nil {
			token = rawToken
		}

		token = decodeJSONPointerToken(token)

		switch current.Kind {
		case KindObject:
			next, ok := current.Get(token)
			if !ok {
				return nil, fmt.Errorf("pointer %q: key %q not found", pointer, token)
			}

			current = next
		case KindArray:
			index, err := strconv.Atoi(token)
			if err != nil || index < 0 || index >= len(current.Items) {
				return nil, fmt.Errorf("pointer %q: index %q out of range", pointer, token)
			}

			current = current.Items[index]
		default:
			return nil, fmt.Errorf("pointer %q: cannot descend into scalar", pointer)
		}
	}

	return current, nil
}

// decodeJSONPointerToken unescapes ~1 and ~0 sequences.
func decodeJSONPointerToken(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}

// mergeRefTarget copies target and overlays sibling keywords of the ref object.
func mergeRefTarget(target, refObject *Value) *Value {
	merged := target.Clone()
	if merged.Kind != KindObject {
		return merged
	}

	for _, member := range refObject.Members {
		if member.Key == refKeyword {
			continue
		}

		merged.Set(member.Key, member.Value.Clone())
	}

	return merged
}
