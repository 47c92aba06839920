package pages

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/grafana/guidebook/internal/markdown"
)

// IndexName is the basename of the document that represents a directory.
const IndexName = "index"

// ErrMissingIndex is returned when the scan root has no index document.
var ErrMissingIndex = errors.New("missing index document")

// DefaultExtensions are the page file extensions recognised when none are configured.
//
//nolint:gochecknoglobals // Read-only default.
var DefaultExtensions = []string{".mdx", ".md"}

// Option configures a scan.
type Option func(*options)

type options struct {
	extensions []string
	vars       Variables
	useEnv     bool
	logger     logrus.FieldLogger
}

// WithVariables sets the bindings used for ${NAME} templates and conditional hidden flags.
func WithVariables(vars Variables) Option {
	return func(o *options) {
		o.vars = vars
	}
}

// WithEnvironment makes variables fall back to the process environment.
func WithEnvironment() Option {
	return func(o *options) {
		o.useEnv = true
	}
}

// WithExtensions replaces the recognised page file extensions.
func WithExtensions(extensions ...string) Option {
	return func(o *options) {
		if len(extensions) > 0 {
			o.extensions = extensions
		}
	}
}

// WithLogger sets the logger used for non-fatal scan diagnostics.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// sourceKind tells how a page is laid out on disk.
type sourceKind int

const (
	// sourceFile is a plain page file without children.
	sourceFile sourceKind = iota
	// sourceLegacy is a page file with a same-named directory holding its children.
	sourceLegacy
	// sourceDirectory is a directory holding its own index document and its children.
	sourceDirectory
)

func (k sourceKind) String() string {
	switch k {
	case sourceLegacy:
		return "file+directory"
	case sourceDirectory:
		return "directory"
	default:
		return "file"
	}
}

// pageSource is a page candidate of a directory listing, normalized across layouts.
type pageSource struct {
	kind sourceKind

	// name is the page basename: the ordering key and slug component.
	name string

	// file is the page document relative to the containing directory.
	file string

	// childDir is the directory holding the page's children, relative to the containing
	// directory. Empty for pages without children.
	childDir string
}

type candidate struct {
	source      pageSource
	frontmatter *Frontmatter
	body        []byte
}

// idCounter hands out page ids in visiting order.
type idCounter struct {
	next int
}

func (c *idCounter) take() int {
	id := c.next
	c.next++
	return id
}

type scanner struct {
	fs       afero.Fs
	opts     options
	bindings bindings
	ids      *idCounter
	tree     *Tree
}

// Scan walks the content directory root and returns its visible pages in pre-order.
// Missing or unreadable page files and malformed frontmatter abort the scan.
func Scan(fsys afero.Fs, root string, opts ...Option) (*Tree, error) {
	o := options{
		extensions: DefaultExtensions,
		logger:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &scanner{
		fs:       fsys,
		opts:     o,
		bindings: bindings{vars: o.vars, useEnv: o.useEnv},
		ids:      &idCounter{},
		tree:     &Tree{},
	}

	indexFile, err := s.lookupIndex(root)
	if err != nil {
		return nil, err
	}
	if indexFile == "" {
		return nil, fmt.Errorf("%w in %s", ErrMissingIndex, root)
	}

	fm, body, err := ReadPage(fsys, filepath.Join(root, indexFile))
	if err != nil {
		return nil, err
	}

	rootPage := candidate{
		source:      pageSource{kind: sourceFile, name: IndexName, file: indexFile},
		frontmatter: fm,
		body:        body,
	}

	rootID := s.ids.take()
	s.tree.Pages = append(s.tree.Pages, s.newPage(rootID, none, rootPage, nil, indexFile))

	children, err := s.readDirectory(root, nil, rootID)
	if err != nil {
		return nil, err
	}
	s.tree.Pages[rootID].Children = children

	return s.tree, nil
}

// readDirectory appends the visible pages of dir to the arena and returns their ids.
// ancestors are the basenames leading from the scan root to dir.
func (s *scanner) readDirectory(dir string, ancestors []string, parent int) ([]int, error) {
	sources, err := s.classify(dir)
	if err != nil {
		return nil, err
	}

	candidates := make([]candidate, 0, len(sources))
	for _, source := range sources {
		fm, body, err := ReadPage(s.fs, filepath.Join(dir, source.file))
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, candidate{source: source, frontmatter: fm, body: body})
	}

	ranks := ReadRanks(s.fs, dir, s.opts.logger)
	ordered := SortByRank(candidates, ranks, func(c candidate) (string, *float64) {
		return c.source.name, c.frontmatter.Order
	})

	children := make([]int, 0, len(ordered))
	for _, c := range ordered {
		if s.bindings.hides(c.frontmatter.Hidden) {
			s.opts.logger.WithFields(logrus.Fields{
				"dir":    dir,
				"file":   c.source.file,
				"layout": c.source.kind.String(),
			}).Debug("Skipping hidden page")
			continue
		}

		components := append(slices.Clone(ancestors), c.source.name)
		source := path.Join(append(slices.Clone(ancestors), c.source.file)...)

		id := s.ids.take()
		s.tree.Pages = append(s.tree.Pages, s.newPage(id, parent, c, components, source))

		if c.source.childDir != "" {
			grandchildren, err := s.readDirectory(filepath.Join(dir, c.source.childDir), components, id)
			if err != nil {
				return nil, err
			}
			s.tree.Pages[id].Children = grandchildren
		}

		children = append(children, id)
	}

	return children, nil
}

func (s *scanner) newPage(id, parent int, c candidate, components []string, source string) Page {
	fm := c.frontmatter

	title := FormatTitle(c.source.name)
	if fm.Title != "" {
		title = s.bindings.expand(fm.Title)
	}

	return Page{
		ID:       id,
		Parent:   parent,
		File:     c.source.file,
		Source:   source,
		Slug:     JoinSlug(components),
		Title:    title,
		Subtitle: s.bindings.expand(fm.Subtitle),
		Author:   fm.Author,
		Headings: markdown.Headings(c.body, markdown.ForFile(c.source.file)...),
	}
}

// classify turns a directory listing into page sources, in listing order.
//
// A directory holding its own index document is a directory-page. A page file with a
// same-named directory without index document owns that directory's pages. When both a
// page file and a directory-page share a basename, the directory-page wins and the file is
// ignored. Directories that are neither are not part of the tree.
func (s *scanner) classify(dir string) ([]pageSource, error) {
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	files := make(map[string]string)
	dirs := make(map[string]string)

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		if entry.IsDir() {
			index, err := s.lookupIndex(filepath.Join(dir, name))
			if err != nil {
				return nil, err
			}
			dirs[name] = index
			continue
		}

		stem, ok := s.pageStem(name)
		if !ok || stem == IndexName {
			continue
		}
		if existing, dup := files[stem]; dup {
			s.opts.logger.WithFields(logrus.Fields{
				"dir":     dir,
				"file":    name,
				"kept":    existing,
				"ignored": name,
			}).Warn("Duplicate page basename")
			continue
		}
		files[stem] = name
	}

	var sources []pageSource
	for _, entry := range entries {
		name := entry.Name()

		if entry.IsDir() {
			index, ok := dirs[name]
			if !ok {
				continue
			}

			if index != "" {
				if file, clash := files[name]; clash {
					s.opts.logger.WithFields(logrus.Fields{
						"dir":     dir,
						"ignored": file,
					}).Warn("Directory page shadows page file with the same name")
				}
				sources = append(sources, pageSource{
					kind:     sourceDirectory,
					name:     name,
					file:     path.Join(name, index),
					childDir: name,
				})
			} else if _, owned := files[name]; !owned {
				s.opts.logger.WithFields(logrus.Fields{
					"dir":       dir,
					"directory": name,
				}).Debug("Skipping directory without index document")
			}
			continue
		}

		stem, ok := s.pageStem(name)
		if !ok || files[stem] != name {
			continue
		}

		index, hasDir := dirs[stem]
		switch {
		case hasDir && index != "":
			// Shadowed by the directory-page.
		case hasDir:
			sources = append(sources, pageSource{kind: sourceLegacy, name: stem, file: name, childDir: stem})
		default:
			sources = append(sources, pageSource{kind: sourceFile, name: stem, file: name})
		}
	}

	return sources, nil
}

// lookupIndex returns the index document name inside dir, or "" when there is none.
func (s *scanner) lookupIndex(dir string) (string, error) {
	for _, ext := range s.opts.extensions {
		name := IndexName + ext

		info, err := s.fs.Stat(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		if !info.IsDir() {
			return name, nil
		}
	}

	exists, err := afero.DirExists(s.fs, dir)
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if !exists {
		return "", fmt.Errorf("content directory %s: %w", dir, ErrMissingIndex)
	}

	return "", nil
}

// pageStem strips a recognised page extension from name.
func (s *scanner) pageStem(name string) (string, bool) {
	for _, ext := range s.opts.extensions {
		if stem, ok := strings.CutSuffix(name, ext); ok && stem != "" {
			return stem, true
		}
	}
	return "", false
}
