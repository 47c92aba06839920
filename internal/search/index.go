package search

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/analysis/token/lowercase"
	"github.com/blevesearch/bleve/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/mapping"
	"github.com/blevesearch/bleve/search/query"
)

const (
	fieldTitle = "title"
	fieldBody  = "body"
)

// PrefixAnalyzer is the default analyzer: unicode word segmentation and lower-casing, with
// no stop word removal and no stemming, so every word of a page can be found by any of its
// prefixes.
const PrefixAnalyzer = "guidebook_prefix"

// Options configures an index.
type Options struct {
	// Analyzer is the bleve analyzer used for indexing and for analyzing queries.
	// Defaults to PrefixAnalyzer.
	Analyzer string `json:"analyzer,omitempty"`

	// MaxResults caps the number of ids returned by Search. Zero returns every match.
	MaxResults int `json:"max_results,omitempty"`

	// IncludeTitles makes page titles searchable alongside page bodies.
	IncludeTitles bool `json:"include_titles,omitempty"`
}

func (o Options) withDefaults() Options {
	if o.Analyzer == "" {
		o.Analyzer = PrefixAnalyzer
	}
	if o.MaxResults < 0 {
		o.MaxResults = 0
	}
	return o
}

// Index is an in-memory full-text index over documents supporting prefix search.
type Index struct {
	index     bleve.Index
	options   Options
	documents map[int]Document
}

// NewIndex creates an empty index.
func NewIndex(opts Options) (*Index, error) {
	opts = opts.withDefaults()

	indexMapping, err := newMapping(opts)
	if err != nil {
		return nil, err
	}

	idx, err := bleve.NewMemOnly(indexMapping)
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}

	return &Index{
		index:     idx,
		options:   opts,
		documents: make(map[int]Document),
	}, nil
}

// BuildIndex creates an index holding documents.
func BuildIndex(documents []Document, opts Options) (*Index, error) {
	idx, err := NewIndex(opts)
	if err != nil {
		return nil, err
	}

	for _, document := range documents {
		if err := idx.Add(document); err != nil {
			_ = idx.Close()
			return nil, err
		}
	}

	return idx, nil
}

func newMapping(opts Options) (mapping.IndexMapping, error) {
	indexMapping := bleve.NewIndexMapping()

	err := indexMapping.AddCustomAnalyzer(PrefixAnalyzer, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     unicode.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register analyzer: %w", err)
	}

	if indexMapping.AnalyzerNamed(opts.Analyzer) == nil {
		return nil, fmt.Errorf("unknown search analyzer %q", opts.Analyzer)
	}

	textField := func() *mapping.FieldMapping {
		field := bleve.NewTextFieldMapping()
		field.Analyzer = opts.Analyzer
		field.Store = false
		field.IncludeInAll = false
		return field
	}

	document := bleve.NewDocumentMapping()
	document.Dynamic = false
	document.AddFieldMappingsAt(fieldBody, textField())
	if opts.IncludeTitles {
		document.AddFieldMappingsAt(fieldTitle, textField())
	}

	indexMapping.DefaultAnalyzer = opts.Analyzer
	indexMapping.DefaultMapping = document

	return indexMapping, nil
}

// searchFields returns the fields a query term is matched against.
func (i *Index) searchFields() []string {
	if i.options.IncludeTitles {
		return []string{fieldBody, fieldTitle}
	}
	return []string{fieldBody}
}

// Add inserts a document, replacing any document with the same id.
func (i *Index) Add(document Document) error {
	err := i.index.Index(strconv.Itoa(document.ID), map[string]interface{}{
		fieldTitle: document.Title,
		fieldBody:  document.Body,
	})
	if err != nil {
		return fmt.Errorf("failed to index document %d: %w", document.ID, err)
	}

	i.documents[document.ID] = document
	return nil
}

// Len returns the number of indexed documents.
func (i *Index) Len() int {
	return len(i.documents)
}

// Document returns the indexed document with the given id.
func (i *Index) Document(id int) (Document, bool) {
	document, ok := i.documents[id]
	return document, ok
}

// Search returns the ids of documents in which every query term prefixes a body token (or
// a title token when titles are included), best match first. Terms are normalized with
// the index analyzer, so matching is case-insensitive.
func (i *Index) Search(q string) ([]int, error) {
	terms := i.analyze(q)
	if len(terms) == 0 || len(i.documents) == 0 {
		return []int{}, nil
	}

	fields := i.searchFields()
	clauses := make([]query.Query, 0, len(terms))
	for _, term := range terms {
		alternatives := make([]query.Query, 0, len(fields))
		for _, field := range fields {
			prefix := bleve.NewPrefixQuery(term)
			prefix.SetField(field)
			alternatives = append(alternatives, prefix)
		}
		clauses = append(clauses, bleve.NewDisjunctionQuery(alternatives...))
	}

	size := i.options.MaxResults
	if size == 0 {
		size = len(i.documents)
	}

	request := bleve.NewSearchRequestOptions(bleve.NewConjunctionQuery(clauses...), size, 0, false)
	request.SortBy([]string{"-_score", "_id"})

	result, err := i.index.Search(request)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	ids := make([]int, 0, len(result.Hits))
	for _, hit := range result.Hits {
		id, err := strconv.Atoi(hit.ID)
		if err != nil {
			return nil, fmt.Errorf("unexpected document id %q: %w", hit.ID, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// analyze splits a query into distinct index terms.
func (i *Index) analyze(q string) []string {
	var tokens []string
	for _, token := range i.index.Mapping().AnalyzerNamed(i.options.Analyzer).Analyze([]byte(q)) {
		tokens = append(tokens, string(token.Term))
	}

	seen := make(map[string]bool, len(tokens))
	terms := tokens[:0]
	for _, token := range tokens {
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		terms = append(terms, token)
	}

	return terms
}

// Close releases the index.
func (i *Index) Close() error {
	return i.index.Close()
}

// sortedDocuments returns the indexed documents ordered by id.
func (i *Index) sortedDocuments() []Document {
	documents := make([]Document, 0, len(i.documents))
	for _, document := range i.documents {
		documents = append(documents, document)
	}
	sort.Slice(documents, func(a, b int) bool {
		return documents[a].ID < documents[b].ID
	})
	return documents
}
