package registry

import (
	"github.com/jonwraymond/tooldiscovery/index"
	"github.com/jonwraymond/tooldiscovery/search"
	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"github.com/jonwraymond/toolfoundation/model"

	"github.com/jonwraymond/marketdev-mcp/tool"
)

// docStore is the subset of the tooldoc in-memory store the registry uses.
type docStore interface {
	RegisterDoc(id string, doc tooldoc.DocEntry) error
	DescribeTool(id string, level tooldoc.DetailLevel) (tooldoc.ToolDoc, error)
}

// discovery indexes registered declarations for search and documentation.
type discovery struct {
	index index.Index
	docs  docStore
}

func newDiscovery() *discovery {
	idx := index.NewInMemoryIndex(index.IndexOptions{
		Searcher: search.NewBM25Searcher(search.BM25Config{}),
	})
	return &discovery{
		index: idx,
		docs:  tooldoc.NewInMemoryStore(tooldoc.StoreOptions{Index: idx}),
	}
}

func (d *discovery) add(mt model.Tool, def tool.Definition) error {
	if err := d.index.RegisterTool(mt, model.NewLocalBackend(def.Name)); err != nil {
		return err
	}

	entry := tooldoc.DocEntry{
		Summary: def.Summary,
		Notes:   def.Notes,
	}
	for _, ex := range def.Examples {
		entry.Examples = append(entry.Examples, tooldoc.ToolExample{
			Title: ex.Title,
			Args:  ex.Args,
		})
	}
	return d.docs.RegisterDoc(mt.Namespace+":"+mt.Name, entry)
}

// Search ranks registered tools against query.
func (r *Registry) Search(query string, limit int) ([]index.Summary, error) {
	return r.disc.index.Search(query, limit)
}

// Describe returns full documentation for the named tool.
func (r *Registry) Describe(name string) (tooldoc.ToolDoc, error) {
	if _, ok := r.Get(name); !ok {
		return tooldoc.ToolDoc{}, ErrToolNotFound
	}
	return r.disc.docs.DescribeTool(r.ToolID(name), tooldoc.DetailFull)
}
