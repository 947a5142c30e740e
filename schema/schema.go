// Package schema ranks database tables by how often search results reference
// them and walks the foreign-key graph outward from the busiest tables, so a
// word-to-column lookup can be widened into the set of tables worth joining.
package schema

import (
	"math"
	"os"
	"sort"
	"strings"

	"github.com/oarkflow/json"
	"github.com/oarkflow/log"
)

type Relationship struct {
	Table  string `json:"table"`
	Column string `json:"column,omitempty"`
}

type Relationships struct {
	References   []Relationship `json:"references"`
	ReferencedBy []Relationship `json:"referenced_by"`
}

type Table struct {
	Relationships Relationships `json:"relationships"`
}

// Graph holds the table relationship schema. Edges are treated as
// undirected during traversal: a table relates to everything it references
// and everything that references it.
type Graph struct {
	tables map[string]Table
	debug  bool
}

func New(tables map[string]Table) *Graph {
	if tables == nil {
		tables = make(map[string]Table)
	}
	return &Graph{tables: tables}
}

// Load reads a schema file of the shape {"table": {"relationships": ...}}.
func Load(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tables map[string]Table
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, err
	}
	return New(tables), nil
}

func (g *Graph) Debug(enabled bool) *Graph {
	g.debug = enabled
	return g
}

func (g *Graph) Tables() []string {
	names := make([]string, 0, len(g.tables))
	for name := range g.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Related returns the neighbours of a table, references first, deduplicated
// in first-seen order. Unknown tables have no neighbours.
func (g *Graph) Related(table string) []string {
	entry, ok := g.tables[table]
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	var related []string
	for _, ref := range entry.Relationships.References {
		if ref.Table == "" {
			continue
		}
		if _, dup := seen[ref.Table]; !dup {
			seen[ref.Table] = struct{}{}
			related = append(related, ref.Table)
		}
	}
	for _, ref := range entry.Relationships.ReferencedBy {
		if ref.Table == "" {
			continue
		}
		if _, dup := seen[ref.Table]; !dup {
			seen[ref.Table] = struct{}{}
			related = append(related, ref.Table)
		}
	}
	return related
}

// Traverse runs a breadth-first walk starting from every table holding the
// maximum frequency, hopping at most maxDepth relationships out. The result
// lists every table reached, in visit order. Seed tables are sorted so the
// walk is deterministic regardless of map iteration order.
func (g *Graph) Traverse(frequencies map[string]int, maxDepth int) []string {
	if len(frequencies) == 0 {
		return nil
	}
	if maxDepth <= 0 {
		// Unbounded: walk the whole connected component.
		maxDepth = math.MaxInt
	}

	maxFrequency := 0
	for _, freq := range frequencies {
		if freq > maxFrequency {
			maxFrequency = freq
		}
	}
	var seeds []string
	for table, freq := range frequencies {
		if freq == maxFrequency {
			seeds = append(seeds, table)
		}
	}
	sort.Strings(seeds)
	if g.debug {
		log.Debug().Int("max_frequency", maxFrequency).Str("seeds", strings.Join(seeds, ",")).Msg("Starting traversal")
	}

	type hop struct {
		table string
		depth int
	}
	queue := make([]hop, 0, len(seeds))
	for _, seed := range seeds {
		queue = append(queue, hop{table: seed})
	}
	visited := make(map[string]struct{})
	queued := make(map[string]struct{}, len(seeds))
	for _, seed := range seeds {
		queued[seed] = struct{}{}
	}
	var relevant []string

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if _, done := visited[current.table]; done {
			continue
		}
		visited[current.table] = struct{}{}
		relevant = append(relevant, current.table)

		if current.depth >= maxDepth {
			continue
		}
		for _, related := range g.Related(current.table) {
			if _, done := visited[related]; done {
				continue
			}
			if _, pending := queued[related]; pending {
				continue
			}
			queued[related] = struct{}{}
			queue = append(queue, hop{table: related, depth: current.depth + 1})
			if g.debug {
				log.Debug().Str("from", current.table).Str("table", related).Int("depth", current.depth+1).Msg("Enqueued related table")
			}
		}
	}
	return relevant
}
