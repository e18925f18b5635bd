package processor

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/piprate/json-gold/ld"

	"github.com/pilacorp/go-ldproof/credential/common/errdefs"
	"github.com/pilacorp/go-ldproof/credential/common/jsonmap"
	"github.com/pilacorp/go-ldproof/credential/common/loader"
)

// CheckUndefinedTerms expands doc and compacts it again with its own context.
// Properties present in doc but missing after the round trip were dropped by
// expansion, meaning they would not be covered by a signature over the
// canonical form. They are reported as errdefs.ErrUndefinedTerm.
//
// Subtrees that declare their own @context are not inspected.
func (p *Processor) CheckUndefinedTerms(ctx context.Context, doc map[string]interface{}) error {
	adapter := loader.ForProcessor(ctx, p.opts.DocumentLoader)
	opts := p.ldOptions(adapter)
	proc := ld.NewJsonLdProcessor()

	input := map[string]interface{}(jsonmap.JSONMap(doc).DeepCopy())
	expanded, err := proc.Expand(input, opts)
	if err != nil {
		return p.failure(adapter, "failed to expand document", err)
	}

	compactCtx := map[string]interface{}{}
	if c, ok := doc["@context"]; ok {
		compactCtx["@context"] = c
	}
	compacted, err := proc.Compact(expanded, compactCtx, opts)
	if err != nil {
		return p.failure(adapter, "failed to compact document", err)
	}

	var node interface{} = compacted
	if graph, ok := compacted["@graph"].([]interface{}); ok {
		if _, own := doc["@graph"]; !own {
			switch len(graph) {
			case 0:
				node = map[string]interface{}{}
			case 1:
				node = graph[0]
			default:
				// top-level nodes cannot be paired with the input
				return nil
			}
		}
	}

	var dropped []string
	diffKeys("", doc, node, &dropped)
	if len(dropped) > 0 {
		sort.Strings(dropped)
		return fmt.Errorf("%w: %s", errdefs.ErrUndefinedTerm, strings.Join(dropped, ", "))
	}
	return nil
}

// diffKeys records the paths of keys of orig missing from compacted. It stops
// descending wherever the shapes of the two trees diverge.
func diffKeys(path string, orig, compacted interface{}, dropped *[]string) {
	switch o := orig.(type) {
	case map[string]interface{}:
		if _, scoped := o["@context"]; scoped && path != "" {
			return
		}
		c, ok := asMap(compacted)
		if !ok {
			return
		}
		for k, v := range o {
			if strings.HasPrefix(k, "@") || v == nil {
				continue
			}
			cv, ok := c[k]
			if !ok {
				*dropped = append(*dropped, joinPath(path, k))
				continue
			}
			diffKeys(joinPath(path, k), v, cv, dropped)
		}

	case []interface{}:
		switch c := compacted.(type) {
		case []interface{}:
			if len(c) != len(o) {
				return
			}
			for i := range o {
				diffKeys(fmt.Sprintf("%s[%d]", path, i), o[i], c[i], dropped)
			}
		default:
			if len(o) == 1 {
				diffKeys(path, o[0], c, dropped)
			}
		}
	}
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch t := v.(type) {
	case map[string]interface{}:
		return t, true
	case []interface{}:
		if len(t) == 1 {
			m, ok := t[0].(map[string]interface{})
			return m, ok
		}
	}
	return nil, false
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
