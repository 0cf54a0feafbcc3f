package feed

import (
	"strings"

	"ace-marketplace/internal/domain"
)

// Query 列表页的四个过滤条件；空串或 ALL 表示不过滤
type Query struct {
	Type   string
	Price  string
	Size   string
	Search string
}

// Engine 纯内存过滤，不访问存储
type Engine struct {
	cfg *SearchConfig
	idx *index
}

func NewEngine(cfg *SearchConfig) *Engine {
	if cfg == nil {
		cfg = DefaultSearchConfig()
	}
	return &Engine{cfg: cfg, idx: buildIndex(cfg)}
}

func (e *Engine) Config() *SearchConfig { return e.cfg }

// Classify 把查询拆成地名、物业类型和自由文本
func (e *Engine) Classify(query string) Terms {
	return e.idx.classify(query)
}

// Apply 返回同时满足所有条件的帖子，保持输入顺序
func (e *Engine) Apply(posts []domain.Post, q Query) []domain.Post {
	search := strings.TrimSpace(q.Search)
	useSearch := len([]rune(search)) >= MinSearchLen
	var terms Terms
	if useSearch {
		terms = e.idx.classify(search)
	}

	out := make([]domain.Post, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		if !typeMatch(p, q.Type) || !priceMatch(p, q.Price) || !sizeMatch(p, q.Size) {
			continue
		}
		if useSearch && !e.idx.matchTerms(p, terms, search) {
			continue
		}
		out = append(out, *p)
	}
	return out
}

func typeMatch(p *domain.Post, t string) bool {
	return t == "" || t == All || string(p.Type) == t
}
