package feed

import (
	"strings"
	"unicode"

	"ace-marketplace/internal/domain"
)

// MinSearchLen 查询少于 3 个字符时不做文本过滤
const MinSearchLen = 3

// LocationTerm 一个地名及其可匹配的写法（州同时带全称和缩写）
type LocationTerm struct {
	Text  string
	Forms []string
}

// Terms 查询拆出的三类词
type Terms struct {
	Locations     []LocationTerm
	PropertyTypes []string // 标准 propertyType 值
	FreeText      []string
}

func (t Terms) Empty() bool {
	return len(t.Locations) == 0 && len(t.PropertyTypes) == 0 && len(t.FreeText) == 0
}

type index struct {
	locations     map[string]LocationTerm // 城市名、州全称（已展开缩写）
	codes         map[string]LocationTerm // 两字母州代码，不做缩写展开
	maxWords      int
	propertyTypes map[string]string
	abbrev        map[string]string
	ambiguous     map[string]bool
}

func buildIndex(c *SearchConfig) *index {
	idx := &index{
		locations:     make(map[string]LocationTerm),
		codes:         make(map[string]LocationTerm, len(c.States)),
		maxWords:      1,
		propertyTypes: make(map[string]string, len(c.PropertyTypes)),
		abbrev:        make(map[string]string, len(c.Abbreviations)),
		ambiguous:     make(map[string]bool, len(c.AmbiguousStateCodes)),
	}
	for k, v := range c.Abbreviations {
		idx.abbrev[strings.ToLower(k)] = strings.ToLower(v)
	}
	for k, v := range c.PropertyTypes {
		idx.propertyTypes[strings.ToLower(k)] = v
	}
	for _, code := range c.AmbiguousStateCodes {
		idx.ambiguous[strings.ToLower(code)] = true
	}
	add := func(key string, term LocationTerm) {
		if key == "" {
			return
		}
		idx.locations[key] = term
		if n := len(strings.Fields(key)); n > idx.maxWords {
			idx.maxWords = n
		}
	}
	for _, city := range c.Cities {
		n := idx.normalizeText(city)
		add(n, LocationTerm{Text: n, Forms: []string{n}})
	}
	// 州放在城市之后：同名时（washington）州的写法更宽。
	// 州名和代码只去标点，mt 不能被展开成 mount
	for code, name := range c.States {
		code, name = stripText(code), stripText(name)
		if code == "" || name == "" {
			continue
		}
		term := LocationTerm{Text: name, Forms: []string{name, code}}
		idx.codes[code] = term
		add(name, term)
	}
	return idx
}

// stripToken 小写并去掉句点、逗号
func stripToken(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '.' || r == ',' {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

// stripText 逐词 stripToken，不展开缩写
func stripText(s string) string {
	return strings.Join(strings.Fields(stripToken(s)), " ")
}

func (idx *index) normalizeToken(raw string) string {
	t := stripToken(raw)
	if full, ok := idx.abbrev[t]; ok {
		return full
	}
	return t
}

// normalizeText 对整段文本逐词归一化（帖子里的 city/state/address 也走这里）
func (idx *index) normalizeText(s string) string {
	words := strings.Fields(s)
	out := words[:0]
	for _, w := range words {
		if n := idx.normalizeToken(w); n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, " ")
}

func isUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

// classify 按空白切词，优先最长匹配多词地名，其次州代码、单词地名、物业类型，其余为自由文本。
// 小写的歧义州代码（in、or、me...）当作停用词丢弃
func (idx *index) classify(query string) Terms {
	var raws, strips, norms []string
	for _, f := range strings.Fields(query) {
		st := stripToken(f)
		if st == "" {
			continue
		}
		raws = append(raws, f)
		strips = append(strips, st)
		norms = append(norms, idx.normalizeToken(f))
	}

	var t Terms
	seenLoc := map[string]bool{}
	seenPT := map[string]bool{}
	seenFT := map[string]bool{}
	addLoc := func(loc LocationTerm) {
		if !seenLoc[loc.Text] {
			seenLoc[loc.Text] = true
			t.Locations = append(t.Locations, loc)
		}
	}
	for i := 0; i < len(norms); {
		matched := false
		for k := min(idx.maxWords, len(norms)-i); k >= 2; k-- {
			if loc, ok := idx.locations[strings.Join(norms[i:i+k], " ")]; ok {
				addLoc(loc)
				i += k
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		// 带句点的 "Mt." "St." 是缩写，不是州代码
		if loc, ok := idx.codes[strips[i]]; ok && !strings.Contains(raws[i], ".") {
			if !idx.ambiguous[strips[i]] || isUpper(raws[i]) {
				addLoc(loc)
			}
			i++
			continue
		}
		if loc, ok := idx.locations[norms[i]]; ok {
			addLoc(loc)
		} else if pt, ok := idx.propertyTypes[norms[i]]; ok {
			if !seenPT[pt] {
				seenPT[pt] = true
				t.PropertyTypes = append(t.PropertyTypes, pt)
			}
		} else if !seenFT[strips[i]] {
			seenFT[strips[i]] = true
			t.FreeText = append(t.FreeText, strips[i])
		}
		i++
	}
	return t
}

func containsWord(text, word string) bool {
	for _, w := range strings.FieldsFunc(text, func(r rune) bool { return !unicode.IsLetter(r) }) {
		if w == word {
			return true
		}
	}
	return false
}

func (idx *index) matchLocation(p *domain.Post, terms []LocationTerm) bool {
	if p.PropertyDetails == nil || p.PropertyDetails.Location == nil {
		return false
	}
	loc := p.PropertyDetails.Location
	state := stripText(loc.State)
	city, addr := idx.normalizeText(loc.City), idx.normalizeText(loc.Address)
	rawCity, rawAddr := stripText(loc.City), stripText(loc.Address)
	for _, term := range terms {
		for _, form := range term.Forms {
			if len(form) == 2 {
				// 两字母州代码只和未展开的文本做整词比较，避免 "in" 命中 "indianapolis"
				if state == form || containsWord(rawCity, form) || containsWord(rawAddr, form) {
					return true
				}
				continue
			}
			if strings.Contains(city, form) || strings.Contains(state, form) || strings.Contains(addr, form) {
				return true
			}
		}
	}
	return false
}

func matchPropertyType(p *domain.Post, types []string) bool {
	if p.PropertyDetails == nil || p.PropertyDetails.PropertyType == "" {
		return false
	}
	for _, pt := range types {
		if strings.EqualFold(p.PropertyDetails.PropertyType, pt) {
			return true
		}
	}
	return false
}

func ownerName(p *domain.Post) string {
	if p.User == nil {
		return ""
	}
	return p.User.Username
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func matchFreeText(p *domain.Post, terms []string) bool {
	content := strings.ToLower(p.Content)
	owner := strings.ToLower(ownerName(p))
	tags := make([]string, len(p.Tags))
	for i, tag := range p.Tags {
		tags[i] = strings.ToLower(stripSpaces(tag))
	}
	var industries []string
	if p.PropertyDetails != nil {
		for _, ind := range p.PropertyDetails.Industry {
			industries = append(industries, strings.ToLower(ind))
		}
	}
	for _, term := range terms {
		if strings.Contains(content, term) || strings.Contains(owner, term) ||
			anyContains(tags, term) || anyContains(industries, term) {
			return true
		}
	}
	return false
}

func anyContains(list []string, term string) bool {
	for _, s := range list {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}

// matchRaw 兜底：原始查询在所有可搜字段里做子串匹配
func matchRaw(p *domain.Post, query string) bool {
	q := strings.ToLower(query)
	fields := []string{p.Content, ownerName(p)}
	for _, tag := range p.Tags {
		fields = append(fields, stripSpaces(tag))
	}
	if pd := p.PropertyDetails; pd != nil {
		fields = append(fields, pd.PropertyType)
		fields = append(fields, pd.Industry...)
		if pd.Location != nil {
			fields = append(fields, pd.Location.City, pd.Location.State, pd.Location.Address)
		}
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// matchTerms 有词的类别之间 AND，类别内 OR
func (idx *index) matchTerms(p *domain.Post, t Terms, raw string) bool {
	if t.Empty() {
		return matchRaw(p, raw)
	}
	if len(t.Locations) > 0 && !idx.matchLocation(p, t.Locations) {
		return false
	}
	if len(t.PropertyTypes) > 0 && !matchPropertyType(p, t.PropertyTypes) {
		return false
	}
	if len(t.FreeText) > 0 && !matchFreeText(p, t.FreeText) {
		return false
	}
	return true
}
