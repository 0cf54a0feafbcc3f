package feed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SearchConfig 智能搜索的词表，可整体替换（yaml 文件中出现的段覆盖默认值）。
// 城市表是有限的常用列表，不追求完整。
type SearchConfig struct {
	// 关键词 → 标准 propertyType
	PropertyTypes map[string]string `yaml:"propertyTypes"`
	// 州缩写 → 州全称
	States map[string]string `yaml:"states"`
	Cities []string          `yaml:"cities"`
	// 归一化前的缩写展开，如 st → saint
	Abbreviations map[string]string `yaml:"abbreviations"`
	// 同时是常见英文单词的州缩写，只有大写输入时才算地名
	AmbiguousStateCodes []string `yaml:"ambiguousStateCodes"`
}

func LoadSearchConfig(path string) (*SearchConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read search config: %w", err)
	}
	var c SearchConfig
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse search config %s: %w", path, err)
	}
	def := DefaultSearchConfig()
	if c.PropertyTypes == nil {
		c.PropertyTypes = def.PropertyTypes
	}
	if c.States == nil {
		c.States = def.States
	}
	if c.Cities == nil {
		c.Cities = def.Cities
	}
	if c.Abbreviations == nil {
		c.Abbreviations = def.Abbreviations
	}
	if c.AmbiguousStateCodes == nil {
		c.AmbiguousStateCodes = def.AmbiguousStateCodes
	}
	return &c, nil
}

func DefaultSearchConfig() *SearchConfig {
	return &SearchConfig{
		PropertyTypes: map[string]string{
			"office":       "Office",
			"offices":      "Office",
			"retail":       "Retail",
			"industrial":   "Industrial",
			"land":         "Land",
			"multifamily":  "Multifamily",
			"multi-family": "Multifamily",
		},
		States: map[string]string{
			"al": "alabama", "ak": "alaska", "az": "arizona", "ar": "arkansas",
			"ca": "california", "co": "colorado", "ct": "connecticut", "de": "delaware",
			"fl": "florida", "ga": "georgia", "hi": "hawaii", "id": "idaho",
			"il": "illinois", "in": "indiana", "ia": "iowa", "ks": "kansas",
			"ky": "kentucky", "la": "louisiana", "me": "maine", "md": "maryland",
			"ma": "massachusetts", "mi": "michigan", "mn": "minnesota", "ms": "mississippi",
			"mo": "missouri", "mt": "montana", "ne": "nebraska", "nv": "nevada",
			"nh": "new hampshire", "nj": "new jersey", "nm": "new mexico", "ny": "new york",
			"nc": "north carolina", "nd": "north dakota", "oh": "ohio", "ok": "oklahoma",
			"or": "oregon", "pa": "pennsylvania", "ri": "rhode island", "sc": "south carolina",
			"sd": "south dakota", "tn": "tennessee", "tx": "texas", "ut": "utah",
			"vt": "vermont", "va": "virginia", "wa": "washington", "wv": "west virginia",
			"wi": "wisconsin", "wy": "wyoming", "dc": "district of columbia",
		},
		Cities: []string{
			"new york", "los angeles", "chicago", "houston", "phoenix", "philadelphia",
			"san antonio", "san diego", "dallas", "san jose", "austin", "jacksonville",
			"fort worth", "columbus", "charlotte", "san francisco", "indianapolis",
			"seattle", "denver", "washington", "boston", "el paso", "nashville",
			"detroit", "oklahoma city", "portland", "las vegas", "memphis", "louisville",
			"baltimore", "milwaukee", "albuquerque", "tucson", "fresno", "sacramento",
			"mesa", "kansas city", "atlanta", "omaha", "colorado springs", "raleigh",
			"miami", "long beach", "virginia beach", "oakland", "minneapolis", "tulsa",
			"tampa", "arlington", "new orleans", "wichita", "cleveland", "bakersfield",
			"aurora", "anaheim", "honolulu", "santa ana", "riverside", "corpus christi",
			"lexington", "stockton", "henderson", "saint paul", "saint louis",
			"saint petersburg", "cincinnati", "pittsburgh", "greensboro", "anchorage",
			"plano", "lincoln", "orlando", "irvine", "newark", "durham", "chula vista",
			"toledo", "fort wayne", "fort lauderdale", "fort myers", "jersey city",
			"chandler", "madison", "laredo", "buffalo", "lubbock", "scottsdale", "reno",
			"glendale", "gilbert", "boise", "richmond", "spokane", "des moines",
			"birmingham", "rochester", "salt lake city", "mount pleasant", "charleston",
			"savannah", "knoxville", "chattanooga", "provo", "frisco", "mckinney",
		},
		Abbreviations: map[string]string{
			"st": "saint",
			"mt": "mount",
			"ft": "fort",
		},
		AmbiguousStateCodes: []string{
			"al", "co", "de", "hi", "id", "in", "la", "ma", "me", "oh", "ok", "or", "pa",
		},
	}
}
