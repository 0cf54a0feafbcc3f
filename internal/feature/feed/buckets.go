package feed

import (
	"math"

	"ace-marketplace/internal/domain"
)

// SqftPerAcre 英亩换算平方英尺
const SqftPerAcre = 43560

const All = "ALL"

// Bucket 半开区间 [Min, Max)
type Bucket struct {
	Key string
	Min float64
	Max float64
}

func (b Bucket) contains(v float64) bool { return v >= b.Min && v < b.Max }

var PriceBuckets = []Bucket{
	{"UNDER_100000", math.Inf(-1), 100_000},
	{"100000_500000", 100_000, 500_000},
	{"500000_1000000", 500_000, 1_000_000},
	{"1000000_5000000", 1_000_000, 5_000_000},
	{"5000000_10000000", 5_000_000, 10_000_000},
	{"OVER_10000000", 10_000_000, math.Inf(1)},
}

var SizeBuckets = []Bucket{
	{"UNDER_1000", math.Inf(-1), 1_000},
	{"1000_5000", 1_000, 5_000},
	{"5000_10000", 5_000, 10_000},
	{"10000_50000", 10_000, 50_000},
	{"50000_100000", 50_000, 100_000},
	{"OVER_100000", 100_000, math.Inf(1)},
}

func lookup(buckets []Bucket, key string) (Bucket, bool) {
	for _, b := range buckets {
		if b.Key == key {
			return b, true
		}
	}
	return Bucket{}, false
}

// ValidPriceBucket / ValidSizeBucket 供 HTTP 层校验查询参数
func ValidPriceBucket(key string) bool {
	_, ok := lookup(PriceBuckets, key)
	return ok || key == "" || key == All
}

func ValidSizeBucket(key string) bool {
	_, ok := lookup(SizeBuckets, key)
	return ok || key == "" || key == All
}

// SizeInSqft 统一换算为平方英尺；没有可用面积时 ok=false
func SizeInSqft(pd *domain.PropertyDetails) (float64, bool) {
	if pd == nil || pd.Size == nil || *pd.Size <= 0 {
		return 0, false
	}
	if pd.SizeUnit == domain.SizeAcres {
		return *pd.Size * SqftPerAcre, true
	}
	return *pd.Size, true
}

// SizeBucketOf 返回面积所在区间的 key
func SizeBucketOf(pd *domain.PropertyDetails) string {
	sqft, ok := SizeInSqft(pd)
	if !ok {
		return ""
	}
	for _, b := range SizeBuckets {
		if b.contains(sqft) {
			return b.Key
		}
	}
	return ""
}

func priceMatch(p *domain.Post, key string) bool {
	if key == "" || key == All {
		return true
	}
	b, ok := lookup(PriceBuckets, key)
	if !ok || p.PropertyDetails == nil || p.PropertyDetails.Price == nil {
		return false
	}
	return b.contains(*p.PropertyDetails.Price)
}

func sizeMatch(p *domain.Post, key string) bool {
	if key == "" || key == All {
		return true
	}
	sqft, ok := SizeInSqft(p.PropertyDetails)
	if !ok {
		return false
	}
	b, found := lookup(SizeBuckets, key)
	return found && b.contains(sqft)
}
