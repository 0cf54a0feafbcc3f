package post

import (
	"slices"

	"ace-marketplace/internal/domain"
)

// StatusActive 新帖默认状态（两种类型共用）
const StatusActive = "active"

// statusVocabulary 按帖子类型区分的合法状态。任意两个状态之间都可以直接切换，
// 这里只是合法值集合，不是有序状态机。
var statusVocabulary = map[domain.PostType][]string{
	domain.PostHave: {"active", "pending", "sold", "leased", "withdrawn"},
	domain.PostNeed: {"active", "paused", "closed"},
}

var PropertyTypes = []string{"Office", "Retail", "Industrial", "Land", "Multifamily"}

var Industries = []string{
	"Healthcare", "Logistics", "Food & Beverage", "Technology", "Manufacturing",
	"Hospitality", "Financial Services", "Education", "Other",
}

var SizeUnits = []domain.SizeUnit{domain.SizeSqft, domain.SizeAcres}

const MaxTags = 10

func ValidType(t domain.PostType) bool {
	_, ok := statusVocabulary[t]
	return ok
}

// Statuses 返回类型对应的状态集合（副本）
func Statuses(t domain.PostType) []string {
	return slices.Clone(statusVocabulary[t])
}

func ValidStatus(t domain.PostType, status string) bool {
	return slices.Contains(statusVocabulary[t], status)
}
