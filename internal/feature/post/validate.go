package post

import (
	"slices"
	"strings"

	"ace-marketplace/internal/core/media"
	"ace-marketplace/internal/domain"
)

// ValidationError 字段级校验失败，Msg 直接返回给客户端
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(field, msg string) *ValidationError { return &ValidationError{Field: field, Msg: msg} }

const (
	msgMissingFields  = "Missing required fields"
	msgInvalidType    = "Invalid type"
	msgInvalidStatus  = "Invalid status for this post type"
	msgPropertyType   = "Invalid property type"
	msgIndustryArray  = "Industry must be an array"
	msgIndustryType   = "Invalid industry type"
	msgLocation       = "Location must include city and state"
	msgSize           = "Size must be a positive number"
	msgSizeUnit       = "Invalid size unit"
	msgPrice          = "Price must be a non-negative number"
	msgPriceNoDetails = "Cannot set price - post has no property details"
	msgTagsArray      = "Tags must be an array"
	msgTagsEmpty      = "All tags must be non-empty strings"
	msgTagsMax        = "Maximum 10 tags allowed"
	msgPropertyObject = "Property details must be an object"
	msgImage          = "Invalid image payload"
)

type LocationInput struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Address string `json:"address"`
}

type PropertyDetailsInput struct {
	PropertyType Optional[string]        `json:"propertyType"`
	Industry     Optional[[]any]         `json:"industry"`
	Location     Optional[LocationInput] `json:"location"`
	Size         Optional[float64]       `json:"size"`
	SizeUnit     Optional[string]        `json:"sizeUnit"`
	Price        Optional[float64]       `json:"price"`
}

// CreateInput POST /posts
type CreateInput struct {
	Type            Optional[string]               `json:"type"`
	Status          Optional[string]               `json:"status"`
	Content         Optional[string]               `json:"content"`
	PropertyDetails Optional[PropertyDetailsInput] `json:"propertyDetails"`
	Tags            Optional[[]any]                `json:"tags"`
	Image           Optional[string]               `json:"image"`
}

// UpdateInput PUT /posts/:id，只处理出现的字段
type UpdateInput struct {
	Status Optional[string]  `json:"status"`
	Price  Optional[float64] `json:"price"`
	Tags   Optional[[]any]   `json:"tags"`
	Image  Optional[string]  `json:"image"`
}

// createPlan 校验通过后的待写入内容
type createPlan struct {
	post  domain.Post
	image *media.Image
}

func validateCreate(in *CreateInput) (*createPlan, error) {
	typ := strings.TrimSpace(in.Type.Value)
	if !in.Type.Present() || in.Type.Invalid || typ == "" ||
		!in.Content.Present() || in.Content.Invalid || strings.TrimSpace(in.Content.Value) == "" {
		return nil, invalid("type/content", msgMissingFields)
	}
	pt := domain.PostType(typ)
	if !ValidType(pt) {
		return nil, invalid("type", msgInvalidType)
	}

	plan := &createPlan{post: domain.Post{Type: pt, Content: in.Content.Value, Status: StatusActive}}

	if in.Status.Invalid {
		return nil, invalid("status", msgInvalidStatus)
	}
	if s := in.Status.Value; in.Status.Present() && s != "" {
		if !ValidStatus(pt, s) {
			return nil, invalid("status", msgInvalidStatus)
		}
		plan.post.Status = s
	}

	if in.PropertyDetails.Invalid {
		return nil, invalid("propertyDetails", msgPropertyObject)
	}
	if in.PropertyDetails.Present() {
		pd, err := validatePropertyDetails(&in.PropertyDetails.Value)
		if err != nil {
			return nil, err
		}
		plan.post.PropertyDetails = pd
	}

	if in.Tags.Present() || in.Tags.Invalid {
		tags, err := normalizeTags(in.Tags)
		if err != nil {
			return nil, err
		}
		plan.post.Tags = tags
	}

	// 图片只对 HAVE 生效
	if pt == domain.PostHave && in.Image.Set && !in.Image.Null {
		if in.Image.Invalid {
			return nil, invalid("image", msgImage)
		}
		if in.Image.Value != "" {
			img, err := media.DecodeImage(in.Image.Value)
			if err != nil {
				return nil, invalid("image", msgImage)
			}
			plan.image = &img
		}
	}
	return plan, nil
}

func validatePropertyDetails(in *PropertyDetailsInput) (*domain.PropertyDetails, error) {
	pd := &domain.PropertyDetails{}

	if in.PropertyType.Invalid {
		return nil, invalid("propertyDetails.propertyType", msgPropertyType)
	}
	if v := in.PropertyType.Value; in.PropertyType.Present() && v != "" {
		if !slices.Contains(PropertyTypes, v) {
			return nil, invalid("propertyDetails.propertyType", msgPropertyType)
		}
		pd.PropertyType = v
	}

	if in.Industry.Invalid {
		return nil, invalid("propertyDetails.industry", msgIndustryArray)
	}
	if in.Industry.Present() {
		industries := make([]string, 0, len(in.Industry.Value))
		for _, raw := range in.Industry.Value {
			s, ok := raw.(string)
			if !ok || !slices.Contains(Industries, s) {
				return nil, invalid("propertyDetails.industry", msgIndustryType)
			}
			industries = append(industries, s)
		}
		pd.Industry = industries
	}

	if in.Location.Invalid {
		return nil, invalid("propertyDetails.location", msgLocation)
	}
	if in.Location.Present() {
		loc := in.Location.Value
		if strings.TrimSpace(loc.City) == "" || strings.TrimSpace(loc.State) == "" {
			return nil, invalid("propertyDetails.location", msgLocation)
		}
		pd.Location = &domain.Location{City: loc.City, State: loc.State, Address: loc.Address}
	}

	if in.Size.Invalid {
		return nil, invalid("propertyDetails.size", msgSize)
	}
	if in.Size.Present() {
		if in.Size.Value <= 0 {
			return nil, invalid("propertyDetails.size", msgSize)
		}
		size := in.Size.Value
		pd.Size = &size
	}

	if in.SizeUnit.Invalid {
		return nil, invalid("propertyDetails.sizeUnit", msgSizeUnit)
	}
	if u := domain.SizeUnit(in.SizeUnit.Value); in.SizeUnit.Present() && u != "" {
		if !slices.Contains(SizeUnits, u) {
			return nil, invalid("propertyDetails.sizeUnit", msgSizeUnit)
		}
		pd.SizeUnit = u
	}

	if in.Price.Invalid {
		return nil, invalid("propertyDetails.price", msgPrice)
	}
	if in.Price.Present() {
		if in.Price.Value < 0 {
			return nil, invalid("propertyDetails.price", msgPrice)
		}
		price := in.Price.Value
		pd.Price = &price
	}
	return pd, nil
}

// normalizeTags 校验并 trim；null / 非数组都算“不是数组”
func normalizeTags(in Optional[[]any]) ([]string, error) {
	if in.Invalid || in.Null {
		return nil, invalid("tags", msgTagsArray)
	}
	out := make([]string, 0, len(in.Value))
	for _, raw := range in.Value {
		s, ok := raw.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return nil, invalid("tags", msgTagsEmpty)
		}
		out = append(out, strings.TrimSpace(s))
	}
	if len(out) > MaxTags {
		return nil, invalid("tags", msgTagsMax)
	}
	return out, nil
}

// updatePlan 逐字段校验结果；nil 字段表示不改
type updatePlan struct {
	status     *string
	price      *float64
	tags       []string
	setTags    bool
	image      *media.Image
	clearImage bool
}

// validateUpdate 先全部校验，任何一个字段失败都不做部分写入
func validateUpdate(p *domain.Post, in *UpdateInput) (*updatePlan, error) {
	plan := &updatePlan{}

	if in.Status.Invalid {
		return nil, invalid("status", msgInvalidStatus)
	}
	if s := in.Status.Value; in.Status.Present() && s != "" {
		if !ValidStatus(p.Type, s) {
			return nil, invalid("status", msgInvalidStatus)
		}
		plan.status = &s
	}

	if in.Price.Set {
		if in.Price.Null || in.Price.Invalid || in.Price.Value < 0 {
			return nil, invalid("price", msgPrice)
		}
		if p.PropertyDetails == nil {
			return nil, invalid("price", msgPriceNoDetails)
		}
		price := in.Price.Value
		plan.price = &price
	}

	if in.Tags.Set {
		tags, err := normalizeTags(in.Tags)
		if err != nil {
			return nil, err
		}
		plan.tags, plan.setTags = tags, true
	}

	if p.Type == domain.PostHave && in.Image.Set {
		switch {
		case in.Image.Invalid:
			return nil, invalid("image", msgImage)
		case in.Image.Null || in.Image.Value == "":
			plan.clearImage = true
		default:
			img, err := media.DecodeImage(in.Image.Value)
			if err != nil {
				return nil, invalid("image", msgImage)
			}
			plan.image = &img
		}
	}
	return plan, nil
}
