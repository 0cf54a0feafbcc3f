package post

import (
	"bytes"
	"encoding/json"
)

// Optional 区分 JSON 字段的三种状态：缺省 / null / 有值。
// 类型不符时不报解码错误，而是记 Invalid，交给字段级校验给出具体原因。
type Optional[T any] struct {
	Set     bool
	Null    bool
	Invalid bool
	Value   T
}

func Some[T any](v T) Optional[T] { return Optional[T]{Set: true, Value: v} }

func Null[T any]() Optional[T] { return Optional[T]{Set: true, Null: true} }

// Present 出现且非 null
func (o Optional[T]) Present() bool { return o.Set && !o.Null }

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Null = true
		return nil
	}
	if err := json.Unmarshal(b, &o.Value); err != nil {
		o.Invalid = true
	}
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present() {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
