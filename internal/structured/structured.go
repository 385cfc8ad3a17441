// Package structured 处理以松散 JSON 形式存储的表单字段（活动、困难、技能列表等）。
//
// 字段在库中可能是数组、对象、单个标量，也可能是无法解析的文本。Parse 把它们统一成
// 带标签的 Value，String/Format 负责转成可展示的文本，任何输入都不会报错。
package structured

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type Kind int

const (
	// Text 无法解析为 JSON 的原始文本
	Text Kind = iota
	Scalar
	Sequence
	Mapping
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Sequence:
		return "sequence"
	case Mapping:
		return "mapping"
	default:
		return "text"
	}
}

type Pair struct {
	Key   string
	Value Value
}

type Value struct {
	Kind  Kind
	Raw   string
	Null  bool
	Items []Value
	Pairs []Pair
}

var errUnexpectedDelim = errors.New("unexpected delimiter")

// Parse 解析文本，失败时原样返回 Text
func Parse(text string) Value {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Value{Kind: Text, Raw: text}
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{Kind: Text, Raw: text}
	}
	// 尾部还有内容说明不是单个合法值
	if _, err := dec.Token(); err != io.EOF {
		return Value{Kind: Text, Raw: text}
	}
	return v
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			v := Value{Kind: Sequence, Items: []Value{}}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				v.Items = append(v.Items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return v, nil
		case '{':
			v := Value{Kind: Mapping, Pairs: []Pair{}}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("object key is %T", keyTok)
				}
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				v.Pairs = append(v.Pairs, Pair{Key: key, Value: item})
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return v, nil
		default:
			return Value{}, errUnexpectedDelim
		}
	case string:
		return Value{Kind: Scalar, Raw: t}, nil
	case json.Number:
		return Value{Kind: Scalar, Raw: t.String()}, nil
	case bool:
		return Value{Kind: Scalar, Raw: strconv.FormatBool(t)}, nil
	case nil:
		return Value{Kind: Scalar, Null: true}, nil
	default:
		return Value{}, fmt.Errorf("unsupported token %T", tok)
	}
}

// String 数组用逗号连接，对象渲染为 "key: value"，标量取自然文本
func (v Value) String() string {
	switch v.Kind {
	case Sequence:
		parts := make([]string, 0, len(v.Items))
		for _, item := range v.Items {
			parts = append(parts, item.String())
		}
		return strings.Join(parts, ", ")
	case Mapping:
		parts := make([]string, 0, len(v.Pairs))
		for _, p := range v.Pairs {
			parts = append(parts, p.Key+": "+p.Value.String())
		}
		return strings.Join(parts, ", ")
	case Scalar:
		if v.Null {
			return ""
		}
		return v.Raw
	default:
		return v.Raw
	}
}

// Truthy 用于勾选框形式的对象 {"listening": true}
func (v Value) Truthy() bool {
	switch v.Kind {
	case Scalar:
		if v.Null {
			return false
		}
		switch strings.ToLower(v.Raw) {
		case "", "false", "0", "no", "off":
			return false
		}
		return true
	case Sequence:
		return len(v.Items) > 0
	case Mapping:
		return len(v.Pairs) > 0
	default:
		return false
	}
}

// Strings 提取字段中的键集合。无法解析的文本视为没有数据。
func (v Value) Strings() []string {
	var out []string
	switch v.Kind {
	case Sequence:
		for _, item := range v.Items {
			if s := strings.TrimSpace(item.String()); s != "" {
				out = append(out, s)
			}
		}
	case Mapping:
		for _, p := range v.Pairs {
			if p.Value.Truthy() {
				out = append(out, p.Key)
			}
		}
	case Scalar:
		for _, s := range strings.Split(v.String(), ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// Format 把任意值渲染成可读文本，不会失败
func Format(input any) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprint(input)
		}
	}()

	switch x := input.(type) {
	case nil:
		return ""
	case string:
		return Parse(x).String()
	case []byte:
		return Parse(string(x)).String()
	case json.RawMessage:
		return Parse(string(x)).String()
	case Value:
		return x.String()
	case []string:
		return strings.Join(x, ", ")
	}

	b, err := json.Marshal(input)
	if err != nil {
		return fmt.Sprint(input)
	}
	return Parse(string(b)).String()
}
