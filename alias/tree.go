// Package alias builds label indexes for target coding systems from their
// published JSON release files.
package alias

// TreeValue is a parsed JSON value. Target system releases nest labels at
// unpredictable depths (plain strings, {"@value": ...} wrappers, arrays of
// either), so extraction walks a uniform tree instead of binding structs.
type TreeValue struct {
	Kind   Kind
	Str    string
	List   []TreeValue
	Object map[string]TreeValue
}

// Kind discriminates the variants of TreeValue.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindList
	KindObject
)

// FromJSON converts a value produced by encoding/json (map[string]any,
// []any, string, ...) into a TreeValue. Numbers and booleans carry no label
// text and collapse to null.
func FromJSON(v any) TreeValue {
	switch val := v.(type) {
	case string:
		return TreeValue{Kind: KindString, Str: val}
	case []any:
		list := make([]TreeValue, 0, len(val))
		for _, item := range val {
			list = append(list, FromJSON(item))
		}
		return TreeValue{Kind: KindList, List: list}
	case map[string]any:
		obj := make(map[string]TreeValue, len(val))
		for key, item := range val {
			obj[key] = FromJSON(item)
		}
		return TreeValue{Kind: KindObject, Object: obj}
	default:
		return TreeValue{Kind: KindNull}
	}
}

// labelFields are the object keys that carry human-readable label text.
var labelFields = []string{"@value", "label", "title", "name"}

// CollectStrings gathers every label string reachable from a value,
// deduplicated with order preserved. Plain strings are taken as-is; objects
// contribute only their label fields; lists contribute each element.
func CollectStrings(v TreeValue) []string {
	var out []string
	seen := make(map[string]struct{})
	collect(v, seen, &out)
	return out
}

func collect(v TreeValue, seen map[string]struct{}, out *[]string) {
	switch v.Kind {
	case KindString:
		if v.Str == "" {
			return
		}
		if _, dup := seen[v.Str]; dup {
			return
		}
		seen[v.Str] = struct{}{}
		*out = append(*out, v.Str)
	case KindList:
		for _, item := range v.List {
			collect(item, seen, out)
		}
	case KindObject:
		for _, field := range labelFields {
			if child, ok := v.Object[field]; ok {
				collect(child, seen, out)
			}
		}
	}
}
