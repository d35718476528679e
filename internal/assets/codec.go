package assets

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tidwall/gjson"

	"github.com/iniside/velesarc-craft/internal/errors"
	"github.com/iniside/velesarc-craft/internal/pkg/suggest"
)

type decodeFunc func(path string, o object) (any, error)

type encodeFunc func(v any) (doc, error)

type codec struct {
	decode decodeFunc
	encode encodeFunc
}

var codecs = map[Type]codec{}

func register(t Type, decode decodeFunc, encode encodeFunc) {
	if _, dup := codecs[t]; dup {
		panic(fmt.Sprintf("assets: codec for %s registered twice", t))
	}
	codecs[t] = codec{decode: decode, encode: encode}
}

func init() {
	register(TypeRecipe, decodeRecipe, encodeRecipe)
	register(TypeTable, decodeTable, encodeTable)
	register(TypePreset, decodePreset, encodePreset)
	register(TypePool, decodePool, encodePool)
	register(TypeTierTable, decodeTierTable, encodeTierTable)
	register(TypeItem, decodeItem, encodeItem)
}

// Types lists every asset type with a registered codec
func Types() []Type {
	out := make([]Type, 0, len(codecs))
	for t := range codecs {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func typeNames() []string {
	types := Types()
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

// Sniff returns the "$type" of a document without decoding it
func Sniff(body []byte) Type {
	return Type(gjson.GetBytes(body, "$type").String())
}

// Decode parses one asset document stored at path
func Decode(path string, body []byte) (any, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.InvalidArgumentf("asset %s is not valid JSON", path).
			WithMeta(errors.MetaAssetPath, path)
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, errors.InvalidArgumentf("asset %s must be a JSON object", path).
			WithMeta(errors.MetaAssetPath, path)
	}

	t := Type(root.Get("$type").String())
	c, ok := codecs[t]
	if !ok {
		return nil, errors.InvalidArgumentf("asset %s has unknown type %q", path, t).
			WithMeta(errors.MetaAssetPath, path).
			WithSuggestion(suggest.Closest(string(t), typeNames()))
	}

	v, err := c.decode(path, object{root})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s %s", t, path)
	}
	return v, nil
}

// Encode writes a decoded asset back to its JSON document form
func Encode(v any) ([]byte, error) {
	t := TypeOf(v)
	c, ok := codecs[t]
	if !ok {
		return nil, errors.InvalidArgumentf("cannot encode %T as an asset", v)
	}
	d, err := c.encode(v)
	if err != nil {
		return nil, err
	}
	d["$type"] = string(t)
	body, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode %s", t)
	}
	return body, nil
}
