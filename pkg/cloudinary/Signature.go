package cloudinary

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

/*
sign adds api_key and signature to a set of upload API parameters. The
signature is the SHA-1 of the alphabetically sorted key=value pairs
joined with "&", followed by the API secret. Must be called before
api_key or signature are present in the set.
*/
func (c Client) sign(params url.Values) {
	keys := make([]string, 0, len(params))

	for key := range params {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))

	for _, key := range keys {
		pairs = append(pairs, key+"="+params.Get(key))
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.apiSecret))

	params.Set("api_key", c.apiKey)
	params.Set("signature", hex.EncodeToString(sum[:]))
}

/*
serializeContext renders context metadata in the store's pipe-separated
form, e.g. "album=travel|uploadedBy=someone". Keys are sorted so the
value is stable for signing.
*/
func serializeContext(contextValues map[string]string) string {
	keys := make([]string, 0, len(contextValues))

	for key := range contextValues {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))

	for _, key := range keys {
		pairs = append(pairs, key+"="+contextValues[key])
	}

	return strings.Join(pairs, "|")
}
