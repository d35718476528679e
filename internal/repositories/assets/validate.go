package assets

import (
	"time"

	"github.com/tidwall/gjson"

	"github.com/iniside/velesarc-craft/internal/errors"
)

func validateRecord(rec *Record) error {
	if rec == nil {
		return errors.InvalidArgument(errRecordNil)
	}
	if rec.Path == "" {
		return errors.InvalidArgument(errPathEmpty)
	}
	if rec.Type == "" {
		return errors.InvalidArgument(errTypeEmpty)
	}
	if !gjson.ValidBytes(rec.Body) || !gjson.ParseBytes(rec.Body).IsObject() {
		return errors.InvalidArgument(errBodyInvalid).WithMeta(errors.MetaAssetPath, rec.Path)
	}
	return nil
}

// SniffType returns the "$type" of a JSON document, or ""
func SniffType(body []byte) string {
	return gjson.GetBytes(body, "$type").String()
}

func unixMilli(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
