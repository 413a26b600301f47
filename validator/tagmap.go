package validator

var tagMap = map[string]string{
	"required":  "required",
	"notblank":  "required",
	"omitempty": "optional",
	"cpf":       "invalid_cpf",
	"cpf_len":   "invalid_length",
	"phone_br":  "invalid_phone",
	"date_dmy":  "invalid_date",
	"max":       "too_long",
	"min":       "too_short",
	"gt":        "too_small",
	"lt":        "too_large",
	"gte":       "too_small_or_equal",
	"lte":       "too_large_or_equal",
	"len":       "invalid_length",
	"oneof":     "invalid_choice",
	"latitude":  "invalid_latitude",
	"longitude": "invalid_longitude",
	"numeric":   "only_numbers_allowed",
}

func mapTagToCode(tag string) string {
	if code, ok := tagMap[tag]; ok {
		return code
	}
	return "invalid"
}

// TagMap returns a copy of the tag to reason mapping.
func TagMap() map[string]string {
	out := make(map[string]string, len(tagMap))
	for k, v := range tagMap {
		out[k] = v
	}
	return out
}
