// Package logutil keeps patient identifiers out of logs.
package logutil

import (
	"fmt"
	"maps"
	"strings"
	"unicode"
)

const redacted = "[REDACTED]"

type redactor func(string) string

func replaceAll(string) string { return redacted }

// defaultSensitiveTokens maps key tokens to the redaction applied to their values.
var defaultSensitiveTokens = map[string]redactor{
	"password":   replaceAll,
	"senha":      replaceAll,
	"pass":       replaceAll,
	"secret":     replaceAll,
	"token":      replaceAll,
	"otp":        replaceAll,
	"pin":        replaceAll,
	"nascimento": replaceAll,
	"birth":      replaceAll,
	"cpf":        RedactCPF,
	"documento":  RedactCPF,
	"document":   RedactCPF,
	"telefone":   RedactPhone,
	"phone":      RedactPhone,
}

// SanitizeFields returns a copy of fields with sensitive values redacted.
// In development and debug environments values are returned unchanged.
// extraKeys are fully replaced.
func SanitizeFields(fields map[string]string, env string, extraKeys ...string) map[string]string {
	return sanitizeFields(fields, env, false, extraKeys...)
}

// SanitizeFieldsStrict always redacts regardless of environment.
func SanitizeFieldsStrict(fields map[string]string, extraKeys ...string) map[string]string {
	return sanitizeFields(fields, "", true, extraKeys...)
}

// Redact returns the redacted form of value when key is sensitive.
// Non-string values are formatted before redaction.
func Redact(key string, value any) (string, bool) {
	fn := lookup(key, nil)
	if fn == nil {
		return "", false
	}
	return fn(fmt.Sprint(value)), true
}

// RedactKV redacts the values of sensitive keys in a zap-style key/value list.
func RedactKV(kv ...any) []any {
	out := make([]any, len(kv))
	copy(out, kv)

	for i := 0; i+1 < len(out); i += 2 {
		key, ok := out[i].(string)
		if !ok {
			continue
		}
		if v, ok := Redact(key, out[i+1]); ok {
			out[i+1] = v
		}
	}
	return out
}

func sanitizeFields(fields map[string]string, env string, force bool, extraKeys ...string) map[string]string {
	if fields == nil {
		return nil
	}

	e := strings.ToLower(strings.TrimSpace(env))
	if !force && (e == "development" || e == "debug") {
		out := make(map[string]string, len(fields))
		maps.Copy(out, fields)
		return out
	}

	extra := make(map[string]struct{}, len(extraKeys))
	for _, k := range extraKeys {
		for _, tok := range tokenizeKey(k) {
			extra[tok] = struct{}{}
		}
	}

	out := make(map[string]string, len(fields))
	for field, value := range fields {
		if fn := lookup(field, extra); fn != nil {
			out[field] = fn(value)
			continue
		}
		out[field] = value
	}
	return out
}

// lookup returns the redactor for key, or nil when the key is not sensitive.
func lookup(key string, extra map[string]struct{}) redactor {
	for _, tok := range tokenizeKey(key) {
		if fn, ok := defaultSensitiveTokens[tok]; ok {
			return fn
		}
		if _, ok := extra[tok]; ok {
			return replaceAll
		}
	}
	return nil
}

// tokenizeKey splits camelCase, snake_case and dotted keys into lowercase tokens:
// "paciente.documentoCPF" -> [paciente documento cpf].
func tokenizeKey(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	var b strings.Builder
	b.Grow(len(s) + 4)

	var prevLowerOrDigit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if unicode.IsUpper(r) && prevLowerOrDigit {
				b.WriteByte(' ')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLowerOrDigit = unicode.IsLower(r) || unicode.IsDigit(r)
		default:
			b.WriteByte(' ')
			prevLowerOrDigit = false
		}
	}

	return strings.Fields(b.String())
}
