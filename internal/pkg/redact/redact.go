// redact маскирует чувствительные значения перед записью в лог.
package redact

import "strings"

// Email оставляет домен и две первые руны локальной части.
func Email(s string) string {
	local, domain, ok := strings.Cut(s, "@")
	if !ok || strings.Contains(domain, "@") {
		return "***"
	}

	if r := []rune(local); len(r) > 2 {
		local = string(r[:2]) + "***"
	} else {
		local = "***"
	}

	return local + "@" + domain
}

// Token — заглушка вместо токена сессии.
func Token() string { return "[REDACTED_TOKEN]" }

// Code — заглушка вместо кода второго фактора.
func Code() string { return "[REDACTED_CODE]" }
