package cache

import "fmt"

func TemplateKey(tenantID, templateType string) string {
	return fmt.Sprintf("template:%s:%s", tenantID, templateType)
}

func RateLimitKey(subject string) string {
	return fmt.Sprintf("ratelimit:%s", subject)
}
