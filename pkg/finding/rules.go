package finding

// SeverityRulesVersion identifies the revision of the static rule tables
// below. Bump it whenever a mapping changes so stored reports can be
// traced back to the policy that produced them.
const SeverityRulesVersion = 1

// eventCategories maps every known engine event type to exactly one
// category. Unmapped event types fall into CategoryOther; that is a
// classification gap, not an error.
var eventCategories = map[string]Category{
	// Domains and hosts
	"domain_name":      CategoryDomain,
	"internet_name":    CategoryDomain,
	"subdomain":        CategorySubdomain,
	"affiliate_domain": CategorySubdomain,

	// Network
	"ip_address": CategoryIP,
	"netblock":   CategoryIP,
	"asn":        CategoryIP,
	"open_port":  CategoryIP,

	// Contact details
	"email_address":    CategoryContact,
	"phone_number":     CategoryContact,
	"physical_address": CategoryContact,

	// Technology fingerprints
	"web_technology":   CategoryTechnology,
	"software_banner":  CategoryTechnology,
	"operating_system": CategoryTechnology,

	// Security indicators
	"vulnerability":     CategorySecurity,
	"malicious_ip":      CategorySecurity,
	"malicious_domain":  CategorySecurity,
	"defaced_site":      CategorySecurity,
	"ssl_cert_expired":  CategorySecurity,
	"ssl_cert_mismatch": CategorySecurity,

	// Credential exposure
	"leaked_credential": CategoryCredential,
	"leaked_data":       CategoryCredential,

	// Social footprint
	"social_profile":   CategorySocial,
	"username":         CategorySocial,
	"account_external": CategorySocial,
}

// baseSeverities maps event types to their base tier before risk
// escalation. Event types absent from this table default to Info.
var baseSeverities = map[string]Severity{
	"leaked_credential": High,
	"leaked_data":       High,
	"vulnerability":     High,
	"malicious_ip":      High,
	"malicious_domain":  High,
	"defaced_site":      High,

	"ssl_cert_expired":  Medium,
	"ssl_cert_mismatch": Medium,

	"web_technology":   Low,
	"software_banner":  Low,
	"operating_system": Low,
	"open_port":        Low,
}

// CategoryOf returns the category for an event type. The second return
// is false when the event type has no mapping and CategoryOther was
// substituted.
func CategoryOf(eventType string) (Category, bool) {
	if cat, ok := eventCategories[eventType]; ok {
		return cat, true
	}
	return CategoryOther, false
}

// SeverityOf returns the severity tier for an event type. The base tier
// comes from the static rule table (Info when unlisted); a set riskFlag
// raises it one level, capped at Critical.
func SeverityOf(eventType string, riskFlag bool) Severity {
	sev, ok := baseSeverities[eventType]
	if !ok {
		sev = Info
	}
	if riskFlag {
		sev = sev.Escalate()
	}
	return sev
}

// KnownEventTypes returns every event type present in the category table.
// Intended for diagnostics and tests, not for hot paths.
func KnownEventTypes() []string {
	types := make([]string, 0, len(eventCategories))
	for t := range eventCategories {
		types = append(types, t)
	}
	return types
}
