package constants

// Service permissions carried in admin token claims
const (
	PermAdminFull   = "enrollment-gateway.admin.full-permit"
	PermFinanceRead = "enrollment-gateway.finance.read-permit"

	// Special permissions
	PermAny = "any"
)
