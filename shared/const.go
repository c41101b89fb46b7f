package shared

const (
	UserID   = "user_id"
	UserRole = "user_role"

	RoleAdmin    = "admin"
	RoleCustomer = "customer"

	SettingMaintenanceMode    = "maintenance_mode"
	SettingMaintenanceMessage = "maintenance_message"

	CurrencyCHF = "CHF"
)
