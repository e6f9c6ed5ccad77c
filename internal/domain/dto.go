package domain

import "strings"

type Role string

const (
	RoleCustomer  Role = "customer"
	RoleShopOwner Role = "shop owner"
	// RoleSuperAdmin существует только в сессии, в таблице users такой записи не бывает.
	RoleSuperAdmin Role = "superadmin"
)

// ParseUserRole приводит присланный user_type к закрытому перечислению. Регистр не учитывается,
// хранится всегда каноничная форма. Для неизвестных значений возвращает ErrUnknownRole.
func ParseUserRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleCustomer):
		return RoleCustomer, nil
	case string(RoleShopOwner):
		return RoleShopOwner, nil
	default:
		return "", ErrUnknownRole
	}
}

// Prefix возвращает префикс публичного идентификатора: C для покупателей, S для всех остальных.
func (r Role) Prefix() string {
	if r == RoleCustomer {
		return "C"
	}
	return "S"
}

// DashboardPath возвращает путь дашборда, на который роль попадает после логина.
func (r Role) DashboardPath() string {
	switch r {
	case RoleCustomer:
		return "/customer_dashboard"
	case RoleSuperAdmin:
		return "/superadmin_dashboard"
	default:
		return "/shop_dashboard"
	}
}
