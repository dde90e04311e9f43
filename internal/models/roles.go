package models

// Role is the closed set of user roles. Keep checks on the methods below
// instead of comparing strings in handlers.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// CanSell reports whether the role may create and manage products.
func (r Role) CanSell() bool {
	return r == RoleSeller || r == RoleAdmin
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered:
		return true
	}
	return false
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected:
		return true
	}
	return false
}
