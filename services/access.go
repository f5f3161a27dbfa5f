package services

import "github.com/yeremiapane/rcoffee/models"

// Dashboard tab identifiers.
const (
	TabReservations  = "reservations"
	TabOrders        = "orders"
	TabNotifications = "notifications"
	TabSettings      = "settings"
	TabSuperAdmin    = "super_admin"
)

// The functions below only answer questions; route middleware enforces
// them. Every one of them is false for a nil user.

// DashboardTabs lists the dashboard sections a user may open.
func DashboardTabs(u *models.User) []string {
	if u == nil || u.IsPendingCashier() {
		return nil
	}
	tabs := []string{TabReservations, TabOrders, TabNotifications}
	if u.HasRole(models.RoleAdmin, models.RoleSuperAdmin) {
		tabs = append(tabs, TabSettings)
	}
	if u.IsSuperAdmin() {
		tabs = append(tabs, TabSuperAdmin)
	}
	return tabs
}

// ReservationActions lists the statuses a user may move a reservation to.
// Staff follow the whole graph; owners may only cancel.
func ReservationActions(u *models.User, res *models.Reservation) []models.ReservationStatus {
	if u == nil || res == nil || u.IsPendingCashier() {
		return nil
	}
	if u.IsStaff() {
		return NextReservationStatuses(res.Status)
	}
	if u.ID == res.UserID && CanTransitionReservation(res.Status, models.ReservationCancelled) {
		return []models.ReservationStatus{models.ReservationCancelled}
	}
	return nil
}

func CanViewReservation(u *models.User, res *models.Reservation) bool {
	if u == nil || res == nil {
		return false
	}
	return u.IsStaff() || u.ID == res.UserID
}

func CanManageReservations(u *models.User) bool {
	return u.IsStaff() && !u.IsPendingCashier()
}

func CanManageMenu(u *models.User) bool {
	return u.HasRole(models.RoleAdmin, models.RoleSuperAdmin)
}

func CanApproveUsers(u *models.User) bool {
	return u.HasRole(models.RoleAdmin, models.RoleSuperAdmin)
}

func CanManageUsers(u *models.User) bool {
	return u.IsSuperAdmin()
}

func CanViewReports(u *models.User) bool {
	return u.IsSuperAdmin()
}
