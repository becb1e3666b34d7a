package handlers

import (
	"gorm.io/gorm"

	"pizza-club-api/notify"
	"pizza-club-api/schedule"
	"pizza-club-api/service"
)

// Package-level collaborators, wired once at startup.
var (
	orders      *service.OrderService
	admins      *service.AdminService
	resolver    *schedule.Resolver
	provisioner *schedule.Provisioner
	roster      schedule.Roster
	db          *gorm.DB
)

// Init wires the handler package to its services. Called from main before
// routes are registered.
func Init(database *gorm.DB, sender notify.Sender, r schedule.Roster) {
	db = database
	roster = r
	orders = service.NewOrderService(database, sender)
	admins = service.NewAdminService(database)
	resolver = schedule.NewResolver(database)
	provisioner = schedule.NewProvisioner(database, r)
}
