// Package handlers maps the HTTP surface onto the domain services.
package handlers

import (
	userRepo "hemovida/database/repository/user"
	"hemovida/services/appointment"
	"hemovida/services/campaign"
	"hemovida/services/center"
	"hemovida/services/updates"
	"hemovida/services/user"

	"go.uber.org/zap"
)

// HandlerBundle carries the wired services shared by all handlers.
type HandlerBundle struct {
	UserSvc     user.UserService
	ApptSvc     appointment.AppointmentService
	CampaignSvc campaign.CampaignService
	Directory   center.DirectoryService
	UserRepo    userRepo.UserRepository
	Hub         *updates.Hub
	Logger      *zap.Logger
}
