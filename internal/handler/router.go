package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hostel-desk-api/internal/middleware"
	"github.com/noah-isme/hostel-desk-api/internal/models"
)

// Routes bundles the handlers mounted under the API prefix.
type Routes struct {
	Sessions   *SessionHandler
	Complaints *ComplaintHandler
	Dashboard  *DashboardHandler
	Reports    *ReportHandler
}

// Register mounts every API route on group. auth must populate the session
// claims; role checks are applied per route.
func (r Routes) Register(group *gin.RouterGroup, auth gin.HandlerFunc) {
	group.POST("/sessions", r.Sessions.Start)

	secured := group.Group("")
	secured.Use(auth)

	admin := middleware.RequireRoles(models.RoleAdmin)
	staff := middleware.RequireRoles(models.RoleMaintenance, models.RoleAdmin)
	student := middleware.RequireRoles(models.RoleStudent)

	secured.GET("/me", r.Sessions.Me)
	secured.PUT("/me/role", r.Sessions.SwitchRole)
	secured.GET("/audit/role-switches", admin, r.Sessions.RoleSwitches)

	secured.GET("/complaints", r.Complaints.List)
	secured.POST("/complaints", student, r.Complaints.Lodge)
	secured.POST("/complaints/:id/status", staff, r.Complaints.AdvanceStatus)

	secured.GET("/dashboard", r.Dashboard.Dashboard)
	secured.GET("/rooms", admin, r.Dashboard.Rooms)
	secured.GET("/analytics", admin, r.Dashboard.Analytics)
	secured.GET("/analytics/prediction", admin, r.Dashboard.Prediction)
	secured.POST("/allocations/suggestion", admin, r.Dashboard.SuggestAllocation)

	secured.GET("/reports/:kind", admin, r.Reports.Download)
}
