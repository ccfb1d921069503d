package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edu-core/school-service/internal/models"
	"github.com/edu-core/school-service/internal/services"
	"github.com/edu-core/school-service/internal/utils"
)

// HandlerManager owns every resource handler and wires the route table.
type HandlerManager struct {
	studentHandler    *StudentHandler
	teacherHandler    *TeacherHandler
	userHandler       *UserHandler
	paymentHandler    *PaymentHandler
	attendanceHandler *AttendanceHandler
	privilegeHandler  *PrivilegeHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		studentHandler:    NewStudentHandler(serviceManager.Student(), logger),
		teacherHandler:    NewTeacherHandler(serviceManager.Teacher(), logger),
		userHandler:       NewUserHandler(serviceManager.User(), logger),
		paymentHandler:    NewPaymentHandler(serviceManager.Payment(), logger),
		attendanceHandler: NewAttendanceHandler(serviceManager.Attendance(), serviceManager.Export(), logger),
		privilegeHandler:  NewPrivilegeHandler(serviceManager.Privilege(), logger),
	}
}

// SetupRoutes registers the full route table on the router.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, models.APIResponse{
			Status:  models.StatusError,
			Message: "method not allowed",
		})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.APIResponse{
			Status:  models.StatusError,
			Message: "route not found",
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "school-service",
		})
	})

	student := router.Group("/student")
	{
		student.GET("/get_all", hm.studentHandler.GetAll)
		student.GET("/get_by_id/:id", hm.studentHandler.GetByID)
		student.POST("/create", hm.studentHandler.Create)
		student.PUT("/update/:id", hm.studentHandler.Update)
		student.DELETE("/delete/:id", hm.studentHandler.Delete)
		student.GET("/get_by_class/:class", hm.studentHandler.GetByClass)
		student.GET("/get_by_class_name/:class", hm.studentHandler.GetByClass)
		student.GET("/get_by_gender/:gender", hm.studentHandler.GetByGender)
	}

	teacher := router.Group("/teacher")
	{
		teacher.GET("/get_all", hm.teacherHandler.GetAll)
		teacher.GET("/get_by_id/:id", hm.teacherHandler.GetByID)
		teacher.POST("/create", hm.teacherHandler.Create)
		teacher.PUT("/update/:id", hm.teacherHandler.Update)
		teacher.DELETE("/delete/:id", hm.teacherHandler.Delete)
		teacher.GET("/get_by_name/:name", hm.teacherHandler.GetByName)
		teacher.GET("/get_by_class/:class", hm.teacherHandler.GetByClass)
		teacher.GET("/get_by_date_range/:start/:end", hm.teacherHandler.GetByDateRange)
	}

	user := router.Group("/user")
	{
		user.GET("/get_all", hm.userHandler.GetAll)
		user.GET("/get_by_id/:id", hm.userHandler.GetByID)
		user.POST("/create", hm.userHandler.Create)
		user.PUT("/update/:id", hm.userHandler.Update)
		user.DELETE("/delete/:id", hm.userHandler.Delete)
		user.GET("/get_by_role/:role", hm.userHandler.GetByRole)
		user.POST("/login", hm.userHandler.Login)
		user.PUT("/change_password/:id", hm.userHandler.ChangePassword)
	}

	payment := router.Group("/payment")
	{
		payment.GET("/get_all", hm.paymentHandler.GetAll)
		payment.GET("/get_by_id/:id", hm.paymentHandler.GetByID)
		payment.POST("/create", hm.paymentHandler.Create)
		payment.PUT("/update/:id", hm.paymentHandler.Update)
		payment.DELETE("/delete/:id", hm.paymentHandler.Delete)
		payment.GET("/get_by_student/:student_id", hm.paymentHandler.GetByStudent)
		payment.GET("/get_by_date_range", hm.paymentHandler.GetByDateRange)
		payment.GET("/get_by_service/:service_type", hm.paymentHandler.GetByServiceType)
		payment.GET("/get_stats", hm.paymentHandler.GetStats)
	}

	attendance := router.Group("/attendance")
	{
		attendance.POST("/save", hm.attendanceHandler.Save)
		attendance.GET("/check_exists/:teacher/:date", hm.attendanceHandler.CheckExists)
		attendance.DELETE("/delete_by_teacher_date/:teacher/:date", hm.attendanceHandler.DeleteByTeacherDate)
		attendance.GET("/get_by_date/:date", hm.attendanceHandler.GetByDate)
		attendance.GET("/get_by_date/:date/:class", hm.attendanceHandler.GetByDate)
		attendance.GET("/get_by_teacher_date/:teacher/:date", hm.attendanceHandler.GetByTeacherDate)
		attendance.GET("/get_by_date_range/:teacher/:start/:end", hm.attendanceHandler.GetByTeacherDateRange)
		attendance.GET("/get_all_by_date_range/:start/:end", hm.attendanceHandler.GetAllByDateRange)
		attendance.GET("/get_student_history/:student_id", hm.attendanceHandler.GetStudentHistory)
		attendance.GET("/get_student_history/:student_id/:start/:end", hm.attendanceHandler.GetStudentHistory)
		attendance.GET("/get_history/:teacher", hm.attendanceHandler.GetHistory)
		attendance.GET("/get_dates/:teacher", hm.attendanceHandler.GetDates)
		attendance.GET("/get_summary/:start/:end", hm.attendanceHandler.GetSummary)
		attendance.GET("/get_stats/:teacher/:start/:end", hm.attendanceHandler.GetTeacherStats)
		attendance.GET("/get_student_stats/:student_id/:start/:end", hm.attendanceHandler.GetStudentStats)
		attendance.GET("/get_rankings/:start/:end", hm.attendanceHandler.GetRankings)
		attendance.GET("/get_monthly_trends/:year", hm.attendanceHandler.GetMonthlyTrends)
		attendance.GET("/get_class_comparison/:start/:end", hm.attendanceHandler.GetClassComparison)
		attendance.GET("/export/:start/:end", hm.attendanceHandler.Export)
	}

	privilege := router.Group("/auth_privilege")
	{
		privilege.GET("/get_all", hm.privilegeHandler.GetAll)
		privilege.GET("/get_by_id/:id", hm.privilegeHandler.GetByID)
		privilege.GET("/get_by_role/:role", hm.privilegeHandler.GetByRole)
		privilege.POST("/create", hm.privilegeHandler.Create)
		privilege.PUT("/update/:id", hm.privilegeHandler.Update)
		privilege.DELETE("/delete/:id", hm.privilegeHandler.Delete)
		privilege.GET("/check_privilege/:role/:privilege", hm.privilegeHandler.CheckPrivilege)
		privilege.GET("/get_available_privileges", hm.privilegeHandler.GetAvailablePrivileges)
	}
}
