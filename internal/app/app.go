package app

import (
	"fmt"
	"net/http"
	"tasktracker/internal/app/deps"
	"tasktracker/internal/app/services"
	"tasktracker/internal/http/handlers/auth"
	addcomment "tasktracker/internal/http/handlers/tasks/add_comment"
	createtask "tasktracker/internal/http/handlers/tasks/create_task"
	deletetask "tasktracker/internal/http/handlers/tasks/delete_task"
	taskevents "tasktracker/internal/http/handlers/tasks/events"
	listtasks "tasktracker/internal/http/handlers/tasks/list_tasks"
	updatetask "tasktracker/internal/http/handlers/tasks/update_task"
	activateuser "tasktracker/internal/http/handlers/users/activate_user"
	adminupdateuser "tasktracker/internal/http/handlers/users/admin_update_user"
	changepassword "tasktracker/internal/http/handlers/users/change_password"
	createuser "tasktracker/internal/http/handlers/users/create_user"
	deleteuser "tasktracker/internal/http/handlers/users/delete_user"
	forgotpassword "tasktracker/internal/http/handlers/users/forgot_password"
	listusers "tasktracker/internal/http/handlers/users/list_users"
	login "tasktracker/internal/http/handlers/users/log_in"
	logout "tasktracker/internal/http/handlers/users/log_out"
	me "tasktracker/internal/http/handlers/users/me"
	signup "tasktracker/internal/http/handlers/users/sign_up"
	updateuser "tasktracker/internal/http/handlers/users/update_user"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	isTestMode := deps.Config.IsTestMode

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Use(auth.SetAuthTokenToContext)

	router.Method(http.MethodPost, "/register", signup.New(s.SignUp, isTestMode))
	router.Method(http.MethodPost, "/activate", activateuser.New(s.ActivateUser))
	router.Method(http.MethodPost, "/login", login.New(s.LogIn))
	router.Method(http.MethodPost, "/logout", logout.New(s.LogOut))
	router.Method(http.MethodPost, "/forgot-password", forgotpassword.New(s.SendResetCode, s.ResetPassword, isTestMode))
	router.Method(http.MethodPost, "/change-password", changepassword.New(s.ChangePassword, s.ResetPassword))

	router.Method(http.MethodGet, "/user", me.New(s.GetUserBySessionToken))
	router.Method(http.MethodPatch, "/user", updateuser.New(s.UpdateUser))

	taskRouter := chi.NewRouter()
	taskRouter.Method(http.MethodPatch, "/{taskID:[0-9]+}", updatetask.New(s.UpdateTask))
	taskRouter.Method(http.MethodPost, "/{taskID:[0-9]+}/comments", addcomment.New(s.AddTaskComment))
	taskRouter.Method(http.MethodGet, "/events", taskevents.New(deps.Logger, deps.SseServer, s.GetUserBySessionToken))

	adminRouter := chi.NewRouter()
	adminRouter.Method(http.MethodGet, "/users", listusers.New(s.ListUsers))
	adminRouter.Method(http.MethodPost, "/user", createuser.New(s.CreateUser))
	adminRouter.Method(http.MethodPatch, "/user/{userID:[0-9]+}", adminupdateuser.New(s.AdminUpdateUser))
	adminRouter.Method(http.MethodDelete, "/user/{userID:[0-9]+}", deleteuser.New(s.DeleteUser))
	adminRouter.Method(http.MethodGet, "/tasks", listtasks.New(s.ListTasks))
	adminRouter.Method(http.MethodPost, "/task", createtask.New(s.CreateTask))
	adminRouter.Method(http.MethodPatch, "/task/{taskID:[0-9]+}", updatetask.New(s.UpdateTask))
	adminRouter.Method(http.MethodDelete, "/task/{taskID:[0-9]+}", deletetask.New(s.DeleteTask))

	router.Mount("/task", taskRouter)
	router.Mount("/admin", adminRouter)

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}
