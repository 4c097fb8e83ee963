package services

import (
	"tasktracker/internal/app/deps"
	drl "tasktracker/internal/core/domain/rate_limiter"
	"tasktracker/internal/core/services"
	activateuser "tasktracker/internal/core/services/activate_user"
	addtaskcomment "tasktracker/internal/core/services/add_task_comment"
	adminupdateuser "tasktracker/internal/core/services/admin_update_user"
	"tasktracker/internal/core/services/auth"
	changepassword "tasktracker/internal/core/services/change_password"
	createtask "tasktracker/internal/core/services/create_task"
	createuser "tasktracker/internal/core/services/create_user"
	deletetask "tasktracker/internal/core/services/delete_task"
	deleteuser "tasktracker/internal/core/services/delete_user"
	getuserbysessiontoken "tasktracker/internal/core/services/get_user_by_session_token"
	listtasks "tasktracker/internal/core/services/list_tasks"
	listusers "tasktracker/internal/core/services/list_users"
	login "tasktracker/internal/core/services/log_in"
	logout "tasktracker/internal/core/services/log_out"
	ratelimiting "tasktracker/internal/core/services/rate_limiting"
	resetpassword "tasktracker/internal/core/services/reset_password"
	sendresetcode "tasktracker/internal/core/services/send_reset_code"
	signup "tasktracker/internal/core/services/sign_up"
	updatetask "tasktracker/internal/core/services/update_task"
	updateuser "tasktracker/internal/core/services/update_user"
)

type Services struct {
	SignUp                services.Service[signup.Input, signup.Result]
	ActivateUser          services.Service[activateuser.Input, activateuser.Result]
	LogIn                 services.Service[login.Input, login.Result]
	LogOut                services.Service[logout.Input, logout.Result]
	SendResetCode         services.Service[sendresetcode.Input, sendresetcode.Result]
	ResetPassword         services.Service[resetpassword.Input, resetpassword.Result]
	ChangePassword        services.Service[changepassword.Input, changepassword.Result]
	GetUserBySessionToken services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]
	UpdateUser            services.Service[updateuser.Input, updateuser.Result]

	CreateTask     services.Service[createtask.Input, createtask.Result]
	ListTasks      services.Service[listtasks.Input, listtasks.Result]
	UpdateTask     services.Service[updatetask.Input, updatetask.Result]
	DeleteTask     services.Service[deletetask.Input, deletetask.Result]
	AddTaskComment services.Service[addtaskcomment.Input, addtaskcomment.Result]

	ListUsers       services.Service[listusers.Input, listusers.Result]
	CreateUser      services.Service[createuser.Input, createuser.Result]
	AdminUpdateUser services.Service[adminupdateuser.Input, adminupdateuser.Result]
	DeleteUser      services.Service[deleteuser.Input, deleteuser.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUp = signup.NewWithActivationCodeSending(
		deps.Logger,
		deps.ActivationCodeSender,
		signup.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordHasher,
			deps.ActivationCodeGenerator,
			deps.Now,
		),
	)
	s.ActivateUser = activateuser.New(
		deps.Logger,
		deps.UserRepository,
		deps.Now,
	)
	s.LogIn = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 10},
		login.New(
			deps.Logger,
			deps.UserRepository,
			deps.SessionRepository,
			deps.PasswordHasher,
			deps.SessionTokenGenerator,
			deps.Now,
		),
	)
	s.LogOut = logout.New(
		deps.Logger,
		deps.SessionRepository,
	)
	s.SendResetCode = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 3},
		sendresetcode.NewWithResetCodeSending(
			deps.Logger,
			deps.ResetCodeSender,
			sendresetcode.New(
				deps.Logger,
				deps.UserRepository,
				deps.ResetCodeGenerator,
				deps.Now,
			),
		),
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.Now,
	)
	s.ChangePassword = auth.WithAuthentication(
		deps.SessionRepository,
		changepassword.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordHasher,
			deps.Now,
		),
	)
	s.GetUserBySessionToken = getuserbysessiontoken.New(
		deps.Logger,
		deps.SessionRepository,
	)
	s.UpdateUser = auth.WithAuthentication(
		deps.SessionRepository,
		updateuser.New(
			deps.Logger,
			deps.UserRepository,
			deps.Now,
		),
	)

	s.CreateTask = auth.WithAuthentication(
		deps.SessionRepository,
		auth.WithAdminRole(
			createtask.New(
				deps.Logger,
				deps.TaskRepository,
				deps.TaskEventPublisher,
				deps.Now,
			),
		),
	)
	s.ListTasks = auth.WithAuthentication(
		deps.SessionRepository,
		auth.WithAdminRole(
			listtasks.New(
				deps.Logger,
				deps.TaskRepository,
			),
		),
	)
	s.UpdateTask = auth.WithAuthentication(
		deps.SessionRepository,
		updatetask.New(
			deps.Logger,
			deps.TaskRepository,
			deps.TaskEventPublisher,
			deps.Now,
		),
	)
	s.DeleteTask = auth.WithAuthentication(
		deps.SessionRepository,
		auth.WithAdminRole(
			deletetask.New(
				deps.Logger,
				deps.TaskRepository,
				deps.TaskEventPublisher,
			),
		),
	)
	s.AddTaskComment = auth.WithAuthentication(
		deps.SessionRepository,
		addtaskcomment.New(
			deps.Logger,
			deps.TaskRepository,
			deps.TaskEventPublisher,
			deps.Now,
		),
	)

	s.ListUsers = auth.WithAuthentication(
		deps.SessionRepository,
		auth.WithAdminRole(
			listusers.New(
				deps.Logger,
				deps.UserRepository,
			),
		),
	)
	s.CreateUser = auth.WithAuthentication(
		deps.SessionRepository,
		auth.WithAdminRole(
			createuser.New(
				deps.Logger,
				deps.UserRepository,
				deps.PasswordHasher,
				deps.Now,
			),
		),
	)
	s.AdminUpdateUser = auth.WithAuthentication(
		deps.SessionRepository,
		auth.WithAdminRole(
			adminupdateuser.New(
				deps.Logger,
				deps.UserRepository,
				deps.Now,
			),
		),
	)
	s.DeleteUser = auth.WithAuthentication(
		deps.SessionRepository,
		auth.WithAdminRole(
			deleteuser.New(
				deps.Logger,
				deps.UserRepository,
			),
		),
	)

	return s
}
