package server

const (
	RouteRegister       = "/auth/register"
	RouteLogin          = "/auth/login"
	RouteMe             = "/auth/me"
	RouteForgotPassword = "/auth/forgot-password"
	RouteResetPassword  = "/auth/reset-password"
	RouteHealth         = "/health"
)
