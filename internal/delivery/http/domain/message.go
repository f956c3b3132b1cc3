package domain

var (
	AUTH_LOGIN_SUCCESS    = "Signed in"
	AUTH_LOGIN_FAILED     = "Failed to sign in"
	AUTH_REGISTER_SUCCESS = "Account created"
	AUTH_REGISTER_FAILED  = "Failed to create account"
	AUTH_LOGOUT_SUCCESS   = "Signed out"
	AUTH_LOGOUT_FAILED    = "Failed to sign out"
	AUTH_SESSION_SUCCESS  = "Session loaded"
	AUTH_SESSION_FAILED   = "Failed to load session"
	AUTH_REQUIRED         = "Sign in required"
	AUTH_FORBIDDEN        = "Admin access required"

	LESSON_LIST_SUCCESS     = "Lessons loaded"
	LESSON_LIST_FAILED      = "Failed to load lessons"
	LESSON_GET_SUCCESS      = "Lesson loaded"
	LESSON_GET_FAILED       = "Failed to load lesson"
	LESSON_TAB_SUCCESS      = "Lesson content rendered"
	LESSON_TAB_FAILED       = "Failed to render lesson content"
	LESSON_FIELD_SUCCESS    = "Saved"
	LESSON_FIELD_FAILED     = "Failed to save"
	LESSON_COMPLETE_SUCCESS = "Lesson completed"
	LESSON_COMPLETE_FAILED  = "Failed to complete lesson"

	QUIZ_GET_SUCCESS    = "Quiz loaded"
	QUIZ_GET_FAILED     = "Failed to load quiz"
	QUIZ_UPDATE_SUCCESS = "Quiz updated"
	QUIZ_UPDATE_FAILED  = "Failed to update quiz"

	PROGRESS_GET_SUCCESS = "Progress loaded"
	PROGRESS_GET_FAILED  = "Failed to load progress"

	ADMIN_STATS_SUCCESS       = "Dashboard stats loaded"
	ADMIN_STATS_FAILED        = "Failed to load dashboard stats"
	ADMIN_USERS_SUCCESS       = "Users loaded"
	ADMIN_USERS_FAILED        = "Failed to load users"
	ADMIN_USER_UPDATE_SUCCESS = "User updated"
	ADMIN_USER_UPDATE_FAILED  = "Failed to update user"
	ADMIN_USER_DELETE_SUCCESS = "User deleted"
	ADMIN_USER_DELETE_FAILED  = "Failed to delete user"
)
