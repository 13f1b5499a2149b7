package api

import (
	"github.com/gin-gonic/gin"

	"github.com/chaisthra/vibetrack/internal/service"
)

func PostSignup(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateSignupRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		user, err := service.Signup(c.Request.Context(), app.Users(), &req)
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "Failed to create user")
			return
		}

		token, err := app.Tokens().GenerateAccessToken(user.Username)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to issue token")
			return
		}

		HandleCreated(c, app.Logger(), user.Profile(), map[string]any{
			"access_token": token,
			"token_type":   "bearer",
		})
	}
}

func PostLogin(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateLoginRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		user, err := service.Login(c.Request.Context(), app.Users(), &req)
		if err != nil {
			// Wrong username and wrong password present identically.
			HandleError(c, app.Logger(), err, 401, "Incorrect username or password")
			return
		}

		token, err := app.Tokens().GenerateAccessToken(user.Username)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to issue token")
			return
		}

		HandleSuccess(c, app.Logger(), user.Profile(), map[string]any{
			"access_token": token,
			"token_type":   "bearer",
		})
	}
}

func GetMe(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		HandleSuccess(c, app.Logger(), currentUser(c).Profile(), nil)
	}
}

func PutMe(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var req service.UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateUpdateProfileRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		updated, err := service.UpdateProfile(c.Request.Context(), app.Users(), user.Username, &req)
		if err != nil {
			HandleStoreError(c, app.Logger(), err, "User not found")
			return
		}
		HandleSuccess(c, app.Logger(), updated.Profile(), nil)
	}
}
