package controllers

import (
	"errors"
	"net/http"

	"github.com/mcreations/storefront/app/models"
	"github.com/mcreations/storefront/app/services"
	"github.com/mcreations/storefront/pkg/ctx"
	"github.com/mcreations/storefront/pkg/response"
	"github.com/mcreations/storefront/pkg/session"
)

// AuthController handles registration, login and logout. Handlers use the
// ctx.Context helpers; everything else in this package is plain handlers.
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register creates an account and logs it straight in.
func (c *AuthController) Register(cx *ctx.Context) {
	var input services.RegisterInput
	if !cx.BindJSON(&input) {
		return
	}

	user, token, err := c.auth.Register(input)
	if errors.Is(err, services.ErrPhoneTaken) {
		cx.ValidationError(map[string][]string{
			"phone": {"The phone has already been taken."},
		})
		return
	}
	if err != nil {
		cx.Error(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if !c.startSession(cx, user) {
		return
	}
	cx.Success(response.Payload{"user": user, "token": token})
}

type loginInput struct {
	Phone    string `json:"phone"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates by phone number.
func (c *AuthController) Login(cx *ctx.Context) {
	var input loginInput
	if !cx.BindJSON(&input) {
		return
	}

	user, token, err := c.auth.Login(input.Phone, input.Password)
	if err != nil {
		cx.Error(http.StatusUnauthorized, "Invalid phone or password")
		return
	}

	if !c.startSession(cx, user) {
		return
	}
	cx.Success(response.Payload{"user": user, "token": token})
}

// StaffLogin authenticates like Login but only admits accounts that
// already hold the staff role. The role is never granted here.
func (c *AuthController) StaffLogin(cx *ctx.Context) {
	var input loginInput
	if !cx.BindJSON(&input) {
		return
	}

	user, token, err := c.auth.StaffLogin(input.Phone, input.Password)
	if errors.Is(err, services.ErrNotStaff) {
		cx.Forbidden()
		return
	}
	if err != nil {
		cx.Error(http.StatusUnauthorized, "Invalid phone or password")
		return
	}

	if !c.startSession(cx, user) {
		return
	}
	cx.Success(response.Payload{"user": user, "token": token})
}

// Logout drops the whole session, cart included.
func (c *AuthController) Logout(cx *ctx.Context) {
	sess := session.FromCtx(cx.R)
	sess.Invalidate()
	if err := sess.Save(cx.W); err != nil {
		cx.Error(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	cx.Success(nil)
}

func (c *AuthController) startSession(cx *ctx.Context, user models.User) bool {
	sess := session.FromCtx(cx.R)
	sess.Set("user_id", user.ID)
	sess.Set("role", user.Role)
	if err := sess.Save(cx.W); err != nil {
		cx.Error(http.StatusInternalServerError, "Internal Server Error")
		return false
	}
	return true
}
