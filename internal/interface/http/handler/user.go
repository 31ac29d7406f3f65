package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/pustaka/bookstore/internal/application/user"
	"github.com/pustaka/bookstore/internal/interface/http/dto"
	"github.com/pustaka/bookstore/internal/interface/http/middleware"
	"github.com/pustaka/bookstore/pkg/response"
)

// UserHandler 用户HTTP处理器
type UserHandler struct {
	registerUseCase   *appuser.RegisterUseCase
	loginUseCase      *appuser.LoginUseCase
	logoutUseCase     *appuser.LogoutUseCase
	getProfileUseCase *appuser.GetProfileUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	registerUseCase *appuser.RegisterUseCase,
	loginUseCase *appuser.LoginUseCase,
	logoutUseCase *appuser.LogoutUseCase,
	getProfileUseCase *appuser.GetProfileUseCase,
) *UserHandler {
	return &UserHandler{
		registerUseCase:   registerUseCase,
		loginUseCase:      loginUseCase,
		logoutUseCase:     logoutUseCase,
		getProfileUseCase: getProfileUseCase,
	}
}

// Register 用户注册
// @Summary      用户注册
// @Description  使用邮箱、密码、用户名注册新账号
// @Tags         认证模块
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      201 {object} response.Response{data=appuser.UserInfo} "注册成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "邮箱已注册"
// @Router       /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), appuser.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "User created successfully", result)
}

// Login 用户登录
// @Summary      用户登录
// @Description  邮箱密码登录，返回JWT Token对
// @Tags         认证模块
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=appuser.LoginResponse} "登录成功"
// @Failure      401 {object} response.Response "邮箱或密码错误"
// @Router       /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appuser.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Logout 用户登出
// @Summary      用户登出
// @Description  删除会话并将当前Token加入黑名单
// @Tags         认证模块
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "登出成功"
// @Failure      401 {object} response.Response "未登录"
// @Router       /auth/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	token := middleware.GetAccessToken(c)

	if err := h.logoutUseCase.Execute(c.Request.Context(), userID, token); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "Logged out successfully", nil)
}

// Me 获取个人信息
// @Summary      获取个人信息
// @Description  返回当前登录用户的基本信息
// @Tags         认证模块
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appuser.UserInfo} "获取成功"
// @Failure      401 {object} response.Response "未登录"
// @Router       /auth/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	result, err := h.getProfileUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
