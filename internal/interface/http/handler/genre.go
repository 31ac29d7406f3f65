package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appgenre "github.com/pustaka/bookstore/internal/application/genre"
	"github.com/pustaka/bookstore/internal/interface/http/dto"
	"github.com/pustaka/bookstore/pkg/response"
)

// GenreHandler 分类HTTP处理器
type GenreHandler struct {
	genreUseCase *appgenre.ManageGenresUseCase
}

// NewGenreHandler 创建分类处理器
func NewGenreHandler(genreUseCase *appgenre.ManageGenresUseCase) *GenreHandler {
	return &GenreHandler{genreUseCase: genreUseCase}
}

// Create 创建分类
// @Summary      创建分类
// @Description  创建新的图书分类（名称在未删除分类中唯一）
// @Tags         分类模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.SaveGenreRequest true "分类信息"
// @Success      201 {object} response.Response{data=appgenre.GenreInfo} "创建成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "分类名称已存在"
// @Router       /genres [post]
func (h *GenreHandler) Create(c *gin.Context) {
	var req dto.SaveGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.genreUseCase.Create(c.Request.Context(), appgenre.SaveGenreRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Genre created successfully", result)
}

// List 分类列表
// @Summary      分类列表
// @Description  返回全部未删除的分类（含各分类图书数量）
// @Tags         分类模块
// @Produce      json
// @Success      200 {object} response.Response{data=[]appgenre.GenreInfo} "获取成功"
// @Router       /genres [get]
func (h *GenreHandler) List(c *gin.Context) {
	result, err := h.genreUseCase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Get 分类详情
// @Summary      分类详情
// @Tags         分类模块
// @Produce      json
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response{data=appgenre.GenreInfo} "获取成功"
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /genres/{id} [get]
func (h *GenreHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.genreUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Update 更新分类
// @Summary      更新分类
// @Tags         分类模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Param        request body dto.SaveGenreRequest true "分类信息"
// @Success      200 {object} response.Response{data=appgenre.GenreInfo} "更新成功"
// @Failure      404 {object} response.Response "分类不存在"
// @Failure      409 {object} response.Response "分类名称已存在"
// @Router       /genres/{id} [put]
func (h *GenreHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.SaveGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.genreUseCase.Update(c.Request.Context(), id, appgenre.SaveGenreRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "Genre updated successfully", result)
}

// Delete 删除分类
// @Summary      删除分类
// @Description  软删除分类；分类下仍有图书时拒绝删除
// @Tags         分类模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response "删除成功"
// @Failure      400 {object} response.Response "分类下仍有图书"
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /genres/{id} [delete]
func (h *GenreHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.genreUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "Genre deleted successfully", nil)
}

// parseIDParam 解析路径中的数字ID参数
// 非数字或非正数返回400并写入响应
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}
