package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/pustaka/bookstore/internal/application/book"
	"github.com/pustaka/bookstore/internal/interface/http/dto"
	"github.com/pustaka/bookstore/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	manageUseCase *appbook.ManageBooksUseCase
	listUseCase   *appbook.ListBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	manageUseCase *appbook.ManageBooksUseCase,
	listUseCase *appbook.ListBooksUseCase,
) *BookHandler {
	return &BookHandler{
		manageUseCase: manageUseCase,
		listUseCase:   listUseCase,
	}
}

// Create 图书上架
// @Summary      图书上架
// @Description  创建新图书（书名唯一，必须归属有效分类）
// @Tags         图书模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=appbook.BookInfo} "上架成功"
// @Failure      400 {object} response.Response "参数错误或书名重复"
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.manageUseCase.Create(c.Request.Context(), appbook.SaveBookRequest{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		GenreID:     req.GenreID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Book added successfully", result)
}

// List 图书列表
// @Summary      图书列表
// @Description  分页查询图书，支持标题/作者搜索与书名排序
// @Tags         图书模块
// @Produce      json
// @Param        page query int false "页码（默认1）"
// @Param        limit query int false "每页数量（默认10，最大100）"
// @Param        search query string false "搜索关键词"
// @Param        order_by_title query string false "书名排序（asc/desc）"
// @Success      200 {object} response.Response{data=[]appbook.BookListItem} "获取成功"
// @Router       /books [get]
func (h *BookHandler) List(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Page:         req.Page,
		Limit:        req.Limit,
		Search:       req.Search,
		OrderByTitle: req.OrderByTitle,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	meta := response.NewPageMeta(result.Page, result.Limit, result.Total)
	response.SuccessWithMeta(c, "Get all book successfully", result.List, meta)
}

// ListByGenre 按分类查询图书
// @Summary      按分类查询图书
// @Description  分页查询指定分类下的图书
// @Tags         图书模块
// @Produce      json
// @Param        genreId path int true "分类ID"
// @Param        page query int false "页码（默认1）"
// @Param        limit query int false "每页数量（默认10）"
// @Success      200 {object} response.Response{data=[]appbook.BookListItem} "获取成功"
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /books/genre/{genreId} [get]
func (h *BookHandler) ListByGenre(c *gin.Context) {
	genreID, ok := parseIDParam(c, "genreId")
	if !ok {
		return
	}

	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Page:         req.Page,
		Limit:        req.Limit,
		Search:       req.Search,
		GenreID:      genreID,
		OrderByTitle: req.OrderByTitle,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	meta := response.NewPageMeta(result.Page, result.Limit, result.Total)
	response.SuccessWithMeta(c, "Get all book by genre successfully", result.List, meta)
}

// Get 图书详情
// @Summary      图书详情
// @Tags         图书模块
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookInfo} "获取成功"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.manageUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "Get book detail successfully", result)
}

// Update 更新图书
// @Summary      更新图书
// @Description  更新图书信息；price/stock省略表示不修改
// @Tags         图书模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=appbook.BookInfo} "更新成功"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.manageUseCase.Update(c.Request.Context(), id, appbook.SaveBookRequest{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		GenreID:     req.GenreID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "Book updated successfully", result)
}

// Delete 图书下架
// @Summary      图书下架
// @Description  软删除图书，历史交易仍可引用其标题与作者
// @Tags         图书模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response "删除成功"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.manageUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "Book removed successfully", nil)
}
